package repository

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
)

// Migrator applies the schema files found at source, a golang-migrate source
// URL such as file://migrations.
type Migrator struct {
	m     *migrate.Migrate
	close func() error
}

func NewMigrator(dsn, source string) (*Migrator, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	db := pgxstd.OpenDB(*config)

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("pgx migration driver error: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "pgx", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate.New error: %w", err)
	}

	return &Migrator{m: m, close: db.Close}, nil
}

// Up applies every pending migration. An already current schema is not an
// error.
func (m *Migrator) Up() error {
	err := m.m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Down reverts the last steps migrations, or all of them when steps is zero.
func (m *Migrator) Down(steps int) error {
	var err error
	if steps == 0 {
		err = m.m.Down()
	} else {
		err = m.m.Steps(-steps)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}

	return nil
}

func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	return version, dirty, err
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()

	return errors.Join(srcErr, dbErr, m.close())
}

// RunMigrations brings the schema at dsn up to date.
func RunMigrations(dsn, source string) error {
	m, err := NewMigrator(dsn, source)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}
