package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/metinatakli/popcorn-palace/internal/repository"
	"github.com/urfave/cli/v2"
)

func withMigrator(c *cli.Context, fn func(*repository.Migrator) error) error {
	m, err := repository.NewMigrator(c.String("dsn"), c.String("source"))
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "popcorn-migrate",
		Usage: "Manage the Popcorn Palace database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dsn",
				Usage:    "PostgreSQL DSN",
				EnvVars:  []string{"DB_DSN"},
				Required: true,
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "migration source URL",
				Value: "file://migrations",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *repository.Migrator) error {
						return m.Up()
					})
				},
			},
			{
				Name:  "down",
				Usage: "revert migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "steps",
						Usage: "number of migrations to revert, 0 reverts all",
						Value: 1,
					},
				},
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *repository.Migrator) error {
						return m.Down(c.Int("steps"))
					})
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *repository.Migrator) error {
						version, dirty, err := m.Version()
						if err != nil {
							return err
						}

						fmt.Printf("Version:\t%d\nDirty:\t\t%t\n", version, dirty)
						return nil
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
