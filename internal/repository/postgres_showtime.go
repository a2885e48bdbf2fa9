package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/popcorn-palace/internal/domain"
)

const showtimeColumns = `id, movie_id, theater, start_time, end_time, price`

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int64) (*domain.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := scanShowtime(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return showtime, nil
}

func (p *PostgresShowtimeRepository) GetByTheater(ctx context.Context, theater string) ([]domain.Showtime, error) {
	return getByTheater(ctx, p.db, theater)
}

func (p *PostgresShowtimeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM showtimes WHERE id = $1)`, id).Scan(&exists)

	return exists, err
}

// Create inserts showtime if admit accepts the theater's current schedule.
// Writers to the same theater are serialized by a transaction-scoped advisory
// lock, so the schedule admit sees cannot change before the insert commits.
func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime, admit domain.AdmitFunc) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := lockTheater(ctx, tx, showtime.Theater, admit)
		if err != nil {
			return err
		}

		query := `INSERT INTO showtimes (movie_id, theater, start_time, end_time, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`

		err = tx.QueryRow(ctx,
			query,
			showtime.MovieID,
			showtime.Theater,
			showtime.StartTime,
			showtime.EndTime,
			showtime.Price).Scan(&showtime.ID)

		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUnknownMovie
			}

			return err
		}

		return nil
	})
}

// Update replaces every column of showtime.ID under the lock of the theater it
// moves into.
func (p *PostgresShowtimeRepository) Update(ctx context.Context, showtime *domain.Showtime, admit domain.AdmitFunc) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := lockTheater(ctx, tx, showtime.Theater, admit)
		if err != nil {
			return err
		}

		query := `UPDATE showtimes
			SET movie_id = $1, theater = $2, start_time = $3, end_time = $4, price = $5
			WHERE id = $6`

		tag, err := tx.Exec(ctx,
			query,
			showtime.MovieID,
			showtime.Theater,
			showtime.StartTime,
			showtime.EndTime,
			showtime.Price,
			showtime.ID)

		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUnknownMovie
			}

			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresShowtimeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func lockTheater(ctx context.Context, tx pgx.Tx, theater string, admit domain.AdmitFunc) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, theater)
	if err != nil {
		return err
	}

	existing, err := getByTheater(ctx, tx, theater)
	if err != nil {
		return err
	}

	return admit(existing)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getByTheater(ctx context.Context, q querier, theater string) ([]domain.Showtime, error) {
	query := `SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE theater = $1
		ORDER BY start_time`

	rows, err := q.Query(ctx, query, theater)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := []domain.Showtime{}

	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, *showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

func scanShowtime(row pgx.Row) (*domain.Showtime, error) {
	var showtime domain.Showtime

	err := row.Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
	)
	if err != nil {
		return nil, err
	}

	showtime.StartTime = showtime.StartTime.UTC()
	showtime.EndTime = showtime.EndTime.UTC()

	return &showtime, nil
}
