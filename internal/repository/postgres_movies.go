package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/popcorn-palace/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), id, title, genre, duration, rating, release_year
		FROM movies
		WHERE (to_tsvector('simple', title) @@ plainto_tsquery('simple', $1)
			OR genre ILIKE $1
			OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.Duration,
			&movie.Rating,
			&movie.ReleaseYear,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	query := `SELECT id, title, genre, duration, rating, release_year
		FROM movies
		WHERE title = $1`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, title).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.Duration,
		&movie.Rating,
		&movie.ReleaseYear,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)

	return exists, err
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, genre, duration, rating, release_year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.Duration,
		movie.Rating,
		movie.ReleaseYear).Scan(&movie.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateMovie
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) UpdateByTitle(ctx context.Context, title string, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, genre = $2, duration = $3, rating = $4, release_year = $5
		WHERE title = $6
		RETURNING id`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.Duration,
		movie.Rating,
		movie.ReleaseYear,
		title).Scan(&movie.ID)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrRecordNotFound
		case isUniqueViolation(err):
			return domain.ErrDuplicateMovie
		default:
			return err
		}
	}

	return nil
}

// DeleteByTitle removes the movie. Its showtimes and their tickets go with it
// through the foreign key cascade.
func (p *PostgresMovieRepository) DeleteByTitle(ctx context.Context, title string) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE title = $1`, title)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
