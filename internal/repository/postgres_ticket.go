package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/popcorn-palace/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) FindBySeat(ctx context.Context, showtimeID int64, seatNumber int) (*domain.Ticket, error) {
	query := `SELECT booking_id, showtime_id, seat_number, user_id, created_at
		FROM tickets
		WHERE showtime_id = $1 AND seat_number = $2`

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, showtimeID, seatNumber).Scan(
		&ticket.BookingID,
		&ticket.ShowtimeID,
		&ticket.SeatNumber,
		&ticket.UserID,
		&ticket.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

// Create relies on the (showtime_id, seat_number) unique constraint to reject
// a second ticket for the same seat.
func (p *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `INSERT INTO tickets (booking_id, showtime_id, seat_number, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := p.db.Exec(ctx,
		query,
		ticket.BookingID,
		ticket.ShowtimeID,
		ticket.SeatNumber,
		ticket.UserID,
		ticket.CreatedAt)

	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateSeat
		case isForeignKeyViolation(err):
			return domain.ErrShowtimeDeleted
		default:
			return err
		}
	}

	return nil
}

func (p *PostgresTicketRepository) DeleteByShowtime(ctx context.Context, showtimeID int64) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM tickets WHERE showtime_id = $1`, showtimeID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (p *PostgresTicketRepository) CountByShowtime(ctx context.Context, showtimeID int64) (int, error) {
	var count int

	err := p.db.QueryRow(ctx, `SELECT count(*) FROM tickets WHERE showtime_id = $1`, showtimeID).Scan(&count)

	return count, err
}
