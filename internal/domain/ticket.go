package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	BookingID  uuid.UUID
	ShowtimeID int64
	SeatNumber int
	UserID     string
	CreatedAt  time.Time
}

// BookingRequest is the client-supplied part of a ticket. SeatNumber is a
// pointer so that a missing seat can be told apart from seat zero.
type BookingRequest struct {
	ShowtimeID int64  `json:"showtimeId"`
	SeatNumber *int   `json:"seatNumber" validate:"required,gte=0"`
	UserID     string `json:"userId" validate:"required,max=255"`
}

type TicketRepository interface {
	// FindBySeat returns ErrRecordNotFound when the seat is free.
	FindBySeat(ctx context.Context, showtimeID int64, seatNumber int) (*Ticket, error)
	// Create returns ErrDuplicateSeat when the (showtime, seat) pair is
	// already held, and ErrShowtimeDeleted when the showtime is gone.
	Create(ctx context.Context, ticket *Ticket) error
	DeleteByShowtime(ctx context.Context, showtimeID int64) (int64, error)
	CountByShowtime(ctx context.Context, showtimeID int64) (int, error)
}
