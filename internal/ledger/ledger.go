// Package ledger allocates seats of a showtime to tickets. At most one live
// ticket holds any (showtime, seat) pair, even under concurrent bookings.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/popcorn-palace/internal/ledger"

var (
	tracer = otel.Tracer(instrumentationName)

	lockWait, _ = otel.Meter(instrumentationName).Float64Histogram(
		"ledger.seat_lock.wait",
		metric.WithDescription("Time spent waiting for a seat lock"),
		metric.WithUnit("s"),
	)
)

type Ledger struct {
	validator    *validator.Validate
	showtimeRepo domain.ShowtimeRepository
	ticketRepo   domain.TicketRepository
	locker       Locker
}

func New(
	validator *validator.Validate,
	showtimeRepo domain.ShowtimeRepository,
	ticketRepo domain.TicketRepository,
	locker Locker) *Ledger {

	if locker == nil {
		locker = NewKeyedMutex()
	}

	return &Ledger{
		validator:    validator,
		showtimeRepo: showtimeRepo,
		ticketRepo:   ticketRepo,
		locker:       locker,
	}
}

// Reserve books seat req.SeatNumber of showtime req.ShowtimeID for
// req.UserID and returns the new booking id.
//
// Failures are, in check order: a *domain.ValidationError, a NotFound error
// when the showtime does not exist, and a Conflict wrapping
// domain.ErrSeatTaken when the seat is already held. Any other error comes
// from storage.
func (l *Ledger) Reserve(ctx context.Context, req domain.BookingRequest) (uuid.UUID, error) {
	ctx, span := tracer.Start(ctx, "ledger.Reserve")
	defer span.End()

	err := appvalidator.Check(l.validator, req)
	if err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return uuid.Nil, err
	}

	seatNumber := *req.SeatNumber
	span.SetAttributes(
		attribute.Int64("showtime.id", req.ShowtimeID),
		attribute.Int("seat.number", seatNumber),
	)

	exists, err := l.showtimeRepo.Exists(ctx, req.ShowtimeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check showtime %d: %w", req.ShowtimeID, err)
	}

	if !exists {
		return uuid.Nil, showtimeNotFound(req.ShowtimeID, domain.ErrRecordNotFound)
	}

	lockStart := time.Now()
	unlock, err := l.locker.Lock(ctx, seatKey(req.ShowtimeID, seatNumber))
	lockWait.Record(ctx, time.Since(lockStart).Seconds(), metric.WithAttributes(attribute.Bool("acquired", err == nil)))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to lock seat %d of showtime %d: %w", seatNumber, req.ShowtimeID, err)
	}
	defer unlock()

	_, err = l.ticketRepo.FindBySeat(ctx, req.ShowtimeID, seatNumber)
	switch {
	case err == nil:
		span.SetStatus(codes.Error, "seat taken")
		return uuid.Nil, seatTaken()
	case !errors.Is(err, domain.ErrRecordNotFound):
		return uuid.Nil, fmt.Errorf("failed to look up seat %d of showtime %d: %w", seatNumber, req.ShowtimeID, err)
	}

	ticket := &domain.Ticket{
		BookingID:  uuid.New(),
		ShowtimeID: req.ShowtimeID,
		SeatNumber: seatNumber,
		UserID:     req.UserID,
		CreatedAt:  time.Now().UTC(),
	}

	err = l.ticketRepo.Create(ctx, ticket)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateSeat):
			// another instance won the race past the lock; the constraint decided
			span.SetStatus(codes.Error, "seat taken")
			return uuid.Nil, seatTaken()
		case errors.Is(err, domain.ErrShowtimeDeleted):
			return uuid.Nil, showtimeNotFound(req.ShowtimeID, err)
		default:
			return uuid.Nil, fmt.Errorf("failed to save ticket: %w", err)
		}
	}

	return ticket.BookingID, nil
}

func seatKey(showtimeID int64, seatNumber int) string {
	return fmt.Sprintf("%d:%d", showtimeID, seatNumber)
}

func seatTaken() error {
	return domain.Conflict("Seat is not empty", domain.ErrSeatTaken)
}

func showtimeNotFound(id int64, err error) error {
	return domain.NotFound(fmt.Sprintf("Showtime not found with id - %d", id), err)
}
