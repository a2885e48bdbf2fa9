// Package booking coordinates movies, showtimes and seat reservations. Every
// write runs validation, then existence checks, then invariant checks, and
// stops at the first failure.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/metinatakli/popcorn-palace/internal/ledger"
	"github.com/metinatakli/popcorn-palace/internal/metrics"
	"github.com/metinatakli/popcorn-palace/internal/scheduler"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/metinatakli/popcorn-palace/internal/booking")

type Repositories struct {
	Movies    domain.MovieRepository
	Showtimes domain.ShowtimeRepository
	Tickets   domain.TicketRepository
}

type Service struct {
	logger    *slog.Logger
	validator *validator.Validate
	scheduler *scheduler.Scheduler
	ledger    *ledger.Ledger
	publisher domain.EventPublisher

	movieRepo    domain.MovieRepository
	showtimeRepo domain.ShowtimeRepository
	ticketRepo   domain.TicketRepository
}

func NewService(
	logger *slog.Logger,
	validator *validator.Validate,
	repos Repositories,
	locker ledger.Locker,
	publisher domain.EventPublisher) *Service {

	return &Service{
		logger:       logger,
		validator:    validator,
		scheduler:    scheduler.New(validator),
		ledger:       ledger.New(validator, repos.Showtimes, repos.Tickets, locker),
		publisher:    publisher,
		movieRepo:    repos.Movies,
		showtimeRepo: repos.Showtimes,
		ticketRepo:   repos.Tickets,
	}
}

func (s *Service) GetShowtime(ctx context.Context, id int64) (*domain.Showtime, error) {
	showtime, err := s.showtimeRepo.GetById(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, showtimeNotFound(id, err)
		}

		return nil, fmt.Errorf("failed to get showtime %d: %w", id, err)
	}

	return showtime, nil
}

// CreateShowtime admits showtime into its theater's schedule and assigns its
// id.
func (s *Service) CreateShowtime(ctx context.Context, showtime domain.Showtime) (_ *domain.Showtime, err error) {
	ctx, span := tracer.Start(ctx, "booking.CreateShowtime")
	defer span.End()
	defer func() { metrics.ShowtimeWrites.WithLabelValues("create", outcome(err)).Inc() }()

	showtime.ID = 0

	err = s.scheduler.Validate(showtime)
	if err != nil {
		return nil, err
	}

	err = s.requireMovie(ctx, showtime.MovieID)
	if err != nil {
		return nil, err
	}

	err = s.showtimeRepo.Create(ctx, &showtime, s.scheduler.Admit(showtime))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMovie) {
			return nil, movieNotFound(showtime.MovieID, err)
		}

		if domain.KindOf(err) != 0 {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	span.SetAttributes(attribute.Int64("showtime.id", showtime.ID))

	return &showtime, nil
}

// UpdateShowtime replaces every field of showtime id with the given values.
// The showtime's own current slot is ignored by the overlap check.
func (s *Service) UpdateShowtime(ctx context.Context, id int64, showtime domain.Showtime) (_ *domain.Showtime, err error) {
	ctx, span := tracer.Start(ctx, "booking.UpdateShowtime", withShowtime(id))
	defer span.End()
	defer func() { metrics.ShowtimeWrites.WithLabelValues("update", outcome(err)).Inc() }()

	showtime.ID = id

	err = s.scheduler.Validate(showtime)
	if err != nil {
		return nil, err
	}

	exists, err := s.showtimeRepo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check showtime %d: %w", id, err)
	}

	if !exists {
		return nil, showtimeNotFound(id, domain.ErrRecordNotFound)
	}

	err = s.requireMovie(ctx, showtime.MovieID)
	if err != nil {
		return nil, err
	}

	err = s.showtimeRepo.Update(ctx, &showtime, s.scheduler.Admit(showtime))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownMovie):
			return nil, movieNotFound(showtime.MovieID, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, showtimeNotFound(id, err)
		case domain.KindOf(err) != 0:
			return nil, err
		default:
			return nil, fmt.Errorf("failed to update showtime %d: %w", id, err)
		}
	}

	return &showtime, nil
}

// DeleteShowtime removes the showtime's tickets and then the showtime itself.
func (s *Service) DeleteShowtime(ctx context.Context, id int64) (err error) {
	ctx, span := tracer.Start(ctx, "booking.DeleteShowtime", withShowtime(id))
	defer span.End()
	defer func() { metrics.ShowtimeWrites.WithLabelValues("delete", outcome(err)).Inc() }()

	showtime, err := s.GetShowtime(ctx, id)
	if err != nil {
		return err
	}

	voided, err := s.ticketRepo.DeleteByShowtime(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete tickets of showtime %d: %w", id, err)
	}

	metrics.TicketsVoided.Add(float64(voided))

	err = s.showtimeRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return showtimeNotFound(id, err)
		}

		return fmt.Errorf("failed to delete showtime %d: %w", id, err)
	}

	s.publish(ctx, domain.ShowtimeDeleted{
		Header:        domain.NewEventHeader(),
		ShowtimeID:    id,
		Theater:       showtime.Theater,
		TicketsVoided: voided,
	})

	return nil
}

// BookTicket reserves a seat and returns the booking id.
func (s *Service) BookTicket(ctx context.Context, req domain.BookingRequest) (_ uuid.UUID, err error) {
	defer func() { metrics.BookingAttempts.WithLabelValues(outcome(err)).Inc() }()

	bookingID, err := s.ledger.Reserve(ctx, req)
	if err != nil {
		return uuid.Nil, err
	}

	s.publish(ctx, domain.TicketBooked{
		Header:     domain.NewEventHeader(),
		BookingID:  bookingID,
		ShowtimeID: req.ShowtimeID,
		SeatNumber: *req.SeatNumber,
		UserID:     req.UserID,
	})

	return bookingID, nil
}

func (s *Service) requireMovie(ctx context.Context, movieID int64) error {
	exists, err := s.movieRepo.Exists(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to check movie %d: %w", movieID, err)
	}

	if !exists {
		return movieNotFound(movieID, domain.ErrRecordNotFound)
	}

	return nil
}

// publish never fails the caller: the write it reports is already committed.
func (s *Service) publish(ctx context.Context, event domain.Event) {
	err := s.publisher.Publish(ctx, event)
	if err != nil {
		metrics.EventPublishFailures.WithLabelValues(event.Topic()).Inc()
		s.logger.WarnContext(ctx, "failed to publish event", "topic", event.Topic(), "error", err)
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	kind := domain.KindOf(err)
	if kind == 0 {
		return "error"
	}

	return kind.String()
}

func withShowtime(id int64) trace.SpanStartOption {
	return trace.WithAttributes(attribute.Int64("showtime.id", id))
}

func showtimeNotFound(id int64, err error) error {
	return domain.NotFound(fmt.Sprintf("Showtime not found with id - %d", id), err)
}

func movieNotFound(id int64, err error) error {
	return domain.NotFound(fmt.Sprintf("Movie not found with id - %d", id), err)
}
