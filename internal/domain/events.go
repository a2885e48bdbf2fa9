package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"publishedAt"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

type TicketBooked struct {
	Header     EventHeader `json:"header"`
	BookingID  uuid.UUID   `json:"bookingId"`
	ShowtimeID int64       `json:"showtimeId"`
	SeatNumber int         `json:"seatNumber"`
	UserID     string      `json:"userId"`
}

func (TicketBooked) Topic() string {
	return "tickets.booked"
}

type ShowtimeDeleted struct {
	Header        EventHeader `json:"header"`
	ShowtimeID    int64       `json:"showtimeId"`
	Theater       string      `json:"theater"`
	TicketsVoided int64       `json:"ticketsVoided"`
}

func (ShowtimeDeleted) Topic() string {
	return "showtimes.deleted"
}

type Event interface {
	Topic() string
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
