package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Showtime is a screening of a movie in a theater. The theater name is the
// partition key for schedule overlap checks.
type Showtime struct {
	ID        int64           `json:"id"`
	MovieID   int64           `json:"movieId"`
	Theater   string          `json:"theater" validate:"required,max=255"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   time.Time       `json:"endTime" validate:"required,gtfield=StartTime"`
	Price     decimal.Decimal `json:"price" validate:"gte=0,money"`
}

// AdmitFunc decides whether a showtime may join the schedule of its theater.
// Stores call it with every showtime currently recorded for that theater while
// holding the theater's write lock, and abort the write if it returns an error.
type AdmitFunc func(existing []Showtime) error

type ShowtimeRepository interface {
	GetById(ctx context.Context, id int64) (*Showtime, error)
	GetByTheater(ctx context.Context, theater string) ([]Showtime, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, showtime *Showtime, admit AdmitFunc) error
	Update(ctx context.Context, showtime *Showtime, admit AdmitFunc) error
	Delete(ctx context.Context, id int64) error
}
