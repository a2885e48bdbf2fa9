package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request bodies use pointers for required scalars so that a missing field can
// be told apart from its zero value.

type SystemInfo struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type GetMoviesParams struct {
	Page     *int    `json:"page,omitempty" validate:"omitempty,gte=1,lte=10000"`
	PageSize *int    `json:"pageSize,omitempty" validate:"omitempty,gte=1,lte=100"`
	Sort     *string `json:"sort,omitempty" validate:"omitempty,oneof=id title genre duration rating release_year -id -title -genre -duration -rating -release_year"`
	Term     *string `json:"term,omitempty"`
}

type MovieRequest struct {
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Duration    *float64 `json:"duration" validate:"required"`
	Rating      *float64 `json:"rating" validate:"required"`
	ReleaseYear *int     `json:"releaseYear" validate:"required"`
}

type Movie struct {
	Id          int64   `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Duration    float64 `json:"duration"`
	Rating      float64 `json:"rating"`
	ReleaseYear int     `json:"releaseYear"`
}

type MovieListResponse struct {
	Movies   []Movie   `json:"movies"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type ShowtimeRequest struct {
	MovieId   *int64           `json:"movieId" validate:"required"`
	Theater   string           `json:"theater"`
	StartTime *time.Time       `json:"startTime" validate:"required"`
	EndTime   *time.Time       `json:"endTime" validate:"required"`
	Price     *decimal.Decimal `json:"price" validate:"required"`
}

type Showtime struct {
	Id        int64           `json:"id"`
	MovieId   int64           `json:"movieId"`
	Theater   string          `json:"theater"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Price     decimal.Decimal `json:"price"`
}

type BookingRequest struct {
	ShowtimeId *int64 `json:"showtimeId" validate:"required"`
	SeatNumber *int   `json:"seatNumber" validate:"required"`
	UserId     string `json:"userId"`
}

type BookingResponse struct {
	BookingId uuid.UUID `json:"bookingId"`
}
