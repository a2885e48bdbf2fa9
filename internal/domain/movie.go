package domain

import (
	"context"
	"strings"
)

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title" validate:"required,max=255"`
	Genre       string  `json:"genre" validate:"required,max=100"`
	Duration    float64 `json:"duration" validate:"gte=0"`
	Rating      float64 `json:"rating" validate:"gte=0"`
	ReleaseYear int     `json:"releaseYear" validate:"gte=0"`
}

type MovieFilters struct {
	Page     int
	PageSize int
	Term     string
	Sort     string
}

func (f MovieFilters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f MovieFilters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetByTitle(ctx context.Context, title string) (*Movie, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, movie *Movie) error
	UpdateByTitle(ctx context.Context, title string, movie *Movie) error
	DeleteByTitle(ctx context.Context, title string) error
}
