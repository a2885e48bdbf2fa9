package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/popcorn-palace/internal/domain"
	appvalidator "github.com/metinatakli/popcorn-palace/internal/validator"
)

func (s *Service) ListMovies(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	movies, metadata, err := s.movieRepo.GetAll(ctx, filters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list movies: %w", err)
	}

	return movies, metadata, nil
}

func (s *Service) CreateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	movie.ID = 0

	err := appvalidator.Check(s.validator, movie)
	if err != nil {
		return nil, err
	}

	err = s.movieRepo.Create(ctx, &movie)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateMovie) {
			return nil, duplicateMovie(movie.Title)
		}

		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	return &movie, nil
}

// UpdateMovie replaces every field of the movie currently titled title.
// Renaming onto another movie's title is a conflict.
func (s *Service) UpdateMovie(ctx context.Context, title string, movie domain.Movie) (*domain.Movie, error) {
	err := appvalidator.Check(s.validator, movie)
	if err != nil {
		return nil, err
	}

	existing, err := s.movieRepo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, movieTitleNotFound(title, err)
		}

		return nil, fmt.Errorf("failed to get movie %q: %w", title, err)
	}

	movie.ID = existing.ID

	err = s.movieRepo.UpdateByTitle(ctx, title, &movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateMovie):
			return nil, duplicateMovie(movie.Title)
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, movieTitleNotFound(title, err)
		default:
			return nil, fmt.Errorf("failed to update movie %q: %w", title, err)
		}
	}

	return &movie, nil
}

// DeleteMovie removes the movie along with its showtimes and their tickets.
func (s *Service) DeleteMovie(ctx context.Context, title string) error {
	err := s.movieRepo.DeleteByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return movieTitleNotFound(title, err)
		}

		return fmt.Errorf("failed to delete movie %q: %w", title, err)
	}

	return nil
}

func duplicateMovie(title string) error {
	return domain.Conflict(fmt.Sprintf("Movie already exists with title - %s", title), domain.ErrDuplicateMovie)
}

func movieTitleNotFound(title string, err error) error {
	return domain.NotFound(fmt.Sprintf("Movie not found with title - %s", title), err)
}
