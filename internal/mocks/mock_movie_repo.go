package mocks

import (
	"context"

	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMovieRepo struct {
	mock.Mock
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*domain.Movie), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockMovieRepo) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Create assigns the returned id to movie when the call succeeds.
func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, *movie)
	if err := args.Error(1); err != nil {
		return err
	}
	movie.ID = args.Get(0).(int64)
	return nil
}

func (m *MockMovieRepo) UpdateByTitle(ctx context.Context, title string, movie *domain.Movie) error {
	args := m.Called(ctx, title, *movie)
	if err := args.Error(1); err != nil {
		return err
	}
	movie.ID = args.Get(0).(int64)
	return nil
}

func (m *MockMovieRepo) DeleteByTitle(ctx context.Context, title string) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}
