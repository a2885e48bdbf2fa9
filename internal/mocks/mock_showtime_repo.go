package mocks

import (
	"context"

	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockShowtimeRepo runs the admit callback of Create and Update against the
// showtimes returned as the first value of the expectation, the way the
// Postgres store does inside its theater lock.
type MockShowtimeRepo struct {
	mock.Mock
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id int64) (*domain.Showtime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepo) GetByTheater(ctx context.Context, theater string) ([]domain.Showtime, error) {
	args := m.Called(ctx, theater)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime, admit domain.AdmitFunc) error {
	args := m.Called(ctx, *showtime)
	return m.write(args, showtime, admit)
}

func (m *MockShowtimeRepo) Update(ctx context.Context, showtime *domain.Showtime, admit domain.AdmitFunc) error {
	args := m.Called(ctx, *showtime)
	return m.write(args, showtime, admit)
}

func (m *MockShowtimeRepo) write(args mock.Arguments, showtime *domain.Showtime, admit domain.AdmitFunc) error {
	existing, _ := args.Get(0).([]domain.Showtime)
	if err := admit(existing); err != nil {
		return err
	}

	if err := args.Error(2); err != nil {
		return err
	}

	if id, ok := args.Get(1).(int64); ok && id != 0 {
		showtime.ID = id
	}

	return nil
}

func (m *MockShowtimeRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
