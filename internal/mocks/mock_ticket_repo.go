package mocks

import (
	"context"

	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) FindBySeat(ctx context.Context, showtimeID int64, seatNumber int) (*domain.Ticket, error) {
	args := m.Called(ctx, showtimeID, seatNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) DeleteByShowtime(ctx context.Context, showtimeID int64) (int64, error) {
	args := m.Called(ctx, showtimeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepo) CountByShowtime(ctx context.Context, showtimeID int64) (int, error) {
	args := m.Called(ctx, showtimeID)
	return args.Int(0), args.Error(1)
}
