package mocks

import (
	"context"
	"sync"

	"github.com/metinatakli/popcorn-palace/internal/domain"
)

// MockEventPublisher records published events for later assertions.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	Err    error
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.events = append(m.events, event)

	return nil
}

func (m *MockEventPublisher) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]domain.Event, len(m.events))
	copy(events, m.events)
	return events
}
