package events

import (
	"context"
	"sync"
)

// MockPublisher records published events for testing.
type MockPublisher struct {
	mu        sync.Mutex
	Published []PublishedEvent
	Err       error
}

// PublishedEvent is one recorded Publish call.
type PublishedEvent struct {
	Subject string
	Event   any
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, event any) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, PublishedEvent{Subject: subject, Event: event})
	return nil
}

func (m *MockPublisher) Close() {}

// Subjects returns the subjects published so far, in order.
func (m *MockPublisher) Subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	subjects := make([]string, len(m.Published))
	for i, e := range m.Published {
		subjects[i] = e.Subject
	}
	return subjects
}
