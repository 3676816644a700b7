package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/todo-api/internal/events"
)

// MockEventEmitter implements events.EventEmitter for testing.
// It records every event it is given and returns Err.
type MockEventEmitter struct {
	mu     sync.Mutex
	events []*events.TodoEvent

	Err error
}

// EmitEvent records event and returns the configured error.
func (m *MockEventEmitter) EmitEvent(_ context.Context, event *events.TodoEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.Err
}

// Events returns a copy of the recorded events in emission order.
func (m *MockEventEmitter) Events() []*events.TodoEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.TodoEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the type of each recorded event in emission order.
func (m *MockEventEmitter) Types() []events.TodoEventType {
	recorded := m.Events()
	out := make([]events.TodoEventType, len(recorded))
	for i, ev := range recorded {
		out[i] = ev.Type
	}
	return out
}
