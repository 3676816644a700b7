package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TodoEventType names the mutation that produced an event.
type TodoEventType string

// Mutation kinds emitted by the todo service.
const (
	TodoCreated TodoEventType = "todo.created"
	TodoUpdated TodoEventType = "todo.updated"
	TodoDeleted TodoEventType = "todo.deleted"
)

// TodoEvent records a successful mutation of the todo list.
type TodoEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type TodoEventType `json:"type"`

	// TodoID is the id of the affected todo after the mutation.
	TodoID string `json:"todo_id"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewTodoEvent creates an event with a fresh id.
func NewTodoEvent(eventType TodoEventType, todoID string, at time.Time) *TodoEvent {
	return &TodoEvent{
		ID:         uuid.New(),
		Type:       eventType,
		TodoID:     todoID,
		OccurredAt: at,
	}
}

// EventHandler defines an interface for components that react to events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *TodoEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TodoEvent) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *TodoEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TodoEvent) error {
	return f(ctx, event)
}
