package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/events"
)

// EventDeliveryTask hands one event to a synchronous emitter.
type EventDeliveryTask struct {
	id     uuid.UUID
	event  *events.TodoEvent
	target events.EventEmitter
}

// NewEventDeliveryTask creates a task that emits event to target.
func NewEventDeliveryTask(event *events.TodoEvent, target events.EventEmitter) *EventDeliveryTask {
	return &EventDeliveryTask{
		id:     uuid.New(),
		event:  event,
		target: target,
	}
}

// ID implements Task.
func (t *EventDeliveryTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *EventDeliveryTask) Type() string { return TaskTypeEventDelivery }

// Execute implements Task.
func (t *EventDeliveryTask) Execute(ctx context.Context) error {
	if err := t.target.EmitEvent(ctx, t.event); err != nil {
		return fmt.Errorf("deliver %s for todo %s: %w", t.event.Type, t.event.TodoID, err)
	}
	return nil
}

// EventDispatcher implements events.EventEmitter by queuing each event for
// background delivery to target. EmitEvent returns as soon as the event is
// queued.
type EventDispatcher struct {
	runner Submitter
	target events.EventEmitter
	logger *slog.Logger
}

var _ events.EventEmitter = (*EventDispatcher)(nil)

// NewEventDispatcher creates a dispatcher that submits to runner.
func NewEventDispatcher(runner Submitter, target events.EventEmitter, logger *slog.Logger) *EventDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventDispatcher{
		runner: runner,
		target: target,
		logger: logger.With("component", "event_dispatcher"),
	}
}

// EmitEvent implements events.EventEmitter.
func (d *EventDispatcher) EmitEvent(ctx context.Context, event *events.TodoEvent) error {
	task := NewEventDeliveryTask(event, d.target)

	// Delivery outlives the request that produced the event.
	if err := d.runner.Submit(context.WithoutCancel(ctx), task); err != nil {
		return fmt.Errorf("failed to queue %s event: %w", event.Type, err)
	}

	d.logger.Debug("event queued",
		"event_id", event.ID,
		"event_type", string(event.Type),
		"task_id", task.ID())
	return nil
}
