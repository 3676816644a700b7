package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TodoService provides the operations behind the todo API.
type TodoService interface {
	// ListTodos returns every todo, newest first.
	ListTodos(ctx context.Context) ([]*domain.Todo, error)

	// GetTodo returns the todo with the given id.
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)

	// CreateTodo trims title, rejects it if blank, and prepends a new todo.
	CreateTodo(ctx context.Context, title string) (*domain.Todo, error)

	// UpdateTodo shallow-merges patch onto the todo and stamps updatedAt.
	UpdateTodo(ctx context.Context, id string, patch domain.Patch) (*domain.Todo, error)

	// DeleteTodo removes the todo and returns it.
	DeleteTodo(ctx context.Context, id string) (*domain.Todo, error)
}

// Option configures a todo service.
type Option func(*todoServiceImpl)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *todoServiceImpl) {
		s.now = now
	}
}

// todoServiceImpl implements the TodoService interface
type todoServiceImpl struct {
	store   store.TodoStore
	emitter events.EventEmitter
	logger  *slog.Logger
	now     func() time.Time
}

// NewTodoService creates a TodoService. All dependencies are required.
func NewTodoService(
	todoStore store.TodoStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (TodoService, error) {
	if todoStore == nil {
		return nil, errors.New("todoStore cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("emitter cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	s := &todoServiceImpl{
		store:   todoStore,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "todo_service")),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// ListTodos implements TodoService.
func (s *todoServiceImpl) ListTodos(ctx context.Context) ([]*domain.Todo, error) {
	todos, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTodoServiceError("list_todos", "failed to list todos", err)
	}
	return todos, nil
}

// GetTodo implements TodoService.
func (s *todoServiceImpl) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	todo, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, NewTodoServiceError("get_todo", "failed to get todo", err)
	}
	return todo, nil
}

// CreateTodo implements TodoService.
func (s *todoServiceImpl) CreateTodo(ctx context.Context, title string) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	todo, err := domain.NewTodo(title, s.now())
	if err != nil {
		log.Debug("rejected todo", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.store.Create(ctx, todo); err != nil {
		return nil, NewTodoServiceError("create_todo", "failed to store todo", err)
	}

	log.Debug("todo created", slog.String("todo_id", todo.ID))
	s.emit(ctx, events.TodoCreated, todo.ID)

	return todo, nil
}

// UpdateTodo implements TodoService.
func (s *todoServiceImpl) UpdateTodo(
	ctx context.Context,
	id string,
	patch domain.Patch,
) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	updated, err := s.store.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, NewTodoServiceError("update_todo", "failed to update todo", err)
	}

	log.Debug("todo updated",
		slog.String("todo_id", updated.ID),
		slog.String("requested_id", id),
		slog.Bool("empty_patch", patch.IsEmpty()))
	s.emit(ctx, events.TodoUpdated, updated.ID)

	return updated, nil
}

// DeleteTodo implements TodoService.
func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id string) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, NewTodoServiceError("delete_todo", "failed to delete todo", err)
	}

	log.Debug("todo deleted", slog.String("todo_id", removed.ID))
	s.emit(ctx, events.TodoDeleted, removed.ID)

	return removed, nil
}

// emit publishes a change event. The mutation has already been applied, so a
// handler failure is logged and not returned.
func (s *todoServiceImpl) emit(ctx context.Context, eventType events.TodoEventType, todoID string) {
	event := events.NewTodoEvent(eventType, todoID, domain.Timestamp(s.now()))
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit todo event",
			slog.String("error", err.Error()),
			slog.String("event_type", string(eventType)),
			slog.String("todo_id", todoID))
	}
}
