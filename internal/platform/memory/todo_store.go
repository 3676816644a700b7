package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// TodoStore implements store.TodoStore in process memory.
// Records are indexed by id and ordered by a separate slice of ids,
// newest first. Every method copies records in and out.
type TodoStore struct {
	mu     sync.RWMutex
	todos  map[string]*domain.Todo
	order  []string
	logger *slog.Logger
}

var _ store.TodoStore = (*TodoStore)(nil)

// NewTodoStore creates an empty store.
func NewTodoStore(logger *slog.Logger) *TodoStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoStore{
		todos:  make(map[string]*domain.Todo),
		order:  make([]string, 0),
		logger: logger.With(slog.String("component", "memory_todo_store")),
	}
}

// List implements store.TodoStore.
func (s *TodoStore) List(ctx context.Context) ([]*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Todo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.todos[id].Clone())
	}
	return out, nil
}

// GetByID implements store.TodoStore.
func (s *TodoStore) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, ok := s.todos[id]
	if !ok {
		return nil, store.NewTodoError("get", id, store.ErrTodoNotFound)
	}
	return todo.Clone(), nil
}

// Create implements store.TodoStore.
func (s *TodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if todo == nil || todo.ID == "" {
		return store.NewTodoError("create", "", store.ErrTodoWithoutID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.ID]; exists {
		return store.NewTodoError("create", todo.ID, store.ErrTodoExists)
	}

	s.todos[todo.ID] = todo.Clone()
	s.order = slices.Insert(s.order, 0, todo.ID)

	s.logger.Debug("todo stored", slog.String("todo_id", todo.ID), slog.Int("count", len(s.order)))
	return nil
}

// Update implements store.TodoStore.
func (s *TodoStore) Update(
	ctx context.Context,
	id string,
	patch domain.Patch,
	now time.Time,
) (*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.todos[id]
	if !ok {
		return nil, store.NewTodoError("update", id, store.ErrTodoNotFound)
	}

	renamed := patch.ID != nil && *patch.ID != id
	if renamed {
		if _, taken := s.todos[*patch.ID]; taken {
			return nil, store.NewTodoError("update", id, store.ErrTodoExists)
		}
	}

	merged := current.Clone()
	merged.Apply(patch, now)

	if renamed {
		delete(s.todos, id)
		if idx := slices.Index(s.order, id); idx >= 0 {
			s.order[idx] = merged.ID
		}
		s.logger.Debug("todo renamed", slog.String("old_id", id), slog.String("todo_id", merged.ID))
	}
	s.todos[merged.ID] = merged

	return merged.Clone(), nil
}

// Delete implements store.TodoStore.
func (s *TodoStore) Delete(ctx context.Context, id string) (*domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return nil, store.NewTodoError("delete", id, store.ErrTodoNotFound)
	}

	delete(s.todos, id)
	if idx := slices.Index(s.order, id); idx >= 0 {
		s.order = slices.Delete(s.order, idx, idx+1)
	}

	s.logger.Debug("todo removed", slog.String("todo_id", id), slog.Int("count", len(s.order)))
	return todo, nil
}

// Len returns the number of stored todos.
func (s *TodoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
