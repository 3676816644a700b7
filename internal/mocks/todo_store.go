package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
)

// MockTodoStore implements store.TodoStore for testing
type MockTodoStore struct {
	ListFn    func(ctx context.Context) ([]*domain.Todo, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Todo, error)
	CreateFn  func(ctx context.Context, todo *domain.Todo) error
	UpdateFn  func(ctx context.Context, id string, patch domain.Patch, now time.Time) (*domain.Todo, error)
	DeleteFn  func(ctx context.Context, id string) (*domain.Todo, error)

	// Default return values
	Todos        []*domain.Todo
	Todo         *domain.Todo
	DefaultError error
}

// List implements the TodoStore.List method
func (m *MockTodoStore) List(ctx context.Context) ([]*domain.Todo, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Todos, m.DefaultError
}

// GetByID implements the TodoStore.GetByID method
func (m *MockTodoStore) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Todo, m.DefaultError
}

// Create implements the TodoStore.Create method
func (m *MockTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, todo)
	}
	return m.DefaultError
}

// Update implements the TodoStore.Update method
func (m *MockTodoStore) Update(
	ctx context.Context,
	id string,
	patch domain.Patch,
	now time.Time,
) (*domain.Todo, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch, now)
	}
	return m.Todo, m.DefaultError
}

// Delete implements the TodoStore.Delete method
func (m *MockTodoStore) Delete(ctx context.Context, id string) (*domain.Todo, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Todo, m.DefaultError
}
