package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// MockTodoService implements service.TodoService for testing
type MockTodoService struct {
	// Custom behavior functions
	ListTodosFn  func(ctx context.Context) ([]*domain.Todo, error)
	GetTodoFn    func(ctx context.Context, id string) (*domain.Todo, error)
	CreateTodoFn func(ctx context.Context, title string) (*domain.Todo, error)
	UpdateTodoFn func(ctx context.Context, id string, patch domain.Patch) (*domain.Todo, error)
	DeleteTodoFn func(ctx context.Context, id string) (*domain.Todo, error)

	// Default return values
	Todos        []*domain.Todo
	Todo         *domain.Todo
	DefaultError error
}

// ListTodos implements the TodoService.ListTodos method
func (m *MockTodoService) ListTodos(ctx context.Context) ([]*domain.Todo, error) {
	if m.ListTodosFn != nil {
		return m.ListTodosFn(ctx)
	}
	return m.Todos, m.DefaultError
}

// GetTodo implements the TodoService.GetTodo method
func (m *MockTodoService) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	if m.GetTodoFn != nil {
		return m.GetTodoFn(ctx, id)
	}
	return m.Todo, m.DefaultError
}

// CreateTodo implements the TodoService.CreateTodo method
func (m *MockTodoService) CreateTodo(ctx context.Context, title string) (*domain.Todo, error) {
	if m.CreateTodoFn != nil {
		return m.CreateTodoFn(ctx, title)
	}
	return m.Todo, m.DefaultError
}

// UpdateTodo implements the TodoService.UpdateTodo method
func (m *MockTodoService) UpdateTodo(ctx context.Context, id string, patch domain.Patch) (*domain.Todo, error) {
	if m.UpdateTodoFn != nil {
		return m.UpdateTodoFn(ctx, id, patch)
	}
	return m.Todo, m.DefaultError
}

// DeleteTodo implements the TodoService.DeleteTodo method
func (m *MockTodoService) DeleteTodo(ctx context.Context, id string) (*domain.Todo, error) {
	if m.DeleteTodoFn != nil {
		return m.DeleteTodoFn(ctx, id)
	}
	return m.Todo, m.DefaultError
}
