package store

import (
	"context"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TodoStore defines the interface for todo persistence.
// Implementations keep todos ordered newest-created first and hand out
// copies, never references to stored records.
type TodoStore interface {
	// List returns every todo in collection order. An empty store yields an
	// empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Todo, error)

	// GetByID retrieves a todo by id.
	// Returns ErrTodoNotFound if the todo does not exist.
	GetByID(ctx context.Context, id string) (*domain.Todo, error)

	// Create inserts todo at the front of the collection.
	// Returns ErrTodoExists if the id is already in use.
	Create(ctx context.Context, todo *domain.Todo) error

	// Update merges patch onto the todo with the given id, stamps it with now
	// and returns the merged record. The todo keeps its position.
	// Returns ErrTodoNotFound if the todo does not exist, or ErrTodoExists if
	// the patch renames it to an id held by another todo.
	Update(ctx context.Context, id string, patch domain.Patch, now time.Time) (*domain.Todo, error)

	// Delete removes the todo and returns it.
	// Returns ErrTodoNotFound if the todo does not exist.
	Delete(ctx context.Context, id string) (*domain.Todo, error)
}
