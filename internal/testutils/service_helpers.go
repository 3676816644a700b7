package testutils

import (
	"log/slog"
	"testing"

	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/require"
)

// NewTestTodoService creates a todo service over an empty in-memory store.
// Events are delivered synchronously to an emitter with no handlers.
func NewTestTodoService(
	t *testing.T,
	logger *slog.Logger,
	opts ...service.Option,
) (service.TodoService, *memory.TodoStore) {
	t.Helper()

	todoStore := memory.NewTodoStore(logger)
	svc, err := service.NewTodoService(todoStore, events.NewInMemoryEventEmitter(logger), logger, opts...)
	require.NoError(t, err, "Failed to create todo service")

	return svc, todoStore
}
