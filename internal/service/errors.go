package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrTodoNotFound indicates no todo has the requested id.
	// API layer should map this to HTTP 404 Not Found.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrTodoConflict indicates an update tried to take an id another todo holds.
	// API layer should map this to HTTP 409 Conflict.
	ErrTodoConflict = errors.New("todo id already in use")
)

// TodoServiceError wraps unexpected errors from the todo service with context.
type TodoServiceError struct {
	// Operation is the operation that failed (e.g., "create_todo").
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TodoServiceError.
func (e *TodoServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("todo service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("todo service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TodoServiceError) Unwrap() error {
	return e.Err
}

// NewTodoServiceError translates err for callers of the service.
// Store sentinels become service sentinels, validation errors pass through
// untouched, and everything else is wrapped.
func NewTodoServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTodoNotFound), store.IsNotFoundError(err):
		return ErrTodoNotFound
	case errors.Is(err, ErrTodoConflict), store.IsDuplicateError(err):
		return ErrTodoConflict
	case domain.IsValidationError(err):
		return err
	}

	return &TodoServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
