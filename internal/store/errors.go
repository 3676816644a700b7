package store

import (
	"errors"
	"fmt"
)

// Error kinds shared by every store implementation. Callers match them with
// errors.Is, or with IsNotFoundError and IsDuplicateError.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")
)

// Todo errors. Each one wraps an error kind above.
var (
	// ErrTodoNotFound indicates that no todo has the requested id.
	ErrTodoNotFound = fmt.Errorf("%w: todo", ErrNotFound)

	// ErrTodoExists indicates that another live todo already uses the id.
	ErrTodoExists = fmt.Errorf("%w: todo id", ErrDuplicate)

	// ErrTodoWithoutID is returned when a todo without an id is stored.
	ErrTodoWithoutID = fmt.Errorf("%w: todo has no id", ErrInvalidEntity)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// TodoError records which store operation failed and for which todo id.
type TodoError struct {
	Op  string // list, get, create, update or delete
	ID  string
	Err error
}

func (e *TodoError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("todo store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("todo store %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *TodoError) Unwrap() error { return e.Err }

// NewTodoError wraps err with the operation and todo id it concerns.
func NewTodoError(op, id string, err error) *TodoError {
	return &TodoError{Op: op, ID: id, Err: err}
}
