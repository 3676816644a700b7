// Package service contains the todo use cases. It validates input, applies
// mutations through a store.TodoStore, stamps timestamps from an injectable
// clock and announces every successful mutation on an events.EventEmitter.
//
// Error handling principles:
//  1. Expected conditions are returned as sentinel errors (ErrTodoNotFound, ErrTodoConflict)
//  2. Domain validation errors are returned unchanged
//  3. Unexpected errors are wrapped in *TodoServiceError
//
// The API layer maps these to HTTP status codes.
package service
