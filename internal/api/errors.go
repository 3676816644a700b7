package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

// Client-facing messages.
const (
	msgNotFound      = "not found"
	msgConflict      = "id already in use"
	msgTitleRequired = "title is required"
	msgInvalidFormat = "Invalid request format"
	msgInvalidEntity = "Invalid entity data"
	msgUnexpected    = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		valErrs   validator.ValidationErrors
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Not found errors
	case errors.Is(err, service.ErrTodoNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrTodoConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case domain.IsValidationError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.As(err, &valErrs),
		errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var (
		ve        *domain.ValidationError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		valErrs   validator.ValidationErrors
	)

	switch {
	case errors.Is(err, service.ErrTodoNotFound),
		errors.Is(err, store.ErrNotFound):
		return msgNotFound

	case errors.Is(err, service.ErrTodoConflict),
		errors.Is(err, store.ErrDuplicate):
		return msgConflict

	case errors.Is(err, domain.ErrEmptyTitle):
		return msgTitleRequired

	// Domain validation messages are built from field names and fixed text.
	case errors.As(err, &ve):
		return fmt.Sprintf("%s %s", ve.Field, ve.Message)

	case errors.As(err, &valErrs):
		return SanitizeValidationError(err)

	case errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, shared.ErrEmptyBody):
		return msgInvalidFormat

	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError turns validator errors into a short message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) || len(valErrs) == 0 {
		return "Validation error"
	}

	fe := valErrs[0]
	return fmt.Sprintf("%s %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "has an invalid value"
	default:
		return "is invalid"
	}
}

// HandleAPIError writes the status and safe message for err, logging the
// detail. A non-empty message overrides the safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithError(w, r, status, message, err)
}
