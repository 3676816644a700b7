package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// CreateTodoRequest is the request body for POST /todos.
type CreateTodoRequest struct {
	Title *string `json:"title" validate:"required"`
}

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoService service.TodoService
	logger      *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService service.TodoService, logger *slog.Logger) *TodoHandler {
	if todoService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("todoService cannot be nil for TodoHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}

	return &TodoHandler{
		todoService: todoService,
		logger:      logger.With(slog.String("component", "todo_handler")),
	}
}

// ListTodos handles GET /todos requests.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.ListTodos(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todos)
}

// CreateTodo handles POST /todos requests.
// A missing, non-string or blank title is rejected with 400.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == domain.FieldTitle {
			HandleAPIError(w, r, err, msgTitleRequired)
			return
		}
		log.Debug("invalid create request body", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todo, err := h.todoService.CreateTodo(r.Context(), *req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, todo)
}

// UpdateTodo handles PUT /todos/{id} requests.
// The body is merged onto the todo; an empty body is an empty patch.
// An unknown id is reported before any problem with the patch fields.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := chi.URLParam(r, "id")

	var body json.RawMessage
	if err := shared.DecodeJSON(r, &body); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		log.Debug("malformed update request body",
			slog.String("todo_id", id),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	if _, err := h.todoService.GetTodo(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var patch domain.Patch
	if len(body) > 0 {
		if err := json.Unmarshal(body, &patch); err != nil {
			log.Debug("invalid update patch",
				slog.String("todo_id", id),
				slog.String("error", err.Error()))
			HandleAPIError(w, r, err, "")
			return
		}
	}

	todo, err := h.todoService.UpdateTodo(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/{id} requests and returns the removed todo.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	todo, err := h.todoService.DeleteTodo(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todo)
}
