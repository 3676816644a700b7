package api_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	router http.Handler
	store  *memory.TodoStore
}

func newRouter(svc service.TodoService, l *slog.Logger) http.Handler {
	h := api.NewTodoHandler(svc, l)
	health := api.NewHealthHandler(func() time.Time { return fixedTime })

	r := chi.NewRouter()
	r.Get("/health", health.Health)
	r.Get("/todos", h.ListTodos)
	r.Post("/todos", h.CreateTodo)
	r.Put("/todos/{id}", h.UpdateTodo)
	r.Delete("/todos/{id}", h.DeleteTodo)
	return r
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	l, _ := logger.GetTestLogger(t)
	st := memory.NewTodoStore(l)
	svc, err := service.NewTodoService(st, events.NewInMemoryEventEmitter(l), l,
		service.WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)

	return &testAPI{router: newRouter(svc, l), store: st}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) create(t *testing.T, title string) map[string]interface{} {
	t.Helper()
	body, err := json.Marshal(map[string]string{"title": title})
	require.NoError(t, err)
	w := a.do(t, http.MethodPost, "/todos", string(body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeObject(t, w)
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","ts":"2025-04-01T12:00:00Z"}`, w.Body.String())
}

func TestListTodosEmpty(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(t, http.MethodGet, "/todos", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateTodo(t *testing.T) {
	a := newTestAPI(t)
	a.create(t, "older")

	created := a.create(t, "  Buy milk  ")

	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Buy milk", created["title"])
	assert.Equal(t, false, created["completed"])
	assert.Equal(t, "2025-04-01T12:00:00Z", created["createdAt"])
	assert.NotContains(t, created, "updatedAt")

	list := decodeList(t, a.do(t, http.MethodGet, "/todos", ""))
	require.Len(t, list, 2)
	assert.Equal(t, created["id"], list[0]["id"])
}

func TestCreateTodoRejectsBadTitles(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing title", `{}`, "title is required"},
		{"null title", `{"title": null}`, "title is required"},
		{"empty title", `{"title": ""}`, "title is required"},
		{"whitespace title", `{"title": "   "}`, "title is required"},
		{"numeric title", `{"title": 42}`, "title is required"},
		{"no body", ``, "title is required"},
		{"malformed json", `{"title": `, "Invalid request format"},
		{"array body", `["a"]`, "Invalid request format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAPI(t)

			w := a.do(t, http.MethodPost, "/todos", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, errorMessage(t, w))
			assert.Equal(t, 0, a.store.Len(), "a rejected create must not modify the list")
		})
	}
}

func TestUpdateTodo(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, "Walk dog")
	id := created["id"].(string)

	w := a.do(t, http.MethodPut, "/todos/"+id, `{"completed": true}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeObject(t, w)
	assert.Equal(t, true, updated["completed"])
	assert.Equal(t, "2025-04-01T12:00:00Z", updated["updatedAt"])
	assert.Equal(t, created["id"], updated["id"])
	assert.Equal(t, created["title"], updated["title"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])
}

func TestUpdateTodoEchoesUnknownFields(t *testing.T) {
	a := newTestAPI(t)
	id := a.create(t, "tagged")["id"].(string)

	w := a.do(t, http.MethodPut, "/todos/"+id, `{"priority": 3, "tags": ["home"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := decodeList(t, a.do(t, http.MethodGet, "/todos", ""))
	require.Len(t, list, 1)
	assert.Equal(t, float64(3), list[0]["priority"])
	assert.Equal(t, []interface{}{"home"}, list[0]["tags"])
}

func TestUpdateTodoEmptyBody(t *testing.T) {
	for _, body := range []string{"", "{}", "null"} {
		t.Run("body "+body, func(t *testing.T) {
			a := newTestAPI(t)
			created := a.create(t, "unchanged")

			w := a.do(t, http.MethodPut, "/todos/"+created["id"].(string), body)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			updated := decodeObject(t, w)
			assert.Equal(t, "unchanged", updated["title"])
			assert.Contains(t, updated, "updatedAt")
		})
	}
}

func TestUpdateTodoBadBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"array body", `[true]`, "body must be a JSON object"},
		{"completed not boolean", `{"completed": "yes"}`, "completed must be a boolean"},
		{"empty id", `{"id": ""}`, "id cannot be empty"},
		{"malformed json", `{"completed": tr`, "Invalid request format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAPI(t)
			id := a.create(t, "target")["id"].(string)

			w := a.do(t, http.MethodPut, "/todos/"+id, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, errorMessage(t, w))
		})
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"valid patch", `{"completed": true}`},
		{"empty body", ""},
		{"completed not boolean", `{"completed":"yes"}`},
		{"array body", `[1]`},
		{"empty id", `{"id":""}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAPI(t)
			a.create(t, "other")

			w := a.do(t, http.MethodPut, "/todos/does-not-exist", tc.body)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "not found", errorMessage(t, w))
			list := decodeList(t, a.do(t, http.MethodGet, "/todos", ""))
			assert.Equal(t, false, list[0]["completed"])
			assert.NotContains(t, list[0], "updatedAt")
		})
	}
}

func TestUpdateTodoIDConflict(t *testing.T) {
	a := newTestAPI(t)
	first := a.create(t, "first")
	second := a.create(t, "second")

	w := a.do(t, http.MethodPut, "/todos/"+first["id"].(string), `{"id": "`+second["id"].(string)+`"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "id already in use", errorMessage(t, w))
	assert.Equal(t, 2, a.store.Len())
}

func TestDeleteTodo(t *testing.T) {
	a := newTestAPI(t)
	created := a.create(t, "temporary")
	path := "/todos/" + created["id"].(string)

	w := a.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created["title"], decodeObject(t, w)["title"])

	w = a.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorMessage(t, w))
}

func TestTodoLifecycle(t *testing.T) {
	a := newTestAPI(t)
	a.create(t, "existing")

	created := a.create(t, "Buy milk")
	id := created["id"].(string)

	list := decodeList(t, a.do(t, http.MethodGet, "/todos", ""))
	require.Len(t, list, 2)
	assert.Equal(t, id, list[0]["id"])

	w := a.do(t, http.MethodPut, "/todos/"+id, `{"completed": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	list = decodeList(t, a.do(t, http.MethodGet, "/todos", ""))
	assert.Equal(t, id, list[0]["id"], "update keeps position")
	assert.Equal(t, true, list[0]["completed"])

	w = a.do(t, http.MethodDelete, "/todos/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	list = decodeList(t, a.do(t, http.MethodGet, "/todos", ""))
	require.Len(t, list, 1)
	assert.NotEqual(t, id, list[0]["id"])
}

func TestUnexpectedErrorsDoNotLeak(t *testing.T) {
	l, _ := logger.GetTestLogger(t)
	cause := errors.New("open /var/lib/todo/state.json: permission denied")
	router := newRouter(&mocks.MockTodoService{DefaultError: &service.TodoServiceError{
		Operation: "list_todos",
		Message:   "failed to list todos",
		Err:       cause,
	}}, l)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An unexpected error occurred", errorMessage(t, w))
	assert.NotContains(t, w.Body.String(), "permission denied")
}

func TestNewTodoHandlerPanicsOnNilDependencies(t *testing.T) {
	l, _ := logger.GetTestLogger(t)
	assert.Panics(t, func() { api.NewTodoHandler(nil, l) })
	assert.Panics(t, func() { api.NewTodoHandler(&mocks.MockTodoService{}, nil) })
}
