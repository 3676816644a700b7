package testutils

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTodoRouter mounts the health and todo routes for svc on a bare chi
// router, without the production middleware stack.
func NewTodoRouter(svc service.TodoService, log *slog.Logger) http.Handler {
	h := api.NewTodoHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/health", api.NewHealthHandler(nil).Health)
	r.Route("/todos", func(r chi.Router) {
		r.Get("/", h.ListTodos)
		r.Post("/", h.CreateTodo)
		r.Put("/{id}", h.UpdateTodo)
		r.Delete("/{id}", h.DeleteTodo)
	})
	return r
}

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup() so callers don't need to manually close the server.
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// NewTodoServer starts a test server backed by a fresh in-memory todo list.
func NewTodoServer(t *testing.T) *httptest.Server {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	svc, _ := NewTestTodoService(t, log)
	return CreateTestServer(t, NewTodoRouter(svc, log))
}

// CleanupResponseBody registers a cleanup function to close the response body.
func CleanupResponseBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp != nil && resp.Body != nil {
		t.Cleanup(func() {
			if err := resp.Body.Close(); err != nil {
				t.Logf("Warning: failed to close response body: %v", err)
			}
		})
	}
}

// DoJSONRequest sends body to server.URL+path with a JSON content type.
// An empty body sends no body at all.
func DoJSONRequest(t *testing.T, server *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err, "Failed to create request")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	CleanupResponseBody(t, resp)

	return resp
}

// DecodeJSONResponse reads the response body into a value of type T.
func DecodeJSONResponse[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	require.NoError(t, json.Unmarshal(body, &out), "Failed to unmarshal response: %s", string(body))
	return out
}

// AssertErrorResponse checks that a response carries the expected status
// code and an error message containing expectedErrorMsgPart.
func AssertErrorResponse(
	t *testing.T,
	resp *http.Response,
	expectedStatus int,
	expectedErrorMsgPart string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode,
		"Expected status code %d but got %d", expectedStatus, resp.StatusCode)

	errResp := DecodeJSONResponse[shared.ErrorResponse](t, resp)
	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Error message should contain '%s' but got '%s'", expectedErrorMsgPart, errResp.Error)
}
