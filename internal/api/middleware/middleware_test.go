package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTraceAddsTraceIDAndLogger(t *testing.T) {
	base, buf := logger.GetTestLogger(t)

	var traceID, requestID string
	handler := chimw.RequestID(Trace(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		requestID = logger.RequestIDFromContext(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, traceID, 32)
	assert.NotEmpty(t, requestID)
	logger.AssertLogContains(t, buf, "request started")
	logger.AssertLogField(t, buf, "trace_id", traceID)
	logger.AssertLogField(t, buf, "request_id", requestID)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		allowed       string
		origin        string
		expectAllowed string
	}{
		{"wildcard", "*", "http://example.com", "*"},
		{"empty falls back to wildcard", "", "http://example.com", "*"},
		{"exact origin", "http://localhost:3000", "http://localhost:3000", "http://localhost:3000"},
		{"list of origins", "http://a.test, http://b.test", "http://b.test", "http://b.test"},
		{"origin not allowed", "http://localhost:3000", "http://evil.test", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()

			CORS(tc.allowed, nil)(next).ServeHTTP(w, req)

			assert.Equal(t, tc.expectAllowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	tests := []struct {
		name           string
		requestHeaders string
		expectOrigin   string
		expectMethods  string
	}{
		{"no request headers", "", "*", http.MethodPut},
		{"lowercase content type as browsers send it", "content-type", "*", http.MethodPut},
		// Header names in the preflight list are matched in lowercase only.
		{"mixed case content type is refused", "Content-Type", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodOptions, "/todos/abc", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			if tc.requestHeaders != "" {
				req.Header.Set("Access-Control-Request-Headers", tc.requestHeaders)
			}
			w := httptest.NewRecorder()

			CORS("*", nil)(next).ServeHTTP(w, req)

			assert.False(t, called, "preflight must not reach the handler")
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tc.expectOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.expectMethods, w.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}
