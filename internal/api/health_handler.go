package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string    `json:"status"`
	TS     time.Time `json:"ts"`
}

// HealthHandler reports liveness.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a HealthHandler. A nil clock uses time.Now.
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Health handles GET /health requests. It never fails.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		TS:     domain.Timestamp(h.now()),
	})
}
