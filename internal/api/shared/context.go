package shared

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// WithTraceID returns a copy of ctx carrying a fresh trace id.
func WithTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey{}, newTraceID())
}

// GetTraceID returns the trace id stored in ctx, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// newTraceID returns a random UUID as 32 hex characters, the form trace ids
// take in logs and error bodies. If the random source fails a time-based
// UUID is used; if that fails too the request goes untraced.
func newTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		if id, err = uuid.NewUUID(); err != nil {
			return ""
		}
	}
	return hex.EncodeToString(id[:])
}
