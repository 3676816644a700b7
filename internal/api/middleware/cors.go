package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS allows browser clients from allowedOrigin to call the API.
// allowedOrigin may be "*" or a comma-separated list of origins.
func CORS(allowedOrigin string, log *slog.Logger) func(http.Handler) http.Handler {
	origins := splitOrigins(allowedOrigin)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         600,
	})

	if log != nil {
		log.Debug("cors configured", slog.Any("allowed_origins", origins))
	}

	return c.Handler
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
