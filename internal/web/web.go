// Package web serves the browser client: the page, its static assets, and
// /env.js, which hands the page its backend address at runtime.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

//go:embed static
var assets embed.FS

// Handler serves the embedded client.
type Handler struct {
	static fs.FS
	envJS  []byte
	logger *slog.Logger
}

// clientEnv is published to the page as window.env.
type clientEnv struct {
	BackendURL string `json:"BACKEND_URL"`
}

// NewHandler creates a Handler that points the page at cfg.BackendURL.
// A trailing slash on the URL is dropped.
func NewHandler(cfg config.ClientConfig, log *slog.Logger) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded assets: %w", err)
	}

	env, err := json.Marshal(clientEnv{BackendURL: strings.TrimRight(cfg.BackendURL, "/")})
	if err != nil {
		return nil, fmt.Errorf("failed to encode client env: %w", err)
	}

	return &Handler{
		static: static,
		envJS:  []byte("window.env = " + string(env) + ";\n"),
		logger: log.With(slog.String("component", "web_handler")),
	}, nil
}

// Routes mounts the client on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/env.js", h.EnvJS)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(h.static))))
}

// Index serves the client page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(h.static, "index.html")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to read index page",
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page)
}

// EnvJS serves the runtime configuration script.
func (h *Handler) EnvJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(h.envJS)
}
