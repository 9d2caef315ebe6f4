package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/prompt-library/internal/render"
	"github.com/joestump/prompt-library/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Renderer *render.Service
	// Presets is nil when no database is configured; preset routes then
	// answer 503.
	Presets store.PresetStoreIface
	// APIToken enables bearer authentication when non-empty.
	APIToken string
	Logger   *slog.Logger
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)
	if deps.APIToken != "" {
		r.Use(bearerToken(deps.APIToken))
	}

	registerPromptRoutes(r, deps.Renderer, logger)
	registerPresetRoutes(r, deps.Presets, logger)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
