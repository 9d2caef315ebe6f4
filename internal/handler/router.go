package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joestump/prompt-library/internal/api"
	"github.com/joestump/prompt-library/internal/render"
	"github.com/joestump/prompt-library/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Renderer *render.Service
	// Presets is nil when no database is configured.
	Presets  store.PresetStoreIface
	APIToken string
	Logger   *slog.Logger
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Health)

	// Prometheus metrics; unauthenticated like /healthz.
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Renderer: deps.Renderer,
		Presets:  deps.Presets,
		APIToken: deps.APIToken,
		Logger:   logger,
	}))

	return r
}
