package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// maxRequestBytes bounds request bodies, uploads included
const maxRequestBytes = 100 << 20

// Config holds the collaborators served by the router
type Config struct {
	Store    *simplepitch.Store
	Uploader *simplepitch.Uploader
	Sessions *simplepitch.SessionRegistry
	// Resetter clears persisted state; nil only empties the store
	Resetter Resetter
	// Gatherer is exposed at /metrics; nil uses the default registry
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewRouter mounts every handler under /api/v1 along with /health and
// /metrics.
func NewRouter(cfg Config) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = simplepitch.NewSessionRegistry()
	}
	resetter := cfg.Resetter
	if resetter == nil {
		resetter = storeResetter{store: cfg.Store}
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestSizeLimitMiddleware(maxRequestBytes))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	presentations := NewPresentationHandler(cfg.Store, sessions, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/brands", NewBrandHandler(cfg.Store, cfg.Uploader).Routes())
		r.Mount("/doctors", NewDoctorHandler(cfg.Store).Routes())
		r.Mount("/selections", presentations.SelectionRoutes())
		r.Mount("/presentations", presentations.Routes())
		r.Mount("/admin", NewAdminHandler(resetter, sessions).Routes())
	})

	return r
}
