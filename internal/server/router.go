// Package server assembles the HTTP surface: chi router, middleware stack
// and the handlers over the conversion pipeline.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/blinkpdf/blinkpdf/internal/config"
	"github.com/blinkpdf/blinkpdf/internal/engine"
	"github.com/blinkpdf/blinkpdf/internal/server/handlers"
	"github.com/blinkpdf/blinkpdf/internal/tool"
	"github.com/blinkpdf/blinkpdf/internal/workspace"
)

// Deps are the pipeline pieces the router serves.
type Deps struct {
	Logger     zerolog.Logger
	Registry   *tool.Registry
	Normalizer *engine.Normalizer
	Dispatcher *engine.Dispatcher
	Workspaces *workspace.Manager
}

// NewRouter creates the service router with all routes configured.
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"blinkpdf"}`))
	})

	process := handlers.NewProcessHandler(
		deps.Logger,
		deps.Normalizer,
		deps.Dispatcher,
		deps.Workspaces,
		cfg.Limits.MaxUploadBytes,
		cfg.Limits.MaxFiles,
	)
	tools := handlers.NewToolsHandler(deps.Logger, deps.Registry)

	r.Post("/process", process.Process)
	r.Post("/process/{tool}", process.ProcessTool)
	r.Get("/tool/{tool}", tools.Get)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tools", tools.List)
	})

	return r
}
