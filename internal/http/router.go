// Package http assembles the chi router for the API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dealbrief-ai/internal/handlers"
	"dealbrief-ai/internal/storage"
	"dealbrief-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Index       handlers.DocumentIndex
	Source      handlers.DocumentSource
	Registry    storage.DocumentStore
	Enhancer    handlers.Enhancer
	VectorStore vectorstore.Store
	APIKey      string
	SyncTimeout time.Duration
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	syncHandler := handlers.NewSyncHandler(deps.Source, deps.Index, deps.APIKey, deps.SyncTimeout)
	searchHandler := handlers.NewSearchHandler(deps.Index, deps.APIKey)
	statusHandler := handlers.NewStatusHandler(deps.Index)
	documentsHandler := handlers.NewDocumentsHandler(deps.Registry)
	enhanceHandler := handlers.NewEnhanceHandler(deps.Enhancer, deps.APIKey)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodPost, "/enhance", enhanceHandler)
		r.Route("/documents", func(r chi.Router) {
			r.Method(http.MethodGet, "/", documentsHandler)
			r.Method(http.MethodPost, "/sync", syncHandler)
			r.Method(http.MethodPost, "/search", searchHandler)
			r.Method(http.MethodGet, "/status", statusHandler)
		})
	})

	return r
}
