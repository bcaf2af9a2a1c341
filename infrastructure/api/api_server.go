package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/markerrange"
	"github.com/helixml/markerrange/infrastructure/api/middleware"
	v1 "github.com/helixml/markerrange/infrastructure/api/v1"
	mcpinternal "github.com/helixml/markerrange/internal/mcp"
)

// APIServer provides an HTTP API backed by a markerrange Client.
type APIServer struct {
	client  *markerrange.Client
	version string
	router  chi.Router
	logger  *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given Client.
func NewAPIServer(client *markerrange.Client, version string) *APIServer {
	return &APIServer{
		client:  client,
		version: version,
		logger:  client.Logger(),
	}
}

// MountRoutes wires the health check, v1 API and MCP endpoint onto router.
func (a *APIServer) MountRoutes(router chi.Router) {
	c := a.client

	router.Get("/health", a.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Mount("/ranges", v1.NewRangesRouter(c).Routes())
		r.Mount("/render", v1.NewRenderRouter(c).Routes())
		r.Mount("/runs", v1.NewRunsRouter(c).Routes())
	})

	mcpSrv := mcpinternal.NewServer(c.Renderer, c.History, c.DefaultMode(), a.version, a.logger)
	router.Mount("/mcp", mcpSrv.HTTPHandler())
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"version": a.version,
		"scene":   a.client.Scene.File(),
	})
}

// Handler returns the fully mounted router for use with custom servers and
// tests.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		server := NewServer("", a.logger)
		a.MountRoutes(server.Router())
		a.router = server.Router()
	}
	return a.router
}
