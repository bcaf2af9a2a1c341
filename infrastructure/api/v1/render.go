package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/markerrange"
	"github.com/helixml/markerrange/infrastructure/api/jsonapi"
	"github.com/helixml/markerrange/infrastructure/api/middleware"
)

// RenderRouter handles whole-timeline renders.
type RenderRouter struct {
	client *markerrange.Client
	logger *slog.Logger
}

// NewRenderRouter creates a new RenderRouter.
func NewRenderRouter(client *markerrange.Client) *RenderRouter {
	return &RenderRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for render endpoints.
func (r *RenderRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.RenderAll)

	return router
}

// RenderAll handles POST /api/v1/render. Ranges are rendered in order and
// the request fails at the first range that fails; earlier ranges stay
// rendered and their count is reported as meta.rendered on the error.
func (r *RenderRouter) RenderAll(w http.ResponseWriter, req *http.Request) {
	mode, err := decodeMode(req, r.client.DefaultMode())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	ranges := r.client.Renderer.Ranges()
	n, err := r.client.Renderer.RenderAll(req.Context(), mode)
	if err != nil {
		middleware.WriteErrorWithMeta(w, req, err, jsonapi.Meta{"rendered": n}, r.logger)
		return
	}
	if n > len(ranges) {
		n = len(ranges)
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(
		jsonapi.RenderResultResource(mode.String(), ranges[:n]),
	))
}
