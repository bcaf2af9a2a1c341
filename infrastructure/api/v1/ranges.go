// Package v1 provides the version 1 HTTP API handlers.
package v1

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/markerrange"
	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/infrastructure/api/jsonapi"
	"github.com/helixml/markerrange/infrastructure/api/middleware"
)

// RenderRequest is the body of a render request. An empty body or mode
// renders with the client's default mode.
type RenderRequest struct {
	Mode string `json:"mode"`
}

// RangesRouter handles range listing and single range renders.
type RangesRouter struct {
	client *markerrange.Client
	logger *slog.Logger
}

// NewRangesRouter creates a new RangesRouter.
func NewRangesRouter(client *markerrange.Client) *RangesRouter {
	return &RangesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for range endpoints.
func (r *RangesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/{id}/render", r.Render)

	return router
}

// List handles GET /api/v1/ranges.
func (r *RangesRouter) List(w http.ResponseWriter, req *http.Request) {
	ranges := r.client.Renderer.Ranges()

	doc := jsonapi.NewListResponse(jsonapi.RangeResources(ranges, r.client.Scene.OutputPath()))
	doc.Meta = &jsonapi.Meta{
		"total_count": len(ranges),
		"end_marker":  r.client.Renderer.EndMarker(),
		"scene_end":   r.client.Scene.FrameEnd(),
	}
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Render handles POST /api/v1/ranges/{id}/render.
func (r *RangesRouter) Render(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	mode, err := decodeMode(req, r.client.DefaultMode())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if _, err := r.client.Renderer.RenderByID(req.Context(), id, mode); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	rng, _ := marker.Find(r.client.Renderer.Ranges(), id)
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(
		jsonapi.RenderResultResource(mode.String(), []marker.Range{rng}),
	))
}

// decodeMode reads the optional render request body.
func decodeMode(req *http.Request, fallback render.Mode) (render.Mode, error) {
	var body RenderRequest
	if req.Body != nil {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return "", middleware.BadRequest("invalid request body", err)
		}
	}
	if body.Mode == "" {
		return fallback, nil
	}
	return render.ParseMode(body.Mode)
}
