package v1

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/markerrange"
	"github.com/helixml/markerrange/domain/repository"
	"github.com/helixml/markerrange/domain/run"
	"github.com/helixml/markerrange/infrastructure/api/jsonapi"
	"github.com/helixml/markerrange/infrastructure/api/middleware"
)

// DefaultPageSize is the default number of runs per page.
const DefaultPageSize = 20

// MaxPageSize is the maximum allowed page size.
const MaxPageSize = 100

// RunsRouter handles render history endpoints.
type RunsRouter struct {
	client *markerrange.Client
	logger *slog.Logger
}

// NewRunsRouter creates a new RunsRouter.
func NewRunsRouter(client *markerrange.Client) *RunsRouter {
	return &RunsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for run endpoints.
func (r *RunsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{id}", r.Get)

	return router
}

// List handles GET /api/v1/runs. Supports range_id, status, page and
// page_size query parameters.
func (r *RunsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	q := req.URL.Query()

	var filters []repository.Option
	if id := q.Get("range_id"); id != "" {
		filters = append(filters, run.WithRangeID(id))
	}
	if status := q.Get("status"); status != "" {
		s := run.Status(status)
		if s != run.StatusRunning && !s.IsTerminal() {
			middleware.WriteError(w, req, middleware.BadRequest(fmt.Sprintf("unknown status %q", status), nil), r.logger)
			return
		}
		filters = append(filters, run.WithStatus(s))
	}

	page := positiveInt(q.Get("page"), 1)
	pageSize := min(positiveInt(q.Get("page_size"), DefaultPageSize), MaxPageSize)

	total, err := r.client.History.Count(ctx, filters...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	options := append(filters, repository.WithPage(page, pageSize))
	runs, err := r.client.History.List(ctx, options...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	doc := jsonapi.NewListResponse(jsonapi.RunResources(runs))
	doc.Meta = &jsonapi.Meta{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"enabled":     r.client.History.Enabled(),
	}
	doc.Links = pageLinks(req, page, pageSize, total)
	middleware.WriteJSON(w, http.StatusOK, doc)
}

// Get handles GET /api/v1/runs/{id}.
func (r *RunsRouter) Get(w http.ResponseWriter, req *http.Request) {
	raw := chi.URLParam(req, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.WriteError(w, req, middleware.BadRequest(fmt.Sprintf("invalid run id %q", raw), nil), r.logger)
		return
	}

	rec, err := r.client.History.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.RunResource(rec)))
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func pageLinks(req *http.Request, page, pageSize int, total int64) *jsonapi.Links {
	build := func(p int) string {
		q := req.URL.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("page_size", strconv.Itoa(pageSize))
		return req.URL.Path + "?" + q.Encode()
	}

	links := &jsonapi.Links{Self: build(page)}
	if page > 1 {
		links.Prev = build(page - 1)
	}
	if int64(page*pageSize) < total {
		links.Next = build(page + 1)
	}
	return links
}
