// Package mcp exposes range rendering as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/helixml/markerrange/application/service"
	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/domain/repository"
	"github.com/helixml/markerrange/domain/run"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RangeRenderer lists and renders marker ranges.
type RangeRenderer interface {
	Ranges() []marker.Range
	RenderByID(ctx context.Context, id string, mode render.Mode) (int, error)
	RenderAll(ctx context.Context, mode render.Mode) (int, error)
}

// RunLister lists recorded render runs.
type RunLister interface {
	List(ctx context.Context, options ...repository.Option) ([]run.Run, error)
}

// Server wraps the MCP server with the render tools.
type Server struct {
	mcpServer   *server.MCPServer
	renderer    RangeRenderer
	runs        RunLister
	defaultMode render.Mode
	logger      *slog.Logger
}

// NewServer creates a new MCP server. runs may be nil when history is
// disabled; list_runs then returns an empty list.
func NewServer(renderer RangeRenderer, runs RunLister, defaultMode render.Mode, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		renderer:    renderer,
		runs:        runs,
		defaultMode: defaultMode,
		logger:      logger,
	}

	mcpServer := server.NewMCPServer(
		"markerrange",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	modeDescription := fmt.Sprintf("Render style, one of %v (default: %s)", render.Modes(), s.defaultMode)

	mcpServer.AddTool(mcp.NewTool("list_ranges",
		mcp.WithDescription("List the frame ranges derived from the scene's timeline markers"),
	), s.handleListRanges)

	mcpServer.AddTool(mcp.NewTool("render_range",
		mcp.WithDescription("Render a single marker range and restore the scene settings afterwards"),
		mcp.WithString("range_id",
			mcp.Required(),
			mcp.Description("Range ID as returned by list_ranges, e.g. 1-Intro"),
		),
		mcp.WithString("mode",
			mcp.Description(modeDescription),
		),
	), s.handleRenderRange)

	mcpServer.AddTool(mcp.NewTool("render_all",
		mcp.WithDescription("Render every marker range in order, stopping at the first failure"),
		mcp.WithString("mode",
			mcp.Description(modeDescription),
		),
	), s.handleRenderAll)

	mcpServer.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List recorded render runs, newest first"),
		mcp.WithString("range_id",
			mcp.Description("Only runs for this range"),
		),
		mcp.WithString("status",
			mcp.Description("Only runs with this status: running, succeeded or failed"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to return (default: 20)"),
		),
	), s.handleListRuns)
}

type rangeResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
	Label      string `json:"label"`
}

type renderResult struct {
	Mode     string `json:"mode"`
	Rendered int    `json:"rendered"`
}

type runResult struct {
	ID         int64      `json:"id"`
	RangeID    string     `json:"range_id"`
	Mode       string     `json:"mode"`
	Status     string     `json:"status"`
	OutputPath string     `json:"output_path"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (s *Server) handleListRanges(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ranges := s.renderer.Ranges()
	results := make([]rangeResult, len(ranges))
	for i, r := range ranges {
		results[i] = rangeResult{
			ID:         r.ID(),
			Name:       r.Name(),
			StartFrame: r.StartFrame(),
			EndFrame:   r.EndFrame(),
			Label:      r.Label(),
		}
	}
	return jsonResult(results)
}

func (s *Server) handleRenderRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("range_id")
	if err != nil {
		return mcp.NewToolResultError("range_id is required"), nil
	}
	mode, errResult := s.mode(request)
	if errResult != nil {
		return errResult, nil
	}

	n, err := s.renderer.RenderByID(ctx, id, mode)
	if err != nil {
		s.logger.Error("render range failed", slog.String("range", id), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return jsonResult(renderResult{Mode: mode.String(), Rendered: n})
}

func (s *Server) handleRenderAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, errResult := s.mode(request)
	if errResult != nil {
		return errResult, nil
	}

	n, err := s.renderer.RenderAll(ctx, mode)
	if err != nil {
		s.logger.Error("render all failed", slog.Int("rendered", n), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("render failed after %d range(s): %v", n, err)), nil
	}
	return jsonResult(renderResult{Mode: mode.String(), Rendered: n})
}

func (s *Server) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.runs == nil {
		return jsonResult([]runResult{})
	}

	options := []repository.Option{repository.WithLimit(request.GetInt("limit", 20))}
	if id := request.GetString("range_id", ""); id != "" {
		options = append(options, run.WithRangeID(id))
	}
	if status := request.GetString("status", ""); status != "" {
		options = append(options, run.WithStatus(run.Status(status)))
	}

	runs, err := s.runs.List(ctx, options...)
	if err != nil {
		s.logger.Error("list runs failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list runs failed: %v", err)), nil
	}

	results := make([]runResult, len(runs))
	for i, r := range runs {
		results[i] = runResult{
			ID:         r.ID(),
			RangeID:    r.RangeID(),
			Mode:       r.Mode().String(),
			Status:     string(r.Status()),
			OutputPath: r.OutputPath(),
			Error:      r.Error(),
			StartedAt:  r.StartedAt(),
		}
		if finished := r.FinishedAt(); !finished.IsZero() {
			results[i].FinishedAt = &finished
		}
	}
	return jsonResult(results)
}

// mode reads the optional mode argument, falling back to the server default.
func (s *Server) mode(request mcp.CallToolRequest) (render.Mode, *mcp.CallToolResult) {
	raw := request.GetString("mode", "")
	if raw == "" {
		return s.defaultMode, nil
	}
	mode, err := render.ParseMode(raw)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("%v, expected one of %v", err, render.Modes()))
	}
	return mode, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// HTTPHandler returns a streamable HTTP transport for mounting on a router.
func (s *Server) HTTPHandler() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.mcpServer)
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

var _ RangeRenderer = (*service.Renderer)(nil)
var _ RunLister = (*service.History)(nil)
