// Package markerrange renders the frame ranges delimited by a scene's
// timeline markers.
//
// Each range runs from one marker to the frame before the next. A range is
// rendered into its own output directory and the scene settings are restored
// afterwards, whatever the outcome.
//
// Basic usage:
//
//	client, err := markerrange.New(
//	    markerrange.WithSceneFile("shot.yaml"),
//	    markerrange.WithSQLite(".markerrange/markerrange.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	for _, r := range client.Renderer.Ranges() {
//	    fmt.Println(r.ID(), r.Label())
//	}
//
//	n, err := client.Renderer.RenderAll(ctx, render.ModeViewportSolid)
package markerrange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/helixml/markerrange/application/service"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/domain/run"
	"github.com/helixml/markerrange/infrastructure/backend"
	"github.com/helixml/markerrange/infrastructure/persistence"
	"github.com/helixml/markerrange/infrastructure/scene"
	"github.com/helixml/markerrange/internal/database"
)

var (
	// ErrNoScene indicates New was called without a scene.
	ErrNoScene = errors.New("markerrange: no scene configured")

	// ErrClientClosed indicates the client has already been closed.
	ErrClientClosed = errors.New("markerrange: client closed")
)

// Client is the main entry point for the markerrange library.
//
// Access services via struct fields:
//
//	client.Renderer.Ranges()
//	client.Renderer.RenderByID(ctx, "1-Intro", render.ModeFullRender)
//	client.History.List(ctx, run.WithRangeID("1-Intro"))
type Client struct {
	Renderer *service.Renderer
	History  *service.History
	Scene    *scene.Document

	db          *database.Database
	logger      *slog.Logger
	defaultMode render.Mode
	closed      atomic.Bool
	mu          sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	if !cfg.defaultMode.IsValid() {
		return nil, fmt.Errorf("default mode %q: %w", cfg.defaultMode, render.ErrUnknownMode)
	}

	doc := cfg.document
	if doc == nil {
		if cfg.sceneFile == "" {
			return nil, ErrNoScene
		}
		loaded, err := scene.Load(cfg.sceneFile)
		if err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
		doc = loaded
	}

	be := cfg.backend
	if be == nil {
		cmd := backend.NewCommand(cfg.renderCommand, cfg.extraArgs, doc, logger)
		be = cmd
		if cfg.dryRun {
			be = backend.NewDryRun(cmd, logger)
		}
	}

	client := &Client{
		Scene:       doc,
		logger:      logger,
		defaultMode: cfg.defaultMode,
	}

	rendererOpts := []service.RendererOption{service.WithEndMarker(cfg.endMarker)}
	var store run.Store
	if cfg.dbURL != "" {
		db, err := database.NewDatabase(context.Background(), cfg.dbURL, logger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := persistence.AutoMigrate(db); err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
		}
		client.db = &db
		store = persistence.NewRunStore(db)
		rendererOpts = append(rendererOpts, service.WithRunStore(store))
	}

	client.Renderer = service.NewRenderer(doc, be, logger, rendererOpts...)
	client.History = service.NewHistory(store)

	logger.Info("markerrange client ready",
		slog.String("scene", doc.File()),
		slog.Int("markers", len(doc.Markers())),
		slog.String("mode", cfg.defaultMode.String()),
		slog.Bool("history", store != nil),
		slog.Bool("dry_run", cfg.dryRun),
	)
	return client, nil
}

// Close releases the history database.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	c.logger.Debug("markerrange client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// DefaultMode returns the render mode used when a request names none.
func (c *Client) DefaultMode() render.Mode {
	return c.defaultMode
}
