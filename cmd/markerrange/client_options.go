package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helixml/markerrange"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/internal/config"
	"github.com/helixml/markerrange/internal/log"
)

// errNoScene is returned when neither --scene nor SCENE_FILE is set.
var errNoScene = errors.New("no scene document: pass --scene or set SCENE_FILE")

// clientOptions returns the markerrange.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig) ([]markerrange.Option, error) {
	if cfg.SceneFile() == "" {
		return nil, errNoScene
	}

	r := cfg.Render()
	mode, err := render.ParseMode(r.Mode())
	if err != nil {
		return nil, fmt.Errorf("render mode: %w", err)
	}

	opts := []markerrange.Option{
		markerrange.WithSceneFile(cfg.SceneFile()),
		markerrange.WithRenderCommand(r.Command(), r.ExtraArgs()...),
		markerrange.WithDefaultMode(mode),
		markerrange.WithEndMarker(r.EndMarker()),
		markerrange.WithDryRun(r.DryRun()),
	}

	if cfg.History().Enabled() {
		if isSQLite(cfg.DBURL()) {
			if err := cfg.EnsureDataDir(); err != nil {
				return nil, err
			}
		}
		opts = append(opts, markerrange.WithDatabaseURL(cfg.DBURL()))
	}

	return opts, nil
}

// openClient configures logging and creates a client from cfg.
func openClient(cfg config.AppConfig) (*markerrange.Client, *slog.Logger, error) {
	logger := log.Configure(cfg).Slog()

	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, logger, err
	}
	opts = append(opts, markerrange.WithLogger(logger))

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelDebug, "configuration", attrs...)

	client, err := markerrange.New(opts...)
	if err != nil {
		return nil, logger, fmt.Errorf("create client: %w", err)
	}
	return client, logger, nil
}

func closeClient(client *markerrange.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close client", slog.Any("error", err))
	}
}

// isSQLite checks if the database URL is for SQLite.
func isSQLite(url string) bool {
	return strings.HasPrefix(url, "sqlite:")
}
