package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/helixml/markerrange/infrastructure/api"
	"github.com/helixml/markerrange/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 30 * time.Second

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and MCP server",
		Long: `Start the HTTP API server. Routes:

  GET  /health
  GET  /api/v1/ranges
  POST /api/v1/ranges/{id}/render   body: {"mode": "..."} (optional)
  POST /api/v1/render               body: {"mode": "..."} (optional)
  GET  /api/v1/runs
  GET  /api/v1/runs/{id}
  *    /mcp                         MCP streamable HTTP transport`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			cfg = applyServeOverrides(cfg, host, port)
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, cfg config.AppConfig) error {
	client, logger, err := openClient(cfg)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	ctx, stop := signalContext(ctx)
	defer stop()

	server := api.NewServer(cfg.Addr(), logger)
	api.NewAPIServer(client, version).MountRoutes(server.Router())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped", slog.String("addr", cfg.Addr()))
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
