package main

import (
	"log/slog"

	"github.com/helixml/markerrange/internal/mcp"
	"github.com/spf13/cobra"
)

func stdioCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio, exposing the
list_ranges, render_range, render_all and list_runs tools. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			client, logger, err := openClient(cfg)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			logger.Info("starting MCP server on stdio", slog.String("version", version))

			srv := mcp.NewServer(client.Renderer, client.History, client.DefaultMode(), version, logger)
			return srv.ServeStdio()
		},
	}
}
