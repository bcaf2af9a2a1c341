package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render <range-id>",
		Short: "Render a single range",
		Long: `Render a single range, identified by the ID shown by the ranges command
(e.g. 1-Intro). The scene settings are restored afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			client, logger, err := openClient(cfg)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			mode := client.DefaultMode()
			if _, err := client.Renderer.RenderByID(ctx, args[0], mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s (%s)\n", args[0], mode)
			return nil
		},
	}
}

func renderAllCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render-all",
		Short: "Render every range in order",
		Long: `Render every range in ascending start order. Rendering stops at the first
failure; ranges already rendered are kept.`,
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

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			mode := client.DefaultMode()
			n, err := client.Renderer.RenderAll(ctx, mode)
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d range(s) (%s)\n", n, mode)
			return err
		},
	}
}

// signalContext cancels on SIGINT or SIGTERM. A cancelled render stops the
// renderer process and restores the scene settings.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
