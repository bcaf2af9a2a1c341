// Package main is the entry point for the markerrange CLI.
package main

import (
	"fmt"
	"os"

	"github.com/helixml/markerrange/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand that opens a scene.
type globalFlags struct {
	envFile   string
	scene     string
	mode      string
	endMarker string
	dryRun    bool
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "markerrange",
		Short: "Render the frame ranges between timeline markers",
		Long: `markerrange splits a scene's timeline into ranges at its markers and renders
each range into its own output directory, restoring the scene settings after
every range.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  SCENE_FILE          Scene document (YAML)
  END_MARKER          Marker name that closes a range without opening one
  RENDER_COMMAND      Renderer executable (default: blender)
  RENDER_EXTRA_ARGS   Comma-separated extra renderer arguments
  RENDER_MODE         viewport_render, viewport_solid or full_render (default: viewport_render)
  RENDER_DRY_RUN      Log renderer invocations instead of running them
  DATA_DIR            Data directory (default: ~/.markerrange)
  DB_URL              History database URL (default: sqlite:///{data_dir}/markerrange.db)
  HISTORY_ENABLED     Record render runs (default: true)
  HISTORY_LIMIT       Runs shown by the history command (default: 50)
  HOST, PORT          HTTP server address (default: 0.0.0.0:8080)
  LOG_LEVEL           DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT          pretty, json (default: pretty)`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	pf.StringVar(&flags.scene, "scene", "", "Scene document to load (overrides SCENE_FILE)")
	pf.StringVar(&flags.mode, "mode", "", "Render mode (overrides RENDER_MODE)")
	pf.StringVar(&flags.endMarker, "end-marker", "", "End marker name (overrides END_MARKER)")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "Log renderer invocations instead of running them")

	cmd.AddCommand(rangesCmd(flags))
	cmd.AddCommand(renderCmd(flags))
	cmd.AddCommand(renderAllCmd(flags))
	cmd.AddCommand(historyCmd(flags))
	cmd.AddCommand(serveCmd(flags))
	cmd.AddCommand(stdioCmd(flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file and environment, then
// applies command line overrides.
func loadConfig(flags *globalFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(flags.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return applyOverrides(cfg, flags), nil
}

// applyOverrides applies command line flag overrides to the config.
func applyOverrides(cfg config.AppConfig, flags *globalFlags) config.AppConfig {
	var opts []config.AppConfigOption

	if flags.scene != "" {
		opts = append(opts, config.WithSceneFile(flags.scene))
	}

	r := cfg.Render()
	if flags.mode != "" {
		r = r.WithMode(flags.mode)
	}
	if flags.endMarker != "" {
		r = r.WithEndMarker(flags.endMarker)
	}
	if flags.dryRun {
		r = r.WithDryRun(true)
	}
	opts = append(opts, config.WithRenderConfig(r))

	return cfg.Apply(opts...)
}
