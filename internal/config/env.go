package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., RENDER_COMMAND).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// SceneFile is the scene document to render.
	// Env: SCENE_FILE
	SceneFile string `envconfig:"SCENE_FILE"`

	// EndMarker is the marker name that closes a range without opening one.
	// Env: END_MARKER
	EndMarker string `envconfig:"END_MARKER"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.markerrange
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/markerrange.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Render configures the renderer.
	Render RenderEnv `envconfig:"RENDER"`

	// History configures render history.
	History HistoryEnv `envconfig:"HISTORY"`
}

// RenderEnv holds environment configuration for the renderer.
type RenderEnv struct {
	// Command is the renderer executable.
	// Env: RENDER_COMMAND (default: blender)
	Command string `envconfig:"COMMAND" default:"blender"`

	// ExtraArgs is a comma-separated list of arguments added to every invocation.
	// Env: RENDER_EXTRA_ARGS
	ExtraArgs string `envconfig:"EXTRA_ARGS"`

	// Mode is the default render mode.
	// Env: RENDER_MODE (default: viewport_render)
	Mode string `envconfig:"MODE" default:"viewport_render"`

	// DryRun logs renders instead of running the renderer.
	// Env: RENDER_DRY_RUN (default: false)
	DryRun bool `envconfig:"DRY_RUN" default:"false"`
}

// HistoryEnv holds environment configuration for render history.
type HistoryEnv struct {
	// Enabled controls whether render runs are recorded.
	// Env: HISTORY_ENABLED (default: true)
	Enabled bool `envconfig:"ENABLED" default:"true"`

	// Limit is the default number of runs listed.
	// Env: HISTORY_LIMIT (default: 50)
	Limit int `envconfig:"LIMIT" default:"50"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.SceneFile != "" {
		cfg = applyOption(cfg, WithSceneFile(e.SceneFile))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	cfg = applyOption(cfg, WithRenderConfig(e.Render.ToRenderConfig().WithEndMarker(e.EndMarker)))
	cfg = applyOption(cfg, WithHistoryConfig(e.History.ToHistoryConfig()))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToRenderConfig converts RenderEnv to RenderConfig.
func (r RenderEnv) ToRenderConfig() RenderConfig {
	cfg := NewRenderConfig().
		WithExtraArgs(ParseList(r.ExtraArgs)).
		WithDryRun(r.DryRun)
	if r.Command != "" {
		cfg = cfg.WithCommand(r.Command)
	}
	if r.Mode != "" {
		cfg = cfg.WithMode(strings.ToLower(r.Mode))
	}
	return cfg
}

// ToHistoryConfig converts HistoryEnv to HistoryConfig.
func (h HistoryEnv) ToHistoryConfig() HistoryConfig {
	return NewHistoryConfig().
		WithEnabled(h.Enabled).
		WithLimit(h.Limit)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
