// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Default configuration values.
const (
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8080
	DefaultLogLevel      = "INFO"
	DefaultRenderCommand = "blender"
	DefaultRenderMode    = "viewport_render"
	DefaultDBName        = "markerrange.db"
	DefaultHistoryLimit  = 50
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// RenderConfig configures how ranges are rendered.
type RenderConfig struct {
	command   string
	extraArgs []string
	mode      string
	endMarker string
	dryRun    bool
}

// NewRenderConfig creates a new RenderConfig with defaults.
func NewRenderConfig() RenderConfig {
	return RenderConfig{
		command:   DefaultRenderCommand,
		extraArgs: []string{},
		mode:      DefaultRenderMode,
	}
}

// Command returns the renderer executable.
func (r RenderConfig) Command() string { return r.command }

// ExtraArgs returns a copy of the extra renderer arguments.
func (r RenderConfig) ExtraArgs() []string {
	result := make([]string, len(r.extraArgs))
	copy(result, r.extraArgs)
	return result
}

// Mode returns the default render mode.
func (r RenderConfig) Mode() string { return r.mode }

// EndMarker returns the marker name that closes a range.
func (r RenderConfig) EndMarker() string { return r.endMarker }

// DryRun returns whether renders are only logged.
func (r RenderConfig) DryRun() bool { return r.dryRun }

// WithCommand returns a new config with the specified executable.
func (r RenderConfig) WithCommand(command string) RenderConfig {
	r.command = command
	return r
}

// WithExtraArgs returns a new config with the specified extra arguments.
func (r RenderConfig) WithExtraArgs(args []string) RenderConfig {
	r.extraArgs = make([]string, len(args))
	copy(r.extraArgs, args)
	return r
}

// WithMode returns a new config with the specified default mode.
func (r RenderConfig) WithMode(mode string) RenderConfig {
	r.mode = mode
	return r
}

// WithEndMarker returns a new config with the specified end marker name.
func (r RenderConfig) WithEndMarker(name string) RenderConfig {
	r.endMarker = name
	return r
}

// WithDryRun returns a new config with dry run enabled or disabled.
func (r RenderConfig) WithDryRun(dryRun bool) RenderConfig {
	r.dryRun = dryRun
	return r
}

// HistoryConfig configures render history recording.
type HistoryConfig struct {
	enabled bool
	limit   int
}

// NewHistoryConfig creates a new HistoryConfig with defaults.
func NewHistoryConfig() HistoryConfig {
	return HistoryConfig{
		enabled: true,
		limit:   DefaultHistoryLimit,
	}
}

// Enabled returns whether render runs are recorded.
func (h HistoryConfig) Enabled() bool { return h.enabled }

// Limit returns the default number of runs listed.
func (h HistoryConfig) Limit() int { return h.limit }

// WithEnabled returns a new config with the specified enabled state.
func (h HistoryConfig) WithEnabled(enabled bool) HistoryConfig {
	h.enabled = enabled
	return h
}

// WithLimit returns a new config with the specified list limit.
func (h HistoryConfig) WithLimit(limit int) HistoryConfig {
	if limit > 0 {
		h.limit = limit
	}
	return h
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host      string
	port      int
	sceneFile string
	dataDir   string
	dbURL     string
	logLevel  string
	logFormat LogFormat
	render    RenderConfig
	history   HistoryConfig
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".markerrange"
	}
	return filepath.Join(home, ".markerrange")
}

// DefaultDBURL returns the default database URL for a data directory.
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBName)
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		dataDir:   dataDir,
		dbURL:     DefaultDBURL(dataDir),
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		render:    NewRenderConfig(),
		history:   NewHistoryConfig(),
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the server address (host:port).
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// SceneFile returns the scene document path.
func (c AppConfig) SceneFile() string { return c.sceneFile }

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Render returns the render configuration.
func (c AppConfig) Render() RenderConfig { return c.render }

// History returns the history configuration.
func (c AppConfig) History() HistoryConfig { return c.history }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithSceneFile sets the scene document path.
func WithSceneFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.sceneFile = path }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update default DB URL when data dir changes
		if c.dbURL == "" || strings.HasSuffix(c.dbURL, DefaultDBName) {
			c.dbURL = DefaultDBURL(dir)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithRenderConfig sets the render configuration.
func WithRenderConfig(r RenderConfig) AppConfigOption {
	return func(c *AppConfig) { c.render = r }
}

// WithHistoryConfig sets the history configuration.
func WithHistoryConfig(h HistoryConfig) AppConfigOption {
	return func(c *AppConfig) { c.history = h }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("scene_file", c.sceneFile),
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("render_command", c.render.command),
		slog.String("render_mode", c.render.mode),
		slog.String("end_marker", c.render.endMarker),
		slog.Bool("dry_run", c.render.dryRun),
		slog.Bool("history_enabled", c.history.enabled),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseList parses a comma-separated list, dropping blank entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
