package markerrange

import (
	"log/slog"
	"path/filepath"

	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/infrastructure/scene"
	"github.com/helixml/markerrange/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	sceneFile     string
	document      *scene.Document
	renderCommand string
	extraArgs     []string
	backend       render.Backend
	dryRun        bool
	endMarker     string
	defaultMode   render.Mode
	dbURL         string
	logger        *slog.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		renderCommand: config.DefaultRenderCommand,
		defaultMode:   render.Mode(config.DefaultRenderMode),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSceneFile loads the scene document at path.
func WithSceneFile(path string) Option {
	return func(c *clientConfig) {
		c.sceneFile = path
	}
}

// WithDocument uses an already loaded scene document.
func WithDocument(doc *scene.Document) Option {
	return func(c *clientConfig) {
		c.document = doc
	}
}

// WithRenderCommand sets the renderer executable and any extra arguments
// passed after the scene file.
func WithRenderCommand(executable string, extraArgs ...string) Option {
	return func(c *clientConfig) {
		c.renderCommand = executable
		c.extraArgs = extraArgs
	}
}

// WithBackend replaces the command backend.
func WithBackend(b render.Backend) Option {
	return func(c *clientConfig) {
		c.backend = b
	}
}

// WithDryRun logs renderer invocations instead of running them.
func WithDryRun(dryRun bool) Option {
	return func(c *clientConfig) {
		c.dryRun = dryRun
	}
}

// WithEndMarker sets the marker name that closes a range without opening one.
func WithEndMarker(name string) Option {
	return func(c *clientConfig) {
		c.endMarker = name
	}
}

// WithDefaultMode sets the mode used when a request names none.
func WithDefaultMode(mode render.Mode) Option {
	return func(c *clientConfig) {
		c.defaultMode = mode
	}
}

// WithSQLite records render history in a SQLite database at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		c.dbURL = "sqlite:///" + abs
	}
}

// WithPostgres records render history in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL records render history at a sqlite:/// or postgres:// URL.
// An empty URL disables history.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
