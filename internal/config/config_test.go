package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Empty(t, cfg.SceneFile())
	assert.Equal(t, DefaultDataDir(), cfg.DataDir())
	assert.Equal(t, "sqlite:///"+filepath.Join(DefaultDataDir(), "markerrange.db"), cfg.DBURL())
	assert.Equal(t, "INFO", cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())

	assert.Equal(t, "blender", cfg.Render().Command())
	assert.Empty(t, cfg.Render().ExtraArgs())
	assert.Equal(t, "viewport_render", cfg.Render().Mode())
	assert.Empty(t, cfg.Render().EndMarker())
	assert.False(t, cfg.Render().DryRun())

	assert.True(t, cfg.History().Enabled())
	assert.Equal(t, DefaultHistoryLimit, cfg.History().Limit())
}

func TestAppConfig_WithOptions(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("127.0.0.1"),
		WithPort(9090),
		WithSceneFile("/scenes/shot.yaml"),
		WithDBURL("postgres://user:secret@db/markers"),
		WithLogLevel("DEBUG"),
		WithLogFormat(LogFormatJSON),
		WithRenderConfig(NewRenderConfig().WithCommand("/opt/blender/blender").WithMode("full_render").WithEndMarker("END").WithDryRun(true)),
		WithHistoryConfig(NewHistoryConfig().WithEnabled(false)),
	)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, "/scenes/shot.yaml", cfg.SceneFile())
	assert.Equal(t, "postgres://user:secret@db/markers", cfg.DBURL())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, "/opt/blender/blender", cfg.Render().Command())
	assert.Equal(t, "full_render", cfg.Render().Mode())
	assert.Equal(t, "END", cfg.Render().EndMarker())
	assert.True(t, cfg.Render().DryRun())
	assert.False(t, cfg.History().Enabled())
}

func TestAppConfig_ApplyDoesNotMutate(t *testing.T) {
	base := NewAppConfig()

	changed := base.Apply(WithPort(1234))

	assert.Equal(t, DefaultPort, base.Port())
	assert.Equal(t, 1234, changed.Port())
}

func TestAppConfig_DataDirUpdatesDBURL(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithDataDir("/var/lib/markerrange"))
	assert.Equal(t, "sqlite:////var/lib/markerrange/markerrange.db", cfg.DBURL())

	custom := NewAppConfigWithOptions(WithDBURL("postgres://db/x"), WithDataDir("/elsewhere"))
	assert.Equal(t, "postgres://db/x", custom.DBURL())
}

func TestAppConfig_EnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	cfg := NewAppConfigWithOptions(WithDataDir(dir))

	assert.NoError(t, cfg.EnsureDataDir())
	assert.DirExists(t, dir)
}

func TestAppConfig_LogAttrsMasksPostgres(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithDBURL("postgres://user:secret@db/markers"))

	for _, attr := range cfg.LogAttrs() {
		if attr.Key == "db_url" {
			assert.Equal(t, "postgres://***@***", attr.Value.String())
			return
		}
	}
	t.Fatal("db_url attribute missing")
}

func TestRenderConfig_ExtraArgsCopy(t *testing.T) {
	args := []string{"--factory-startup"}
	cfg := NewRenderConfig().WithExtraArgs(args)
	args[0] = "changed"

	got := cfg.ExtraArgs()
	got = append(got, "more")

	assert.Equal(t, []string{"--factory-startup"}, cfg.ExtraArgs())
	assert.Len(t, got, 2)
}

func TestHistoryConfig_WithLimitIgnoresNonPositive(t *testing.T) {
	cfg := NewHistoryConfig().WithLimit(0)
	assert.Equal(t, DefaultHistoryLimit, cfg.Limit())

	cfg = cfg.WithLimit(5)
	assert.Equal(t, 5, cfg.Limit())
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{}, ParseList(""))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,b ,"))
}
