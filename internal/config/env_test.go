package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"HOST",
	"PORT",
	"SCENE_FILE",
	"END_MARKER",
	"DATA_DIR",
	"DB_URL",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"RENDER_COMMAND",
	"RENDER_EXTRA_ARGS",
	"RENDER_MODE",
	"RENDER_DRY_RUN",
	"HISTORY_ENABLED",
	"HISTORY_LIMIT",
}

// clearEnvVars unsets every variable the config reads and restores the
// previous values when the test ends.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
		require.NoError(t, os.Unsetenv(v))
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.SceneFile)
	assert.Empty(t, cfg.EndMarker)
	assert.Empty(t, cfg.DataDir)
	assert.Empty(t, cfg.DBURL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "blender", cfg.Render.Command)
	assert.Empty(t, cfg.Render.ExtraArgs)
	assert.Equal(t, "viewport_render", cfg.Render.Mode)
	assert.False(t, cfg.Render.DryRun)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.Limit)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	clearEnvVars(t)

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.ToAppConfig()
	defaults := NewAppConfig()

	assert.Equal(t, DefaultHost, env.Host)
	assert.Equal(t, DefaultPort, env.Port)
	assert.Equal(t, DefaultLogLevel, env.LogLevel)
	assert.Equal(t, DefaultRenderCommand, env.Render.Command)
	assert.Equal(t, DefaultRenderMode, env.Render.Mode)
	assert.Equal(t, DefaultHistoryLimit, env.History.Limit)
	assert.Equal(t, defaults, cfg)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("SCENE_FILE", "/scenes/shot.yaml")
	t.Setenv("END_MARKER", "END")
	t.Setenv("DATA_DIR", "/data")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("RENDER_COMMAND", "/usr/bin/blender")
	t.Setenv("RENDER_EXTRA_ARGS", "--factory-startup, -noaudio")
	t.Setenv("RENDER_MODE", "FULL_RENDER")
	t.Setenv("RENDER_DRY_RUN", "true")
	t.Setenv("HISTORY_ENABLED", "false")
	t.Setenv("HISTORY_LIMIT", "7")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.ToAppConfig()

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "/scenes/shot.yaml", cfg.SceneFile())
	assert.Equal(t, "/data", cfg.DataDir())
	assert.Equal(t, "sqlite:///"+filepath.Join("/data", "markerrange.db"), cfg.DBURL())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, "/usr/bin/blender", cfg.Render().Command())
	assert.Equal(t, []string{"--factory-startup", "-noaudio"}, cfg.Render().ExtraArgs())
	assert.Equal(t, "full_render", cfg.Render().Mode())
	assert.Equal(t, "END", cfg.Render().EndMarker())
	assert.True(t, cfg.Render().DryRun())
	assert.False(t, cfg.History().Enabled())
	assert.Equal(t, 7, cfg.History().Limit())
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "not-a-port")

	_, err := LoadFromEnv()

	assert.Error(t, err)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "SCENE_FILE=/from/dotenv.yaml\nRENDER_MODE=viewport_solid\nPORT=7000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PORT", "7100")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/dotenv.yaml", cfg.SceneFile())
	assert.Equal(t, "viewport_solid", cfg.Render().Mode())
	assert.Equal(t, 7100, cfg.Port(), "environment wins over .env")
}

func TestLoadConfig_MissingDotEnv(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port())
}
