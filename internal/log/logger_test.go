package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/helixml/markerrange/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewAppConfigWithOptions(config.WithLogFormat(config.LogFormatJSON), config.WithLogLevel("DEBUG"))

	l := NewLogger(cfg, &buf)
	l.Slog().Debug("rendering range", "range", "1-A")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rendering range", entry["msg"])
	assert.Equal(t, "1-A", entry["range"])
	assert.Equal(t, "DEBUG", entry["level"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, config.LogFormatPretty, "WARN", false)

	l.Slog().Info("hidden")
	assert.Empty(t, buf.String())

	l.Slog().Warn("shown")
	assert.Contains(t, buf.String(), "WRN shown")
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, config.LogFormatJSON, "INFO", false)

	ctx := WithRangeID(WithRequestID(context.Background(), "req-1"), "10-B")
	l.InfoContext(ctx, "render finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "10-B", entry["range_id"])
}

func TestLogger_WithContextEmpty(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, config.LogFormatPretty, "INFO", false)

	assert.Same(t, l, l.WithContext(context.Background()))
	assert.Empty(t, RequestID(context.Background()))
	assert.Empty(t, RangeID(context.Background()))
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, config.LogFormatPretty, "INFO", false).With("component", "api")

	l.WarnContext(context.Background(), "slow request")
	l.ErrorContext(context.Background(), "request failed")

	assert.Contains(t, buf.String(), "WRN slow request component=api")
	assert.Contains(t, buf.String(), "ERR request failed component=api")
}
