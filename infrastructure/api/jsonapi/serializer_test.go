package jsonapi

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/domain/run"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeResource(t *testing.T) {
	r := RangeResource(marker.NewRange("Intro", 5, 100), "/tmp/out/shot_")

	assert.Equal(t, TypeRange, r.Type)
	assert.Equal(t, "5-Intro", r.ID)
	attrs, ok := r.Attributes.(RangeAttributes)
	require.True(t, ok)
	assert.Equal(t, 96, attrs.Frames)
	assert.Equal(t, "Intro (5 - 100)", attrs.Label)
	assert.Equal(t, "/tmp/out/5-Intro/shot_5-Intro_", attrs.OutputPath)
}

func TestRangeResource_NoBase(t *testing.T) {
	b, err := json.Marshal(RangeResource(marker.NewRange("A", 1, 2), ""))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "output_path")
}

func TestRunResource(t *testing.T) {
	rec := run.NewRun(marker.NewRange("A", 1, 9), render.ModeFullRender, "/out/1-A/shot_1-A_").
		WithID(12).
		Fail(errors.New("exit status 1"))

	r := RunResource(rec)

	assert.Equal(t, TypeRun, r.Type)
	assert.Equal(t, "12", r.ID)
	attrs, ok := r.Attributes.(RunAttributes)
	require.True(t, ok)
	assert.Equal(t, "failed", attrs.Status)
	assert.Equal(t, "exit status 1", attrs.Error)
	assert.Equal(t, "full_render", attrs.Mode)
}

func TestRenderResultResource(t *testing.T) {
	r := RenderResultResource("viewport_solid", []marker.Range{marker.NewRange("A", 1, 9), marker.NewRange("B", 10, 20)})

	attrs, ok := r.Attributes.(RenderResultAttributes)
	require.True(t, ok)
	assert.Equal(t, 2, attrs.Rendered)
	assert.Equal(t, []string{"1-A", "10-B"}, attrs.Ranges)
}

func TestNewListResponse_Empty(t *testing.T) {
	b, err := json.Marshal(NewListResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(b))
}

func TestDateTime(t *testing.T) {
	b, err := json.Marshal(DateTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	ts := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	b, err = json.Marshal(DateTime(ts))
	require.NoError(t, err)
	assert.Equal(t, `"2026-04-01T09:30:00Z"`, string(b))

	var dt DateTime
	require.NoError(t, json.Unmarshal(b, &dt))
	assert.True(t, ts.Equal(dt.Time()))

	require.NoError(t, json.Unmarshal([]byte("null"), &dt))
	assert.True(t, dt.Time().IsZero())
}
