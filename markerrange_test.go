package markerrange_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/helixml/markerrange"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/domain/run"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
file: shot.blend
frame_start: 1
frame_end: 120
output: /renders/shot_
markers:
  - {frame: 1, name: Intro}
  - {frame: 50, name: Walk}
  - {frame: 90, name: END}
display:
  shading: MATERIAL
  viewport_shading: MATERIAL
  perspective: PERSP
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))
	return path
}

func TestNew_NoScene(t *testing.T) {
	_, err := markerrange.New()
	assert.ErrorIs(t, err, markerrange.ErrNoScene)
}

func TestNew_InvalidDefaultMode(t *testing.T) {
	_, err := markerrange.New(
		markerrange.WithSceneFile(writeScene(t)),
		markerrange.WithDefaultMode("sketch"),
	)
	assert.ErrorIs(t, err, render.ErrUnknownMode)
}

func TestNew_MissingSceneFile(t *testing.T) {
	_, err := markerrange.New(markerrange.WithSceneFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClient_DryRunRenderAll(t *testing.T) {
	client, err := markerrange.New(
		markerrange.WithSceneFile(writeScene(t)),
		markerrange.WithEndMarker("END"),
		markerrange.WithDryRun(true),
		markerrange.WithSQLite(filepath.Join(t.TempDir(), "history.db")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, render.ModeViewportRender, client.DefaultMode())
	assert.NotNil(t, client.Logger())

	ranges := client.Renderer.Ranges()
	require.Len(t, ranges, 2)
	assert.Equal(t, "1-Intro", ranges[0].ID())
	assert.Equal(t, 49, ranges[0].EndFrame())
	assert.Equal(t, "50-Walk", ranges[1].ID())
	assert.Equal(t, 89, ranges[1].EndFrame())

	n, err := client.Renderer.RenderAll(context.Background(), render.ModeViewportSolid)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// scene settings are back to what the document described
	current := client.Scene.Current()
	assert.Equal(t, "/renders/shot_", current.OutputPath())
	assert.Equal(t, 1, current.FrameStart())
	assert.Equal(t, 120, current.FrameEnd())
	assert.Equal(t, render.ShadingMaterial, current.DisplayShading())
	assert.Equal(t, render.PerspectivePersp, current.Perspective())

	assert.True(t, client.History.Enabled())
	runs, err := client.History.List(context.Background(), run.WithStatus(run.StatusSucceeded))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "/renders/50-Walk/shot_50-Walk_", runs[0].OutputPath())
}

func TestClient_WithoutHistory(t *testing.T) {
	client, err := markerrange.New(
		markerrange.WithSceneFile(writeScene(t)),
		markerrange.WithDryRun(true),
	)
	require.NoError(t, err)

	assert.False(t, client.History.Enabled())

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), markerrange.ErrClientClosed)
}
