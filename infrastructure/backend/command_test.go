package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/helixml/markerrange/domain/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	file     string
	scene    string
	settings render.Settings
}

func (f fakeSource) File() string             { return f.file }
func (f fakeSource) SceneName() string        { return f.scene }
func (f fakeSource) Current() render.Settings { return f.settings }

func testSource() fakeSource {
	return fakeSource{
		file:     "/scenes/shot.blend",
		scene:    "Main",
		settings: render.NewSettings("/out/1-A/shot_1-A_", 1, 9, render.PerspectiveCamera, render.ShadingSolid, false, render.ShadingSolid),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommand_FullArgs(t *testing.T) {
	c := NewCommand("blender", []string{"--factory-startup"}, testSource(), testLogger())

	assert.Equal(t, Args{
		"-b", "/scenes/shot.blend",
		"-S", "Main",
		"--factory-startup",
		"-s", "1", "-e", "9",
		"-o", "/out/1-A/shot_1-A_",
		"-a",
	}, c.FullArgs())
}

func TestCommand_FullArgs_DefaultScene(t *testing.T) {
	src := testSource()
	src.scene = ""
	c := NewCommand("blender", nil, src, testLogger())

	args := c.FullArgs()

	assert.NotContains(t, args, "-S")
	assert.Equal(t, "-b /scenes/shot.blend -s 1 -e 9 -o /out/1-A/shot_1-A_ -a", args.String())
}

func TestCommand_OffscreenArgs(t *testing.T) {
	c := NewCommand("blender", nil, testSource(), testLogger())

	args := c.OffscreenArgs()

	require.Len(t, args, 6)
	assert.Equal(t, Args{"-b", "/scenes/shot.blend", "-S", "Main", "--python-expr"}, args[:5])
	script := args[5]
	assert.Contains(t, script, "scene.frame_start = 1\n")
	assert.Contains(t, script, "scene.frame_end = 9\n")
	assert.Contains(t, script, `scene.render.filepath = "/out/1-A/shot_1-A_"`)
	assert.Contains(t, script, `scene.display.shading.type = "SOLID"`)
	assert.Contains(t, script, `            space.shading.type = "SOLID"`)
	assert.Contains(t, script, "            space.overlay.show_overlays = False\n")
	assert.Contains(t, script, "bpy.ops.render.opengl(animation=True")
}

func TestOffscreenScript_QuotesPath(t *testing.T) {
	s := render.NewSettings(`/out/it's "here"/shot_`, 1, 2, "", "", false, "")

	script := offscreenScript(s)

	assert.Contains(t, script, `scene.render.filepath = "/out/it's \"here\"/shot_"`)
	assert.NotContains(t, script, "shading.type")
	assert.Contains(t, script, "space.overlay.show_overlays = False\n")
}

func TestOffscreenScript_OverlaysVisible(t *testing.T) {
	s := render.NewSettings("/out/shot_", 1, 2, render.PerspectiveCamera, render.ShadingMaterial, true, render.ShadingSolid)

	script := offscreenScript(s)

	assert.Contains(t, script, "space.overlay.show_overlays = True\n")
	assert.Contains(t, script, `space.shading.type = "MATERIAL"`)
	assert.Contains(t, script, `scene.display.shading.type = "SOLID"`)
}

func TestCommand_Unconfigured(t *testing.T) {
	c := NewCommand("", nil, testSource(), testLogger())

	err := c.RenderAnimationFull(context.Background())

	assert.ErrorIs(t, err, ErrUnconfigured)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "renderer")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestCommand_RunSuccess(t *testing.T) {
	out := filepath.Join(t.TempDir(), "args.txt")
	script := writeScript(t, `printf '%s\n' "$@" > "`+out+`"`+"\n")
	c := NewCommand(script, nil, testSource(), testLogger())

	err := c.RenderAnimationFull(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-b\n/scenes/shot.blend\n-S\nMain\n-s\n1\n-e\n9\n-o\n/out/1-A/shot_1-A_\n-a\n", string(data))
}

func TestCommand_RunFailureCapturesStderr(t *testing.T) {
	script := writeScript(t, "echo 'Error: cannot read file' >&2\nexit 3\n")
	c := NewCommand(script, nil, testSource(), testLogger())

	err := c.RenderAnimationOffscreen(context.Background())

	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.True(t, bytes.Contains(exitErr.Stderr, []byte("cannot read file")))
	assert.Contains(t, err.Error(), "cannot read file")
}

func TestCommand_RunMissingExecutable(t *testing.T) {
	c := NewCommand(filepath.Join(t.TempDir(), "no-such-renderer"), nil, testSource(), testLogger())

	err := c.RenderAnimationFull(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "start renderer")
}

func TestCommand_RunCancelled(t *testing.T) {
	script := writeScript(t, "sleep 5\n")
	c := NewCommand(script, nil, testSource(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.RenderAnimationFull(ctx)

	require.Error(t, err)
}

func TestDryRun(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewCommand("blender", nil, testSource(), logger)
	d := NewDryRun(c, logger)

	require.NoError(t, d.RenderAnimationFull(context.Background()))
	require.NoError(t, d.RenderAnimationOffscreen(context.Background()))

	assert.Contains(t, buf.String(), "dry run: skipping render")
	assert.Contains(t, buf.String(), "kind=full")
	assert.Contains(t, buf.String(), "kind=offscreen")
	assert.Contains(t, buf.String(), "output=/out/1-A/shot_1-A_")
}

func TestDryRun_Cancelled(t *testing.T) {
	d := NewDryRun(NewCommand("blender", nil, testSource(), testLogger()), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.RenderAnimationFull(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}
