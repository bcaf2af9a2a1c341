// Package backend provides render backends that drive an external renderer.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/helixml/markerrange/domain/render"
)

// ErrUnconfigured indicates no renderer executable is configured.
var ErrUnconfigured = errors.New("renderer executable not configured")

// Source is the scene state a backend reads when it is invoked.
type Source interface {
	File() string
	SceneName() string
	Current() render.Settings
}

// Command renders by running the renderer executable in background mode.
type Command struct {
	executable string
	extraArgs  []string
	source     Source
	logger     *slog.Logger
}

var _ render.Backend = (*Command)(nil)

// NewCommand creates a Command that runs executable against source.
// extraArgs are inserted after the scene file on every invocation.
func NewCommand(executable string, extraArgs []string, source Source, logger *slog.Logger) *Command {
	if logger == nil {
		logger = slog.Default()
	}
	return &Command{
		executable: executable,
		extraArgs:  extraArgs,
		source:     source,
		logger:     logger,
	}
}

// FullArgs returns the arguments for a full render of the current settings.
func (c *Command) FullArgs() Args {
	s := c.source.Current()
	return c.baseArgs().
		FrameRange(s.FrameStart(), s.FrameEnd()).
		Output(s.OutputPath()).
		Animation()
}

// OffscreenArgs returns the arguments for a viewport render of the current
// settings.
func (c *Command) OffscreenArgs() Args {
	return c.baseArgs().PythonExpr(offscreenScript(c.source.Current()))
}

func (c *Command) baseArgs() Args {
	var args Args
	return args.
		Background(c.source.File()).
		Scene(c.source.SceneName()).
		Extra(c.extraArgs...)
}

// RenderAnimationFull runs a full render of the current frame range.
func (c *Command) RenderAnimationFull(ctx context.Context) error {
	return c.run(ctx, c.FullArgs())
}

// RenderAnimationOffscreen runs a viewport render of the current frame range.
func (c *Command) RenderAnimationOffscreen(ctx context.Context) error {
	return c.run(ctx, c.OffscreenArgs())
}

// run starts the renderer and waits for it to finish. If the process exits
// with an error, the returned error wraps an *exec.ExitError carrying the
// captured stderr.
func (c *Command) run(ctx context.Context, args Args) error {
	if c.executable == "" {
		return ErrUnconfigured
	}

	cmd := exec.CommandContext(ctx, c.executable, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.logger.Debug("starting renderer", slog.String("executable", c.executable), slog.String("args", args.String()))

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitErr.Stderr = stderr.Bytes()
			err = exitErr
		}
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("run renderer <%s>: %w: %s", args.String(), err, msg)
		}
		return fmt.Errorf("run renderer <%s>: %w", args.String(), err)
	}

	return nil
}
