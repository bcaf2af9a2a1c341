package backend

import (
	"context"
	"log/slog"

	"github.com/helixml/markerrange/domain/render"
)

// DryRun logs the renders a Command would perform without running anything.
type DryRun struct {
	command *Command
	logger  *slog.Logger
}

var _ render.Backend = (*DryRun)(nil)

// NewDryRun creates a DryRun that describes the invocations of command.
func NewDryRun(command *Command, logger *slog.Logger) *DryRun {
	if logger == nil {
		logger = slog.Default()
	}
	return &DryRun{command: command, logger: logger}
}

// RenderAnimationFull logs the full render invocation.
func (d *DryRun) RenderAnimationFull(ctx context.Context) error {
	return d.log(ctx, "full", d.command.FullArgs())
}

// RenderAnimationOffscreen logs the viewport render invocation.
func (d *DryRun) RenderAnimationOffscreen(ctx context.Context) error {
	return d.log(ctx, "offscreen", d.command.OffscreenArgs())
}

func (d *DryRun) log(ctx context.Context, kind string, args Args) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := d.command.source.Current()
	d.logger.Info("dry run: skipping render",
		slog.String("kind", kind),
		slog.Int("start", s.FrameStart()),
		slog.Int("end", s.FrameEnd()),
		slog.String("output", s.OutputPath()),
		slog.String("executable", d.command.executable),
		slog.Int("args", len(args)),
	)
	return nil
}
