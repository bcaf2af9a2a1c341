package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/render"
	"github.com/helixml/markerrange/domain/run"
)

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEndMarker sets the marker name that closes a range without opening one.
func WithEndMarker(name string) RendererOption {
	return func(r *Renderer) {
		r.endMarker = name
	}
}

// WithRunStore records every render attempt in the given store.
func WithRunStore(store run.Store) RendererOption {
	return func(r *Renderer) {
		r.runs = store
	}
}

// Renderer renders marker ranges against a host environment.
//
// Each range render snapshots the environment, applies the range and mode
// settings, invokes the backend, and restores the snapshot on every exit
// path. Renders are serialised: the environment is shared global state.
type Renderer struct {
	env       render.Environment
	backend   render.Backend
	runs      run.Store
	endMarker string
	logger    *slog.Logger

	mu sync.Mutex

	// view holds the ranges last derived from an unmodified environment.
	viewMu sync.Mutex
	view   []marker.Range
}

// NewRenderer creates a new Renderer.
func NewRenderer(
	env render.Environment,
	backend render.Backend,
	logger *slog.Logger,
	opts ...RendererOption,
) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		env:     env,
		backend: backend,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EndMarker returns the configured end marker name.
func (r *Renderer) EndMarker() string { return r.endMarker }

// Ranges derives the current ranges from the environment's markers. While a
// render is in progress the environment holds the range's settings, so the
// ranges derived before that render started are returned instead. Ranges
// never waits for a render.
func (r *Renderer) Ranges() []marker.Range {
	if !r.mu.TryLock() {
		r.viewMu.Lock()
		defer r.viewMu.Unlock()
		return slices.Clone(r.view)
	}
	defer r.mu.Unlock()
	return r.ranges()
}

// lock acquires the render lock and returns the ranges of the environment
// before any render mutates it.
func (r *Renderer) lock() []marker.Range {
	r.mu.Lock()
	return r.ranges()
}

// ranges derives ranges and records them as the current view. Callers hold mu
// and the environment must be unmodified.
func (r *Renderer) ranges() []marker.Range {
	ranges := marker.Derive(r.env.Markers(), r.env.FrameEnd(), r.endMarker)
	r.viewMu.Lock()
	r.view = slices.Clone(ranges)
	r.viewMu.Unlock()
	return ranges
}

// RenderRange renders a single range with the given mode.
func (r *Renderer) RenderRange(ctx context.Context, rng marker.Range, mode render.Mode) error {
	if err := validateMode(mode); err != nil {
		return err
	}

	r.lock()
	defer r.mu.Unlock()
	return r.renderRange(ctx, rng, mode)
}

// RenderByID renders the range with the given ID. It returns the number of
// ranges rendered (0 or 1).
func (r *Renderer) RenderByID(ctx context.Context, id string, mode render.Mode) (int, error) {
	if err := validateMode(mode); err != nil {
		return 0, err
	}

	ranges := r.lock()
	defer r.mu.Unlock()

	rng, ok := marker.Find(ranges, id)
	if !ok {
		return 0, fmt.Errorf("%w: range %q", ErrNotFound, id)
	}
	if err := r.renderRange(ctx, rng, mode); err != nil {
		return 0, err
	}
	return 1, nil
}

// RenderAll renders every current range in ascending start order, stopping
// at the first failure. It returns the number of ranges rendered.
func (r *Renderer) RenderAll(ctx context.Context, mode render.Mode) (int, error) {
	if err := validateMode(mode); err != nil {
		return 0, err
	}

	current := r.lock()
	defer r.mu.Unlock()
	return r.renderRanges(ctx, current, mode)
}

// RenderRanges renders the given ranges in order, stopping at the first
// failure. Ranges rendered before a failure are not rolled back.
func (r *Renderer) RenderRanges(ctx context.Context, ranges []marker.Range, mode render.Mode) (int, error) {
	if err := validateMode(mode); err != nil {
		return 0, err
	}

	r.lock()
	defer r.mu.Unlock()
	return r.renderRanges(ctx, ranges, mode)
}

func (r *Renderer) renderRanges(ctx context.Context, ranges []marker.Range, mode render.Mode) (int, error) {
	r.logger.Info("rendering ranges", slog.Int("count", len(ranges)), slog.String("mode", mode.String()))

	for i, rng := range ranges {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("render stopped before %s: %w", rng.ID(), err)
		}
		if err := r.renderRange(ctx, rng, mode); err != nil {
			r.logger.Error("render failed, skipping remaining ranges",
				slog.String("range", rng.ID()),
				slog.Int("rendered", i),
				slog.Int("skipped", len(ranges)-i-1),
				slog.Any("error", err),
			)
			return i, err
		}
	}
	return len(ranges), nil
}

func (r *Renderer) renderRange(ctx context.Context, rng marker.Range, mode render.Mode) (err error) {
	snapshot, err := r.env.Snapshot()
	if err != nil {
		return &RangeError{RangeID: rng.ID(), Err: fmt.Errorf("snapshot settings: %w", err)}
	}

	output := rng.OutputPath(snapshot.OutputPath())
	record := r.startRun(ctx, run.NewRun(rng, mode, output))

	defer func() {
		if restoreErr := r.env.Restore(snapshot); restoreErr != nil {
			err = errors.Join(err, &RangeError{RangeID: rng.ID(), Err: fmt.Errorf("restore settings: %w", restoreErr)})
		}
		if p := recover(); p != nil {
			r.finishRun(ctx, record, fmt.Errorf("panic: %v", p))
			panic(p)
		}
		r.finishRun(ctx, record, err)
	}()

	r.logger.Info("rendering range",
		slog.String("range", rng.ID()),
		slog.Int("start", rng.StartFrame()),
		slog.Int("end", rng.EndFrame()),
		slog.String("mode", mode.String()),
		slog.String("output", output),
	)

	if err := r.apply(ctx, rng, mode, output); err != nil {
		return &RangeError{RangeID: rng.ID(), Err: err}
	}
	return nil
}

func (r *Renderer) apply(ctx context.Context, rng marker.Range, mode render.Mode, output string) error {
	if err := r.env.ViewCamera(); err != nil {
		if !errors.Is(err, render.ErrNoViewport) {
			return fmt.Errorf("view camera: %w", err)
		}
		r.logger.Debug("no viewport, rendering without camera view", slog.String("range", rng.ID()))
	}

	r.env.SetOutputPath(output)
	r.env.SetFrameRange(rng.StartFrame(), rng.EndFrame())

	switch mode {
	case render.ModeViewportRender, render.ModeViewportSolid:
		shading, _ := mode.Shading()
		r.env.SetShading(shading)
		r.env.SetOverlays(false)
		if err := r.backend.RenderAnimationOffscreen(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrBackendFailure, err)
		}
	case render.ModeFullRender:
		if err := r.backend.RenderAnimationFull(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrBackendFailure, err)
		}
	}
	return nil
}

func (r *Renderer) startRun(ctx context.Context, rec run.Run) run.Run {
	if r.runs == nil {
		return rec
	}
	saved, err := r.runs.Save(ctx, rec)
	if err != nil {
		r.logger.Warn("failed to record render run", slog.String("range", rec.RangeID()), slog.Any("error", err))
		return rec
	}
	return saved
}

func (r *Renderer) finishRun(ctx context.Context, rec run.Run, err error) {
	if r.runs == nil {
		return
	}
	if err != nil {
		rec = rec.Fail(err)
	} else {
		rec = rec.Succeed()
	}
	// the request context may already be cancelled; the outcome is still worth keeping
	if _, saveErr := r.runs.Save(context.WithoutCancel(ctx), rec); saveErr != nil {
		r.logger.Warn("failed to record render run", slog.String("range", rec.RangeID()), slog.Any("error", saveErr))
	}
}

func validateMode(mode render.Mode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q: %w", ErrInvalidArgument, mode, render.ErrUnknownMode)
	}
	return nil
}
