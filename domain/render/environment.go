package render

import (
	"context"
	"errors"

	"github.com/helixml/markerrange/domain/marker"
)

var (
	// ErrUnsupportedEnvironment indicates the host lacks the display
	// facilities a render needs to snapshot or override.
	ErrUnsupportedEnvironment = errors.New("environment does not support render settings")

	// ErrNoViewport indicates there is no 3D viewport to switch to the
	// camera view. Renders continue without it.
	ErrNoViewport = errors.New("no 3D viewport available")
)

// Timeline exposes the markers and frame bounds of the active scene.
type Timeline interface {
	Markers() []marker.Marker
	FrameEnd() int
}

// Environment is the host-owned configuration a render reads and mutates.
type Environment interface {
	Timeline
	Snapshot() (Settings, error)
	Restore(settings Settings) error
	SetOutputPath(path string)
	SetFrameRange(start, end int)
	SetShading(shading Shading)
	SetOverlays(visible bool)
	ViewCamera() error
}

// Backend renders the animation described by the current environment.
type Backend interface {
	RenderAnimationOffscreen(ctx context.Context) error
	RenderAnimationFull(ctx context.Context) error
}
