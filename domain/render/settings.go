package render

import "fmt"

// Shading is a display shading type.
type Shading string

// Shading values.
const (
	ShadingWireframe Shading = "WIREFRAME"
	ShadingSolid     Shading = "SOLID"
	ShadingMaterial  Shading = "MATERIAL"
	ShadingRendered  Shading = "RENDERED"
)

// IsValid reports whether the shading is a known value.
func (s Shading) IsValid() bool {
	switch s {
	case ShadingWireframe, ShadingSolid, ShadingMaterial, ShadingRendered:
		return true
	}
	return false
}

// Perspective is a 3D view projection.
type Perspective string

// Perspective values.
const (
	PerspectivePersp  Perspective = "PERSP"
	PerspectiveOrtho  Perspective = "ORTHO"
	PerspectiveCamera Perspective = "CAMERA"
)

// IsValid reports whether the perspective is a known value.
func (p Perspective) IsValid() bool {
	switch p {
	case PerspectivePersp, PerspectiveOrtho, PerspectiveCamera:
		return true
	}
	return false
}

// Settings is a snapshot of the environment values a render overrides.
type Settings struct {
	outputPath      string
	frameStart      int
	frameEnd        int
	perspective     Perspective
	viewportShading Shading
	overlays        bool
	displayShading  Shading
}

// NewSettings creates a Settings snapshot.
func NewSettings(
	outputPath string,
	frameStart, frameEnd int,
	perspective Perspective,
	viewportShading Shading,
	overlays bool,
	displayShading Shading,
) Settings {
	return Settings{
		outputPath:      outputPath,
		frameStart:      frameStart,
		frameEnd:        frameEnd,
		perspective:     perspective,
		viewportShading: viewportShading,
		overlays:        overlays,
		displayShading:  displayShading,
	}
}

// OutputPath returns the base output path.
func (s Settings) OutputPath() string { return s.outputPath }

// FrameStart returns the first frame to render.
func (s Settings) FrameStart() int { return s.frameStart }

// FrameEnd returns the last frame to render.
func (s Settings) FrameEnd() int { return s.frameEnd }

// Perspective returns the 3D view perspective.
func (s Settings) Perspective() Perspective { return s.perspective }

// ViewportShading returns the 3D viewport shading type.
func (s Settings) ViewportShading() Shading { return s.viewportShading }

// Overlays reports whether viewport overlays are shown.
func (s Settings) Overlays() bool { return s.overlays }

// DisplayShading returns the scene display shading type.
func (s Settings) DisplayShading() Shading { return s.displayShading }

// String returns a compact representation for logs.
func (s Settings) String() string {
	return fmt.Sprintf("output=%s frames=%d-%d perspective=%s shading=%s/%s overlays=%t",
		s.outputPath, s.frameStart, s.frameEnd, s.perspective,
		s.displayShading, s.viewportShading, s.overlays)
}
