// Package scene provides a file-backed render environment described by a
// YAML scene document.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/helixml/markerrange/domain/marker"
	"github.com/helixml/markerrange/domain/render"
	"gopkg.in/yaml.v3"
)

var _ render.Environment = (*Document)(nil)

// ErrInvalidDocument indicates the scene document failed validation.
var ErrInvalidDocument = errors.New("invalid scene document")

type markerEntry struct {
	Frame int    `yaml:"frame"`
	Name  string `yaml:"name"`
}

type displayEntry struct {
	Shading         string `yaml:"shading"`
	ViewportShading string `yaml:"viewport_shading"`
	Overlays        *bool  `yaml:"overlays"`
	Perspective     string `yaml:"perspective"`
	Viewport        *bool  `yaml:"viewport"`
}

type documentFile struct {
	File       string        `yaml:"file"`
	Scene      string        `yaml:"scene"`
	FrameStart int           `yaml:"frame_start"`
	FrameEnd   int           `yaml:"frame_end"`
	Output     string        `yaml:"output"`
	Markers    []markerEntry `yaml:"markers"`
	Display    *displayEntry `yaml:"display"`
}

// display is the resolved display block.
type display struct {
	shading         render.Shading
	viewportShading render.Shading
	overlays        bool
	perspective     render.Perspective
	viewport        bool
}

// Document is a scene loaded from a YAML file. It implements
// render.Environment; the current settings live in memory and are never
// written back to the file.
type Document struct {
	mu sync.RWMutex

	path       string
	file       string
	sceneName  string
	frameStart int
	frameEnd   int
	output     string
	markers    []marker.Marker
	display    *display
}

// Load reads and validates the scene document at path. A relative scene
// file is resolved against the document's directory.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene document: %w", err)
	}
	doc, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// Parse decodes and validates a scene document. baseDir resolves a relative
// scene file; pass "" to leave it unchanged.
func Parse(data []byte, baseDir string) (*Document, error) {
	var raw documentFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode scene document: %w", err)
	}

	if raw.File == "" {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidDocument)
	}
	if raw.FrameEnd < raw.FrameStart {
		return nil, fmt.Errorf("%w: frame_end %d is before frame_start %d", ErrInvalidDocument, raw.FrameEnd, raw.FrameStart)
	}

	file := raw.File
	if baseDir != "" && !filepath.IsAbs(file) {
		file = filepath.Join(baseDir, file)
	}

	markers := make([]marker.Marker, len(raw.Markers))
	for i, m := range raw.Markers {
		markers[i] = marker.NewMarker(m.Frame, m.Name)
	}

	disp, err := parseDisplay(raw.Display)
	if err != nil {
		return nil, err
	}

	return &Document{
		file:       file,
		sceneName:  raw.Scene,
		frameStart: raw.FrameStart,
		frameEnd:   raw.FrameEnd,
		output:     raw.Output,
		markers:    markers,
		display:    disp,
	}, nil
}

func parseDisplay(raw *displayEntry) (*display, error) {
	if raw == nil {
		return nil, nil
	}

	d := &display{
		shading:         render.ShadingSolid,
		viewportShading: render.ShadingSolid,
		overlays:        true,
		perspective:     render.PerspectivePersp,
		viewport:        true,
	}
	if raw.Shading != "" {
		d.shading = render.Shading(raw.Shading)
	}
	if raw.ViewportShading != "" {
		d.viewportShading = render.Shading(raw.ViewportShading)
	}
	if raw.Perspective != "" {
		d.perspective = render.Perspective(raw.Perspective)
	}
	if raw.Overlays != nil {
		d.overlays = *raw.Overlays
	}
	if raw.Viewport != nil {
		d.viewport = *raw.Viewport
	}

	if !d.shading.IsValid() {
		return nil, fmt.Errorf("%w: unknown shading %q", ErrInvalidDocument, d.shading)
	}
	if !d.viewportShading.IsValid() {
		return nil, fmt.Errorf("%w: unknown viewport_shading %q", ErrInvalidDocument, d.viewportShading)
	}
	if !d.perspective.IsValid() {
		return nil, fmt.Errorf("%w: unknown perspective %q", ErrInvalidDocument, d.perspective)
	}
	return d, nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string { return d.path }

// File returns the scene file handed to the render backend.
func (d *Document) File() string { return d.file }

// SceneName returns the scene inside the file, or "" for the default scene.
func (d *Document) SceneName() string { return d.sceneName }

// Markers returns a copy of the timeline markers.
func (d *Document) Markers() []marker.Marker {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]marker.Marker, len(d.markers))
	copy(result, d.markers)
	return result
}

// FrameStart returns the current first frame.
func (d *Document) FrameStart() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.frameStart
}

// FrameEnd returns the current last frame.
func (d *Document) FrameEnd() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.frameEnd
}

// OutputPath returns the current output path.
func (d *Document) OutputPath() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.output
}

// HasDisplay reports whether the document describes display settings.
func (d *Document) HasDisplay() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.display != nil
}

// Current returns the current settings. Display fields are zero when the
// document has no display block.
func (d *Document) Current() render.Settings {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings()
}

func (d *Document) settings() render.Settings {
	var (
		perspective     render.Perspective
		viewportShading render.Shading
		displayShading  render.Shading
		overlays        bool
	)
	if d.display != nil {
		perspective = d.display.perspective
		viewportShading = d.display.viewportShading
		displayShading = d.display.shading
		overlays = d.display.overlays
	}
	return render.NewSettings(d.output, d.frameStart, d.frameEnd, perspective, viewportShading, overlays, displayShading)
}

// Snapshot captures every setting a render overrides.
func (d *Document) Snapshot() (render.Settings, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.display == nil {
		return render.Settings{}, render.ErrUnsupportedEnvironment
	}
	return d.settings(), nil
}

// Restore writes a snapshot back.
func (d *Document) Restore(s render.Settings) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.display == nil {
		return render.ErrUnsupportedEnvironment
	}
	d.output = s.OutputPath()
	d.frameStart = s.FrameStart()
	d.frameEnd = s.FrameEnd()
	d.display.perspective = s.Perspective()
	d.display.viewportShading = s.ViewportShading()
	d.display.overlays = s.Overlays()
	d.display.shading = s.DisplayShading()
	return nil
}

// SetOutputPath sets the output path.
func (d *Document) SetOutputPath(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.output = path
}

// SetFrameRange sets the frames to render.
func (d *Document) SetFrameRange(start, end int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frameStart = start
	d.frameEnd = end
}

// SetShading sets both the display and viewport shading.
func (d *Document) SetShading(shading render.Shading) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.display == nil {
		return
	}
	d.display.shading = shading
	d.display.viewportShading = shading
}

// SetOverlays shows or hides viewport overlays.
func (d *Document) SetOverlays(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.display == nil {
		return
	}
	d.display.overlays = visible
}

// ViewCamera switches the viewport to the camera perspective.
func (d *Document) ViewCamera() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.display == nil || !d.display.viewport {
		return render.ErrNoViewport
	}
	d.display.perspective = render.PerspectiveCamera
	return nil
}
