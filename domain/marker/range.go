package marker

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Range is a contiguous span of frames opened by a named marker.
// Immutable value object.
type Range struct {
	name       string
	startFrame int
	endFrame   int
}

// NewRange creates a Range spanning [startFrame, endFrame].
func NewRange(name string, startFrame, endFrame int) Range {
	return Range{
		name:       name,
		startFrame: startFrame,
		endFrame:   endFrame,
	}
}

// Name returns the name of the marker that opened the range.
func (r Range) Name() string { return r.name }

// StartFrame returns the first frame of the range.
func (r Range) StartFrame() int { return r.startFrame }

// EndFrame returns the last frame of the range (inclusive).
func (r Range) EndFrame() int { return r.endFrame }

// ID returns the stable identifier "{start_frame}-{name}".
// IDs are unique among the ranges of one derivation because start frames are.
func (r Range) ID() string {
	return strconv.Itoa(r.startFrame) + "-" + r.name
}

// Label returns the display label "{name} ({start} - {end})".
func (r Range) Label() string {
	return fmt.Sprintf("%s (%d - %d)", r.name, r.startFrame, r.endFrame)
}

// Description returns a one-line description of what rendering the range does.
func (r Range) Description() string {
	return fmt.Sprintf("Render range %s: %d to %d", r.name, r.startFrame, r.endFrame)
}

// Frames returns the number of frames in the range.
func (r Range) Frames() int {
	return r.endFrame - r.startFrame + 1
}

// String implements fmt.Stringer using the display label.
func (r Range) String() string {
	return r.Label()
}

// OutputPath derives the output path for this range from a base output path.
//
// The base is split into directory and file name; a single trailing "_" or
// "-" is stripped from the file name, and the result is
// "{dir}{id}/{name}_{id}_". The directory part is kept verbatim so host
// relative prefixes such as "//" survive.
func (r Range) OutputPath(base string) string {
	dir, name := filepath.Split(base)
	if strings.HasSuffix(name, "_") || strings.HasSuffix(name, "-") {
		name = name[:len(name)-1]
	}

	id := r.ID()
	return dir + id + string(filepath.Separator) + name + "_" + id + "_"
}

// OutputDir returns the directory the range renders into for a base output path.
func (r Range) OutputDir(base string) string {
	dir, _ := filepath.Split(base)
	return dir + r.ID()
}
