// Package render describes how a frame range is rendered and the host
// environment a render runs against.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode indicates a render mode string is not recognized.
var ErrUnknownMode = errors.New("not a recognized render style")

// Mode selects how a range is rendered.
type Mode string

// Mode values.
const (
	ModeViewportRender Mode = "viewport_render"
	ModeViewportSolid  Mode = "viewport_solid"
	ModeFullRender     Mode = "full_render"
)

// Modes returns every supported render mode in display order.
func Modes() []Mode {
	return []Mode{ModeViewportRender, ModeViewportSolid, ModeFullRender}
}

// ParseMode converts a string to a Mode. Matching ignores case and
// surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// IsValid reports whether the mode is one of the supported values.
func (m Mode) IsValid() bool {
	switch m {
	case ModeViewportRender, ModeViewportSolid, ModeFullRender:
		return true
	}
	return false
}

// String returns the mode identifier.
func (m Mode) String() string { return string(m) }

// Offscreen reports whether the mode renders through the viewport rather
// than the production renderer.
func (m Mode) Offscreen() bool {
	return m == ModeViewportRender || m == ModeViewportSolid
}

// Shading returns the display shading the mode applies. The second return
// is false for modes that leave shading untouched.
func (m Mode) Shading() (Shading, bool) {
	switch m {
	case ModeViewportRender:
		return ShadingRendered, true
	case ModeViewportSolid:
		return ShadingSolid, true
	}
	return "", false
}

// Description returns a short human readable explanation of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeViewportRender:
		return "Viewport render with rendered shading"
	case ModeViewportSolid:
		return "Viewport render with solid shading"
	case ModeFullRender:
		return "Full production render"
	}
	return ""
}
