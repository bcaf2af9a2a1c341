// Package marker provides timeline markers and the frame ranges derived from them.
package marker

// Marker is a named point on the timeline. Immutable value object.
type Marker struct {
	frame int
	name  string
}

// NewMarker creates a Marker at the given frame.
func NewMarker(frame int, name string) Marker {
	return Marker{frame: frame, name: name}
}

// Frame returns the frame the marker sits on.
func (m Marker) Frame() int { return m.frame }

// Name returns the marker name.
func (m Marker) Name() string { return m.name }
