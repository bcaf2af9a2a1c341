package marker

import "sort"

// derivation is the state carried across the fold over sorted frames.
type derivation struct {
	ranges       []Range
	lastWasBlank bool
}

// step folds the marker at frame into the derivation.
func (d derivation) step(frame int, name, endMarkerName string) derivation {
	// Any marker closes the range before it, unless that range was
	// already closed by an end marker.
	if len(d.ranges) > 0 && !d.lastWasBlank {
		d.ranges[len(d.ranges)-1].endFrame = frame - 1
	}

	if endMarkerName != "" && name == endMarkerName {
		d.lastWasBlank = true
		return d
	}

	d.lastWasBlank = false
	// end equals start until a later marker or the scene end closes it
	d.ranges = append(d.ranges, NewRange(name, frame, frame))
	return d
}

// Derive converts markers into ordered, non-overlapping frame ranges.
//
// Markers sharing a frame resolve to the last one given. A marker named
// endMarkerName (when non-empty) closes the preceding range without opening
// a new one. The final range, if never closed by a later marker, ends at
// sceneEndFrame. Derive has no hidden state: equal inputs yield equal output.
func Derive(markers []Marker, sceneEndFrame int, endMarkerName string) []Range {
	names := make(map[int]string, len(markers))
	for _, m := range markers {
		names[m.frame] = m.name
	}

	frames := make([]int, 0, len(names))
	for f := range names {
		frames = append(frames, f)
	}
	sort.Ints(frames)

	d := derivation{ranges: make([]Range, 0, len(frames))}
	for _, f := range frames {
		d = d.step(f, names[f], endMarkerName)
	}

	if len(d.ranges) == 0 {
		return []Range{}
	}

	last := &d.ranges[len(d.ranges)-1]
	if last.endFrame == last.startFrame {
		last.endFrame = sceneEndFrame
	}

	return d.ranges
}

// Find returns the range with the given ID.
func Find(ranges []Range, id string) (Range, bool) {
	for _, r := range ranges {
		if r.ID() == id {
			return r, true
		}
	}
	return Range{}, false
}
