package geometry

import "math"

// Guide is a named guide line at a fixed coordinate along one axis.
type Guide struct {
	Name string
	Pos  float64
}

// Snapper snaps coordinates to the nearest candidate target along one axis.
//
// Candidate targets are tried in a fixed priority order: grid pitch, then
// guides, then the canvas center, then the canvas edges. Each target only
// applies when the distance to it is within Threshold, and a later matching
// target overwrites an earlier one, so edges and center take precedence
// over the grid when both are in range.
//
// Grid snapping targets the grid line at or below the value (not the
// nearest), so a coordinate already past the midpoint of a cell stays put
// rather than jumping forward.
type Snapper struct {
	GridPitch float64 // 0 disables grid snapping
	Guides    []Guide
	Extent    float64 // canvas extent along this axis; 0 disables center/edge snapping
	Threshold float64
}

// Snap returns v snapped to the winning candidate target, or v unchanged
// when no target is within the threshold.
func (s Snapper) Snap(v float64) float64 {
	out := v

	if s.GridPitch > 0 {
		line := math.Floor(v/s.GridPitch) * s.GridPitch
		if math.Abs(v-line) <= s.Threshold {
			out = line
		}
	}

	for _, g := range s.Guides {
		if math.Abs(v-g.Pos) <= s.Threshold {
			out = g.Pos
		}
	}

	if s.Extent > 0 {
		if c := s.Extent / 2; math.Abs(v-c) <= s.Threshold {
			out = c
		}
		if math.Abs(v-0) <= s.Threshold {
			out = 0
		}
		if math.Abs(v-s.Extent) <= s.Threshold {
			out = s.Extent
		}
	}

	return out
}

// SnapRect snaps a rectangle's left/top using the x and y snappers.
// Size is never modified, only position.
func SnapRect(r Rect, x, y Snapper) Rect {
	r.Left = x.Snap(r.Left)
	r.Top = y.Snap(r.Top)
	return r
}
