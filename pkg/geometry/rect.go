// Package geometry provides the reusable numeric routines under the layout
// engine: rectangles, alignment, distribution, spacing, snapping, and text
// measurement/fitting. Nothing in this package knows about archetypes or
// diagram semantics.
//
// All coordinates are in inches with the origin at the top-left and the
// y axis growing downward, matching slide coordinates.
package geometry

import "math"

// Rect is an axis-aligned rectangle described by its top-left corner.
type Rect struct {
	Left   float64 `json:"left" bson:"left"`
	Top    float64 `json:"top" bson:"top"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Intersects reports whether two rectangles share any area. Touching edges
// do not count as intersection.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right() && o.Left < r.Right() &&
		r.Top < o.Bottom() && o.Top < r.Bottom()
}

// Inset returns a rectangle shrunk by d on every side. A negative d grows
// the rectangle. The result never inverts: width/height floor at zero.
func (r Rect) Inset(d float64) Rect {
	w := math.Max(0, r.Width-2*d)
	h := math.Max(0, r.Height-2*d)
	return Rect{Left: r.Left + d, Top: r.Top + d, Width: w, Height: h}
}

// Expand returns a rectangle grown by d on every side.
func (r Rect) Expand(d float64) Rect { return r.Inset(-d) }

// ClampInto returns the rectangle translated so it lies within bounds.
// Rectangles larger than bounds are pinned to the bounds origin.
func (r Rect) ClampInto(bounds Rect) Rect {
	out := r
	if out.Right() > bounds.Right() {
		out.Left = bounds.Right() - out.Width
	}
	if out.Left < bounds.Left {
		out.Left = bounds.Left
	}
	if out.Bottom() > bounds.Bottom() {
		out.Top = bounds.Bottom() - out.Height
	}
	if out.Top < bounds.Top {
		out.Top = bounds.Top
	}
	return out
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	left := math.Min(r.Left, o.Left)
	top := math.Min(r.Top, o.Top)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
