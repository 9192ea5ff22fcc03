// Package constraint validates and repairs finished layouts. Validation
// runs independent bounds/overlap/alignment/spacing checks and grades the
// result; Fix applies a deterministic best-effort repair. Neither mutates
// its input, so callers can diff before and after.
package constraint

import (
	"sort"

	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// Shape is the engine's view of one placed element: just identity,
// geometry, and paint order.
type Shape struct {
	ID   string
	Rect geometry.Rect
	Z    int
}

// FromElements adapts render-ready elements for validation.
func FromElements(elements []model.PositionedElement) []Shape {
	out := make([]Shape, len(elements))
	for i, e := range elements {
		out[i] = Shape{
			ID:   e.ID,
			Rect: geometry.Rect{Left: e.X, Top: e.Y, Width: e.Width, Height: e.Height},
			Z:    e.Z,
		}
	}
	return out
}

// ApplyToElements writes repaired shape geometry back onto a copy of the
// elements, matched by ID. Elements without a matching shape are kept
// unchanged.
func ApplyToElements(elements []model.PositionedElement, shapes []Shape) []model.PositionedElement {
	byID := make(map[string]Shape, len(shapes))
	for _, s := range shapes {
		byID[s.ID] = s
	}
	out := make([]model.PositionedElement, len(elements))
	for i, e := range elements {
		if s, ok := byID[e.ID]; ok {
			e = e.WithRect(s.Rect.Left, s.Rect.Top, s.Rect.Width, s.Rect.Height)
		}
		out[i] = e
	}
	return out
}

// byZ returns index order sorted by ascending Z, stable on input order.
func byZ(shapes []Shape) []int {
	idx := make([]int, len(shapes))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return shapes[idx[a]].Z < shapes[idx[b]].Z })
	return idx
}
