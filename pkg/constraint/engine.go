package constraint

import (
	"fmt"
	"math"

	"github.com/diagramkit/diagramkit/pkg/config"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// Score weights per severity. A single error drops a layout below the
// "good" bar; infos only shave polish points.
const (
	errorWeight   = 20
	warningWeight = 10
	infoWeight    = 2
)

// Engine validates shape collections against one canvas.
type Engine struct {
	canvas geometry.Rect
	tol    config.Tolerance
}

// NewEngine builds an engine for a canvas of the given size.
func NewEngine(width, height float64, tol config.Tolerance) *Engine {
	return &Engine{
		canvas: geometry.Rect{Width: width, Height: height},
		tol:    tol,
	}
}

// Validate runs every check and grades the result. Checks are independent:
// one failing never masks another.
func (e *Engine) Validate(shapes []Shape) model.ConstraintResult {
	var violations []model.Violation
	violations = append(violations, e.checkBounds(shapes)...)
	violations = append(violations, e.checkOverlap(shapes)...)
	violations = append(violations, e.checkAlignment(shapes)...)
	violations = append(violations, e.checkSpacing(shapes)...)

	result := model.ConstraintResult{Violations: violations}
	result.Score = Score(violations)
	result.IsValid = result.Count(model.SeverityError) == 0
	return result
}

// Score grades a violation list: 100 minus 20 per error, 10 per warning,
// 2 per info, floored at 0.
func Score(violations []model.Violation) float64 {
	s := 100.0
	for _, v := range violations {
		switch v.Severity {
		case model.SeverityError:
			s -= errorWeight
		case model.SeverityWarning:
			s -= warningWeight
		default:
			s -= infoWeight
		}
	}
	return math.Max(s, 0)
}

// checkBounds flags any shape with an edge outside the canvas. The
// suggested fix is the clamped position.
func (e *Engine) checkBounds(shapes []Shape) []model.Violation {
	var out []model.Violation
	for _, s := range shapes {
		r := s.Rect
		if r.Left >= 0 && r.Top >= 0 && r.Right() <= e.canvas.Width && r.Bottom() <= e.canvas.Height {
			continue
		}
		clamped := r.ClampInto(e.canvas)
		out = append(out, model.Violation{
			Rule:     "bounds",
			Message:  fmt.Sprintf("shape %q extends outside the %.3gx%.3g canvas", s.ID, e.canvas.Width, e.canvas.Height),
			Severity: model.SeverityError,
			ShapeIDs: []string{s.ID},
			Suggested: map[string]float64{
				"x": clamped.Left,
				"y": clamped.Top,
			},
		})
	}
	return out
}

// checkOverlap flags every intersecting pair. Quadratic, which is fine for
// the few dozen shapes a slide holds.
func (e *Engine) checkOverlap(shapes []Shape) []model.Violation {
	var out []model.Violation
	for i := 0; i < len(shapes); i++ {
		for j := i + 1; j < len(shapes); j++ {
			if !shapes[i].Rect.Intersects(shapes[j].Rect) {
				continue
			}
			out = append(out, model.Violation{
				Rule:     "overlap",
				Message:  fmt.Sprintf("shapes %q and %q overlap", shapes[i].ID, shapes[j].ID),
				Severity: model.SeverityWarning,
				ShapeIDs: []string{shapes[i].ID, shapes[j].ID},
			})
		}
	}
	return out
}

// checkAlignment looks at shapes that already sit near the canvas's
// horizontal center (within the loose tolerance) and expects their centers
// to agree exactly (within the tight tolerance). Drift is a polish issue.
func (e *Engine) checkAlignment(shapes []Shape) []model.Violation {
	center := e.canvas.Width / 2

	var near []Shape
	for _, s := range shapes {
		if math.Abs(s.Rect.CenterX()-center) <= e.tol.AlignLoose {
			near = append(near, s)
		}
	}
	if len(near) < 2 {
		return nil
	}

	var out []model.Violation
	for _, s := range near {
		drift := math.Abs(s.Rect.CenterX() - center)
		if drift <= e.tol.AlignTight {
			continue
		}
		out = append(out, model.Violation{
			Rule:     "alignment",
			Message:  fmt.Sprintf("shape %q drifts %.3gin off the shared center line", s.ID, drift),
			Severity: model.SeverityInfo,
			ShapeIDs: []string{s.ID},
			Suggested: map[string]float64{
				"x": center - s.Rect.Width/2,
			},
		})
	}
	return out
}

// checkSpacing sorts shapes vertically and flags consecutive gaps that
// deviate from the mean gap by more than the configured fraction.
func (e *Engine) checkSpacing(shapes []Shape) []model.Violation {
	if len(shapes) < 3 {
		return nil
	}

	ordered := make([]Shape, len(shapes))
	copy(ordered, shapes)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Rect.CenterY() < ordered[j-1].Rect.CenterY(); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	gaps := make([]float64, len(ordered)-1)
	total := 0.0
	for i := 0; i+1 < len(ordered); i++ {
		gaps[i] = ordered[i+1].Rect.Top - ordered[i].Rect.Bottom()
		total += gaps[i]
	}
	mean := total / float64(len(gaps))
	if mean <= 0 {
		return nil // stacked or overlapping; the overlap check owns this
	}

	var out []model.Violation
	for i, g := range gaps {
		if math.Abs(g-mean) <= e.tol.SpacingDeviation*mean {
			continue
		}
		out = append(out, model.Violation{
			Rule: "spacing",
			Message: fmt.Sprintf("gap between %q and %q is %.3gin, mean is %.3gin",
				ordered[i].ID, ordered[i+1].ID, g, mean),
			Severity:  model.SeverityInfo,
			ShapeIDs:  []string{ordered[i].ID, ordered[i+1].ID},
			Suggested: map[string]float64{"gap": mean},
		})
	}
	return out
}

// Fix applies the deterministic repair sequence and returns a new shape
// collection: clamp into the canvas, resolve overlaps top-down in paint
// order, re-center horizontally, then re-flow vertical spacing evenly
// between the margins. Best effort only; callers re-validate.
func (e *Engine) Fix(shapes []Shape, marginY float64) []Shape {
	out := make([]Shape, len(shapes))
	copy(out, shapes)

	for i := range out {
		out[i].Rect = out[i].Rect.ClampInto(e.canvas)
	}

	e.fixOverlaps(out)

	for i := range out {
		out[i].Rect.Left = e.canvas.Width/2 - out[i].Rect.Width/2
	}

	e.reflowVertical(out, marginY)
	return out
}

// fixOverlaps walks shapes in ascending z. Each shape overlapping an
// already-fixed one is pushed straight down below it plus the fix gap,
// bounded by the canvas height.
func (e *Engine) fixOverlaps(shapes []Shape) {
	order := byZ(shapes)
	for oi, i := range order {
		for _, j := range order[:oi] {
			if !shapes[i].Rect.Intersects(shapes[j].Rect) {
				continue
			}
			newTop := shapes[j].Rect.Bottom() + e.tol.FixGap
			if newTop+shapes[i].Rect.Height > e.canvas.Height {
				newTop = e.canvas.Height - shapes[i].Rect.Height
			}
			shapes[i].Rect.Top = newTop
		}
	}
}

// reflowVertical spreads the shapes evenly across the vertical span
// between the margins, preserving their relative order.
func (e *Engine) reflowVertical(shapes []Shape, marginY float64) {
	if len(shapes) < 2 {
		return
	}

	rects := make([]geometry.Rect, len(shapes))
	for i, s := range shapes {
		rects[i] = s.Rect
	}
	span := geometry.Rect{Top: marginY, Height: e.canvas.Height - 2*marginY, Left: 0, Width: e.canvas.Width}

	totalH := 0.0
	for _, r := range rects {
		totalH += r.Height
	}
	gap := (span.Height - totalH) / float64(len(rects)-1)
	if gap < 0 {
		gap = 0
	}

	order := sortedIndexesByTop(rects)
	y := span.Top
	for _, i := range order {
		shapes[i].Rect.Top = y
		y += rects[i].Height + gap
	}
}

func sortedIndexesByTop(rects []geometry.Rect) []int {
	idx := make([]int, len(rects))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && rects[idx[j]].Top < rects[idx[j-1]].Top; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}
