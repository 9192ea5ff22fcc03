// Package strategy implements the six geometric layout strategies: grid,
// stack, radial, tree, flow, and freeform.
//
// Every strategy is a pure function over its inputs: it never mutates the
// DiagramInput, never fails, and keeps its output within the given bounds
// (clamping when necessary). Empty input yields an empty result plus a
// warning rather than an error.
package strategy

import (
	"math"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// Element size clamps shared by the strategies, in inches.
const (
	minElementExtent = 0.4
	maxElementExtent = 4.5
	defaultGap       = 0.25
)

// Result is the output of one strategy run: raw element and connector
// positions, the rectangle actually occupied, and any warnings produced
// while laying out.
type Result struct {
	Elements   []model.ElementPosition
	Connectors []model.ConnectorPosition
	UsedBounds geometry.Rect
	Warnings   []string
}

// Compute dispatches to the strategy named by the rules. Unknown strategies
// fall through to freeform, so dispatch never fails.
func Compute(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	if len(input.Blocks) == 0 {
		return Result{Warnings: []string{"no blocks to lay out"}}
	}
	if bounds.IsEmpty() {
		return Result{Warnings: []string{"empty content bounds"}}
	}

	var res Result
	switch rules.Strategy {
	case archetype.StrategyGrid:
		res = computeGrid(input, rules, bounds, palette)
	case archetype.StrategyStack:
		res = computeStack(input, rules, bounds, palette)
	case archetype.StrategyRadial:
		res = computeRadial(input, rules, bounds, palette)
	case archetype.StrategyTree:
		res = computeTree(input, rules, bounds, palette)
	case archetype.StrategyFlow:
		res = computeFlow(input, rules, bounds, palette)
	default:
		res = computeFreeform(input, rules, bounds, palette)
	}

	clampElements(res.Elements, bounds)
	res.UsedBounds = usedBounds(res.Elements, bounds)
	return res
}

// elementColor resolves the fill color for the i-th block according to the
// archetype's color rule. Explicit per-block overrides always win.
func elementColor(b model.BlockData, rules archetype.Rules, palette model.ColorPalette, index, layerIndex int) string {
	if b.Color != "" {
		return palette.Resolve(b.Color)
	}
	switch rules.Element.ColorRule {
	case "primary":
		return palette.Resolve(model.TokenPrimary)
	case "by_layer":
		if layerIndex >= 0 {
			return palette.Accent(layerIndex)
		}
		return palette.Accent(index)
	default: // "sequence"
		return palette.Accent(index)
	}
}

// blockShape returns the shape hint for a block: explicit metadata wins,
// then the archetype's element template.
func blockShape(b model.BlockData, rules archetype.Rules) string {
	if s := b.MetaString(model.MetaShape); s != "" {
		return s
	}
	return rules.Element.Shape
}

// pair is one requested connection between two laid-out blocks.
type pair struct {
	from, to string
	style    string
	label    string
	color    string
}

// connectorPairs decides which connections to draw. Explicit input
// connectors always win; otherwise the archetype's pattern synthesizes
// them from block order.
func connectorPairs(input model.DiagramInput, rules archetype.Rules) []pair {
	if len(input.Connectors) > 0 {
		out := make([]pair, len(input.Connectors))
		for i, c := range input.Connectors {
			out[i] = pair{from: c.FromID, to: c.ToID, style: c.Style, label: c.Label, color: c.Color}
		}
		return out
	}

	style := rules.Connector.Style
	blocks := input.Blocks
	switch rules.Connector.Pattern {
	case archetype.PatternSequential:
		out := make([]pair, 0, len(blocks)-1)
		for i := 0; i+1 < len(blocks); i++ {
			out = append(out, pair{from: blocks[i].ID, to: blocks[i+1].ID, style: style})
		}
		return out
	case archetype.PatternCycle:
		if len(blocks) < 2 {
			return nil
		}
		out := make([]pair, 0, len(blocks))
		for i := 0; i < len(blocks); i++ {
			out = append(out, pair{from: blocks[i].ID, to: blocks[(i+1)%len(blocks)].ID, style: style})
		}
		return out
	case archetype.PatternHubToSpokes:
		out := make([]pair, 0, len(blocks)-1)
		for _, b := range blocks[1:] {
			out = append(out, pair{from: blocks[0].ID, to: b.ID, style: style})
		}
		return out
	default:
		// hierarchical connectors are derived from the tree structure by
		// the tree strategy itself; none means none.
		return nil
	}
}

// edgeAnchor returns the point where the ray from the element's center
// toward `toward` crosses the element's border: the intersection with the
// smallest positive parametric distance along either axis.
func edgeAnchor(e model.ElementPosition, toward model.Point) model.Point {
	cx, cy := e.CenterX(), e.CenterY()
	dx, dy := toward.X-cx, toward.Y-cy
	if dx == 0 && dy == 0 {
		return model.Point{X: cx, Y: cy}
	}

	t := math.Inf(1)
	if dx != 0 {
		t = (e.Width / 2) / math.Abs(dx)
	}
	if dy != 0 {
		if ty := (e.Height / 2) / math.Abs(dy); ty < t {
			t = ty
		}
	}
	return model.Point{X: cx + dx*t, Y: cy + dy*t}
}

// directConnectors builds center-to-center connectors between laid-out
// elements, anchored at the facing borders.
func directConnectors(pairs []pair, elements []model.ElementPosition, palette model.ColorPalette) []model.ConnectorPosition {
	byID := make(map[string]model.ElementPosition, len(elements))
	for _, e := range elements {
		byID[e.ID] = e
	}

	var out []model.ConnectorPosition
	for _, p := range pairs {
		from, okFrom := byID[p.from]
		to, okTo := byID[p.to]
		if !okFrom || !okTo {
			continue // dangling endpoints are dropped, not errors
		}
		color := p.color
		if color == "" {
			color = model.TokenConnector
		}
		out = append(out, model.ConnectorPosition{
			FromID: p.from,
			ToID:   p.to,
			Start:  edgeAnchor(from, model.Point{X: to.CenterX(), Y: to.CenterY()}),
			End:    edgeAnchor(to, model.Point{X: from.CenterX(), Y: from.CenterY()}),
			Style:  p.style,
			Label:  p.label,
			Color:  palette.Resolve(color),
		})
	}
	return out
}

// clampElements pins every element inside bounds in place. Elements larger
// than the bounds are shrunk to fit.
func clampElements(elements []model.ElementPosition, bounds geometry.Rect) {
	for i := range elements {
		e := &elements[i]
		if e.Width > bounds.Width {
			e.Width = bounds.Width
		}
		if e.Height > bounds.Height {
			e.Height = bounds.Height
		}
		r := geometry.Rect{Left: e.X, Top: e.Y, Width: e.Width, Height: e.Height}.ClampInto(bounds)
		e.X, e.Y = r.Left, r.Top
	}
}

// usedBounds returns the union of all element rectangles, or the given
// bounds when there are no elements.
func usedBounds(elements []model.ElementPosition, bounds geometry.Rect) geometry.Rect {
	if len(elements) == 0 {
		return geometry.Rect{Left: bounds.Left, Top: bounds.Top}
	}
	out := geometry.Rect{Left: elements[0].X, Top: elements[0].Y, Width: elements[0].Width, Height: elements[0].Height}
	for _, e := range elements[1:] {
		out = out.Union(geometry.Rect{Left: e.X, Top: e.Y, Width: e.Width, Height: e.Height})
	}
	return out
}
