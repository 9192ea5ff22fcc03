package strategy

import (
	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

const defaultWrapAfter = 4

// computeFlow lays blocks out as a sequence that snakes: after wrap_after
// items the next lane starts and runs the opposite direction, so
// consecutive steps stay visually adjacent across the wrap. The default
// horizontal orientation runs left to right and wraps into rows below;
// orientation "vertical" runs top to bottom and wraps into columns to the
// right.
func computeFlow(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	n := len(input.Blocks)
	wrap := int(rules.Param("wrap_after", defaultWrapAfter))
	if wrap < 1 {
		wrap = 1
	}
	if wrap > n {
		wrap = n
	}
	lanes := (n + wrap - 1) / wrap
	gap := rules.Param("gap", defaultGap)
	vertical := rules.ParamString("orientation", "horizontal") == "vertical"

	cols, rows := wrap, lanes
	if vertical {
		cols, rows = lanes, wrap
	}

	itemW := geometry.Clamp((bounds.Width-gap*float64(cols-1))/float64(cols), minElementExtent, maxElementExtent)
	itemH := geometry.Clamp((bounds.Height-gap*float64(rows-1))/float64(rows), minElementExtent, maxElementExtent)

	// Center the filled grid within the bounds.
	totalW := float64(cols)*itemW + float64(cols-1)*gap
	totalH := float64(rows)*itemH + float64(rows-1)*gap
	originX := bounds.Left + (bounds.Width-totalW)/2
	originY := bounds.Top + (bounds.Height-totalH)/2

	elements := make([]model.ElementPosition, 0, n)
	for i, b := range input.Blocks {
		lane := i / wrap
		pos := i % wrap
		if lane%2 == 1 { // odd lanes run the opposite direction
			pos = wrap - 1 - pos
		}
		col, row := pos, lane
		if vertical {
			col, row = lane, pos
		}
		elements = append(elements, model.ElementPosition{
			ID:     b.ID,
			Label:  b.DisplayLabel(),
			X:      originX + float64(col)*(itemW+gap),
			Y:      originY + float64(row)*(itemH+gap),
			Width:  itemW,
			Height: itemH,
			Color:  elementColor(b, rules, palette, i, input.LayerOf(b.ID)),
			Shape:  blockShape(b, rules),
			Z:      i,
		})
	}

	return Result{
		Elements:   elements,
		Connectors: flowConnectors(input, rules, elements, wrap, vertical, palette),
	}
}

// flowConnectors joins the sequence. Within a lane the connector is a direct
// edge-to-edge segment; across a wrap it passes through the midpoint of the
// gap between the two lanes so the line does not cut through blocks.
func flowConnectors(input model.DiagramInput, rules archetype.Rules, elements []model.ElementPosition, wrap int, vertical bool, palette model.ColorPalette) []model.ConnectorPosition {
	pairs := connectorPairs(input, rules)
	if len(pairs) == 0 {
		return nil
	}
	if len(input.Connectors) > 0 {
		// explicit connectors keep their requested endpoints
		return directConnectors(pairs, elements, palette)
	}

	byID := make(map[string]int, len(elements))
	for i, e := range elements {
		byID[e.ID] = i
	}
	color := palette.Resolve(model.TokenConnector)

	var out []model.ConnectorPosition
	for _, p := range pairs {
		fi, okFrom := byID[p.from]
		ti, okTo := byID[p.to]
		if !okFrom || !okTo {
			continue
		}
		from, to := elements[fi], elements[ti]
		conn := model.ConnectorPosition{
			FromID: p.from,
			ToID:   p.to,
			Style:  p.style,
			Color:  color,
		}

		switch {
		case fi/wrap == ti/wrap:
			conn.Start = edgeAnchor(from, model.Point{X: to.CenterX(), Y: to.CenterY()})
			conn.End = edgeAnchor(to, model.Point{X: from.CenterX(), Y: from.CenterY()})
		case vertical:
			// Wrap: leave the last block rightward, pass through the
			// inter-column midpoint, enter the next block from the left.
			midX := (from.X + from.Width + to.X) / 2
			conn.Start = model.Point{X: from.X + from.Width, Y: from.CenterY()}
			conn.End = model.Point{X: to.X, Y: to.CenterY()}
			conn.Waypoints = []model.Point{
				{X: midX, Y: from.CenterY()},
				{X: midX, Y: to.CenterY()},
			}
		default:
			// Wrap: leave the last block downward, pass through the
			// inter-row midpoint, enter the next block from above.
			midY := (from.Y + from.Height + to.Y) / 2
			conn.Start = model.Point{X: from.CenterX(), Y: from.Y + from.Height}
			conn.End = model.Point{X: to.CenterX(), Y: to.Y}
			conn.Waypoints = []model.Point{
				{X: from.CenterX(), Y: midY},
				{X: to.CenterX(), Y: midY},
			}
		}
		out = append(out, conn)
	}
	return out
}
