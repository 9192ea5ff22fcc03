package strategy

import (
	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// computeStack lays blocks out as a vertical or horizontal sequence whose
// per-item extent interpolates linearly from start_ratio to end_ratio of
// the available cross-axis span. A funnel runs 1.0 → taper, a pyramid the
// reverse; equal ratios give an even band (timeline).
//
// Earlier stack items get higher z so tapering shapes paint over the wider
// neighbors behind them.
func computeStack(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	n := len(input.Blocks)
	gap := rules.Param("gap", defaultGap)
	startRatio := rules.Param("start_ratio", 1.0)
	endRatio := rules.Param("end_ratio", 1.0)
	horizontal := rules.ParamString("orientation", "vertical") == "horizontal"

	// Axis extent of each item: the stacking axis is divided evenly.
	var itemExtent float64
	if horizontal {
		itemExtent = (bounds.Width - gap*float64(n-1)) / float64(n)
	} else {
		itemExtent = (bounds.Height - gap*float64(n-1)) / float64(n)
	}
	itemExtent = geometry.Clamp(itemExtent, minElementExtent, maxElementExtent)

	stackSpan := itemExtent*float64(n) + gap*float64(n-1)

	elements := make([]model.ElementPosition, 0, n)
	for i, b := range input.Blocks {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		ratio := geometry.Lerp(startRatio, endRatio, t)

		var e model.ElementPosition
		if horizontal {
			cross := geometry.Clamp(bounds.Height*ratio, minElementExtent, bounds.Height)
			left := bounds.Left + (bounds.Width-stackSpan)/2 + float64(i)*(itemExtent+gap)
			e = model.ElementPosition{
				X:      left,
				Y:      bounds.Top + (bounds.Height-cross)/2,
				Width:  itemExtent,
				Height: cross,
			}
		} else {
			cross := geometry.Clamp(bounds.Width*ratio, minElementExtent, bounds.Width)
			top := bounds.Top + (bounds.Height-stackSpan)/2 + float64(i)*(itemExtent+gap)
			e = model.ElementPosition{
				X:      bounds.Left + (bounds.Width-cross)/2,
				Y:      top,
				Width:  cross,
				Height: itemExtent,
			}
		}

		e.ID = b.ID
		e.Label = b.DisplayLabel()
		e.Color = elementColor(b, rules, palette, i, input.LayerOf(b.ID))
		e.Shape = blockShape(b, rules)
		e.Z = n - 1 - i
		elements = append(elements, e)
	}

	return Result{
		Elements:   elements,
		Connectors: directConnectors(connectorPairs(input, rules), elements, palette),
	}
}
