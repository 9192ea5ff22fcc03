package strategy

import (
	"math"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// computeFreeform honors explicit per-block x/y metadata and auto-places
// the rest. Coordinates in (0,1] are treated as fractions of the bounds;
// larger values are absolute inches. Blocks without coordinates fall into
// an approximately square grid. This is also the fallback strategy, so it
// accepts any input.
func computeFreeform(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	n := len(input.Blocks)
	gap := rules.Param("gap", defaultGap)

	// Auto grid shape for unplaced blocks.
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	cellW := geometry.Clamp((bounds.Width-gap*float64(cols-1))/float64(cols), minElementExtent, maxElementExtent)
	cellH := geometry.Clamp((bounds.Height-gap*float64(rows-1))/float64(rows), minElementExtent, maxElementExtent)

	totalW := float64(cols)*cellW + float64(cols-1)*gap
	totalH := float64(rows)*cellH + float64(rows-1)*gap
	originX := bounds.Left + (bounds.Width-totalW)/2
	originY := bounds.Top + (bounds.Height-totalH)/2

	elements := make([]model.ElementPosition, 0, n)
	auto := 0
	for i, b := range input.Blocks {
		e := model.ElementPosition{
			ID:     b.ID,
			Label:  b.DisplayLabel(),
			Width:  cellW,
			Height: cellH,
			Color:  elementColor(b, rules, palette, i, input.LayerOf(b.ID)),
			Shape:  blockShape(b, rules),
			Z:      i,
		}

		x, hasX := b.MetaFloat(model.MetaX)
		y, hasY := b.MetaFloat(model.MetaY)
		if hasX && hasY {
			e.X = resolveCoord(x, bounds.Left, bounds.Width) - e.Width/2
			e.Y = resolveCoord(y, bounds.Top, bounds.Height) - e.Height/2
		} else {
			e.X = originX + float64(auto%cols)*(cellW+gap)
			e.Y = originY + float64(auto/cols)*(cellH+gap)
			auto++
		}
		elements = append(elements, e)
	}

	return Result{
		Elements:   elements,
		Connectors: directConnectors(connectorPairs(input, rules), elements, palette),
	}
}

// resolveCoord maps a metadata coordinate to a center position: fractions
// of the axis when v is in (0,1], absolute canvas inches otherwise.
func resolveCoord(v, origin, extent float64) float64 {
	if v > 0 && v <= 1 {
		return origin + v*extent
	}
	return v
}
