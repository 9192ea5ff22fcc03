package strategy

import (
	"math"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// computeRadial lays blocks out in one of three circular arrangements:
//
//   - rings=1: concentric rings, first block outermost, each ring strictly
//     smaller than the previous, z reversed so outer rings paint behind.
//   - hub=1: the first block becomes an enlarged centered hub and the rest
//     are spaced evenly by angle around it, starting at the top.
//   - otherwise: every block sits on one circle (cycle arrangement).
func computeRadial(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	if rules.Param("rings", 0) > 0 {
		return radialRings(input, rules, bounds, palette)
	}
	return radialCircle(input, rules, bounds, palette)
}

func radialRings(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	n := len(input.Blocks)
	outer := math.Min(bounds.Width, bounds.Height)
	cx := bounds.CenterX()
	cy := bounds.CenterY()

	elements := make([]model.ElementPosition, 0, n)
	for i, b := range input.Blocks {
		// Strictly decreasing diameters: the i-th ring spans (n-i)/n of
		// the outer diameter.
		d := outer * float64(n-i) / float64(n)
		elements = append(elements, model.ElementPosition{
			ID:     b.ID,
			Label:  b.DisplayLabel(),
			X:      cx - d/2,
			Y:      cy - d/2,
			Width:  d,
			Height: d,
			Color:  elementColor(b, rules, palette, i, input.LayerOf(b.ID)),
			Shape:  "ellipse",
			Z:      i, // outer ring first (behind), inner rings on top
		})
	}

	return Result{Elements: elements}
}

func radialCircle(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	blocks := input.Blocks
	hasHub := rules.Param("hub", 0) > 0 && len(blocks) > 1
	hubScale := rules.Param("hub_scale", 1.5)
	radiusRatio := rules.Param("radius_ratio", 0.78)

	cx := bounds.CenterX()
	cy := bounds.CenterY()

	spokes := blocks
	if hasHub {
		spokes = blocks[1:]
	}

	// Size satellites from the circumference so neighbors don't collide.
	size := math.Min(bounds.Width, bounds.Height) / 4
	if len(spokes) > 0 {
		byCount := math.Min(bounds.Width, bounds.Height) * math.Pi * radiusRatio / float64(len(spokes)) / 2
		size = math.Min(size, byCount)
	}
	size = geometry.Clamp(size, minElementExtent, maxElementExtent)

	radius := radiusRatio*math.Min(bounds.Width, bounds.Height)/2 - size/2
	if radius < size/2 {
		radius = size / 2
	}

	var elements []model.ElementPosition
	zNext := 0
	colorBase := 0

	if hasHub {
		colorBase = 1
		hubSize := geometry.Clamp(size*hubScale, minElementExtent, maxElementExtent)
		b := blocks[0]
		elements = append(elements, model.ElementPosition{
			ID:     b.ID,
			Label:  b.DisplayLabel(),
			X:      cx - hubSize/2,
			Y:      cy - hubSize/2,
			Width:  hubSize,
			Height: hubSize,
			Color:  elementColor(b, rules, palette, 0, input.LayerOf(b.ID)),
			Shape:  blockShape(b, rules),
			Z:      len(blocks), // hub paints on top of its spokes
		})
	}

	for i, b := range spokes {
		// Start at the top (-90°) and walk clockwise.
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(spokes))
		elements = append(elements, model.ElementPosition{
			ID:     b.ID,
			Label:  b.DisplayLabel(),
			X:      cx + radius*math.Cos(angle) - size/2,
			Y:      cy + radius*math.Sin(angle) - size/2,
			Width:  size,
			Height: size,
			Color:  elementColor(b, rules, palette, i+colorBase, input.LayerOf(b.ID)),
			Shape:  blockShape(b, rules),
			Z:      zNext,
		})
		zNext++
	}

	return Result{
		Elements:   elements,
		Connectors: directConnectors(connectorPairs(input, rules), elements, palette),
	}
}
