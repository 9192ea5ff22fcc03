package strategy

import (
	"math"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// Grid shape-selection cost weights. The empty-cell penalty discourages
// sparse grids; the landscape bonus breaks ties toward wider-than-tall
// grids, which read better on slides.
const (
	gridEmptyCellPenalty = 0.2
	gridLandscapeBonus   = 0.1
	gridDefaultRatio     = 1.5
)

// computeGrid lays blocks out row-major in the (columns, rows) shape that
// minimizes the aspect cost, then centers the grid inside the bounds.
func computeGrid(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	n := len(input.Blocks)
	gap := rules.Param("gap", defaultGap)
	target := rules.Param("target_ratio", gridDefaultRatio)

	cols := int(rules.Param("columns", 0))
	rows := int(rules.Param("rows", 0))
	switch {
	case cols > 0 && rows <= 0:
		rows = (n + cols - 1) / cols
	case rows > 0 && cols <= 0:
		cols = (n + rows - 1) / rows
	case cols <= 0 && rows <= 0:
		cols, rows = chooseGridShape(n, bounds, gap, target)
	}
	if cols*rows < n {
		rows = (n + cols - 1) / cols
	}

	cellW := (bounds.Width - gap*float64(cols-1)) / float64(cols)
	cellH := (bounds.Height - gap*float64(rows-1)) / float64(rows)
	cellW = geometry.Clamp(cellW, minElementExtent, maxElementExtent)
	cellH = geometry.Clamp(cellH, minElementExtent, maxElementExtent)

	gridW := cellW*float64(cols) + gap*float64(cols-1)
	gridH := cellH*float64(rows) + gap*float64(rows-1)
	originX := bounds.Left + (bounds.Width-gridW)/2
	originY := bounds.Top + (bounds.Height-gridH)/2

	elements := make([]model.ElementPosition, 0, n)
	for i, b := range input.Blocks {
		col := i % cols
		row := i / cols
		elements = append(elements, model.ElementPosition{
			ID:     b.ID,
			Label:  b.DisplayLabel(),
			X:      originX + float64(col)*(cellW+gap),
			Y:      originY + float64(row)*(cellH+gap),
			Width:  cellW,
			Height: cellH,
			Color:  elementColor(b, rules, palette, i, input.LayerOf(b.ID)),
			Shape:  blockShape(b, rules),
			Z:      i,
		})
	}

	return Result{
		Elements:   elements,
		Connectors: directConnectors(connectorPairs(input, rules), elements, palette),
	}
}

// chooseGridShape picks (columns, rows) for n cells by minimizing
//
//	|cellAspect - target|/target + 0.2*emptyCells - 0.1*[cols >= rows]
//
// over every column count from 1 to n.
func chooseGridShape(n int, bounds geometry.Rect, gap, target float64) (cols, rows int) {
	bestCols, bestRows := 1, n
	bestCost := math.Inf(1)

	for c := 1; c <= n; c++ {
		r := (n + c - 1) / c
		cellW := (bounds.Width - gap*float64(c-1)) / float64(c)
		cellH := (bounds.Height - gap*float64(r-1)) / float64(r)
		if cellW <= 0 || cellH <= 0 {
			continue
		}

		aspect := cellW / cellH
		cost := math.Abs(aspect-target)/target + gridEmptyCellPenalty*float64(c*r-n)
		if c >= r {
			cost -= gridLandscapeBonus
		}
		if cost < bestCost {
			bestCost = cost
			bestCols, bestRows = c, r
		}
	}
	return bestCols, bestRows
}
