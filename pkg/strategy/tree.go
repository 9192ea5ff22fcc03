package strategy

import (
	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// treeEdge is one parent→child relation in the detected hierarchy.
type treeEdge struct {
	parent, child string
}

// computeTree lays blocks out as a rooted forest. Hierarchy detection, in
// order: explicit parent_id metadata, input connectors, adjacent layers.
// When no hierarchy is detectable the strategy degrades to a simple linear
// stack with a warning instead of failing.
func computeTree(input model.DiagramInput, rules archetype.Rules, bounds geometry.Rect, palette model.ColorPalette) Result {
	edges := detectEdges(input)
	if len(edges) == 0 && !hasExplicitLevels(input) {
		linear := rules
		linear.Strategy = archetype.StrategyStack
		res := computeStack(input, linear, bounds, palette)
		res.Warnings = append(res.Warnings, "no hierarchy detected, using linear layout")
		return res
	}

	levels := assignLevels(input, edges)

	// Bucket blocks per level, preserving input order.
	maxLevel := 0
	for _, lv := range levels {
		if lv > maxLevel {
			maxLevel = lv
		}
	}
	byLevel := make([][]model.BlockData, maxLevel+1)
	for _, b := range input.Blocks {
		lv := levels[b.ID]
		byLevel[lv] = append(byLevel[lv], b)
	}

	orientation := rules.ParamString("orientation", "top_down")
	gap := rules.Param("gap", defaultGap)
	vertical := orientation == "top_down" || orientation == "bottom_up"

	// Node size: the orientation axis is divided among levels, the cross
	// axis among the widest level.
	widest := 1
	for _, row := range byLevel {
		if len(row) > widest {
			widest = len(row)
		}
	}

	var nodeW, nodeH float64
	if vertical {
		nodeH = geometry.Clamp((bounds.Height-gap*float64(maxLevel))/float64(maxLevel+1), minElementExtent, maxElementExtent)
		nodeW = geometry.Clamp((bounds.Width-gap*float64(widest-1))/float64(widest), minElementExtent, maxElementExtent)
	} else {
		nodeW = geometry.Clamp((bounds.Width-gap*float64(maxLevel))/float64(maxLevel+1), minElementExtent, maxElementExtent)
		nodeH = geometry.Clamp((bounds.Height-gap*float64(widest-1))/float64(widest), minElementExtent, maxElementExtent)
	}

	elements := make([]model.ElementPosition, 0, len(input.Blocks))
	for lv, row := range byLevel {
		for i, b := range row {
			var x, y float64
			if vertical {
				// Evenly spread the row's centers across the bounds.
				cx := bounds.Left + bounds.Width*(float64(i)+0.5)/float64(len(row))
				x = cx - nodeW/2
				if orientation == "bottom_up" {
					y = bounds.Bottom() - float64(lv+1)*nodeH - float64(lv)*gap
				} else {
					y = bounds.Top + float64(lv)*(nodeH+gap)
				}
			} else {
				cy := bounds.Top + bounds.Height*(float64(i)+0.5)/float64(len(row))
				y = cy - nodeH/2
				if orientation == "right_left" {
					x = bounds.Right() - float64(lv+1)*nodeW - float64(lv)*gap
				} else {
					x = bounds.Left + float64(lv)*(nodeW+gap)
				}
			}
			elements = append(elements, model.ElementPosition{
				ID:     b.ID,
				Label:  b.DisplayLabel(),
				X:      x,
				Y:      y,
				Width:  nodeW,
				Height: nodeH,
				Color:  treeColor(b, rules, palette, lv, len(elements), input),
				Shape:  blockShape(b, rules),
				Z:      len(elements),
			})
		}
	}

	return Result{
		Elements:   elements,
		Connectors: treeConnectors(input, rules, edges, elements, orientation, palette),
	}
}

func treeColor(b model.BlockData, rules archetype.Rules, palette model.ColorPalette, level, index int, input model.DiagramInput) string {
	if b.Color != "" {
		return palette.Resolve(b.Color)
	}
	if rules.Element.ColorRule == "by_layer" {
		return palette.Accent(level)
	}
	return elementColor(b, rules, palette, index, input.LayerOf(b.ID))
}

// detectEdges extracts parent→child edges from explicit parent_id metadata
// first, then input connectors, then adjacent layers (each block in layer
// i+1 maps proportionally onto a parent in layer i).
func detectEdges(input model.DiagramInput) []treeEdge {
	var edges []treeEdge
	for _, b := range input.Blocks {
		if p := b.MetaString(model.MetaParentID); p != "" {
			if _, ok := input.BlockByID(p); ok {
				edges = append(edges, treeEdge{parent: p, child: b.ID})
			}
		}
	}
	if len(edges) > 0 {
		return edges
	}

	for _, c := range input.Connectors {
		edges = append(edges, treeEdge{parent: c.FromID, child: c.ToID})
	}
	if len(edges) > 0 {
		return edges
	}

	for i := 0; i+1 < len(input.Layers); i++ {
		parents := input.Layers[i].BlockIDs
		children := input.Layers[i+1].BlockIDs
		if len(parents) == 0 {
			continue
		}
		for j, child := range children {
			p := j * len(parents) / max(1, len(children))
			if p >= len(parents) {
				p = len(parents) - 1
			}
			edges = append(edges, treeEdge{parent: parents[p], child: child})
		}
	}
	return edges
}

func hasExplicitLevels(input model.DiagramInput) bool {
	for _, b := range input.Blocks {
		if _, ok := b.MetaFloat(model.MetaLevel); ok {
			return true
		}
	}
	return false
}

// assignLevels computes each block's depth. Explicit level metadata wins;
// otherwise levels come from a topological pass over the edges (each node
// one past its deepest parent), so roots sit at level 0. Blocks on a cycle
// keep their default level rather than blocking the walk.
func assignLevels(input model.DiagramInput, edges []treeEdge) map[string]int {
	levels := make(map[string]int, len(input.Blocks))
	inDegree := make(map[string]int, len(input.Blocks))
	children := make(map[string][]string)

	for _, b := range input.Blocks {
		levels[b.ID] = 0
	}
	explicit := false
	for _, b := range input.Blocks {
		if lv, ok := b.MetaFloat(model.MetaLevel); ok {
			levels[b.ID] = int(lv)
			explicit = true
		}
	}
	if explicit {
		return levels
	}

	for _, e := range edges {
		children[e.parent] = append(children[e.parent], e.child)
		inDegree[e.child]++
	}

	var queue []string
	for _, b := range input.Blocks {
		if inDegree[b.ID] == 0 {
			queue = append(queue, b.ID)
		}
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range children[curr] {
			if lv := levels[curr] + 1; lv > levels[child] {
				levels[child] = lv
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return levels
}

// treeConnectors draws each hierarchy edge from the parent's child-facing
// border to the child's parent-facing border, per orientation.
func treeConnectors(input model.DiagramInput, rules archetype.Rules, edges []treeEdge, elements []model.ElementPosition, orientation string, palette model.ColorPalette) []model.ConnectorPosition {
	if rules.Connector.Pattern == archetype.PatternNone {
		return nil
	}
	byID := make(map[string]model.ElementPosition, len(elements))
	for _, e := range elements {
		byID[e.ID] = e
	}

	color := palette.Resolve(model.TokenConnector)
	var out []model.ConnectorPosition
	for _, edge := range edges {
		parent, okP := byID[edge.parent]
		child, okC := byID[edge.child]
		if !okP || !okC {
			continue
		}

		var start, end model.Point
		switch orientation {
		case "bottom_up":
			start = model.Point{X: parent.CenterX(), Y: parent.Y}
			end = model.Point{X: child.CenterX(), Y: child.Y + child.Height}
		case "left_right":
			start = model.Point{X: parent.X + parent.Width, Y: parent.CenterY()}
			end = model.Point{X: child.X, Y: child.CenterY()}
		case "right_left":
			start = model.Point{X: parent.X, Y: parent.CenterY()}
			end = model.Point{X: child.X + child.Width, Y: child.CenterY()}
		default: // top_down
			start = model.Point{X: parent.CenterX(), Y: parent.Y + parent.Height}
			end = model.Point{X: child.CenterX(), Y: child.Y}
		}

		out = append(out, model.ConnectorPosition{
			FromID: edge.parent,
			ToID:   edge.child,
			Start:  start,
			End:    end,
			Style:  rules.Connector.Style,
			Color:  color,
		})
	}
	return out
}
