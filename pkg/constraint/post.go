package constraint

import (
	"math"
	"sort"

	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// ApplyPostRules runs an archetype's ordered repair rules over fresh
// strategy output, tightening the geometry the strategy produced into the
// exact shape the archetype promises (a funnel really narrows, a hub really
// sits dead center). Operates on a copy. An empty rule list centers the
// whole group on the bounds, so even unknown archetypes get a sane pass.
// Unknown rule names are skipped.
func ApplyPostRules(elements []model.ElementPosition, rules []string, bounds geometry.Rect) []model.ElementPosition {
	out := make([]model.ElementPosition, len(elements))
	copy(out, elements)
	if len(out) == 0 {
		return out
	}

	if len(rules) == 0 {
		centerGroup(out, bounds)
		return out
	}

	for _, rule := range rules {
		switch rule {
		case "center_horizontal":
			for i := range out {
				out[i].X = bounds.CenterX() - out[i].Width/2
			}
		case "center_vertical":
			for i := range out {
				out[i].Y = bounds.CenterY() - out[i].Height/2
			}
		case "equal_vertical_gaps":
			equalGaps(out, false)
		case "equal_horizontal_distribution":
			distributeCenters(out, true)
		case "decreasing_width":
			monotoneWidths(out, false)
		case "increasing_width":
			monotoneWidths(out, true)
		case "hub_center":
			hubCenter(out, bounds)
		case "spokes_radial":
			spokesRadial(out, bounds)
		case "single_circle":
			singleCircle(out, bounds)
		case "two_columns":
			twoColumns(out, bounds)
		case "equal_widths":
			equalWidths(out)
		case "square_grid":
			squareGrid(out, bounds)
		}
	}
	return out
}

// centerGroup translates all elements together so their union is centered.
func centerGroup(elements []model.ElementPosition, bounds geometry.Rect) {
	union := geometry.Rect{Left: elements[0].X, Top: elements[0].Y, Width: elements[0].Width, Height: elements[0].Height}
	for _, e := range elements[1:] {
		union = union.Union(geometry.Rect{Left: e.X, Top: e.Y, Width: e.Width, Height: e.Height})
	}
	dx := bounds.CenterX() - union.CenterX()
	dy := bounds.CenterY() - union.CenterY()
	for i := range elements {
		elements[i].X += dx
		elements[i].Y += dy
	}
}

// equalGaps redistributes the elements along one axis so every consecutive
// gap is identical, keeping the overall span.
func equalGaps(elements []model.ElementPosition, horizontal bool) {
	rects := toRects(elements)
	if horizontal {
		rects = geometry.SpaceHorizontal(rects, geometry.SpaceEqualGap, 0)
	} else {
		rects = geometry.SpaceVertical(rects, geometry.SpaceEqualGap, 0)
	}
	fromRects(elements, rects)
}

// distributeCenters spreads element centers evenly between the outermost
// two, keeping sizes.
func distributeCenters(elements []model.ElementPosition, horizontal bool) {
	rects := toRects(elements)
	if horizontal {
		rects = geometry.DistributeX(rects)
	} else {
		rects = geometry.DistributeY(rects)
	}
	fromRects(elements, rects)
}

// monotoneWidths forces widths to change strictly top to bottom, keeping
// each element's center. Any pair out of order is averaged apart just
// enough to restore monotonicity.
func monotoneWidths(elements []model.ElementPosition, increasing bool) {
	order := make([]int, len(elements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return elements[order[a]].CenterY() < elements[order[b]].CenterY()
	})

	const step = 0.05
	for k := 1; k < len(order); k++ {
		prev := &elements[order[k-1]]
		curr := &elements[order[k]]

		ok := curr.Width < prev.Width
		if increasing {
			ok = curr.Width > prev.Width
		}
		if ok {
			continue
		}

		cx := curr.CenterX()
		if increasing {
			curr.Width = prev.Width + step
		} else {
			curr.Width = math.Max(prev.Width-step, step)
		}
		curr.X = cx - curr.Width/2
	}
}

// hubCenter moves the hub (the element painted on top) to the exact center.
func hubCenter(elements []model.ElementPosition, bounds geometry.Rect) {
	hub := hubIndex(elements)
	elements[hub].X = bounds.CenterX() - elements[hub].Width/2
	elements[hub].Y = bounds.CenterY() - elements[hub].Height/2
}

// spokesRadial re-spaces every non-hub element at even angles around the
// bounds center, on the mean radius they currently occupy.
func spokesRadial(elements []model.ElementPosition, bounds geometry.Rect) {
	hub := hubIndex(elements)
	cx, cy := bounds.CenterX(), bounds.CenterY()

	var spokes []int
	total := 0.0
	for i := range elements {
		if i == hub && len(elements) > 1 {
			continue
		}
		spokes = append(spokes, i)
		total += math.Hypot(elements[i].CenterX()-cx, elements[i].CenterY()-cy)
	}
	if len(spokes) == 0 {
		return
	}
	radius := total / float64(len(spokes))

	for k, i := range spokes {
		angle := -math.Pi/2 + 2*math.Pi*float64(k)/float64(len(spokes))
		elements[i].X = cx + radius*math.Cos(angle) - elements[i].Width/2
		elements[i].Y = cy + radius*math.Sin(angle) - elements[i].Height/2
	}
}

// singleCircle places every element at even angles on one circle.
func singleCircle(elements []model.ElementPosition, bounds geometry.Rect) {
	cx, cy := bounds.CenterX(), bounds.CenterY()
	total := 0.0
	for _, e := range elements {
		total += math.Hypot(e.CenterX()-cx, e.CenterY()-cy)
	}
	radius := total / float64(len(elements))

	for i := range elements {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(elements))
		elements[i].X = cx + radius*math.Cos(angle) - elements[i].Width/2
		elements[i].Y = cy + radius*math.Sin(angle) - elements[i].Height/2
	}
}

// twoColumns snaps every element's center to the nearer of two column
// lines at the bounds' quarter points.
func twoColumns(elements []model.ElementPosition, bounds geometry.Rect) {
	left := bounds.Left + bounds.Width*0.25
	right := bounds.Left + bounds.Width*0.75
	for i := range elements {
		cx := elements[i].CenterX()
		col := left
		if math.Abs(cx-right) < math.Abs(cx-left) {
			col = right
		}
		elements[i].X = col - elements[i].Width/2
	}
}

// equalWidths sets every element to the mean width, keeping centers.
func equalWidths(elements []model.ElementPosition) {
	total := 0.0
	for _, e := range elements {
		total += e.Width
	}
	mean := total / float64(len(elements))
	for i := range elements {
		cx := elements[i].CenterX()
		elements[i].Width = mean
		elements[i].X = cx - mean/2
	}
}

// squareGrid re-places elements row-major on a near-square grid spanning
// the bounds, keeping each element's size.
func squareGrid(elements []model.ElementPosition, bounds geometry.Rect) {
	n := len(elements)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	for i := range elements {
		col := i % cols
		row := i / cols
		cx := bounds.Left + bounds.Width*(float64(col)+0.5)/float64(cols)
		cy := bounds.Top + bounds.Height*(float64(row)+0.5)/float64(rows)
		elements[i].X = cx - elements[i].Width/2
		elements[i].Y = cy - elements[i].Height/2
	}
}

// hubIndex finds the element with the highest paint order, which is how
// the radial strategy marks its hub. The first element wins ties.
func hubIndex(elements []model.ElementPosition) int {
	best := 0
	for i, e := range elements {
		if e.Z > elements[best].Z {
			best = i
		}
	}
	return best
}

func toRects(elements []model.ElementPosition) []geometry.Rect {
	out := make([]geometry.Rect, len(elements))
	for i, e := range elements {
		out[i] = geometry.Rect{Left: e.X, Top: e.Y, Width: e.Width, Height: e.Height}
	}
	return out
}

func fromRects(elements []model.ElementPosition, rects []geometry.Rect) {
	for i := range elements {
		elements[i].X = rects[i].Left
		elements[i].Y = rects[i].Top
		elements[i].Width = rects[i].Width
		elements[i].Height = rects[i].Height
	}
}
