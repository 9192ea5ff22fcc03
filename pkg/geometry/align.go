package geometry

// AlignEdge names which edge or center line of each rectangle is aligned.
type AlignEdge int

const (
	AlignLeft AlignEdge = iota
	AlignCenterX
	AlignRight
	AlignTop
	AlignMiddleY
	AlignBottom
)

// AlignRef selects the reference line when no explicit coordinate is given.
type AlignRef int

const (
	// RefExtreme aligns to the outermost matching edge of the set
	// (leftmost for AlignLeft, rightmost for AlignRight, and so on).
	RefExtreme AlignRef = iota
	// RefAverage aligns to the mean of the matching edges.
	RefAverage
)

// AlignTo moves every rectangle so its chosen edge sits at the explicit
// coordinate `at`. The input slice is not modified.
func AlignTo(rects []Rect, edge AlignEdge, at float64) []Rect {
	out := make([]Rect, len(rects))
	for i, r := range rects {
		out[i] = moveEdge(r, edge, at)
	}
	return out
}

// Align moves every rectangle so its chosen edge sits on a reference line
// derived from the set itself. With fewer than two rectangles the input is
// returned unchanged (copied).
func Align(rects []Rect, edge AlignEdge, ref AlignRef) []Rect {
	if len(rects) < 2 {
		out := make([]Rect, len(rects))
		copy(out, rects)
		return out
	}
	return AlignTo(rects, edge, referenceLine(rects, edge, ref))
}

func referenceLine(rects []Rect, edge AlignEdge, ref AlignRef) float64 {
	val := edgeValue(rects[0], edge)
	if ref == RefAverage {
		sum := 0.0
		for _, r := range rects {
			sum += edgeValue(r, edge)
		}
		return sum / float64(len(rects))
	}
	for _, r := range rects[1:] {
		v := edgeValue(r, edge)
		switch edge {
		case AlignLeft, AlignTop:
			if v < val {
				val = v
			}
		case AlignRight, AlignBottom:
			if v > val {
				val = v
			}
		default: // center lines have no extreme; fall back to average
			return referenceLine(rects, edge, RefAverage)
		}
	}
	return val
}

func edgeValue(r Rect, edge AlignEdge) float64 {
	switch edge {
	case AlignLeft:
		return r.Left
	case AlignCenterX:
		return r.CenterX()
	case AlignRight:
		return r.Right()
	case AlignTop:
		return r.Top
	case AlignMiddleY:
		return r.CenterY()
	default:
		return r.Bottom()
	}
}

func moveEdge(r Rect, edge AlignEdge, at float64) Rect {
	switch edge {
	case AlignLeft:
		r.Left = at
	case AlignCenterX:
		r.Left = at - r.Width/2
	case AlignRight:
		r.Left = at - r.Width
	case AlignTop:
		r.Top = at
	case AlignMiddleY:
		r.Top = at - r.Height/2
	default:
		r.Top = at - r.Height
	}
	return r
}

// DistributeX spaces three or more rectangles so their centers are evenly
// distributed between the current leftmost and rightmost centers. Order is
// preserved by sorting on the current center. Fewer than three rectangles
// are returned unchanged.
func DistributeX(rects []Rect) []Rect {
	return distribute(rects, true)
}

// DistributeY is DistributeX along the vertical axis.
func DistributeY(rects []Rect) []Rect {
	return distribute(rects, false)
}

func distribute(rects []Rect, horizontal bool) []Rect {
	out := make([]Rect, len(rects))
	copy(out, rects)
	if len(out) < 3 {
		return out
	}

	idx := sortedByCenter(out, horizontal)

	first := center(out[idx[0]], horizontal)
	last := center(out[idx[len(idx)-1]], horizontal)
	step := (last - first) / float64(len(idx)-1)

	for i, j := range idx {
		target := first + step*float64(i)
		if horizontal {
			out[j].Left = target - out[j].Width/2
		} else {
			out[j].Top = target - out[j].Height/2
		}
	}
	return out
}

func center(r Rect, horizontal bool) float64 {
	if horizontal {
		return r.CenterX()
	}
	return r.CenterY()
}

// sortedByCenter returns index order by center along the chosen axis using
// insertion sort; layout sets are small enough that simplicity wins.
func sortedByCenter(rects []Rect, horizontal bool) []int {
	idx := make([]int, len(rects))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && center(rects[idx[j]], horizontal) < center(rects[idx[j-1]], horizontal); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}
