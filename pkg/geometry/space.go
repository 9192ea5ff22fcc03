package geometry

// SpacingMode selects how gaps are computed when re-stacking shapes.
type SpacingMode int

const (
	// SpaceEqualGap keeps the first and last shapes fixed and makes every
	// gap between neighbors identical.
	SpaceEqualGap SpacingMode = iota
	// SpaceEqualCenters keeps the first and last shapes fixed and spaces
	// the centers evenly (gaps vary when sizes differ).
	SpaceEqualCenters
	// SpaceFixedGap stacks shapes from the first one using a caller-supplied
	// gap, growing in the positive axis direction.
	SpaceFixedGap
)

// SpaceVertical re-stacks the rectangles along the y axis according to mode.
// Shapes are processed in order of their current top edge; the input slice
// is not modified. Fewer than two rectangles are returned unchanged.
func SpaceVertical(rects []Rect, mode SpacingMode, gap float64) []Rect {
	return space(rects, mode, gap, false)
}

// SpaceHorizontal re-stacks the rectangles along the x axis.
func SpaceHorizontal(rects []Rect, mode SpacingMode, gap float64) []Rect {
	return space(rects, mode, gap, true)
}

func space(rects []Rect, mode SpacingMode, gap float64, horizontal bool) []Rect {
	out := make([]Rect, len(rects))
	copy(out, rects)
	if len(out) < 2 {
		return out
	}

	idx := sortedByCenter(out, horizontal)

	switch mode {
	case SpaceFixedGap:
		pos := start(out[idx[0]], horizontal)
		for _, j := range idx {
			setStart(&out[j], pos, horizontal)
			pos += extent(out[j], horizontal) + gap
		}

	case SpaceEqualCenters:
		first := center(out[idx[0]], horizontal)
		last := center(out[idx[len(idx)-1]], horizontal)
		step := (last - first) / float64(len(idx)-1)
		for i, j := range idx {
			c := first + step*float64(i)
			setStart(&out[j], c-extent(out[j], horizontal)/2, horizontal)
		}

	default: // SpaceEqualGap
		span := end(out[idx[len(idx)-1]], horizontal) - start(out[idx[0]], horizontal)
		var total float64
		for _, j := range idx {
			total += extent(out[j], horizontal)
		}
		g := (span - total) / float64(len(idx)-1)
		pos := start(out[idx[0]], horizontal)
		for _, j := range idx {
			setStart(&out[j], pos, horizontal)
			pos += extent(out[j], horizontal) + g
		}
	}
	return out
}

func start(r Rect, horizontal bool) float64 {
	if horizontal {
		return r.Left
	}
	return r.Top
}

func end(r Rect, horizontal bool) float64 {
	if horizontal {
		return r.Right()
	}
	return r.Bottom()
}

func extent(r Rect, horizontal bool) float64 {
	if horizontal {
		return r.Width
	}
	return r.Height
}

func setStart(r *Rect, v float64, horizontal bool) {
	if horizontal {
		r.Left = v
	} else {
		r.Top = v
	}
}
