package geometry

import "testing"

func TestAlignToLeft(t *testing.T) {
	rects := []Rect{{Left: 1, Top: 0, Width: 2, Height: 1}, {Left: 4, Top: 2, Width: 1, Height: 1}}
	got := AlignTo(rects, AlignLeft, 0.5)
	for i, r := range got {
		if r.Left != 0.5 {
			t.Errorf("rect %d Left = %v, want 0.5", i, r.Left)
		}
	}
	// input untouched
	if rects[0].Left != 1 {
		t.Error("AlignTo mutated its input")
	}
}

func TestAlignExtreme(t *testing.T) {
	rects := []Rect{
		{Left: 2, Top: 0, Width: 1, Height: 1},
		{Left: 1, Top: 2, Width: 1, Height: 1},
		{Left: 3, Top: 4, Width: 1, Height: 1},
	}
	got := Align(rects, AlignLeft, RefExtreme)
	for i, r := range got {
		if r.Left != 1 {
			t.Errorf("rect %d Left = %v, want leftmost 1", i, r.Left)
		}
	}
}

func TestAlignCenterAverages(t *testing.T) {
	rects := []Rect{
		{Left: 0, Top: 0, Width: 2, Height: 1}, // center 1
		{Left: 2, Top: 2, Width: 2, Height: 1}, // center 3
	}
	got := Align(rects, AlignCenterX, RefExtreme) // centers fall back to average
	for i, r := range got {
		if !almostEqual(r.CenterX(), 2) {
			t.Errorf("rect %d CenterX = %v, want 2", i, r.CenterX())
		}
	}
}

func TestDistributeX(t *testing.T) {
	rects := []Rect{
		{Left: 0, Top: 0, Width: 1, Height: 1},  // center 0.5
		{Left: 1, Top: 0, Width: 1, Height: 1},  // center 1.5
		{Left: 8, Top: 0, Width: 1, Height: 1},  // center 8.5
	}
	got := DistributeX(rects)
	want := []float64{0.5, 4.5, 8.5}
	for i, r := range got {
		if !almostEqual(r.CenterX(), want[i]) {
			t.Errorf("rect %d CenterX = %v, want %v", i, r.CenterX(), want[i])
		}
	}
}

func TestDistributeNeedsThree(t *testing.T) {
	rects := []Rect{{Left: 0, Width: 1}, {Left: 9, Width: 1}}
	got := DistributeX(rects)
	if got[0] != rects[0] || got[1] != rects[1] {
		t.Error("DistributeX changed a two-element set")
	}
}

func TestSpaceVerticalEqualGap(t *testing.T) {
	rects := []Rect{
		{Top: 0, Height: 1, Width: 1},
		{Top: 1.2, Height: 1, Width: 1},
		{Top: 5, Height: 1, Width: 1},
	}
	got := SpaceVertical(rects, SpaceEqualGap, 0)

	// Span is 0..6 with 3 units of shape, so each gap is 1.5.
	gap1 := got[1].Top - got[0].Bottom()
	gap2 := got[2].Top - got[1].Bottom()
	if !almostEqual(gap1, 1.5) || !almostEqual(gap2, 1.5) {
		t.Errorf("gaps = %v, %v, want 1.5 each", gap1, gap2)
	}
	if !almostEqual(got[0].Top, 0) || !almostEqual(got[2].Bottom(), 6) {
		t.Error("equal-gap spacing moved the span endpoints")
	}
}

func TestSpaceVerticalFixedGap(t *testing.T) {
	rects := []Rect{
		{Top: 0, Height: 1, Width: 1},
		{Top: 3, Height: 2, Width: 1},
		{Top: 9, Height: 1, Width: 1},
	}
	got := SpaceVertical(rects, SpaceFixedGap, 0.5)

	if !almostEqual(got[1].Top, 1.5) {
		t.Errorf("second Top = %v, want 1.5", got[1].Top)
	}
	if !almostEqual(got[2].Top, 4) {
		t.Errorf("third Top = %v, want 4", got[2].Top)
	}
}

func TestSpaceHorizontalEqualCenters(t *testing.T) {
	rects := []Rect{
		{Left: 0, Width: 2, Height: 1},  // center 1
		{Left: 2, Width: 2, Height: 1},  // center 3
		{Left: 6, Width: 2, Height: 1},  // center 7
	}
	got := SpaceHorizontal(rects, SpaceEqualCenters, 0)
	want := []float64{1, 4, 7}
	for i, r := range got {
		if !almostEqual(r.CenterX(), want[i]) {
			t.Errorf("rect %d CenterX = %v, want %v", i, r.CenterX(), want[i])
		}
	}
}
