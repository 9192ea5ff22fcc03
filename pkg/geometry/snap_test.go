package geometry

import "testing"

func TestSnapGridPitch(t *testing.T) {
	s := Snapper{GridPitch: 100, Threshold: 50}

	tests := []struct {
		v    float64
		want float64
	}{
		{100, 100}, // already on grid
		{140, 100}, // |140-100| <= 50
		{160, 160}, // |160-100| = 60 > 50, unchanged
		{249, 200}, // |249-200| <= 50
		{251, 251}, // past the midpoint, stays put
	}
	for _, tt := range tests {
		if got := s.Snap(tt.v); got != tt.want {
			t.Errorf("Snap(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestSnapPriorityOrder(t *testing.T) {
	// Canvas center is tried after the grid, so when both are in range
	// the center wins.
	s := Snapper{GridPitch: 1, Extent: 10.6, Threshold: 0.4}
	if got := s.Snap(5.1); got != 5.3 {
		t.Errorf("Snap(5.1) = %v, want canvas center 5.3", got)
	}
}

func TestSnapGuides(t *testing.T) {
	s := Snapper{
		Guides:    []Guide{{Name: "margin", Pos: 0.5}},
		Threshold: 0.1,
	}
	if got := s.Snap(0.55); got != 0.5 {
		t.Errorf("Snap(0.55) = %v, want guide 0.5", got)
	}
	if got := s.Snap(0.7); got != 0.7 {
		t.Errorf("Snap(0.7) = %v, want unchanged", got)
	}
}

func TestSnapDisabled(t *testing.T) {
	var s Snapper // all targets disabled
	if got := s.Snap(3.7); got != 3.7 {
		t.Errorf("Snap with no targets = %v, want 3.7", got)
	}
}
