package geometry

import (
	"strings"
	"testing"
)

func TestWrapWords(t *testing.T) {
	// At size 10, one char is 10*0.55/72 ≈ 0.0764in.
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "fits on one line",
			text:     "short",
			maxWidth: 2,
			want:     []string{"short"},
		},
		{
			name:     "wraps on word boundary",
			text:     "alpha beta gamma",
			maxWidth: 0.8, // ~10 chars
			want:     []string{"alpha beta", "gamma"},
		},
		{
			name:     "long word stands alone",
			text:     "hi extraordinarily no",
			maxWidth: 0.4, // ~5 chars
			want:     []string{"hi", "extraordinarily", "no"},
		},
		{
			name:     "empty text",
			text:     "",
			maxWidth: 1,
			want:     []string{""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapWords(tt.text, 10, tt.maxWidth)
			if len(got) != len(tt.want) {
				t.Fatalf("WrapWords() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFitShrinkRespectsMinimum(t *testing.T) {
	box := Rect{Width: 0.5, Height: 0.3}
	res := FitText("a label that cannot possibly fit in half an inch", box, FitOptions{
		Policy:      FitShrink,
		MinFontSize: 9,
		MaxFontSize: 24,
	})
	if res.FontSize != 9 {
		t.Errorf("FontSize = %v, want floor 9", res.FontSize)
	}
	if len(res.Lines) == 0 {
		t.Fatal("no lines returned")
	}
}

func TestFitShrinkPicksLargestFitting(t *testing.T) {
	box := Rect{Width: 3, Height: 1}
	res := FitText("Revenue", box, FitOptions{Policy: FitShrink})
	if res.FontSize != DefaultMaxFontSize {
		t.Errorf("FontSize = %v, want max %v (plenty of room)", res.FontSize, DefaultMaxFontSize)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "Revenue" {
		t.Errorf("Lines = %q", res.Lines)
	}
}

func TestFitTruncate(t *testing.T) {
	box := Rect{Width: 1, Height: 0.5}
	res := FitText("an unreasonably long single label", box, FitOptions{Policy: FitTruncate})
	if len(res.Lines) != 1 {
		t.Fatalf("Lines = %q, want single line", res.Lines)
	}
	if !strings.HasSuffix(res.Lines[0], "…") {
		t.Errorf("truncated line %q should end with ellipsis", res.Lines[0])
	}
	if MeasureString(res.Lines[0], res.FontSize) > box.Width+1e-9 {
		t.Error("truncated line wider than box")
	}
}

func TestFitExpandGrowsBox(t *testing.T) {
	box := Rect{Width: 1.5, Height: 0.2}
	res := FitText("first second third fourth fifth", box, FitOptions{Policy: FitExpand, MaxFontSize: 14})
	if res.Box.Height <= box.Height {
		t.Errorf("Box.Height = %v, want > %v", res.Box.Height, box.Height)
	}
	need := LineHeight(res.FontSize) * float64(len(res.Lines))
	if res.Box.Height < need-1e-9 {
		t.Errorf("expanded box %v shorter than text %v", res.Box.Height, need)
	}
}

func TestTruncateEllipsisKeepsOneChar(t *testing.T) {
	got := TruncateEllipsis("abcdef", 100, 0.01)
	if !strings.HasSuffix(got, "…") || len([]rune(got)) < 2 {
		t.Errorf("TruncateEllipsis = %q", got)
	}
}
