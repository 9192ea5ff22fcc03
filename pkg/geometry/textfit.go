package geometry

import (
	"math"
	"strings"
)

// Font estimation ratios. Real glyph metrics live in the renderer; the
// layout engine only needs a stable approximation that errs slightly wide
// so fitted text never overflows its shape.
const (
	// CharWidthRatio approximates average glyph width as a fraction of
	// the font size.
	CharWidthRatio = 0.55
	// LineHeightRatio approximates line height as a fraction of font size.
	LineHeightRatio = 1.2

	// DefaultMinFontSize and DefaultMaxFontSize bound fitted label sizes,
	// in points.
	DefaultMinFontSize = 10.0
	DefaultMaxFontSize = 28.0

	pointsPerInch = 72.0
)

// CharWidth returns the estimated width of one character in inches.
func CharWidth(fontSize float64) float64 {
	return fontSize * CharWidthRatio / pointsPerInch
}

// LineHeight returns the estimated height of one text line in inches.
func LineHeight(fontSize float64) float64 {
	return fontSize * LineHeightRatio / pointsPerInch
}

// MeasureString returns the estimated width of s in inches at fontSize.
func MeasureString(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * CharWidth(fontSize)
}

// FitPolicy selects how text is made to fit its box.
type FitPolicy int

const (
	// FitShrink wraps the text and lowers the font size until it fits,
	// bounded below by MinFontSize.
	FitShrink FitPolicy = iota
	// FitTruncate keeps a single line and cuts it with an ellipsis.
	FitTruncate
	// FitExpand keeps the font size and grows the box to fit the text.
	FitExpand
	// FitWrap greedily word-wraps at the maximum size without shrinking;
	// the text may overflow vertically.
	FitWrap
)

// FitOptions tunes FitText. Zero values select the defaults.
type FitOptions struct {
	Policy      FitPolicy
	MinFontSize float64
	MaxFontSize float64
	Bold        bool
}

// FitResult is measured, ready-to-render text.
type FitResult struct {
	Lines    []string
	FontSize float64
	Bold     bool
	// Box is the rectangle the text was fitted into. It differs from the
	// input only under FitExpand.
	Box Rect
}

func (o FitOptions) withDefaults() FitOptions {
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = DefaultMaxFontSize
	}
	if o.MaxFontSize < o.MinFontSize {
		o.MaxFontSize = o.MinFontSize
	}
	return o
}

// FitText fits text into box according to the policy. It never returns an
// empty result: blank text yields a single empty line at the minimum size.
func FitText(text string, box Rect, opts FitOptions) FitResult {
	opts = opts.withDefaults()
	text = strings.TrimSpace(text)
	if text == "" {
		return FitResult{Lines: []string{""}, FontSize: opts.MinFontSize, Bold: opts.Bold, Box: box}
	}

	switch opts.Policy {
	case FitTruncate:
		size := sizeForLine(text, box, opts)
		return FitResult{
			Lines:    []string{TruncateEllipsis(text, size, box.Width)},
			FontSize: size,
			Bold:     opts.Bold,
			Box:      box,
		}

	case FitExpand:
		lines := WrapWords(text, opts.MaxFontSize, box.Width)
		need := LineHeight(opts.MaxFontSize) * float64(len(lines))
		out := box
		if need > out.Height {
			out.Height = need
		}
		for _, l := range lines {
			if w := MeasureString(l, opts.MaxFontSize); w > out.Width {
				out.Width = w
			}
		}
		return FitResult{Lines: lines, FontSize: opts.MaxFontSize, Bold: opts.Bold, Box: out}

	case FitWrap:
		return FitResult{
			Lines:    WrapWords(text, opts.MaxFontSize, box.Width),
			FontSize: opts.MaxFontSize,
			Bold:     opts.Bold,
			Box:      box,
		}

	default: // FitShrink
		for size := opts.MaxFontSize; size >= opts.MinFontSize; size-- {
			lines := WrapWords(text, size, box.Width)
			if fits(lines, size, box) {
				return FitResult{Lines: lines, FontSize: size, Bold: opts.Bold, Box: box}
			}
		}
		// Nothing fits even at the minimum: wrap at minimum and truncate
		// to the line budget so the overflow is bounded.
		size := opts.MinFontSize
		lines := WrapWords(text, size, box.Width)
		if budget := maxLines(size, box); len(lines) > budget {
			lines = lines[:budget]
			last := len(lines) - 1
			lines[last] = TruncateEllipsis(lines[last]+"…", size, box.Width)
		}
		return FitResult{Lines: lines, FontSize: size, Bold: opts.Bold, Box: box}
	}
}

// WrapWords greedily wraps text at word boundaries so each line fits
// maxWidth at fontSize. Words longer than a full line stand alone.
func WrapWords(text string, fontSize, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if MeasureString(candidate, fontSize) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// TruncateEllipsis cuts text so it fits maxWidth at fontSize, appending a
// trailing ellipsis when anything was removed. At least one character plus
// the ellipsis is always kept.
func TruncateEllipsis(text string, fontSize, maxWidth float64) string {
	runes := []rune(text)
	if MeasureString(text, fontSize) <= maxWidth {
		return text
	}
	keep := int(maxWidth/CharWidth(fontSize)) - 1
	if keep < 1 {
		keep = 1
	}
	if keep >= len(runes) {
		keep = len(runes) - 1
	}
	return strings.TrimRight(string(runes[:keep]), " ") + "…"
}

func fits(lines []string, fontSize float64, box Rect) bool {
	if LineHeight(fontSize)*float64(len(lines)) > box.Height {
		return false
	}
	for _, l := range lines {
		if MeasureString(l, fontSize) > box.Width {
			return false
		}
	}
	return true
}

func maxLines(fontSize float64, box Rect) int {
	n := int(math.Floor(box.Height / LineHeight(fontSize)))
	if n < 1 {
		n = 1
	}
	return n
}

func sizeForLine(text string, box Rect, opts FitOptions) float64 {
	byWidth := box.Width / (float64(len([]rune(text))) * CharWidthRatio / pointsPerInch)
	byHeight := box.Height / LineHeightRatio * pointsPerInch
	return Clamp(math.Min(byWidth, byHeight), opts.MinFontSize, opts.MaxFontSize)
}
