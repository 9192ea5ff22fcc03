package model

import (
	"fmt"
	"strconv"
	"strings"
)

// luminanceThreshold splits backgrounds into "light" and "dark" for
// label color selection.
const luminanceThreshold = 0.5

// ParseHex parses a "#RRGGBB" color into normalized [0,1] channels.
func ParseHex(hex string) (r, g, b float64, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	rv, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	gv, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	bv, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	return float64(rv) / 255, float64(gv) / 255, float64(bv) / 255, nil
}

// RelativeLuminance computes the perceived brightness of a hex color using
// the Rec. 601 weights (0.299R + 0.587G + 0.114B). Unparseable colors count
// as dark so labels stay readable on them.
func RelativeLuminance(hex string) float64 {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return 0
	}
	return 0.299*r + 0.587*g + 0.114*b
}

// LabelColorFor picks the light or dark text color from the palette based
// on the luminance of the background it sits on.
func (p ColorPalette) LabelColorFor(background string) string {
	m := p.Merged()
	if RelativeLuminance(background) > luminanceThreshold {
		return m.TextDark
	}
	return m.TextLight
}
