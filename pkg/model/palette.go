package model

import "strings"

// Semantic color tokens resolvable through a ColorPalette.
const (
	TokenPrimary    = "primary"
	TokenSecondary  = "secondary"
	TokenAccent1    = "accent1"
	TokenAccent2    = "accent2"
	TokenAccent3    = "accent3"
	TokenAccent4    = "accent4"
	TokenAccent5    = "accent5"
	TokenAccent6    = "accent6"
	TokenTextDark   = "text_dark"
	TokenTextLight  = "text_light"
	TokenBackground = "background"
	TokenBorder     = "border"
	TokenConnector  = "connector"
)

// ColorPalette maps semantic color tokens to concrete hex colors.
// All values are "#RRGGBB" strings.
type ColorPalette struct {
	Primary    string `json:"primary,omitempty" bson:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty" bson:"secondary,omitempty"`
	Accent1    string `json:"accent1,omitempty" bson:"accent1,omitempty"`
	Accent2    string `json:"accent2,omitempty" bson:"accent2,omitempty"`
	Accent3    string `json:"accent3,omitempty" bson:"accent3,omitempty"`
	Accent4    string `json:"accent4,omitempty" bson:"accent4,omitempty"`
	Accent5    string `json:"accent5,omitempty" bson:"accent5,omitempty"`
	Accent6    string `json:"accent6,omitempty" bson:"accent6,omitempty"`
	TextDark   string `json:"text_dark,omitempty" bson:"text_dark,omitempty"`
	TextLight  string `json:"text_light,omitempty" bson:"text_light,omitempty"`
	Background string `json:"background,omitempty" bson:"background,omitempty"`
	Border     string `json:"border,omitempty" bson:"border,omitempty"`
	Connector  string `json:"connector,omitempty" bson:"connector,omitempty"`
}

// DefaultPalette returns the built-in palette used when the input supplies
// none. Colors follow a muted corporate scheme that reads well on white.
func DefaultPalette() ColorPalette {
	return ColorPalette{
		Primary:    "#2E5B9F",
		Secondary:  "#4A7FC9",
		Accent1:    "#E8833A",
		Accent2:    "#37A794",
		Accent3:    "#8961B3",
		Accent4:    "#C9504A",
		Accent5:    "#C0A23C",
		Accent6:    "#5B8F3E",
		TextDark:   "#1F2430",
		TextLight:  "#FFFFFF",
		Background: "#FFFFFF",
		Border:     "#9AA3B2",
		Connector:  "#6B7280",
	}
}

// Merged returns a palette where empty fields fall back to the defaults.
func (p ColorPalette) Merged() ColorPalette {
	def := DefaultPalette()
	pick := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}
	return ColorPalette{
		Primary:    pick(p.Primary, def.Primary),
		Secondary:  pick(p.Secondary, def.Secondary),
		Accent1:    pick(p.Accent1, def.Accent1),
		Accent2:    pick(p.Accent2, def.Accent2),
		Accent3:    pick(p.Accent3, def.Accent3),
		Accent4:    pick(p.Accent4, def.Accent4),
		Accent5:    pick(p.Accent5, def.Accent5),
		Accent6:    pick(p.Accent6, def.Accent6),
		TextDark:   pick(p.TextDark, def.TextDark),
		TextLight:  pick(p.TextLight, def.TextLight),
		Background: pick(p.Background, def.Background),
		Border:     pick(p.Border, def.Border),
		Connector:  pick(p.Connector, def.Connector),
	}
}

// Resolve maps a symbolic color token to a concrete hex color. Literal hex
// values pass through unchanged. Unknown tokens resolve to the primary color
// so a bad token degrades to a visible, consistent choice instead of black.
func (p ColorPalette) Resolve(token string) string {
	if strings.HasPrefix(token, "#") {
		return token
	}
	m := p.Merged()
	switch strings.ToLower(token) {
	case TokenPrimary:
		return m.Primary
	case TokenSecondary:
		return m.Secondary
	case TokenAccent1:
		return m.Accent1
	case TokenAccent2:
		return m.Accent2
	case TokenAccent3:
		return m.Accent3
	case TokenAccent4:
		return m.Accent4
	case TokenAccent5:
		return m.Accent5
	case TokenAccent6:
		return m.Accent6
	case TokenTextDark:
		return m.TextDark
	case TokenTextLight:
		return m.TextLight
	case TokenBackground:
		return m.Background
	case TokenBorder:
		return m.Border
	case TokenConnector:
		return m.Connector
	default:
		return m.Primary
	}
}

// Accent returns the i-th accent color, cycling past six. Strategies use
// this to color sequences of blocks deterministically.
func (p ColorPalette) Accent(i int) string {
	m := p.Merged()
	accents := [6]string{m.Accent1, m.Accent2, m.Accent3, m.Accent4, m.Accent5, m.Accent6}
	if i < 0 {
		i = -i
	}
	return accents[i%len(accents)]
}
