package model

import "strings"

// ElementType is the closed set of renderable shape kinds. Unknown shape
// hints from upstream map to ElementBlock rather than failing.
type ElementType int

const (
	// ElementBlock is a plain rectangle, the generic fallback shape.
	ElementBlock ElementType = iota
	// ElementRounded is a rectangle with rounded corners.
	ElementRounded
	// ElementEllipse covers circles and ovals.
	ElementEllipse
	// ElementDiamond is a decision/rotated-square shape.
	ElementDiamond
	// ElementChevron is a directional process shape.
	ElementChevron
	// ElementArrow is a block arrow (used by side-arrow overlays).
	ElementArrow
	// ElementBanner is a full-width strip carrying text.
	ElementBanner
	// ElementBracket is a thin bounding marker along one side.
	ElementBracket
	// ElementText is an invisible container that only paints its text.
	ElementText
)

var elementTypeNames = map[ElementType]string{
	ElementBlock:   "block",
	ElementRounded: "rounded",
	ElementEllipse: "ellipse",
	ElementDiamond: "diamond",
	ElementChevron: "chevron",
	ElementArrow:   "arrow",
	ElementBanner:  "banner",
	ElementBracket: "bracket",
	ElementText:    "text",
}

// String returns the wire name of the element type.
func (t ElementType) String() string {
	if s, ok := elementTypeNames[t]; ok {
		return s
	}
	return "block"
}

// ElementTypeFromShape maps a free-form shape hint to the closed enum.
// Unknown and empty strings map to ElementBlock.
func ElementTypeFromShape(shape string) ElementType {
	switch strings.ToLower(shape) {
	case "rounded", "rounded_rect", "pill":
		return ElementRounded
	case "ellipse", "circle", "oval":
		return ElementEllipse
	case "diamond", "decision":
		return ElementDiamond
	case "chevron":
		return ElementChevron
	case "arrow":
		return ElementArrow
	case "banner":
		return ElementBanner
	case "bracket":
		return ElementBracket
	case "text":
		return ElementText
	default:
		return ElementBlock
	}
}

// Point is a coordinate pair in inches.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// ElementPosition is raw strategy output for one block: positioned and
// colored but not yet text-measured. Transient; consumed by the composer.
type ElementPosition struct {
	ID     string
	Label  string
	X, Y   float64
	Width  float64
	Height float64
	Color  string // palette token or hex
	Shape  string // free-form shape hint
	Z      int
}

// WithPosition returns a copy with the position replaced.
func (e ElementPosition) WithPosition(x, y float64) ElementPosition {
	e.X, e.Y = x, y
	return e
}

// WithSize returns a copy with the size replaced.
func (e ElementPosition) WithSize(w, h float64) ElementPosition {
	e.Width, e.Height = w, h
	return e
}

// CenterX returns the horizontal center of the element.
func (e ElementPosition) CenterX() float64 { return e.X + e.Width/2 }

// CenterY returns the vertical center of the element.
func (e ElementPosition) CenterY() float64 { return e.Y + e.Height/2 }

// ConnectorPosition is raw strategy output for one connector.
type ConnectorPosition struct {
	FromID    string
	ToID      string
	Start     Point
	End       Point
	Waypoints []Point
	Style     string
	Label     string
	Color     string
}

// PositionedText is fully measured text: pre-wrapped lines and a concrete
// font size. Renderers draw it verbatim without re-measuring.
type PositionedText struct {
	Lines    []string `json:"lines" bson:"lines"`
	FontSize float64  `json:"font_size" bson:"font_size"`
	Bold     bool     `json:"bold,omitempty" bson:"bold,omitempty"`
	Color    string   `json:"color" bson:"color"`
}

// PositionedElement is a final, render-ready shape.
type PositionedElement struct {
	ID           string          `json:"id" bson:"id"`
	Type         ElementType     `json:"type" bson:"type"`
	X            float64         `json:"x" bson:"x"`
	Y            float64         `json:"y" bson:"y"`
	Width        float64         `json:"width" bson:"width"`
	Height       float64         `json:"height" bson:"height"`
	FillColor    string          `json:"fill_color,omitempty" bson:"fill_color,omitempty"`
	StrokeColor  string          `json:"stroke_color,omitempty" bson:"stroke_color,omitempty"`
	StrokeWidth  float64         `json:"stroke_width,omitempty" bson:"stroke_width,omitempty"`
	CornerRadius float64         `json:"corner_radius,omitempty" bson:"corner_radius,omitempty"`
	Text         *PositionedText `json:"text,omitempty" bson:"text,omitempty"`
	Z            int             `json:"z" bson:"z"`
}

// WithRect returns a copy with position and size replaced.
func (e PositionedElement) WithRect(x, y, w, h float64) PositionedElement {
	e.X, e.Y, e.Width, e.Height = x, y, w, h
	return e
}

// CenterX returns the horizontal center of the element.
func (e PositionedElement) CenterX() float64 { return e.X + e.Width/2 }

// CenterY returns the vertical center of the element.
func (e PositionedElement) CenterY() float64 { return e.Y + e.Height/2 }

// PositionedConnector is a final, render-ready connector path.
type PositionedConnector struct {
	FromID    string  `json:"from_id" bson:"from_id"`
	ToID      string  `json:"to_id" bson:"to_id"`
	Start     Point   `json:"start" bson:"start"`
	End       Point   `json:"end" bson:"end"`
	Waypoints []Point `json:"waypoints,omitempty" bson:"waypoints,omitempty"`
	Style     string  `json:"style,omitempty" bson:"style,omitempty"`
	Label     string  `json:"label,omitempty" bson:"label,omitempty"`
	Color     string  `json:"color,omitempty" bson:"color,omitempty"`
	Z         int     `json:"z" bson:"z"`
}

// TextBlock is a positioned, measured text region (title, subtitle).
type TextBlock struct {
	X      float64        `json:"x" bson:"x"`
	Y      float64        `json:"y" bson:"y"`
	Width  float64        `json:"width" bson:"width"`
	Height float64        `json:"height" bson:"height"`
	Text   PositionedText `json:"text" bson:"text"`
}

// PositionedLayout is the terminal artifact of the layout engine: a complete
// scene in paint order (lower Z first).
//
// Invariants: element IDs are unique, and every connector endpoint resolves
// to an existing element ID (connectors with dangling endpoints are dropped
// before the layout is built).
type PositionedLayout struct {
	ID          string                `json:"id,omitempty" bson:"_id,omitempty"`
	SlideWidth  float64               `json:"slide_width" bson:"slide_width"`
	SlideHeight float64               `json:"slide_height" bson:"slide_height"`
	Background  string                `json:"background,omitempty" bson:"background,omitempty"`
	Title       *TextBlock            `json:"title,omitempty" bson:"title,omitempty"`
	Subtitle    *TextBlock            `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Elements    []PositionedElement   `json:"elements" bson:"elements"`
	Connectors  []PositionedConnector `json:"connectors,omitempty" bson:"connectors,omitempty"`
	Archetype   string                `json:"archetype,omitempty" bson:"archetype,omitempty"`
	Meta        map[string]any        `json:"meta,omitempty" bson:"meta,omitempty"`
}

// ElementByID returns the element with the given ID, or false when absent.
func (l PositionedLayout) ElementByID(id string) (PositionedElement, bool) {
	for _, e := range l.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return PositionedElement{}, false
}
