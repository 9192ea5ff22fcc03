package model

import "strings"

// OverlayKind is the closed set of overlay shapes. Unknown kinds map to
// OverlayGeneric.
type OverlayKind int

const (
	// OverlayGeneric is a plain annotation box, the fallback kind.
	OverlayGeneric OverlayKind = iota
	// OverlaySideArrow is a block arrow alongside the diagram indicating flow.
	OverlaySideArrow
	// OverlayCallout is a text box that may point at a target element.
	OverlayCallout
	// OverlayAnnotation is a free note without a pointer.
	OverlayAnnotation
	// OverlayBanner is a full-length strip across the reserved side.
	OverlayBanner
	// OverlayBracket is a thin bounding marker grouping the diagram.
	OverlayBracket
	// OverlayLabel is a short caption.
	OverlayLabel
)

var overlayKindNames = map[OverlayKind]string{
	OverlayGeneric:    "generic",
	OverlaySideArrow:  "side_arrow",
	OverlayCallout:    "callout",
	OverlayAnnotation: "annotation",
	OverlayBanner:     "banner",
	OverlayBracket:    "bracket",
	OverlayLabel:      "label",
}

// String returns the wire name of the overlay kind.
func (k OverlayKind) String() string {
	if s, ok := overlayKindNames[k]; ok {
		return s
	}
	return "generic"
}

// OverlayKindFromString maps a wire name to the closed enum.
func OverlayKindFromString(s string) OverlayKind {
	switch strings.ToLower(s) {
	case "side_arrow", "arrow":
		return OverlaySideArrow
	case "callout":
		return OverlayCallout
	case "annotation", "note":
		return OverlayAnnotation
	case "banner":
		return OverlayBanner
	case "bracket":
		return OverlayBracket
	case "label", "caption":
		return OverlayLabel
	default:
		return OverlayGeneric
	}
}

// Side names the edge of the content area an overlay attaches to.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// OverlaySpec describes one auxiliary annotation attached to a side of the
// diagram. Width and Height are in inches; for top/bottom overlays Width is
// interpreted along the vertical axis reservation (the thickness of the
// reserved strip) so a single field controls compression on any side.
type OverlaySpec struct {
	Kind     string  `json:"kind" bson:"kind"`
	Side     Side    `json:"side" bson:"side"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height,omitempty" bson:"height,omitempty"`
	Margin   float64 `json:"margin,omitempty" bson:"margin,omitempty"`
	Text     string  `json:"text,omitempty" bson:"text,omitempty"`
	TargetID string  `json:"target_id,omitempty" bson:"target_id,omitempty"`
	Color    string  `json:"color,omitempty" bson:"color,omitempty"`
}

// Reservation returns the total thickness this overlay reserves on its side.
func (o OverlaySpec) Reservation() float64 {
	return o.Width + o.Margin
}
