// Package archetype maps diagram archetype identifiers (funnel, hub_spoke,
// matrix, ...) to layout rules.
//
// Resolution is guaranteed never to fail: in-memory learned registrations
// win over custom ones, which win over the built-in predefined table, which
// wins over rules loaded from disk, and an unknown identifier falls back to
// a generous freeform canvas. Rule files are read only when the registry is
// created or reloaded, never on the resolve path.
package archetype

import (
	"strings"

	"github.com/diagramkit/diagramkit/pkg/model"
)

// LayoutStrategy is the closed set of layout strategy identifiers.
type LayoutStrategy string

const (
	StrategyGrid     LayoutStrategy = "grid"
	StrategyStack    LayoutStrategy = "stack"
	StrategyRadial   LayoutStrategy = "radial"
	StrategyTree     LayoutStrategy = "tree"
	StrategyFlow     LayoutStrategy = "flow"
	StrategyFreeform LayoutStrategy = "freeform"
)

// ParseStrategy maps a wire name to a strategy, reporting whether it is one
// of the known variants.
func ParseStrategy(s string) (LayoutStrategy, bool) {
	switch LayoutStrategy(strings.ToLower(s)) {
	case StrategyGrid, StrategyStack, StrategyRadial, StrategyTree, StrategyFlow, StrategyFreeform:
		return LayoutStrategy(strings.ToLower(s)), true
	}
	return StrategyFreeform, false
}

// ConnectorPattern describes which connectors a strategy synthesizes when
// the input declares none.
type ConnectorPattern string

const (
	PatternSequential   ConnectorPattern = "sequential"
	PatternHubToSpokes  ConnectorPattern = "hub_to_spokes"
	PatternCycle        ConnectorPattern = "cycle"
	PatternHierarchical ConnectorPattern = "hierarchical"
	PatternNone         ConnectorPattern = "none"
)

// Provenance records where a rules value came from.
type Provenance string

const (
	ProvenancePredefined Provenance = "predefined"
	ProvenanceLearned    Provenance = "learned"
	ProvenanceCustom     Provenance = "custom"
	ProvenanceFallback   Provenance = "fallback"
)

// ElementTemplate describes how a strategy's elements should look.
type ElementTemplate struct {
	Shape        string  `json:"shape,omitempty"`
	StrokeWidth  float64 `json:"stroke_width,omitempty"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
	// ColorRule selects fill colors: "sequence" cycles the accent colors,
	// "primary" uses the primary color, "by_layer" keys on the layer index.
	ColorRule string `json:"color_rule,omitempty"`
}

// ConnectorTemplate describes how connectors are synthesized and drawn.
type ConnectorTemplate struct {
	Style   string           `json:"style,omitempty"` // "arrow", "line", "dashed"
	Pattern ConnectorPattern `json:"pattern,omitempty"`
	// Routing is "direct" or "orthogonal"; orthogonal paths go through
	// the obstacle-avoiding router.
	Routing string `json:"routing,omitempty"`
}

// Rules is the complete layout recipe for one archetype.
type Rules struct {
	ArchetypeID    string   `json:"archetype_id"`
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	ExamplePrompts []string `json:"example_prompts,omitempty"`

	Strategy  LayoutStrategy    `json:"layout_strategy"`
	Element   ElementTemplate   `json:"element,omitempty"`
	Connector ConnectorTemplate `json:"connector,omitempty"`

	// Params is the per-strategy parameter bag (taper ratios, wrap counts,
	// orientations, ...). Values are numbers or strings.
	Params map[string]any `json:"params,omitempty"`

	// Constraints is the ordered list of post-layout repair rule names
	// applied after strategy output.
	Constraints []string `json:"constraints,omitempty"`

	// Overlays applied by default when the caller supplies none.
	Overlays []model.OverlaySpec `json:"overlays,omitempty"`

	MinElements int `json:"min_elements"`
	MaxElements int `json:"max_elements"`

	Provenance Provenance `json:"provenance,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
}

// Param returns a numeric parameter, or def when absent or non-numeric.
func (r Rules) Param(key string, def float64) float64 {
	switch v := r.Params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// ParamString returns a string parameter, or def when absent.
func (r Rules) ParamString(key, def string) string {
	if v, ok := r.Params[key].(string); ok && v != "" {
		return v
	}
	return def
}

// WithParam returns a copy of the rules with one parameter replaced.
// The original parameter bag is never mutated.
func (r Rules) WithParam(key string, value any) Rules {
	params := make(map[string]any, len(r.Params)+1)
	for k, v := range r.Params {
		params[k] = v
	}
	params[key] = value
	r.Params = params
	return r
}

// normalize fills the gaps a hand-written or on-disk rules value may have,
// so every resolved Rules is safe to use directly.
func (r Rules) normalize(id string) Rules {
	if r.ArchetypeID == "" {
		r.ArchetypeID = id
	}
	r.ArchetypeID = strings.ToLower(r.ArchetypeID)
	// ParseStrategy lowercases, so mixed-case names from rule files
	// dispatch correctly; unknown names fall back to freeform.
	r.Strategy, _ = ParseStrategy(string(r.Strategy))
	if r.Connector.Pattern == "" {
		r.Connector.Pattern = PatternNone
	}
	if r.MinElements <= 0 {
		r.MinElements = 1
	}
	if r.MaxElements <= 0 || r.MaxElements < r.MinElements {
		r.MaxElements = 50
	}
	if r.Confidence <= 0 {
		r.Confidence = 1
	}
	return r
}

// CanvasFallback returns the rules used when nothing matches an archetype
// identifier: freeform placement with generous element bounds.
func CanvasFallback(id string) Rules {
	return Rules{
		ArchetypeID: strings.ToLower(id),
		Name:        "Canvas",
		Description: "Freeform canvas fallback",
		Strategy:    StrategyFreeform,
		Element:     ElementTemplate{Shape: "rounded", ColorRule: "sequence"},
		Connector:   ConnectorTemplate{Style: "arrow", Pattern: PatternNone, Routing: "direct"},
		MinElements: 1,
		MaxElements: 50,
		Provenance:  ProvenanceFallback,
		Confidence:  0.5,
	}
}
