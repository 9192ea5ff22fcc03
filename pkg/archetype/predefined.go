package archetype

// predefined is the built-in archetype table. Keys are lower-case archetype
// IDs; every entry is normalized at registry construction.
var predefined = map[string]Rules{
	"funnel": {
		Name:        "Funnel",
		Description: "Stacked stages narrowing top to bottom",
		Category:    "process",
		Keywords:    []string{"funnel", "conversion", "stages", "pipeline"},
		ExamplePrompts: []string{
			"sales funnel with four stages",
			"marketing conversion funnel",
		},
		Strategy:  StrategyStack,
		Element:   ElementTemplate{Shape: "block", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Pattern: PatternNone},
		Params: map[string]any{
			"orientation": "vertical",
			"start_ratio": 1.0,
			"end_ratio":   0.45,
		},
		Constraints: []string{"center_horizontal", "equal_vertical_gaps", "decreasing_width"},
		MinElements: 2,
		MaxElements: 8,
		Provenance:  ProvenancePredefined,
	},
	"pyramid": {
		Name:        "Pyramid",
		Description: "Stacked tiers widening top to bottom",
		Category:    "hierarchy",
		Keywords:    []string{"pyramid", "hierarchy", "tiers", "maslow"},
		ExamplePrompts: []string{
			"pyramid of organizational levels",
		},
		Strategy:  StrategyStack,
		Element:   ElementTemplate{Shape: "block", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Pattern: PatternNone},
		Params: map[string]any{
			"orientation": "vertical",
			"start_ratio": 0.45,
			"end_ratio":   1.0,
		},
		Constraints: []string{"center_horizontal", "equal_vertical_gaps", "increasing_width"},
		MinElements: 2,
		MaxElements: 8,
		Provenance:  ProvenancePredefined,
	},
	"timeline": {
		Name:        "Timeline",
		Description: "Events in a horizontal sequence",
		Category:    "sequence",
		Keywords:    []string{"timeline", "milestones", "history", "roadmap"},
		ExamplePrompts: []string{
			"project timeline with five milestones",
		},
		Strategy:  StrategyStack,
		Element:   ElementTemplate{Shape: "rounded", CornerRadius: 0.08, ColorRule: "sequence"},
		Connector: ConnectorTemplate{Style: "line", Pattern: PatternSequential, Routing: "direct"},
		Params: map[string]any{
			"orientation": "horizontal",
			"start_ratio": 1.0,
			"end_ratio":   1.0,
		},
		Constraints: []string{"center_vertical", "equal_horizontal_distribution"},
		MinElements: 2,
		MaxElements: 10,
		Provenance:  ProvenancePredefined,
	},
	"process_flow": {
		Name:        "Process Flow",
		Description: "Steps connected left to right, wrapping into rows",
		Category:    "process",
		Keywords:    []string{"process", "flow", "steps", "workflow", "procedure"},
		ExamplePrompts: []string{
			"six step onboarding process",
		},
		Strategy:  StrategyFlow,
		Element:   ElementTemplate{Shape: "chevron", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Style: "arrow", Pattern: PatternSequential, Routing: "orthogonal"},
		Params: map[string]any{
			"wrap_after": 4.0,
		},
		MinElements: 2,
		MaxElements: 12,
		Provenance:  ProvenancePredefined,
	},
	"cycle": {
		Name:        "Cycle",
		Description: "Stages arranged on a circle with cyclic arrows",
		Category:    "process",
		Keywords:    []string{"cycle", "loop", "circular", "iteration", "pdca"},
		ExamplePrompts: []string{
			"plan do check act cycle",
		},
		Strategy:  StrategyRadial,
		Element:   ElementTemplate{Shape: "ellipse", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Style: "arrow", Pattern: PatternCycle, Routing: "direct"},
		Params: map[string]any{
			"hub": 0.0,
		},
		Constraints: []string{"single_circle"},
		MinElements: 3,
		MaxElements: 10,
		Provenance:  ProvenancePredefined,
	},
	"hub_spoke": {
		Name:        "Hub and Spoke",
		Description: "A central hub with radiating satellites",
		Category:    "relationship",
		Keywords:    []string{"hub", "spoke", "central", "radial", "satellite"},
		ExamplePrompts: []string{
			"platform with six integrations around it",
		},
		Strategy:  StrategyRadial,
		Element:   ElementTemplate{Shape: "ellipse", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Style: "line", Pattern: PatternHubToSpokes, Routing: "direct"},
		Params: map[string]any{
			"hub":       1.0,
			"hub_scale": 1.5,
		},
		Constraints: []string{"hub_center", "spokes_radial"},
		MinElements: 3,
		MaxElements: 12,
		Provenance:  ProvenancePredefined,
	},
	"target": {
		Name:        "Target",
		Description: "Concentric rings from broad to focused",
		Category:    "relationship",
		Keywords:    []string{"target", "bullseye", "concentric", "rings", "layers"},
		ExamplePrompts: []string{
			"market segments as concentric circles",
		},
		Strategy:  StrategyRadial,
		Element:   ElementTemplate{Shape: "ellipse", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Pattern: PatternNone},
		Params: map[string]any{
			"rings": 1.0,
		},
		MinElements: 2,
		MaxElements: 6,
		Provenance:  ProvenancePredefined,
	},
	"matrix": {
		Name:        "Matrix",
		Description: "Items in a near-square grid",
		Category:    "comparison",
		Keywords:    []string{"matrix", "grid", "quadrant", "2x2"},
		ExamplePrompts: []string{
			"2x2 priority matrix",
		},
		Strategy:  StrategyGrid,
		Element:   ElementTemplate{Shape: "rounded", CornerRadius: 0.08, ColorRule: "sequence"},
		Connector: ConnectorTemplate{Pattern: PatternNone},
		Params: map[string]any{
			"target_ratio": 1.3,
		},
		Constraints: []string{"square_grid"},
		MinElements: 2,
		MaxElements: 16,
		Provenance:  ProvenancePredefined,
	},
	"comparison": {
		Name:        "Comparison",
		Description: "Two columns of contrasted items",
		Category:    "comparison",
		Keywords:    []string{"comparison", "versus", "pros", "cons", "before", "after"},
		ExamplePrompts: []string{
			"pros and cons comparison",
		},
		Strategy:  StrategyGrid,
		Element:   ElementTemplate{Shape: "rounded", CornerRadius: 0.08, ColorRule: "sequence"},
		Connector: ConnectorTemplate{Pattern: PatternNone},
		Params: map[string]any{
			"columns": 2.0,
		},
		Constraints: []string{"two_columns", "equal_widths"},
		MinElements: 2,
		MaxElements: 12,
		Provenance:  ProvenancePredefined,
	},
	"org_chart": {
		Name:        "Organization Chart",
		Description: "A reporting hierarchy, top down",
		Category:    "hierarchy",
		Keywords:    []string{"org", "organization", "hierarchy", "reporting", "tree"},
		ExamplePrompts: []string{
			"org chart with a CEO and three departments",
		},
		Strategy:  StrategyTree,
		Element:   ElementTemplate{Shape: "rounded", CornerRadius: 0.06, ColorRule: "by_layer"},
		Connector: ConnectorTemplate{Style: "line", Pattern: PatternHierarchical, Routing: "orthogonal"},
		Params: map[string]any{
			"orientation": "top_down",
		},
		MinElements: 2,
		MaxElements: 20,
		Provenance:  ProvenancePredefined,
	},
	"swot": {
		Name:        "SWOT",
		Description: "Strengths, weaknesses, opportunities, threats quadrants",
		Category:    "comparison",
		Keywords:    []string{"swot", "strengths", "weaknesses", "opportunities", "threats"},
		ExamplePrompts: []string{
			"swot analysis for the product",
		},
		Strategy:  StrategyGrid,
		Element:   ElementTemplate{Shape: "block", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Pattern: PatternNone},
		Params: map[string]any{
			"columns": 2.0,
			"rows":    2.0,
		},
		Constraints: []string{"square_grid"},
		MinElements: 4,
		MaxElements: 4,
		Provenance:  ProvenancePredefined,
	},
	"roadmap": {
		Name:        "Roadmap",
		Description: "Phases flowing across the slide in a snake",
		Category:    "sequence",
		Keywords:    []string{"roadmap", "phases", "quarters", "plan"},
		ExamplePrompts: []string{
			"product roadmap across four quarters",
		},
		Strategy:  StrategyFlow,
		Element:   ElementTemplate{Shape: "rounded", CornerRadius: 0.08, ColorRule: "sequence"},
		Connector: ConnectorTemplate{Style: "arrow", Pattern: PatternSequential, Routing: "orthogonal"},
		Params: map[string]any{
			"wrap_after": 4.0,
		},
		MinElements: 2,
		MaxElements: 16,
		Provenance:  ProvenancePredefined,
	},
	"venn": {
		Name:        "Venn",
		Description: "Overlapping sets as ellipses",
		Category:    "relationship",
		Keywords:    []string{"venn", "overlap", "sets", "intersection"},
		ExamplePrompts: []string{
			"venn diagram of two overlapping audiences",
		},
		Strategy:  StrategyFreeform,
		Element:   ElementTemplate{Shape: "ellipse", ColorRule: "sequence"},
		Connector: ConnectorTemplate{Pattern: PatternNone},
		MinElements: 2,
		MaxElements: 4,
		Provenance:  ProvenancePredefined,
	},
}

// Predefined returns a copy of the built-in rules table, normalized.
func Predefined() map[string]Rules {
	out := make(map[string]Rules, len(predefined))
	for id, r := range predefined {
		out[id] = r.normalize(id)
	}
	return out
}
