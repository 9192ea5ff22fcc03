package strategy

import (
	"math"
	"testing"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

var testBounds = geometry.Rect{Left: 0.5, Top: 1.5, Width: 12.333, Height: 5.5}

func testInput(n int) model.DiagramInput {
	input := model.DiagramInput{Title: "test"}
	for i := 0; i < n; i++ {
		input.Blocks = append(input.Blocks, model.BlockData{
			ID:    string(rune('a' + i)),
			Label: "Block " + string(rune('A'+i)),
		})
	}
	return input
}

func resolve(t *testing.T, id string) archetype.Rules {
	t.Helper()
	return archetype.NewRegistry().Resolve(id)
}

func TestComputeEmptyInput(t *testing.T) {
	res := Compute(model.DiagramInput{}, resolve(t, "matrix"), testBounds, model.DefaultPalette())
	if len(res.Elements) != 0 {
		t.Fatalf("expected no elements, got %d", len(res.Elements))
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for empty input")
	}
}

func TestComputeBoundsContainment(t *testing.T) {
	archetypes := []string{
		"funnel", "pyramid", "timeline", "process_flow", "cycle",
		"hub_spoke", "target", "matrix", "comparison", "org_chart",
		"swot", "roadmap", "venn",
	}
	for _, id := range archetypes {
		for _, n := range []int{1, 2, 5, 9} {
			res := Compute(testInput(n), resolve(t, id), testBounds, model.DefaultPalette())
			if len(res.Elements) != n {
				t.Fatalf("%s/%d: got %d elements", id, n, len(res.Elements))
			}
			for _, e := range res.Elements {
				if e.X < testBounds.Left-1e-9 || e.Y < testBounds.Top-1e-9 ||
					e.X+e.Width > testBounds.Right()+1e-9 ||
					e.Y+e.Height > testBounds.Bottom()+1e-9 {
					t.Errorf("%s/%d: element %s out of bounds: (%.3f,%.3f) %gx%g",
						id, n, e.ID, e.X, e.Y, e.Width, e.Height)
				}
			}
		}
	}
}

func TestFunnelWidths(t *testing.T) {
	rules := resolve(t, "funnel")
	res := Compute(testInput(4), rules, testBounds, model.DefaultPalette())

	// width(i) = maxW * (1 - (1-taper) * i/(n-1))
	taper := rules.Param("end_ratio", 0)
	maxW := res.Elements[0].Width
	for i, e := range res.Elements {
		want := maxW * (1 - (1-taper)*float64(i)/3)
		if math.Abs(e.Width-want) > 1e-9 {
			t.Errorf("element %d width = %.4f, want %.4f", i, e.Width, want)
		}
		if i > 0 && e.Width >= res.Elements[i-1].Width {
			t.Errorf("element %d width %.4f not below previous %.4f", i, e.Width, res.Elements[i-1].Width)
		}
	}

	// Earlier (wider) segments paint behind later ones.
	if res.Elements[0].Z <= res.Elements[3].Z {
		t.Errorf("first segment z %d should exceed last %d", res.Elements[0].Z, res.Elements[3].Z)
	}
}

func TestPyramidWidthsIncrease(t *testing.T) {
	res := Compute(testInput(4), resolve(t, "pyramid"), testBounds, model.DefaultPalette())
	for i := 1; i < len(res.Elements); i++ {
		if res.Elements[i].Width <= res.Elements[i-1].Width {
			t.Errorf("element %d width %.4f not above previous %.4f",
				i, res.Elements[i].Width, res.Elements[i-1].Width)
		}
	}
}

func TestStackCentered(t *testing.T) {
	res := Compute(testInput(3), resolve(t, "funnel"), testBounds, model.DefaultPalette())
	for _, e := range res.Elements {
		if math.Abs(e.CenterX()-testBounds.CenterX()) > 1e-9 {
			t.Errorf("element %s center %.4f, want %.4f", e.ID, e.CenterX(), testBounds.CenterX())
		}
	}
}

func TestGridShape(t *testing.T) {
	tests := []struct {
		name string
		id   string
		n    int
		cols int
		rows int
	}{
		{"matrix four blocks is 2x2", "swot", 4, 2, 2},
		{"comparison pins two columns", "comparison", 6, 2, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Compute(testInput(tc.n), resolve(t, tc.id), testBounds, model.DefaultPalette())

			xs := map[float64]bool{}
			ys := map[float64]bool{}
			for _, e := range res.Elements {
				xs[math.Round(e.X*1e6)] = true
				ys[math.Round(e.Y*1e6)] = true
			}
			if len(xs) != tc.cols {
				t.Errorf("got %d distinct columns, want %d", len(xs), tc.cols)
			}
			if len(ys) != tc.rows {
				t.Errorf("got %d distinct rows, want %d", len(ys), tc.rows)
			}
		})
	}
}

func TestGridCapacity(t *testing.T) {
	for n := 1; n <= 12; n++ {
		cols, rows := chooseGridShape(n, testBounds, defaultGap, gridDefaultRatio)
		if cols*rows < n {
			t.Errorf("n=%d: %dx%d grid cannot hold all blocks", n, cols, rows)
		}
	}
}

func TestHubSpokeGeometry(t *testing.T) {
	res := Compute(testInput(5), resolve(t, "hub_spoke"), testBounds, model.DefaultPalette())

	hub := res.Elements[0]
	if math.Abs(hub.CenterX()-testBounds.CenterX()) > 1e-9 ||
		math.Abs(hub.CenterY()-testBounds.CenterY()) > 1e-9 {
		t.Fatalf("hub not centered: (%.3f, %.3f)", hub.CenterX(), hub.CenterY())
	}
	if hub.Width <= res.Elements[1].Width {
		t.Errorf("hub width %.3f not larger than spoke width %.3f", hub.Width, res.Elements[1].Width)
	}

	// All spokes sit at the same distance from the hub center.
	var first float64
	for i, e := range res.Elements[1:] {
		d := math.Hypot(e.CenterX()-hub.CenterX(), e.CenterY()-hub.CenterY())
		if i == 0 {
			first = d
			continue
		}
		if math.Abs(d-first) > 1e-9 {
			t.Errorf("spoke %s distance %.4f differs from %.4f", e.ID, d, first)
		}
	}

	// Synthesized hub_to_spokes connectors fan out from the hub.
	if len(res.Connectors) != 4 {
		t.Fatalf("got %d connectors, want 4", len(res.Connectors))
	}
	for _, c := range res.Connectors {
		if c.FromID != hub.ID {
			t.Errorf("connector from %s, want hub %s", c.FromID, hub.ID)
		}
	}
}

func TestTargetRings(t *testing.T) {
	res := Compute(testInput(3), resolve(t, "target"), testBounds, model.DefaultPalette())
	for i, e := range res.Elements {
		if e.Shape != "ellipse" {
			t.Errorf("ring %d shape %q, want ellipse", i, e.Shape)
		}
		if i > 0 && e.Width >= res.Elements[i-1].Width {
			t.Errorf("ring %d diameter %.3f not below previous %.3f", i, e.Width, res.Elements[i-1].Width)
		}
		if i > 0 && e.Z <= res.Elements[i-1].Z {
			t.Errorf("ring %d should paint over ring %d", i, i-1)
		}
		if math.Abs(e.CenterX()-testBounds.CenterX()) > 1e-9 {
			t.Errorf("ring %d not centered", i)
		}
	}
}

func TestCycleConnectorsCloseLoop(t *testing.T) {
	res := Compute(testInput(4), resolve(t, "cycle"), testBounds, model.DefaultPalette())
	if len(res.Connectors) != 4 {
		t.Fatalf("got %d connectors, want 4", len(res.Connectors))
	}
	last := res.Connectors[3]
	if last.FromID != "d" || last.ToID != "a" {
		t.Errorf("closing connector %s->%s, want d->a", last.FromID, last.ToID)
	}
}

func TestFlowSnakes(t *testing.T) {
	res := Compute(testInput(6), resolve(t, "process_flow"), testBounds, model.DefaultPalette())

	// wrap_after 4: the first row holds four, the second two.
	rowY := res.Elements[0].Y
	for i := 0; i < 4; i++ {
		if res.Elements[i].Y != rowY {
			t.Errorf("element %d Y %.3f, want first row %.3f", i, res.Elements[i].Y, rowY)
		}
	}
	if res.Elements[4].Y <= rowY {
		t.Fatal("fifth element should start a new row below the first")
	}

	// The second row runs right to left, so element 4 sits under element 3.
	if math.Abs(res.Elements[4].X-res.Elements[3].X) > 1e-9 {
		t.Errorf("element 4 X %.3f, want %.3f (below element 3)", res.Elements[4].X, res.Elements[3].X)
	}
	if res.Elements[5].X >= res.Elements[4].X {
		t.Error("second row should run right to left")
	}

	// The wrap connector routes through the inter-row midpoint.
	var wrap *model.ConnectorPosition
	for i := range res.Connectors {
		if res.Connectors[i].FromID == "d" && res.Connectors[i].ToID == "e" {
			wrap = &res.Connectors[i]
		}
	}
	if wrap == nil {
		t.Fatal("no connector between rows")
	}
	if len(wrap.Waypoints) != 2 {
		t.Fatalf("wrap connector has %d waypoints, want 2", len(wrap.Waypoints))
	}
	midY := (res.Elements[3].Y + res.Elements[3].Height + res.Elements[4].Y) / 2
	if math.Abs(wrap.Waypoints[0].Y-midY) > 1e-9 {
		t.Errorf("waypoint Y %.4f, want inter-row midpoint %.4f", wrap.Waypoints[0].Y, midY)
	}
}

func TestFlowVerticalSnakes(t *testing.T) {
	rules := resolve(t, "process_flow").WithParam("orientation", "vertical")
	res := Compute(testInput(6), rules, testBounds, model.DefaultPalette())

	// wrap_after 4: the first column holds four, the second two.
	colX := res.Elements[0].X
	for i := 0; i < 4; i++ {
		if res.Elements[i].X != colX {
			t.Errorf("element %d X %.3f, want first column %.3f", i, res.Elements[i].X, colX)
		}
	}
	if res.Elements[4].X <= colX {
		t.Fatal("fifth element should start a new column to the right")
	}

	// The first column runs top to bottom.
	for i := 1; i < 4; i++ {
		if res.Elements[i].Y <= res.Elements[i-1].Y {
			t.Errorf("element %d Y %.3f not below element %d Y %.3f",
				i, res.Elements[i].Y, i-1, res.Elements[i-1].Y)
		}
	}

	// The second column runs bottom to top, so element 4 sits beside element 3.
	if math.Abs(res.Elements[4].Y-res.Elements[3].Y) > 1e-9 {
		t.Errorf("element 4 Y %.3f, want %.3f (beside element 3)", res.Elements[4].Y, res.Elements[3].Y)
	}
	if res.Elements[5].Y >= res.Elements[4].Y {
		t.Error("second column should run bottom to top")
	}

	// The wrap connector routes through the inter-column midpoint.
	var wrap *model.ConnectorPosition
	for i := range res.Connectors {
		if res.Connectors[i].FromID == "d" && res.Connectors[i].ToID == "e" {
			wrap = &res.Connectors[i]
		}
	}
	if wrap == nil {
		t.Fatal("no connector between columns")
	}
	if len(wrap.Waypoints) != 2 {
		t.Fatalf("wrap connector has %d waypoints, want 2", len(wrap.Waypoints))
	}
	midX := (res.Elements[3].X + res.Elements[3].Width + res.Elements[4].X) / 2
	if math.Abs(wrap.Waypoints[0].X-midX) > 1e-9 {
		t.Errorf("waypoint X %.4f, want inter-column midpoint %.4f", wrap.Waypoints[0].X, midX)
	}
}

func TestTreeLevelsFromConnectors(t *testing.T) {
	input := testInput(5)
	input.Connectors = []model.ConnectorData{
		{FromID: "a", ToID: "b"},
		{FromID: "a", ToID: "c"},
		{FromID: "b", ToID: "d"},
		{FromID: "b", ToID: "e"},
	}
	res := Compute(input, resolve(t, "org_chart"), testBounds, model.DefaultPalette())

	pos := map[string]model.ElementPosition{}
	for _, e := range res.Elements {
		pos[e.ID] = e
	}
	if !(pos["a"].Y < pos["b"].Y && pos["b"].Y < pos["d"].Y) {
		t.Errorf("levels not descending: a=%.2f b=%.2f d=%.2f", pos["a"].Y, pos["b"].Y, pos["d"].Y)
	}
	if pos["b"].Y != pos["c"].Y {
		t.Errorf("siblings b and c on different rows: %.2f vs %.2f", pos["b"].Y, pos["c"].Y)
	}
	if len(res.Connectors) != 4 {
		t.Fatalf("got %d connectors, want 4", len(res.Connectors))
	}
	for _, c := range res.Connectors {
		if c.Start.Y >= c.End.Y {
			t.Errorf("connector %s->%s should point downward", c.FromID, c.ToID)
		}
	}
}

func TestTreeParentMetaWins(t *testing.T) {
	input := testInput(3)
	input.Blocks[1].Meta = map[string]any{model.MetaParentID: "a"}
	input.Blocks[2].Meta = map[string]any{model.MetaParentID: "a"}
	// Contradicting connector must lose to explicit parent metadata.
	input.Connectors = []model.ConnectorData{{FromID: "b", ToID: "c"}}

	res := Compute(input, resolve(t, "org_chart"), testBounds, model.DefaultPalette())
	pos := map[string]model.ElementPosition{}
	for _, e := range res.Elements {
		pos[e.ID] = e
	}
	if pos["b"].Y != pos["c"].Y {
		t.Errorf("b and c should share a level: %.2f vs %.2f", pos["b"].Y, pos["c"].Y)
	}
}

func TestTreeNoHierarchyFallsBack(t *testing.T) {
	res := Compute(testInput(3), resolve(t, "org_chart"), testBounds, model.DefaultPalette())
	if len(res.Warnings) == 0 {
		t.Error("expected a warning about missing hierarchy")
	}
	if len(res.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(res.Elements))
	}
}

func TestFreeformExplicitCoordinates(t *testing.T) {
	input := testInput(2)
	input.Blocks[0].Meta = map[string]any{model.MetaX: 0.25, model.MetaY: 0.5}
	input.Blocks[1].Meta = map[string]any{model.MetaX: 0.75, model.MetaY: 0.5}

	rules := archetype.CanvasFallback("custom")
	res := Compute(input, rules, testBounds, model.DefaultPalette())

	wantX0 := testBounds.Left + 0.25*testBounds.Width
	if math.Abs(res.Elements[0].CenterX()-wantX0) > 1e-9 {
		t.Errorf("block a center X %.4f, want %.4f", res.Elements[0].CenterX(), wantX0)
	}
	wantY := testBounds.Top + 0.5*testBounds.Height
	for _, e := range res.Elements {
		if math.Abs(e.CenterY()-wantY) > 1e-9 {
			t.Errorf("block %s center Y %.4f, want %.4f", e.ID, e.CenterY(), wantY)
		}
	}
}

func TestFreeformAutoPlacement(t *testing.T) {
	res := Compute(testInput(5), archetype.CanvasFallback("custom"), testBounds, model.DefaultPalette())
	if len(res.Elements) != 5 {
		t.Fatalf("got %d elements, want 5", len(res.Elements))
	}
	seen := map[[2]float64]bool{}
	for _, e := range res.Elements {
		key := [2]float64{math.Round(e.X * 1e6), math.Round(e.Y * 1e6)}
		if seen[key] {
			t.Errorf("element %s overlaps a previous auto slot", e.ID)
		}
		seen[key] = true
	}
}

func TestExplicitConnectorsWin(t *testing.T) {
	input := testInput(3)
	input.Connectors = []model.ConnectorData{{FromID: "c", ToID: "a", Style: "dashed"}}
	res := Compute(input, resolve(t, "cycle"), testBounds, model.DefaultPalette())
	if len(res.Connectors) != 1 {
		t.Fatalf("got %d connectors, want only the explicit one", len(res.Connectors))
	}
	if res.Connectors[0].FromID != "c" || res.Connectors[0].Style != "dashed" {
		t.Errorf("explicit connector not honored: %+v", res.Connectors[0])
	}
}

func TestDanglingConnectorDropped(t *testing.T) {
	input := testInput(2)
	input.Connectors = []model.ConnectorData{
		{FromID: "a", ToID: "b"},
		{FromID: "a", ToID: "nope"},
	}
	res := Compute(input, archetype.CanvasFallback("custom"), testBounds, model.DefaultPalette())
	if len(res.Connectors) != 1 {
		t.Fatalf("got %d connectors, want 1 after dropping the dangling one", len(res.Connectors))
	}
}

func TestEdgeAnchorOnBorder(t *testing.T) {
	e := model.ElementPosition{X: 1, Y: 1, Width: 2, Height: 1}
	p := edgeAnchor(e, model.Point{X: 10, Y: 1.5})
	if p.X != 3 || p.Y != 1.5 {
		t.Errorf("anchor (%.2f, %.2f), want (3.00, 1.50)", p.X, p.Y)
	}
	p = edgeAnchor(e, model.Point{X: 2, Y: -10})
	if p.Y != 1 || p.X != 2 {
		t.Errorf("anchor (%.2f, %.2f), want (2.00, 1.00)", p.X, p.Y)
	}
}

func TestColorRules(t *testing.T) {
	palette := model.DefaultPalette()

	t.Run("override wins", func(t *testing.T) {
		input := testInput(2)
		input.Blocks[0].Color = "#123456"
		res := Compute(input, resolve(t, "matrix"), testBounds, palette)
		if res.Elements[0].Color != "#123456" {
			t.Errorf("got %s, want the explicit override", res.Elements[0].Color)
		}
	})

	t.Run("sequence cycles accents", func(t *testing.T) {
		res := Compute(testInput(3), resolve(t, "matrix"), testBounds, palette)
		if res.Elements[0].Color == res.Elements[1].Color {
			t.Error("sequence rule should vary colors across blocks")
		}
	})
}

func TestUsedBoundsCoversElements(t *testing.T) {
	res := Compute(testInput(4), resolve(t, "matrix"), testBounds, model.DefaultPalette())
	for _, e := range res.Elements {
		r := geometry.Rect{Left: e.X, Top: e.Y, Width: e.Width, Height: e.Height}
		if !res.UsedBounds.Contains(r.CenterX(), r.CenterY()) {
			t.Errorf("used bounds misses element %s center", e.ID)
		}
	}
}
