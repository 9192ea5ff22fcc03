package compose

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/config"
	"github.com/diagramkit/diagramkit/pkg/model"
)

func testComposer() *Composer {
	return New(archetype.NewRegistry(), config.Default(), WithLogger(log.New(io.Discard)))
}

func funnelInput(n int) model.DiagramInput {
	input := model.DiagramInput{Title: "Conversion Funnel", Subtitle: "Q3"}
	labels := []string{"Visitors", "Signups", "Trials", "Customers", "Advocates", "Fans"}
	for i := 0; i < n; i++ {
		input.Blocks = append(input.Blocks, model.BlockData{
			ID:    labels[i%len(labels)],
			Label: labels[i%len(labels)],
		})
	}
	return input
}

func TestGenerateFunnel(t *testing.T) {
	c := testComposer()
	layout := c.Generate(funnelInput(4), "funnel", nil)

	if layout.Archetype != "funnel" {
		t.Errorf("archetype tag = %q", layout.Archetype)
	}
	if layout.SlideWidth != 13.333 || layout.SlideHeight != 7.5 {
		t.Errorf("slide size %gx%g", layout.SlideWidth, layout.SlideHeight)
	}
	if len(layout.Elements) != 4 {
		t.Fatalf("got %d elements", len(layout.Elements))
	}
	for i := 1; i < 4; i++ {
		if layout.Elements[i].Width >= layout.Elements[i-1].Width {
			t.Errorf("funnel widths not decreasing at %d", i)
		}
	}
	for _, e := range layout.Elements {
		if e.Text == nil {
			t.Errorf("element %s has no fitted text", e.ID)
			continue
		}
		if len(e.Text.Lines) == 0 || e.Text.FontSize <= 0 {
			t.Errorf("element %s text not measured: %+v", e.ID, e.Text)
		}
		if e.FillColor == "" || e.FillColor[0] != '#' {
			t.Errorf("element %s fill not resolved: %q", e.ID, e.FillColor)
		}
	}
	if layout.Title == nil || layout.Title.Text.Lines[0] == "" {
		t.Error("title block missing")
	}
	if !layout.Title.Text.Bold {
		t.Error("title should be bold")
	}
	if layout.Subtitle == nil {
		t.Error("subtitle block missing")
	}
	if layout.Subtitle.Y <= layout.Title.Y {
		t.Error("subtitle should sit below the title")
	}
	// Content starts below the title strip.
	for _, e := range layout.Elements {
		if e.Y < layout.Subtitle.Y+layout.Subtitle.Height {
			t.Errorf("element %s intrudes into the title strip: y=%v", e.ID, e.Y)
		}
	}
}

func TestGenerateErrorLayoutOnMissingTitle(t *testing.T) {
	c := testComposer()
	input := funnelInput(4)
	input.Title = ""

	layout := c.Generate(input, "funnel", nil)
	if layout.Meta == nil || layout.Meta["error"] != true {
		t.Fatal("invalid input should yield an error layout")
	}
	if len(layout.Elements) != 1 || layout.Elements[0].Type != model.ElementBanner {
		t.Fatalf("error layout should hold exactly the banner, got %+v", layout.Elements)
	}
	if layout.Elements[0].Text == nil {
		t.Error("error banner has no message text")
	}
}

func TestGenerateErrorLayoutOnBlockCount(t *testing.T) {
	c := testComposer()
	layout := c.Generate(funnelInput(1), "swot", nil) // swot needs exactly 4

	if layout.Meta == nil || layout.Meta["error"] != true {
		t.Fatal("block count below min_elements should yield an error layout")
	}
}

func TestGenerateErrorLayoutOnDuplicateIDs(t *testing.T) {
	c := testComposer()
	input := model.DiagramInput{
		Title: "Dup",
		Blocks: []model.BlockData{
			{ID: "x", Label: "One"},
			{ID: "x", Label: "Two"},
		},
	}
	layout := c.Generate(input, "timeline", nil)
	if layout.Meta == nil || layout.Meta["error"] != true {
		t.Fatal("duplicate block IDs should yield an error layout")
	}
}

func TestGenerateErrorLayoutOnBadColor(t *testing.T) {
	c := testComposer()
	input := funnelInput(4)
	input.Blocks[0].Color = "#12345" // five hex digits

	layout := c.Generate(input, "funnel", nil)
	if layout.Meta == nil || layout.Meta["error"] != true {
		t.Fatal("malformed hex color should yield an error layout")
	}

	// Palette tokens and well-formed hex still pass.
	input.Blocks[0].Color = "secondary"
	input.Blocks[1].Color = "#A1B2C3"
	layout = c.Generate(input, "funnel", nil)
	if layout.Meta != nil && layout.Meta["error"] == true {
		t.Fatalf("valid colors rejected: %v", layout.Meta["problems"])
	}
}

func TestGenerateUnknownArchetypeFallsBack(t *testing.T) {
	c := testComposer()
	layout := c.Generate(funnelInput(3), "totally-new-shape", nil)

	if layout.Meta != nil && layout.Meta["error"] == true {
		t.Fatal("unknown archetype must not fail")
	}
	if layout.Archetype != "totally-new-shape" {
		t.Errorf("archetype tag = %q", layout.Archetype)
	}
	if len(layout.Elements) != 3 {
		t.Fatalf("got %d elements", len(layout.Elements))
	}
}

func TestGenerateLabelContrast(t *testing.T) {
	c := testComposer()
	input := funnelInput(2)
	input.Blocks[0].Color = "#101010"
	input.Blocks[1].Color = "#F5F5F5"

	layout := c.Generate(input, "timeline", nil)
	m := model.DefaultPalette()
	if layout.Elements[0].Text.Color != m.TextLight {
		t.Errorf("dark block label = %q, want light", layout.Elements[0].Text.Color)
	}
	if layout.Elements[1].Text.Color != m.TextDark {
		t.Errorf("light block label = %q, want dark", layout.Elements[1].Text.Color)
	}
}

func TestGenerateAppliesOverlays(t *testing.T) {
	c := testComposer()
	overlays := []model.OverlaySpec{
		{Kind: "side_arrow", Side: model.SideLeft, Width: 1.0, Margin: 0.1, Text: "More"},
	}
	plain := c.Generate(funnelInput(4), "funnel", nil)
	withOv := c.Generate(funnelInput(4), "funnel", overlays)

	if len(withOv.Elements) != len(plain.Elements)+1 {
		t.Fatalf("overlay element not added: %d vs %d", len(withOv.Elements), len(plain.Elements))
	}
	// The scene is compressed, not shifted: widths shrink.
	if !(withOv.Elements[0].Width < plain.Elements[0].Width) {
		t.Error("overlay reservation did not compress the scene")
	}
}

func TestGenerateHubSpokeConnectors(t *testing.T) {
	c := testComposer()
	layout := c.Generate(funnelInput(5), "hub_spoke", nil)

	if len(layout.Connectors) != 4 {
		t.Fatalf("got %d connectors, want 4 hub-to-spoke", len(layout.Connectors))
	}
	hubID := layout.Elements[0].ID
	for _, conn := range layout.Connectors {
		if conn.FromID != hubID {
			t.Errorf("connector from %q, want the hub %q", conn.FromID, hubID)
		}
		if conn.Color == "" {
			t.Error("connector color not resolved")
		}
	}
}

func TestGenerateMatrixScenario(t *testing.T) {
	c := testComposer()
	layout := c.Generate(funnelInput(4), "matrix", nil)

	xs := map[float64]bool{}
	ys := map[float64]bool{}
	for _, e := range layout.Elements {
		xs[math.Round(e.X*1e6)] = true
		ys[math.Round(e.Y*1e6)] = true
	}
	if len(xs) != 2 || len(ys) != 2 {
		t.Errorf("matrix with four blocks should be a 2x2 grid, got %d cols %d rows", len(xs), len(ys))
	}
}

func TestGenerateElementsStayOnCanvas(t *testing.T) {
	c := testComposer()
	for _, id := range []string{"funnel", "cycle", "org_chart", "process_flow", "matrix", "target"} {
		layout := c.Generate(funnelInput(5), id, nil)
		for _, e := range layout.Elements {
			if e.X < 0 || e.Y < 0 || e.X+e.Width > 13.333+1e-9 || e.Y+e.Height > 7.5+1e-9 {
				t.Errorf("%s: element %s off canvas: (%v,%v) %vx%v", id, e.ID, e.X, e.Y, e.Width, e.Height)
			}
		}
	}
}
