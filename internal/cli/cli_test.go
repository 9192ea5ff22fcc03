package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/diagramkit/diagramkit/pkg/cache"
	"github.com/diagramkit/diagramkit/pkg/model"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func writeTestDiagram(t *testing.T, dir string) string {
	t.Helper()
	in := model.DiagramInput{
		Title: "Rollout Plan",
		Blocks: []model.BlockData{
			{ID: "alpha", Label: "Alpha"},
			{ID: "beta", Label: "Beta"},
			{ID: "ga", Label: "GA"},
		},
		Connectors: []model.ConnectorData{
			{FromID: "alpha", ToID: "beta"},
			{FromID: "beta", ToID: "ga"},
		},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal diagram: %v", err)
	}
	path := filepath.Join(dir, "diagram.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write diagram: %v", err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{"layout", "validate", "fix", "archetypes", "cache", "graph", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestLayoutCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	input := writeTestDiagram(t, dir)
	output := filepath.Join(dir, "out.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"layout", input, "-a", "process_flow", "-o", output, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout command: %v", err)
	}

	layout, err := model.ReadLayoutFile(output)
	if err != nil {
		t.Fatalf("read output layout: %v", err)
	}
	if len(layout.Elements) != 3 {
		t.Errorf("layout has %d elements, want 3", len(layout.Elements))
	}
	if layout.Archetype != "process_flow" {
		t.Errorf("Archetype = %q, want %q", layout.Archetype, "process_flow")
	}
	if layout.Title == nil {
		t.Error("layout should carry the diagram title")
	}
}

func TestLayoutCommandRejectsBadArchetypeFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	input := writeTestDiagram(t, dir)

	root := testCLI().RootCommand()
	root.SetArgs([]string{"layout", input, "-a", "../not_an_id", "--no-cache"})
	if err := root.Execute(); err == nil {
		t.Error("layout should reject a malformed archetype flag")
	}
}

func TestArchetypeCompletionListsRegistry(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	ids, directive := testCLI().archetypeCompletion(nil, nil, "")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want no file completion", directive)
	}

	want := map[string]bool{"funnel": false, "process_flow": false}
	for _, id := range ids {
		if _, ok := want[id]; ok {
			want[id] = true
		}
	}
	for id, found := range want {
		if !found {
			t.Errorf("completion is missing predefined archetype %q", id)
		}
	}
}

func TestRunnerScopesCacheKeysByCanvas(t *testing.T) {
	c := testCLI()
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	runner, err := c.newRunner(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	defer runner.Close()

	key := runner.Keyer.LayoutKey("hash", cache.LayoutKeyOpts{Archetype: "funnel"})
	if !strings.HasPrefix(key, canvasScope(cfg)) {
		t.Errorf("cache key %q should carry the canvas scope %q", key, canvasScope(cfg))
	}

	// A different canvas must produce a disjoint key space, so a config
	// change never serves layouts positioned for the old dimensions.
	other := cfg
	other.Canvas.Width = cfg.Canvas.Width * 2
	if canvasScope(other) == canvasScope(cfg) {
		t.Error("different canvas dimensions should have different scopes")
	}
}

func TestLayoutCommandDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	input := writeTestDiagram(t, dir)

	root := testCLI().RootCommand()
	root.SetArgs([]string{"layout", input, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout command: %v", err)
	}

	want := filepath.Join(dir, "diagram.layout.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected default output at %s: %v", want, err)
	}
}

func TestValidateCommandAcceptsCleanLayout(t *testing.T) {
	dir := t.TempDir()
	layout := model.PositionedLayout{
		SlideWidth:  13.333,
		SlideHeight: 7.5,
		Elements: []model.PositionedElement{
			{ID: "a", X: 5.6665, Y: 1.5, Width: 2, Height: 1},
			{ID: "b", X: 5.6665, Y: 3.0, Width: 2, Height: 1},
		},
	}
	path := filepath.Join(dir, "layout.json")
	if err := writeLayoutFile(layout, path); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	root := testCLI().RootCommand()
	root.SetArgs([]string{"validate", path})
	if err := root.Execute(); err != nil {
		t.Errorf("validate should accept a clean layout: %v", err)
	}
}

func TestValidateCommandRejectsOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	layout := model.PositionedLayout{
		SlideWidth:  13.333,
		SlideHeight: 7.5,
		Elements: []model.PositionedElement{
			{ID: "a", X: 13.0, Y: 7.2, Width: 2, Height: 1},
		},
	}
	path := filepath.Join(dir, "layout.json")
	if err := writeLayoutFile(layout, path); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	root := testCLI().RootCommand()
	root.SetArgs([]string{"validate", path})
	if err := root.Execute(); err == nil {
		t.Error("validate should fail for an out-of-bounds layout")
	}
}

func TestFixCommandRepairsLayout(t *testing.T) {
	dir := t.TempDir()
	layout := model.PositionedLayout{
		SlideWidth:  13.333,
		SlideHeight: 7.5,
		Elements: []model.PositionedElement{
			{ID: "a", X: 13.0, Y: 7.2, Width: 2, Height: 1},
		},
	}
	input := filepath.Join(dir, "layout.json")
	if err := writeLayoutFile(layout, input); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	output := filepath.Join(dir, "fixed.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"fix", input, "-o", output})
	if err := root.Execute(); err != nil {
		t.Fatalf("fix command: %v", err)
	}

	fixed, err := model.ReadLayoutFile(output)
	if err != nil {
		t.Fatalf("read fixed layout: %v", err)
	}
	e := fixed.Elements[0]
	if e.X+e.Width > 13.333+1e-9 || e.Y+e.Height > 7.5+1e-9 {
		t.Errorf("fixed element still out of bounds: x=%v y=%v", e.X, e.Y)
	}
}
