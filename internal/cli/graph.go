package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/diagramkit/diagramkit/pkg/model"
)

// graphCommand creates the graph command for previewing diagram connectivity.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph [diagram.json]",
		Short: "Preview a diagram's connectivity as a Graphviz graph (debug tool)",
		Long: `Preview a diagram's connectivity as a Graphviz graph.

The graph command reads a diagram description and renders its blocks and
connectors with Graphviz. The preview ignores archetypes and layout rules
entirely; it is a sanity check for the input's structure, not for the layout
the engine will produce.`,
		Example: `  # Quick SVG preview
  diagramkit graph pipeline.json -o pipeline.svg

  # Emit raw DOT for further processing
  diagramkit graph pipeline.json --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", "svg", "output format: svg, png, dot")

	return cmd
}

// runGraph reads the diagram and renders the connectivity preview.
func (c *CLI) runGraph(ctx context.Context, input, output, format string) error {
	in, err := model.ReadInputFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	dot := inputToDOT(in)

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg", "png":
		data, err = renderDOT(ctx, dot, format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
	default:
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot)", format)
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Graph preview generated")
	printKeyValue("Blocks", fmt.Sprintf("%d", len(in.Blocks)))
	printKeyValue("Connectors", fmt.Sprintf("%d", len(in.Connectors)))
	printFile(output)

	return nil
}

// inputToDOT converts a diagram description to Graphviz DOT. Layers become
// clusters; connectors become directed edges.
func inputToDOT(in model.DiagramInput) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	inLayer := make(map[string]bool)
	for i, layer := range in.Layers {
		label := layer.Label
		if label == "" {
			label = layer.ID
		}
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", label)
		buf.WriteString("    style=dashed;\n")
		for _, id := range layer.BlockIDs {
			if b, ok := in.BlockByID(id); ok {
				fmt.Fprintf(&buf, "    %q [%s];\n", b.ID, strings.Join(blockAttrs(b), ", "))
				inLayer[id] = true
			}
		}
		buf.WriteString("  }\n")
	}

	for _, b := range in.Blocks {
		if inLayer[b.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(blockAttrs(b), ", "))
	}

	buf.WriteString("\n")
	for _, conn := range in.Connectors {
		attrs := ""
		if conn.Label != "" {
			attrs = fmt.Sprintf(" [label=%q]", conn.Label)
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", conn.FromID, conn.ToID, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func blockAttrs(b model.BlockData) []string {
	attrs := []string{fmt.Sprintf("label=%q", b.DisplayLabel())}
	if strings.HasPrefix(b.Color, "#") {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", b.Color))
	}
	return attrs
}

// renderDOT renders a DOT graph with Graphviz.
func renderDOT(ctx context.Context, dot, format string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	target := graphviz.SVG
	if format == "png" {
		target = graphviz.PNG
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, target, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
