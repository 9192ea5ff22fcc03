package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diagramkit/diagramkit/pkg/config"
	"github.com/diagramkit/diagramkit/pkg/errors"
	"github.com/diagramkit/diagramkit/pkg/model"
	"github.com/diagramkit/diagramkit/pkg/observability"
	"github.com/diagramkit/diagramkit/pkg/pipeline"
	"github.com/diagramkit/diagramkit/pkg/store"
)

// layoutCommand creates the layout command for computing positioned layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		archetype string
		noCache   bool
		refresh   bool
		fix       bool
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Compute a positioned layout from a diagram description",
		Long: `Compute a positioned layout from a diagram description.

The layout command takes a diagram.json file (title, blocks, connectors,
layers) and produces a layout.json file with every element positioned, sized,
colored, and checked against quality constraints.

Invalid diagram content never fails the command: the output is an error layout
carrying a banner that lists the problems.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], layoutParams{
				archetype: archetype,
				output:    output,
				noCache:   noCache,
				refresh:   refresh,
				fix:       fix,
				save:      save,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&archetype, "archetype", "a", "", "layout archetype (default: freeform canvas)")
	_ = cmd.RegisterFlagCompletionFunc("archetype", c.archetypeCompletion)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&fix, "fix", false, "apply the repair pass when validation finds violations")
	cmd.Flags().BoolVar(&save, "save", false, "archive the layout in the configured store")

	return cmd
}

type layoutParams struct {
	archetype string
	output    string
	noCache   bool
	refresh   bool
	fix       bool
	save      bool
}

// runLayout loads the diagram, runs the pipeline, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, p layoutParams) error {
	// Resolution is case-insensitive, so validate the normalized form.
	if a := strings.ToLower(strings.TrimSpace(p.archetype)); a != "" {
		if err := errors.ValidateArchetypeID(a); err != nil {
			return err
		}
	}

	in, err := model.ReadInputFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, in, pipeline.Options{
		Archetype: p.archetype,
		Refresh:   p.refresh,
		Fix:       p.fix,
		Logger:    c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := p.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := writeLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.ElementCount, result.Stats.ConnectorCount, result.CacheInfo.LayoutHit)
	printScore(result.Validation)

	if p.save {
		if err := c.saveLayout(ctx, cfg, result); err != nil {
			return fmt.Errorf("archive layout: %w", err)
		}
		printDetail("Archived as %s", result.Layout.ID)
	}

	printNewline()
	printNextStep("Validate", "diagramkit validate "+outputPath)

	return nil
}

// saveLayout archives the pipeline result in the configured store.
func (c *CLI) saveLayout(ctx context.Context, cfg config.Config, result *pipeline.Result) error {
	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	start := time.Now()
	err = st.Save(ctx, store.Entry{
		Layout:    result.Layout,
		Archetype: result.Archetype,
		Score:     result.Validation.Score,
		SavedAt:   time.Now().UTC(),
	})
	observability.Store().OnSave(ctx, result.Layout.ID, time.Since(start), err)
	return err
}

// writeLayoutFile writes a positioned layout as indented JSON to path.
func writeLayoutFile(layout model.PositionedLayout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return model.WriteLayout(layout, f)
}
