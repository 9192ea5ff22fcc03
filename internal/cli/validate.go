package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diagramkit/diagramkit/pkg/constraint"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// validateCommand creates the validate command for checking positioned layouts.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [layout.json]",
		Short: "Check a positioned layout against quality constraints",
		Long: `Check a positioned layout against quality constraints.

The validate command loads a layout.json file (produced by 'layout') and runs
the constraint checks: canvas bounds (error), shape overlap (warning), center
alignment and vertical spacing (info). It prints a severity-colored report and
the layout's quality score.

With --strict the command fails when any violation is found; by default only
error-severity violations fail it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings and infos too")

	return cmd
}

// runValidate loads the layout, validates it, and prints the report.
func (c *CLI) runValidate(input string, strict bool) error {
	layout, err := model.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	engine := constraint.NewEngine(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Tolerance)
	result := engine.Validate(constraint.FromElements(layout.Elements))

	printValidationReport(result)

	if !result.IsValid {
		return fmt.Errorf("layout has %d error violation(s)", result.Count(model.SeverityError))
	}
	if strict && len(result.Violations) > 0 {
		return fmt.Errorf("layout has %d violation(s)", len(result.Violations))
	}
	return nil
}

// fixCommand creates the fix command for repairing positioned layouts.
func (c *CLI) fixCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fix [layout.json]",
		Short: "Apply the deterministic repair pass to a layout",
		Long: `Apply the deterministic repair pass to a layout.

The fix command loads a layout.json file, clamps out-of-bounds shapes,
separates overlapping shapes, recenters the group, and evens out vertical
spacing. It then re-validates and reports the before/after scores.

The repair pass improves layouts but does not guarantee a violation-free
result when shapes simply cannot fit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFix(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.fixed.json)")

	return cmd
}

// runFix loads the layout, repairs it, and writes the repaired layout.
func (c *CLI) runFix(input, output string) error {
	layout, err := model.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	engine := constraint.NewEngine(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Tolerance)
	before := engine.Validate(constraint.FromElements(layout.Elements))

	fixed := layout
	fixed.Elements = constraint.ApplyToElements(layout.Elements,
		engine.Fix(constraint.FromElements(layout.Elements), cfg.Canvas.MarginY))
	after := engine.Validate(constraint.FromElements(fixed.Elements))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".fixed.json"
	}

	if err := writeLayoutFile(fixed, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Repair pass complete")
	printFile(outputPath)
	printDetail("Score: %.0f → %.0f", before.Score, after.Score)
	if len(after.Violations) > 0 {
		printNewline()
		printValidationReport(after)
	}

	return nil
}
