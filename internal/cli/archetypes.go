package cli

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/diagramkit/diagramkit/pkg/archetype"
)

// archetypesCommand creates the archetypes command with its subcommands.
func (c *CLI) archetypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "archetypes",
		Aliases: []string{"archetype"},
		Short:   "List, search, inspect, and learn layout archetypes",
	}

	cmd.AddCommand(c.archetypesListCommand())
	cmd.AddCommand(c.archetypesSearchCommand())
	cmd.AddCommand(c.archetypesShowCommand())
	cmd.AddCommand(c.archetypesLearnCommand())

	return cmd
}

// archetypesListCommand creates the "archetypes list" subcommand.
func (c *CLI) archetypesListCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every resolvable archetype",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := c.openRegistry()
			if err != nil {
				return err
			}
			rules := registry.List()

			if pick {
				return c.runArchetypePicker(rules)
			}

			fmt.Println(renderArchetypeTable(rules))
			printDetail("%d archetypes", len(rules))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "pick an archetype interactively")

	return cmd
}

// archetypesSearchCommand creates the "archetypes search" subcommand.
func (c *CLI) archetypesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search archetypes by name, keywords, and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := c.openRegistry()
			if err != nil {
				return err
			}

			matches := registry.Search(args[0])
			if len(matches) == 0 {
				printInfo("No archetypes match %q", args[0])
				return nil
			}

			fmt.Println(renderArchetypeTable(matches))
			printDetail("%d matches", len(matches))
			return nil
		},
	}
}

// archetypesShowCommand creates the "archetypes show" subcommand.
func (c *CLI) archetypesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print the full rules for one archetype as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := c.openRegistry()
			if err != nil {
				return err
			}

			rules := registry.Resolve(args[0])
			if rules.ArchetypeID != args[0] {
				printWarning("%q is not registered, showing the fallback", args[0])
			}

			data, err := json.MarshalIndent(rules, "", "  ")
			if err != nil {
				return fmt.Errorf("encode rules: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

// archetypesLearnCommand creates the "archetypes learn" subcommand.
func (c *CLI) archetypesLearnCommand() *cobra.Command {
	var persist bool

	cmd := &cobra.Command{
		Use:   "learn [rules.json]",
		Short: "Register a learned archetype from a rules file",
		Long: `Register a learned archetype from a rules file.

The rules file is the same JSON shape that 'archetypes show' prints. Learned
archetypes take priority over custom and predefined ones during resolution.
With --persist the rules are written to the learned rules directory so they
survive across runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read rules %s: %w", args[0], err)
			}

			var rules archetype.Rules
			if err := json.Unmarshal(data, &rules); err != nil {
				return fmt.Errorf("parse rules %s: %w", args[0], err)
			}

			registry, err := c.openRegistry()
			if err != nil {
				return err
			}
			if err := registry.RegisterLearned(rules, persist); err != nil {
				return err
			}

			printSuccess("Learned archetype %q", rules.ArchetypeID)
			if persist {
				printDetail("Persisted to the learned rules directory")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&persist, "persist", true, "write the rules to the learned rules directory")

	return cmd
}

// openRegistry builds the archetype registry from the current config.
func (c *CLI) openRegistry() (*archetype.Registry, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return newRegistry(cfg, c.Logger), nil
}

// runArchetypePicker shows the interactive list and prints the selection.
func (c *CLI) runArchetypePicker(rules []archetype.Rules) error {
	m := NewArchetypeListModel(rules)
	p := tea.NewProgram(m)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	picked, ok := final.(ArchetypeListModel)
	if !ok || picked.Selected == nil {
		printInfo("No archetype selected")
		return nil
	}

	printSuccess("Selected %q", picked.Selected.ArchetypeID)
	printNextStep("Layout", fmt.Sprintf("diagramkit layout diagram.json -a %s", picked.Selected.ArchetypeID))
	return nil
}
