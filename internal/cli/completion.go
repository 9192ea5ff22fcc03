package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	generators := map[string]func(*cobra.Command, io.Writer) error{
		"bash": func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		},
		"zsh": func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
		"fish": func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
		"powershell": func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	}

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for diagramkit.

The script completes subcommands, flags, and archetype identifiers for
the layout command's --archetype flag.

Load it into the current shell:

  $ source <(diagramkit completion bash)
  $ diagramkit completion fish | source

Or install it permanently, for example:

  $ diagramkit completion bash > /etc/bash_completion.d/diagramkit
  $ diagramkit completion zsh > "${fpath[1]}/_diagramkit"
  $ diagramkit completion fish > ~/.config/fish/completions/diagramkit.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd.Root(), os.Stdout)
		},
	}
}

// archetypeCompletion completes archetype identifiers from the registry,
// so shells offer learned and disk-loaded archetypes alongside the
// predefined ones.
func (c *CLI) archetypeCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	registry := newRegistry(cfg, c.Logger)

	var ids []string
	for _, rules := range registry.List() {
		ids = append(ids, rules.ArchetypeID)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
