package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wotscan/pkg/wot/community"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	var noDesc bool

	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for wotscan.

Besides commands and flags, the scripts complete strong-set selectors,
Girvan-Newman removal policies, render formats, scenario files (*.toml)
and graph files (*.json).

  $ source <(wotscan completion bash)
  $ wotscan completion zsh > "${fpath[1]}/_wotscan"
  $ wotscan completion fish > ~/.config/fish/completions/wotscan.fish
  PS> wotscan completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, !noDesc)
			case "zsh":
				if noDesc {
					return root.GenZshCompletionNoDesc(w)
				}
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, !noDesc)
			case "powershell":
				if noDesc {
					return root.GenPowerShellCompletion(w)
				}
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "omit value descriptions from the script")

	return cmd
}

// flagValues lists the completions offered for enumerated flags.
var flagValues = map[string][]cobra.Completion{
	"strong-set": {
		cobra.CompletionWithDesc("anchored", "component holding the most anchor peers"),
		cobra.CompletionWithDesc("largest", "largest strongly connected component"),
		cobra.CompletionWithDesc("first", "first component found"),
		cobra.CompletionWithDesc("containing", "component containing the first anchor"),
	},
	"policy": {
		cobra.CompletionWithDesc(community.RemoveReciprocal.String(), "remove a signature and its reverse"),
		cobra.CompletionWithDesc(community.RemoveSingle.String(), "remove only the top-scoring signature"),
	},
	"format": {
		cobra.CompletionWithDesc(formatSVG, "Graphviz SVG"),
		cobra.CompletionWithDesc(formatDOT, "Graphviz DOT source"),
		cobra.CompletionWithDesc(formatJSON, "graph file readable with --graph"),
		cobra.CompletionWithDesc(formatPDF, "PDF via rsvg-convert"),
		cobra.CompletionWithDesc(formatPNG, "PNG via rsvg-convert"),
	},
}

// flagExtensions restricts file completion for path flags.
var flagExtensions = map[string][]string{
	"config": {"toml"},
	"graph":  {"json"},
}

// registerCompletions attaches value completions to every subcommand of
// root that defines one of the enumerated or path flags.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		for name, values := range flagValues {
			if cmd.Flags().Lookup(name) != nil {
				_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
			}
		}
		for name, exts := range flagExtensions {
			if cmd.Flags().Lookup(name) != nil {
				_ = cmd.MarkFlagFilename(name, exts...)
			}
		}
	}
}
