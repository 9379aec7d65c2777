package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/birdayz/invis/pkg/app"
)

var generators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// NewCommand returns the "invis completion" command. Completions cover the
// whole tree below root, including --format values and config keys.
func NewCommand(root *cobra.Command, a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "completion SHELL",
		Short: "Print a shell completion script (bash, zsh, fish, powershell)",
		Long: `Print a completion script for invis to stdout.

Bash (requires bash-completion v2):
  source <(invis completion bash)
  invis completion bash > ~/.local/share/bash-completion/completions/invis

Zsh:
  invis completion zsh > "${fpath[1]}/_invis"
  # then start a new shell

Fish:
  invis completion fish > ~/.config/fish/completions/invis.fish

PowerShell:
  invis completion powershell | Out-String | Invoke-Expression
  # add the line above to $PROFILE to load it in every session
`,
		Annotations:           map[string]string{app.AnnotationLenientConfig: ""},
		DisableFlagsInUseLine: true,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := generators[args[0]]
			if err := gen(root, a.OutWriter); err != nil {
				return fmt.Errorf("failed to generate %s completion: %w", args[0], err)
			}
			return nil
		},
	}
}
