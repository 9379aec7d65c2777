package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/birdayz/invis/pkg/app"
	"github.com/birdayz/invis/pkg/cmd/completion"
	invisconfig "github.com/birdayz/invis/pkg/cmd/config"
	"github.com/birdayz/invis/pkg/cmd/decode"
	"github.com/birdayz/invis/pkg/cmd/encode"
	"github.com/birdayz/invis/pkg/cmd/inspect"
)

// NewRootCommand builds the command tree around a.
func NewRootCommand(a *app.App, version, commit string) *cobra.Command {
	root := &cobra.Command{
		Use:          "invis",
		Short:        "Hide ASCII text in invisible Unicode tag characters and reveal it again",
		Version:      fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.OutWriter = cmd.OutOrStdout()
			a.ErrWriter = cmd.ErrOrStderr()
			a.InReader = cmd.InOrStdin()

			if a.OutWriter != os.Stdout {
				a.ColorableOut = a.OutWriter
			}

			return a.InitConfig(app.LenientConfig(cmd))
		},
	}

	root.PersistentFlags().StringVar(&a.CfgFile, "config", "", "config file (default is $HOME/.invis/config)")
	root.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "Log debug information to stderr")

	root.AddCommand(
		encode.NewCommand(a),
		decode.NewCommand(a),
		inspect.NewCommand(a),
		invisconfig.NewCommand(a),
		completion.NewCommand(root, a),
	)

	a.Root = root
	return root
}

// Execute is the single entry point for the CLI.
func Execute(version, commit string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand(app.New(), version, commit).ExecuteContext(ctx)
}
