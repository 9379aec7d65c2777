package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	"github.com/birdayz/invis/pkg/app"
	"github.com/birdayz/invis/pkg/config"
)

// NewCommand returns the "invis config" command with subcommands.
func NewCommand(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Handle invis configuration",
		Annotations: map[string]string{app.AnnotationLenientConfig: ""},
	}

	cmd.AddCommand(
		newViewCommand(a),
		newSetCommand(a),
		newSelectFormatCommand(a),
	)

	return cmd
}

func newViewCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Display the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yaml.Marshal(&a.Cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprintf(a.OutWriter, "# %s\n%s", a.Cfg.Path(), b)
			return nil
		},
	}
}

func newSetCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "set KEY VALUE",
		Short:             "Set a configuration value",
		Long:              "Set a configuration value. Keys: " + strings.Join(config.Keys, ", "),
		Example:           "  invis config set output-format escaped\n  invis config set carrier \"Hello \"",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: a.ValidConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintf(a.OutWriter, "Set %s.\n", args[0])
			return nil
		},
	}
}

func newSelectFormatCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "select-format",
		Short: "Interactively select the default output format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos := slices.Index(config.Formats, a.Cfg.OutputFormat)
			if pos < 0 {
				pos = 0
			}

			p := promptui.Select{
				Label:     "Select output format",
				Items:     config.Formats,
				CursorPos: pos,
			}

			_, selected, err := p.Run()
			if err != nil {
				// User cancelled (e.g. Ctrl-C). Not an error.
				return nil
			}

			if err := a.Cfg.Set("output-format", selected); err != nil {
				return err
			}
			if err := a.Cfg.Write(); err != nil {
				return fmt.Errorf("unable to write config: %w", err)
			}
			fmt.Fprintf(a.OutWriter, "Switched output format to %q.\n", selected)
			return nil
		},
	}
}
