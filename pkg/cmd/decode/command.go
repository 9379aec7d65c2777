package decode

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/transform"

	"github.com/birdayz/invis/pkg/app"
	"github.com/birdayz/invis/pkg/codec"
	"github.com/birdayz/invis/pkg/tag"
)

// NewCommand returns the "invis decode" command.
func NewCommand(a *app.App) *cobra.Command {
	var hiddenOnlyFlag bool

	cmd := &cobra.Command{
		Use:   "decode [TEXT...]",
		Short: "Reveal ASCII hidden in Unicode tag characters",
		Long:  "Decode maps every Unicode tag character in the range U+E0020..U+E007E back to the printable ASCII character it stands for. All other characters, including the visible text around the hidden payload, are passed through unchanged.",
		Example: `  pbpaste | invis decode
  invis decode -f message.txt --hidden-only
  invis decode -f message.txt --format escaped`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.ResolveFormat(cmd)

			if format == app.OutputFormatRaw && !hiddenOnlyFlag {
				return stream(a, cmd, args)
			}

			input, err := a.ReadInput(cmd, args)
			if err != nil {
				return err
			}

			var out []byte
			if hiddenOnlyFlag {
				out = []byte(tag.Hidden(string(input)))
			} else {
				out, err = codec.Apply(codec.TagCodec{}, codec.ModeDecode, input)
				if err != nil {
					return err
				}
			}

			b, err := app.Render(format, codec.ModeDecode, input, out)
			if err != nil {
				return err
			}
			return a.WriteOutput(b)
		},
	}

	a.AddInputFlags(cmd)
	a.AddOutputFlags(cmd)
	cmd.Flags().BoolVar(&hiddenOnlyFlag, "hidden-only", false, "Print only the hidden payload and drop the visible text")

	return cmd
}

func stream(a *app.App, cmd *cobra.Command, args []string) error {
	r, err := a.OpenInput(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := a.OpenOutput()
	if err != nil {
		return err
	}

	n, err := io.Copy(w, transform.NewReader(r, tag.NewDecoder()))
	if err != nil {
		w.Abort()
		return fmt.Errorf("error decoding input: %w", err)
	}
	if err := w.Commit(); err != nil {
		return err
	}
	a.Logger.Debug("decoded input", "bytes_out", n)
	return nil
}
