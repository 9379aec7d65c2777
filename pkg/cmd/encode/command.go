package encode

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/transform"

	"github.com/birdayz/invis/pkg/app"
	"github.com/birdayz/invis/pkg/codec"
	"github.com/birdayz/invis/pkg/tag"
)

// NewCommand returns the "invis encode" command.
func NewCommand(a *app.App) *cobra.Command {
	var (
		carrierFlag  string
		templateFlag bool
	)

	cmd := &cobra.Command{
		Use:   "encode [TEXT...]",
		Short: "Hide printable ASCII in invisible Unicode tag characters",
		Long:  "Encode maps every printable ASCII character (space through tilde) to its twin in the Unicode tag block. All other characters are passed through unchanged. Input is taken from the arguments, --file, or stdin.",
		Example: `  invis encode "meet at noon"
  invis encode --carrier "Nothing to see here. " "meet at noon"
  cat secret.txt | invis encode -o hidden.txt
  invis encode --template 'ref {{ "q3 report" | upper }} #{{ add 40 2 }}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			carrier := a.Cfg.Carrier
			if cmd.Flags().Changed("carrier") {
				carrier = carrierFlag
			}
			format := a.ResolveFormat(cmd)

			if format == app.OutputFormatRaw && !templateFlag {
				return stream(a, cmd, args, carrier)
			}

			input, err := a.ReadInput(cmd, args)
			if err != nil {
				return err
			}

			if templateFlag {
				input, err = render(input)
				if err != nil {
					return err
				}
			}

			out, err := codec.Apply(codec.TagCodec{}, codec.ModeEncode, input)
			if err != nil {
				return err
			}
			out = append([]byte(carrier), out...)

			b, err := app.Render(format, codec.ModeEncode, input, out)
			if err != nil {
				return err
			}
			return a.WriteOutput(b)
		},
	}

	a.AddInputFlags(cmd)
	a.AddOutputFlags(cmd)
	cmd.Flags().StringVar(&carrierFlag, "carrier", "", "Visible text the hidden payload is appended to (default from config)")
	cmd.Flags().BoolVar(&templateFlag, "template", false, "Run the input through a go template with sprig functions before encoding")

	return cmd
}

// stream copies input to output through the tag encoder without buffering
// the whole input.
func stream(a *app.App, cmd *cobra.Command, args []string, carrier string) error {
	r, err := a.OpenInput(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := a.OpenOutput()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, carrier); err != nil {
		w.Abort()
		return fmt.Errorf("error writing output: %w", err)
	}
	n, err := io.Copy(w, transform.NewReader(r, tag.NewEncoder()))
	if err != nil {
		w.Abort()
		return fmt.Errorf("error encoding input: %w", err)
	}
	if err := w.Commit(); err != nil {
		return err
	}
	a.Logger.Debug("encoded input", "bytes_out", n+int64(len(carrier)))
	return nil
}

func render(input []byte) ([]byte, error) {
	tpl, err := template.New("invis").Funcs(sprig.HermeticTxtFuncMap()).Parse(string(input))
	if err != nil {
		return nil, fmt.Errorf("failed to parse go template: %v", err)
	}

	buf := bytes.NewBuffer(nil)
	if err := tpl.Execute(buf, nil); err != nil {
		return nil, fmt.Errorf("failed to execute go template: %v", err)
	}
	return buf.Bytes(), nil
}
