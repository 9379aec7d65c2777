package inspect

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/birdayz/invis/pkg/app"
	"github.com/birdayz/invis/pkg/tag"
)

// NewCommand returns the "invis inspect" command.
func NewCommand(a *app.App) *cobra.Command {
	formatFlag := app.ReportFormatTable

	cmd := &cobra.Command{
		Use:   "inspect [TEXT...]",
		Short: "Show the visible text and hidden payload of a string",
		Example: `  pbpaste | invis inspect
  invis inspect -f message.txt --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.ReadInput(cmd, args)
			if err != nil {
				return err
			}

			rep := tag.Inspect(string(input))
			a.Logger.Debug("inspected input", "tag_runes", rep.TagRunes, "spans", len(rep.Spans))

			switch formatFlag {
			case app.ReportFormatJSON:
				b, err := json.Marshal(rep)
				if err != nil {
					return fmt.Errorf("marshal report: %w", err)
				}
				if a.IsTerminal(a.OutWriter) {
					_, err = a.ColorableOut.Write(app.FormatValue(b))
				} else {
					_, err = a.OutWriter.Write(append(b, '\n'))
				}
				return err
			default:
				w := app.NewTabWriter(a.OutWriter)
				fmt.Fprintf(w, "VISIBLE\t%s\n", strconv.Quote(rep.Visible))
				fmt.Fprintf(w, "HIDDEN\t%s\n", strconv.Quote(rep.Hidden))
				fmt.Fprintf(w, "TAG\t%d\n", rep.TagRunes)
				fmt.Fprintf(w, "ASCII\t%d\n", rep.ASCIIRunes)
				fmt.Fprintf(w, "OTHER\t%d\n", rep.OtherRunes)
				fmt.Fprintf(w, "INVALID BYTES\t%d\n", rep.InvalidBytes)
				for _, span := range rep.Spans {
					fmt.Fprintf(w, "SPAN\t%d-%d\n", span.Start, span.End)
				}
				return w.Flush()
			}
		},
	}

	a.AddInputFlags(cmd)
	cmd.Flags().Var(&formatFlag, "format", "Report format. Available: table, json")
	_ = cmd.RegisterFlagCompletionFunc("format", app.CompleteReportFormat)

	return cmd
}
