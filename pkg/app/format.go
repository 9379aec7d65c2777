package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"

	"github.com/birdayz/invis/pkg/codec"
)

// OutputFormat controls how transformed text is printed.
type OutputFormat string

const (
	OutputFormatRaw     OutputFormat = "raw"
	OutputFormatHex     OutputFormat = "hex"
	OutputFormatEscaped OutputFormat = "escaped"
	OutputFormatJSON    OutputFormat = "json"
)

func (e *OutputFormat) String() string {
	return string(*e)
}

func (e *OutputFormat) Set(v string) error {
	switch v {
	case "raw", "hex", "escaped", "json":
		*e = OutputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: raw, hex, escaped, json")
	}
}

func (e *OutputFormat) Type() string {
	return "OutputFormat"
}

// CompleteOutputFormat provides shell completion for --format.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"raw", "hex", "escaped", "json"}, cobra.ShellCompDirectiveNoFileComp
}

// ReportFormat controls how inspect prints its report.
type ReportFormat string

const (
	ReportFormatTable ReportFormat = "table"
	ReportFormatJSON  ReportFormat = "json"
)

func (e *ReportFormat) String() string {
	return string(*e)
}

func (e *ReportFormat) Set(v string) error {
	switch v {
	case "table", "json":
		*e = ReportFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of: table, json")
	}
}

func (e *ReportFormat) Type() string {
	return "ReportFormat"
}

// CompleteReportFormat provides shell completion for inspect --format.
func CompleteReportFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
}

// Result is the json rendering of one transform.
type Result struct {
	Mode   codec.Mode `json:"mode"`
	Input  string     `json:"input"`
	Output string     `json:"output"`
	// Escaped is Output with every non-ASCII code point spelled out.
	Escaped string `json:"escaped"`
	Runes   int    `json:"runes"`
}

// Render formats a transform result. Raw output is returned as is, without a
// trailing newline.
func Render(f OutputFormat, mode codec.Mode, in, out []byte) ([]byte, error) {
	switch f {
	case OutputFormatRaw, "":
		return out, nil
	case OutputFormatHex:
		return []byte(hex.EncodeToString(out) + "\n"), nil
	case OutputFormatEscaped:
		return []byte(strconv.QuoteToASCII(string(out)) + "\n"), nil
	case OutputFormatJSON:
		b, err := json.Marshal(Result{
			Mode:    mode,
			Input:   string(in),
			Output:  string(out),
			Escaped: strconv.QuoteToASCII(string(out)),
			Runes:   utf8.RuneCount(out),
		})
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

// FormatValue pretty-prints JSON data.
func FormatValue(data []byte) []byte {
	if b, err := prettyjson.Format(data); err == nil {
		return append(b, '\n')
	}
	return data
}
