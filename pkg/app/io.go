package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// ErrNoInput is returned when there is no text argument, no input file and
// stdin is an interactive terminal.
var ErrNoInput = errors.New("no input: pass text, --file, or pipe data on stdin")

// AddInputFlags installs the shared --file flag on cmd.
func (a *App) AddInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.InputFile, "file", "f", "", "Input file to read from instead of the command line")
}

// AddOutputFlags installs the shared --output and --format flags on cmd.
func (a *App) AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.OutputFile, "output", "o", "", "Output file to write to instead of stdout")
	cmd.Flags().VarP(&a.Format, "format", "F", "Output format. Available: raw, hex, escaped, json (default from config, else raw)")
	_ = cmd.RegisterFlagCompletionFunc("format", CompleteOutputFormat)
}

// ResolveFormat returns the format chosen by flag, falling back to the config
// file and then to raw.
func (a *App) ResolveFormat(cmd *cobra.Command) OutputFormat {
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		return a.Format
	}
	if a.Cfg.OutputFormat != "" {
		return OutputFormat(a.Cfg.OutputFormat)
	}
	return OutputFormatRaw
}

// OpenInput resolves where input text comes from. Positional text wins, then
// --file, then stdin if it is not a terminal. When nothing is available the
// usage is printed and ErrNoInput returned.
func (a *App) OpenInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	switch {
	case len(args) > 0:
		a.Logger.Debug("reading input from arguments", "args", len(args))
		return io.NopCloser(strings.NewReader(strings.Join(args, " "))), nil
	case a.InputFile != "":
		path, err := homedir.Expand(a.InputFile)
		if err != nil {
			return nil, fmt.Errorf("error reading file: %w", err)
		}
		a.Logger.Debug("reading input from file", "path", path)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error reading file: %w", err)
		}
		return f, nil
	case !a.IsTerminal(a.InReader):
		a.Logger.Debug("reading input from stdin")
		return io.NopCloser(a.InReader), nil
	default:
		_ = cmd.Help()
		return nil, ErrNoInput
	}
}

// ReadInput reads all input text. See OpenInput.
func (a *App) ReadInput(cmd *cobra.Command, args []string) ([]byte, error) {
	r, err := a.OpenInput(cmd, args)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return b, nil
}

// Output is the destination chosen by --output. Writes to a file go to a
// temp file in the target directory that only replaces the target on Commit,
// so the target is untouched until all input has been read and transformed.
type Output struct {
	io.Writer
	file *os.File
	path string
}

// Commit makes the written output visible at its destination.
func (o *Output) Commit() error {
	if o.file == nil {
		return nil
	}
	tmpPath := o.file.Name()
	if err := o.file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error writing to file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error writing to file: %w", err)
	}
	if err := os.Rename(tmpPath, o.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error writing to file: %w", err)
	}
	return nil
}

// Abort discards everything written so far. Stdout output cannot be taken
// back and is left as is.
func (o *Output) Abort() {
	if o.file == nil {
		return
	}
	o.file.Close()
	os.Remove(o.file.Name())
}

// OpenOutput returns the file named by --output, or stdout.
func (a *App) OpenOutput() (*Output, error) {
	if a.OutputFile == "" {
		return &Output{Writer: a.OutWriter}, nil
	}
	path, err := homedir.Expand(a.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("error writing to file: %w", err)
	}
	a.Logger.Debug("writing output to file", "path", path)
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("error writing to file: %w", err)
	}
	return &Output{Writer: f, file: f, path: path}, nil
}

// WriteOutput writes b to the destination chosen by --output.
func (a *App) WriteOutput(b []byte) error {
	w, err := a.OpenOutput()
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		w.Abort()
		return fmt.Errorf("error writing output: %w", err)
	}
	return w.Commit()
}
