package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/birdayz/invis/pkg/config"
)

// App holds all shared mutable state for the CLI. It is created once per
// invocation and threaded into every command package.
type App struct {
	// I/O
	OutWriter    io.Writer
	ErrWriter    io.Writer
	InReader     io.Reader
	ColorableOut io.Writer

	// IsTerminal reports whether r is an interactive terminal. Input is only
	// read from stdin when it is not.
	IsTerminal func(r any) bool

	// Config state
	Cfg     config.Config
	CfgFile string
	Verbose bool

	Logger *slog.Logger

	// Shared I/O flags
	InputFile  string
	OutputFile string
	Format     OutputFormat

	// Root command reference (for completion generation)
	Root *cobra.Command
}

// New creates an App with sane defaults.
func New() *App {
	return &App{
		OutWriter:    os.Stdout,
		ErrWriter:    os.Stderr,
		InReader:     os.Stdin,
		ColorableOut: colorable.NewColorableStdout(),
		IsTerminal:   isTerminal,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// InitConfig reads the config file and sets up logging.
// Called by PersistentPreRunE on the root command. With lenient set, an
// unreadable config file is logged and the defaults are used instead, so
// commands that repair the file keep working.
func (a *App) InitConfig(lenient bool) error {
	a.Logger = NewLogger(a.ErrWriter, a.Verbose, a.IsTerminal(a.ErrWriter))

	cfg, err := config.ReadConfig(a.CfgFile)
	if err != nil {
		if !lenient || cfg.Path() == "" {
			return fmt.Errorf("invalid config: %w", err)
		}
		a.Logger.Warn("ignoring invalid config", "path", cfg.Path(), "error", err)
	}
	a.Cfg = cfg

	if a.Cfg.Verbose && !a.Verbose {
		a.Logger = NewLogger(a.ErrWriter, true, a.IsTerminal(a.ErrWriter))
	}
	a.Logger.Debug("loaded config", "path", a.Cfg.Path(), "output_format", a.Cfg.OutputFormat)
	return nil
}

// AnnotationLenientConfig marks a command tree that runs even when the
// config file cannot be used.
const AnnotationLenientConfig = "invis/lenient-config"

// LenientConfig reports whether cmd or one of its parents carries
// AnnotationLenientConfig.
func LenientConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[AnnotationLenientConfig]; ok {
			return true
		}
	}
	return false
}

// NewLogger creates the structured logger used by commands. On a terminal it
// writes human-readable text, otherwise JSON.
func NewLogger(w io.Writer, verbose, tty bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if tty {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

func isTerminal(r any) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ValidConfigKeys provides shell completion for config keys.
func (a *App) ValidConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return config.Keys, cobra.ShellCompDirectiveNoFileComp
	case 1:
		if args[0] == "output-format" {
			return config.Formats, cobra.ShellCompDirectiveNoFileComp
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

const (
	TabwriterMinWidth = 6
	TabwriterWidth    = 4
	TabwriterPadding  = 3
	TabwriterPadChar  = ' '
	TabwriterFlags    = 0
)

// NewTabWriter creates a standard tabwriter for CLI output.
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, TabwriterMinWidth, TabwriterWidth, TabwriterPadding, TabwriterPadChar, TabwriterFlags)
}
