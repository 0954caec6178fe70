// Command bikeshare explores US bikeshare trip data interactively.
//
// Usage:
//
//	bikeshare [flags]
//
// Flags:
//
//	-data-dir string    Directory holding the city CSV files (default ".")
//	-config string      HCL file overriding the data directory and city files
//	-plain              Use the line prompt even on a terminal
//	-log-level string   Log level: debug, info, warn, error (default "warn")
//	-log-format string  Log format: text, json (default "text")
//	-log-file string    Log destination (default: stderr for the line prompt, discarded for the TUI)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/bikeshare"
	bt "github.com/fwojciec/bikeshare/bubbletea"
	"github.com/fwojciec/bikeshare/fs"
	"github.com/fwojciec/bikeshare/gota"
	"github.com/fwojciec/bikeshare/hcl"
	"github.com/fwojciec/bikeshare/shell"
	"github.com/fwojciec/bikeshare/text"
	"github.com/mattn/go-isatty"
)

func main() {
	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	terminal := isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, terminal); err != nil {
		fmt.Fprintf(os.Stderr, "bikeshare: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// options holds parsed command-line flags.
type options struct {
	dataDir    string
	dataDirSet bool
	configPath string
	plain      bool
	logLevel   string
	logFormat  string
	logFile    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fset := flag.NewFlagSet("bikeshare", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVar(&opts.dataDir, "data-dir", ".", "Directory holding the city CSV files")
	fset.StringVar(&opts.configPath, "config", "", "HCL file overriding the data directory and city files")
	fset.BoolVar(&opts.plain, "plain", false, "Use the line prompt even on a terminal")
	fset.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fset.StringVar(&opts.logFormat, "log-format", "text", "Log format: text, json")
	fset.StringVar(&opts.logFile, "log-file", "", "Log destination (default: stderr for the line prompt, discarded for the TUI)")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	if fset.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fset.Args())
	}
	fset.Visit(func(f *flag.Flag) {
		if f.Name == "data-dir" {
			opts.dataDirSet = true
		}
	})
	return opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, terminal bool) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	tui := terminal && !opts.plain

	logOut := stderr
	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	case tui:
		logOut = io.Discard
	}
	logger, err := newLogger(opts.logLevel, opts.logFormat, logOut)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", slog.String("data_dir", cfg.DataDir()), slog.Bool("tui", tui))

	loader := gota.NewLoader(cfg, fs.NewDataDir(cfg.DataDir()), logger)
	analyze := bikeshare.NewAnalyzer(loader, logger).Func()

	if tui {
		final, err := bt.Run(ctx, bt.New(analyze, bikeshare.DefaultTheme()), tea.WithAltScreen())
		if err != nil {
			return fmt.Errorf("TUI: %w", err)
		}
		// The alternate screen is gone; leave the session on the terminal.
		fmt.Fprint(stdout, final.Transcript())
		return final.Err()
	}

	render := text.NewRenderer(text.NewStyles(bikeshare.PlainTheme()))
	err = shell.New(stdin, stdout, analyze, render, shell.WithLogger(logger)).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig builds the city file table. A config file's data_dir replaces
// the default data directory; an explicit -data-dir replaces both.
func loadConfig(opts options) (bikeshare.Config, error) {
	if opts.configPath == "" {
		return bikeshare.NewConfig(opts.dataDir, nil)
	}
	cfg, err := hcl.LoadConfig(opts.configPath, opts.dataDir)
	if err != nil {
		return bikeshare.Config{}, err
	}
	if opts.dataDirSet {
		cfg = cfg.WithDataDir(opts.dataDir)
	}
	return cfg, nil
}
