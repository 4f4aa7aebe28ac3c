// Package cli implements the datplot command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/banshee-data/datplot/internal/config"
	"github.com/banshee-data/datplot/internal/display"
	"github.com/banshee-data/datplot/internal/figure"
	"github.com/banshee-data/datplot/internal/fsutil"
	"github.com/banshee-data/datplot/internal/plots"
	"github.com/banshee-data/datplot/internal/style"
	"github.com/banshee-data/datplot/internal/version"
)

var commandHelp = map[config.Kind]string{
	config.KindLine:      "Plots one or more columns from a file",
	config.KindMultiLine: "Plots a column from multiple files",
	config.KindHeat:      "Plots a heatmap from three columns in a file",
	config.KindMatrix:    "Plots a MxN heatmap from a file with M rows and N columns",
	config.KindHist:      "Plots a histogram of one or more columns from a file",
	config.KindMultiHist: "Plots a histogram of a column taken from multiple files",
	config.KindHist2D:    "Plots a 2D histogram from two columns in a file",
}

// exitError carries the process exit status of a failed invocation.
type exitError struct {
	Code int
	Err  error
}

func (e *exitError) Error() string { return e.Err.Error() }

func (e *exitError) Unwrap() error { return e.Err }

// App holds the process environment. Backend picks the display for a
// validated configuration.
type App struct {
	Stdout, Stderr io.Writer
	FS             fsutil.FileSystem
	Backend        func(cfg *config.Config) display.Backend
}

// Run executes one command line, without the program name, and returns
// the exit status.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		printUsage(a.Stdout)
		return 0
	}

	command := args[0]
	switch command {
	case "help", "-h", "--help":
		printUsage(a.Stdout)
		return 0
	case "version":
		fmt.Fprintln(a.Stdout, version.String())
		return 0
	}

	kind, ok := config.ParseKind(command)
	if !ok {
		fmt.Fprintf(a.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprintln(a.Stderr, "Available commands:")
		for _, name := range commandNames() {
			fmt.Fprintf(a.Stderr, "  %s\n", name)
		}
		return 1
	}

	if err := a.plot(ctx, kind, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.Code != 2 {
				fmt.Fprintf(a.Stderr, "Error: %v\n", exitErr.Err)
			}
			return exitErr.Code
		}
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *App) plot(ctx context.Context, kind config.Kind, args []string) error {
	cfg, err := parseConfig(kind, args, a.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		// The flag package has already printed the problem and usage.
		return &exitError{Code: 2, Err: err}
	}
	a.setupLogging(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		return &exitError{Code: 1, Err: err}
	}

	st, err := style.Load(a.FS, cfg.Style)
	if err != nil {
		return fmt.Errorf("load style: %w", err)
	}

	fig := figure.New(cfg.FigWidth, cfg.FigHeight, cfg.DPI, st)
	fig, err = plots.Run(fig, cfg, plots.NewFileLoader(a.FS))
	if err != nil {
		return err
	}

	if err := a.Backend(cfg).Show(ctx, fig); err != nil {
		return fmt.Errorf("%s backend: %w", cfg.Backend, err)
	}
	return nil
}

func (a *App) setupLogging(debug bool) {
	var diag io.Writer
	if debug {
		diag = a.Stderr
	}
	plots.SetLogWriters(a.Stderr, diag, nil)
	display.SetLogWriters(a.Stderr, diag, nil)
}

func commandNames() []string {
	names := []string{"help", "version"}
	for _, k := range config.Kinds() {
		names = append(names, string(k))
	}
	return names
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `datplot - quick plots of space delimited files

General purpose plotting tool, designed to give a quick and simple plot
for a space delimited file, as often created by MD engines and analysis
packages.

Usage: datplot <command> [files] [options]

Available commands:
  help       Print this message
  version    Show datplot version
`)
	for _, k := range config.Kinds() {
		fmt.Fprintf(w, "  %-10s %s\n", k, commandHelp[k])
	}
	fmt.Fprint(w, `
To see available options, run 'datplot <command> -h'.
Options may appear before or after the file names.

Display:
  --backend window     Show the figure in a desktop window (default)
  --backend browser    Serve the figure on --listen and print its URL

Examples:
  # Plot the RMSD of a domain vs. time from cpptraj
  datplot plot rmsdFile.dat -x 'Frames' -y 'RMSD (A)' -l 'Domain 1'

  # Plot the RMSD of two domains vs. time with 100 ps per frame stride
  datplot plot rmsdFile.dat --yCol 1,2 --xScale 0.1 -x 'Simulation time (ns)' \
      -y 'RMSD (A)' -l 'Domain 1' -l 'Domain 2'

  # Plot a CV from the colvars module in NAMD from three separate simulations
  datplot multi sim1.colvars.traj sim2.colvars.traj sim3.colvars.traj \
      -x 'Step number' -y 'CV value' -l 'Simulation 1' -l 'Simulation 2' -l 'Simulation 3'

  # Free energy surface from three columns, hiding empty cells
  datplot heat fes.dat --discardZero --useRelative -z 'kcal/mol' --heatmap jet

  # Distribution of a CV from two runs, one histogram each
  datplot multihist run1.traj run2.traj --separate --histtype step -n 50
`)
}
