package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/datplot/internal/config"
)

// intList is a column list. Values are comma separated and the flag may
// be repeated; the first use replaces the default.
type intList struct {
	dst *[]int
	set bool
}

func (l *intList) String() string {
	if l.dst == nil {
		return ""
	}
	parts := make([]string, len(*l.dst))
	for i, v := range *l.dst {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	if !l.set {
		*l.dst = nil
		l.set = true
	}
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("%q is not a column index", f)
		}
		*l.dst = append(*l.dst, v)
	}
	return nil
}

// stringList collects one value per use of the flag.
type stringList struct {
	dst *[]string
}

func (l *stringList) String() string {
	if l.dst == nil {
		return ""
	}
	return strings.Join(*l.dst, ", ")
}

func (l *stringList) Set(s string) error {
	*l.dst = append(*l.dst, s)
	return nil
}

// parsePair parses "a,b" into two floats.
func parsePair(s string) (a, b float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want two comma separated numbers, got %q", s)
	}
	if a, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("%q is not a number", parts[0])
	}
	if b, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("%q is not a number", parts[1])
	}
	return a, b, nil
}

// limitsValue sets an optional min,max range.
type limitsValue struct {
	dst **config.Limits
}

func (v limitsValue) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g", (*v.dst).Min, (*v.dst).Max)
}

func (v limitsValue) Set(s string) error {
	lo, hi, err := parsePair(s)
	if err != nil {
		return err
	}
	*v.dst = &config.Limits{Min: lo, Max: hi}
	return nil
}

// sizeValue sets the figure width and height.
type sizeValue struct {
	w, h *float64
}

func (v sizeValue) String() string {
	if v.w == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g", *v.w, *v.h)
}

func (v sizeValue) Set(s string) error {
	w, h, err := parsePair(s)
	if err != nil {
		return err
	}
	*v.w, *v.h = w, h
	return nil
}

// optionalFloat is a float flag that stays nil unless given.
type optionalFloat struct {
	dst **float64
}

func (v optionalFloat) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}
	return strconv.FormatFloat(**v.dst, 'g', -1, 64)
}

func (v optionalFloat) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	*v.dst = &f
	return nil
}

// newFlagSet registers the options kind accepts, writing into cfg.
func newFlagSet(kind config.Kind, cfg *config.Config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(string(kind), flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: datplot %s %s [options]\n\n%s\n\nOptions:\n", kind, filesSynopsis(kind), commandHelp[kind])
		fs.PrintDefaults()
	}

	// File arguments.
	if kind != config.KindMatrix {
		fs.IntVar(&cfg.XCol, "xCol", cfg.XCol, "index of the column containing x values (0 based)")
		yHelp := "index of the column containing y values (0 based)"
		if kind.ColumnLists() {
			yHelp += "; comma separated or repeated for several columns"
		}
		fs.Var(&intList{dst: &cfg.YCols}, "yCol", yHelp)
	}
	if kind == config.KindHeat {
		fs.IntVar(&cfg.ZCol, "zCol", cfg.ZCol, "index of the column containing z values (0 based)")
	}

	// Plotting arguments shared by every kind.
	fs.Float64Var(&cfg.XScale, "xScale", cfg.XScale, "scaling factor for x values")
	fs.Float64Var(&cfg.YScale, "yScale", cfg.YScale, "scaling factor for y values")
	for _, name := range []string{"t", "title"} {
		fs.StringVar(&cfg.Title, name, cfg.Title, "title of figure")
	}
	for _, name := range []string{"x", "xlabel"} {
		fs.StringVar(&cfg.XLabel, name, cfg.XLabel, "x-axis label")
	}
	for _, name := range []string{"y", "ylabel"} {
		fs.StringVar(&cfg.YLabel, name, cfg.YLabel, "y-axis label")
	}
	labels := &stringList{dst: &cfg.Labels}
	for _, name := range []string{"l", "labels"} {
		fs.Var(labels, name, "legend label; repeat once per series")
	}
	fs.StringVar(&cfg.LegendLoc, "legendLoc", cfg.LegendLoc, "location of the legend (used only with --labels): "+strings.Join(config.LegendLocations, ", "))
	fs.Var(limitsValue{&cfg.XLim}, "xLim", "x-axis limits, given as min,max")
	fs.Var(limitsValue{&cfg.YLim}, "yLim", "y-axis limits, given as min,max")
	fs.Var(sizeValue{&cfg.FigWidth, &cfg.FigHeight}, "figSize", "size of figure in inches, given as width,height (default 6.4,4.8)")
	fs.StringVar(&cfg.Style, "rcstyle", cfg.Style, "built-in style name or path to an .hcl style file")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "where to show the figure: window or browser")
	fs.StringVar(&cfg.Listen, "listen", cfg.Listen, "listen address for the browser backend")
	fs.IntVar(&cfg.DPI, "dpi", cfg.DPI, "pixels per inch of the rendered figure")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable diagnostic logging")

	switch {
	case kind.IsLine():
		fs.StringVar(&cfg.LineStyle, "style", cfg.LineStyle, "style of the plotted line; applies to each line drawn: "+strings.Join(config.LineStyles, ", "))
	case kind.IsHistogram():
		for _, name := range []string{"n", "numOfBin"} {
			fs.IntVar(&cfg.Bins, name, cfg.Bins, "number of bins in the histogram(s)")
		}
		fs.BoolVar(&cfg.Norm, "norm", cfg.Norm, "normalize the histogram(s) to unit area")
		if kind == config.KindMultiHist {
			fs.BoolVar(&cfg.Separate, "separate", cfg.Separate, "treat the files as separate data sets")
			fs.StringVar(&cfg.HistType, "histtype", cfg.HistType, "style of the histogram: "+strings.Join(config.HistTypes, ", "))
		}
	case kind.IsHeatmap():
		fs.StringVar(&cfg.Colormap, "heatmap", cfg.Colormap, "heatmap coloring")
		fs.Var(optionalFloat{&cfg.ZMin}, "zmin", "minimum z value of the colour scale")
		fs.Var(optionalFloat{&cfg.ZMax}, "zmax", "maximum z value of the colour scale")
		for _, name := range []string{"z", "zlabel"} {
			fs.StringVar(&cfg.ZLabel, name, cfg.ZLabel, "colorbar label")
		}
		if kind == config.KindHeat || kind == config.KindHist2D {
			fs.BoolVar(&cfg.DiscardZero, "discardZero", cfg.DiscardZero, "hide cells with a value (or count) of zero")
		}
		if kind == config.KindHeat {
			fs.BoolVar(&cfg.UseRelative, "useRelative", cfg.UseRelative, "shift values so the minimum is zero")
		}
		if kind == config.KindHist2D {
			fs.IntVar(&cfg.Bins2D, "nBins", cfg.Bins2D, "number of bins (applied to both dimensions)")
		}
	}
	return fs
}

// parseInterspersed parses args allowing flags before, between and after
// positional arguments. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if endedAtTerminator(fs, args[:len(args)-len(rest)]) {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// endedAtTerminator reports whether the arguments fs.Parse consumed end
// with a bare "--" rather than a "--" taken as the value of a flag.
func endedAtTerminator(fs *flag.FlagSet, consumed []string) bool {
	for i := 0; i < len(consumed); i++ {
		arg := consumed[i]
		if arg == "--" {
			return i == len(consumed)-1
		}
		name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		i++ // value
	}
	return false
}

// parseConfig builds the configuration of one invocation of kind.
func parseConfig(kind config.Kind, args []string, out io.Writer) (*config.Config, error) {
	cfg := config.Defaults(kind)
	fs := newFlagSet(kind, cfg, out)
	files, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, err
	}
	cfg.Files = files
	return cfg, nil
}

func filesSynopsis(kind config.Kind) string {
	if kind.MultiFile() {
		return "FILE [FILE...]"
	}
	return "FILE"
}
