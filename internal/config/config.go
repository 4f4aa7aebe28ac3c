// Package config holds the explicit, validated configuration of one
// datplot invocation: every recognised option with its default.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/datplot/internal/colormap"
)

// Kind selects the plot produced by an invocation.
type Kind string

const (
	KindLine      Kind = "plot"
	KindMultiLine Kind = "multi"
	KindHeat      Kind = "heat"
	KindMatrix    Kind = "matrix"
	KindHist      Kind = "hist"
	KindMultiHist Kind = "multihist"
	KindHist2D    Kind = "hist2d"
)

// Kinds lists every plot kind in the order they appear in the usage text.
func Kinds() []Kind {
	return []Kind{KindLine, KindMultiLine, KindHeat, KindMatrix, KindHist, KindMultiHist, KindHist2D}
}

// ParseKind maps a command name to its Kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// IsHeatmap reports whether k draws a colour-mapped grid.
func (k Kind) IsHeatmap() bool {
	return k == KindHeat || k == KindMatrix || k == KindHist2D
}

// IsHistogram reports whether k draws 1D histograms.
func (k Kind) IsHistogram() bool {
	return k == KindHist || k == KindMultiHist
}

// IsLine reports whether k draws line series.
func (k Kind) IsLine() bool {
	return k == KindLine || k == KindMultiLine
}

// MultiFile reports whether k accepts more than one input file.
func (k Kind) MultiFile() bool {
	return k == KindMultiLine || k == KindMultiHist
}

// ColumnLists reports whether k accepts a list of y columns.
func (k Kind) ColumnLists() bool {
	return k == KindLine || k == KindHist
}

// Legend locations, as accepted by --legendLoc.
var LegendLocations = []string{
	"right", "center left", "upper right", "lower right", "best", "center",
	"lower left", "center right", "upper left", "upper center", "lower center",
}

// Line styles accepted by --style.
var LineStyles = []string{"solid", "dashed", "dashdot", "dotted"}

// Histogram types accepted by --histtype.
var HistTypes = []string{"bar", "barstacked", "step", "stepfilled"}

// Backends accepted by --backend.
var Backends = []string{"window", "browser"}

// Limits is an explicit axis range.
type Limits struct {
	Min, Max float64
}

// Config is the full option set. Fields not used by Kind keep their
// defaults and are ignored.
type Config struct {
	Kind  Kind
	Files []string

	// Column selection, zero-based.
	XCol  int
	YCols []int
	ZCol  int

	XScale float64
	YScale float64

	Title  string
	XLabel string
	YLabel string

	// Labels are the legend entries. Nil means no legend.
	Labels    []string
	LegendLoc string

	XLim *Limits
	YLim *Limits

	// FigWidth and FigHeight are in inches.
	FigWidth  float64
	FigHeight float64
	Style     string

	Backend string
	Listen  string
	DPI     int
	Debug   bool

	// Line plots.
	LineStyle string

	// Histograms.
	Bins     int
	Norm     bool
	Separate bool
	HistType string

	// Heatmaps.
	Colormap    string
	ZMin        *float64
	ZMax        *float64
	ZLabel      string
	DiscardZero bool
	UseRelative bool
	Bins2D      int
}

// Defaults returns the configuration of kind with every option at its
// default value.
func Defaults(kind Kind) *Config {
	return &Config{
		Kind:      kind,
		XCol:      0,
		YCols:     []int{1},
		ZCol:      2,
		XScale:    1.0,
		YScale:    1.0,
		LegendLoc: "upper right",
		FigWidth:  6.4,
		FigHeight: 4.8,
		Style:     "default",
		Backend:   "window",
		Listen:    "127.0.0.1:0",
		DPI:       100,
		LineStyle: "solid",
		Bins:      100,
		HistType:  "bar",
		Colormap:  colormap.Default,
		Bins2D:    25,
	}
}

// ValidationError reports an invalid option.
type ValidationError struct {
	Option string
	Msg    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Option, e.Msg)
}

func invalid(option, format string, args ...interface{}) error {
	return &ValidationError{Option: option, Msg: fmt.Sprintf(format, args...)}
}

// SeriesCount returns how many series or datasets the plot will draw,
// which is the number of legend labels accepted.
func (c *Config) SeriesCount() int {
	switch c.Kind {
	case KindLine, KindHist:
		return len(c.YCols)
	case KindMultiLine:
		return len(c.Files)
	case KindMultiHist:
		if c.Separate {
			return len(c.Files)
		}
		return 1
	}
	return 0
}

// Validate checks every option once. It returns the first problem found.
func (c *Config) Validate() error {
	if _, ok := ParseKind(string(c.Kind)); !ok {
		return invalid("command", "unknown plot kind %q", c.Kind)
	}

	switch {
	case len(c.Files) == 0:
		return invalid("files", "%s needs an input file", c.Kind)
	case len(c.Files) > 1 && !c.Kind.MultiFile():
		return invalid("files", "%s takes one input file, got %d", c.Kind, len(c.Files))
	}

	if err := c.validateColumns(); err != nil {
		return err
	}

	for name, v := range map[string]float64{"--xScale": c.XScale, "--yScale": c.YScale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(name, "must be finite, got %v", v)
		}
	}

	if !contains(LegendLocations, c.LegendLoc) {
		return invalid("--legendLoc", "%q is not one of %s", c.LegendLoc, quoteAll(LegendLocations))
	}
	if c.Labels != nil {
		if c.Kind.IsHeatmap() {
			return invalid("--labels", "%s does not draw a legend", c.Kind)
		}
		if want := c.SeriesCount(); len(c.Labels) != want {
			return invalid("--labels", "got %d labels for %d series", len(c.Labels), want)
		}
	}

	if err := validLimits("--xLim", c.XLim); err != nil {
		return err
	}
	if err := validLimits("--yLim", c.YLim); err != nil {
		return err
	}

	if !(c.FigWidth > 0) || !(c.FigHeight > 0) || math.IsInf(c.FigWidth, 0) || math.IsInf(c.FigHeight, 0) {
		return invalid("--figSize", "width and height must be positive, got %vx%v", c.FigWidth, c.FigHeight)
	}
	if c.DPI < 10 || c.DPI > 600 {
		return invalid("--dpi", "must be between 10 and 600, got %d", c.DPI)
	}
	if !contains(Backends, c.Backend) {
		return invalid("--backend", "%q is not one of %s", c.Backend, quoteAll(Backends))
	}
	if c.Backend == "browser" && c.Listen == "" {
		return invalid("--listen", "browser backend needs a listen address")
	}

	switch {
	case c.Kind.IsLine():
		if !contains(LineStyles, c.LineStyle) {
			return invalid("--style", "%q is not one of %s", c.LineStyle, quoteAll(LineStyles))
		}
	case c.Kind.IsHistogram():
		if c.Bins < 1 {
			return invalid("--numOfBin", "must be at least 1, got %d", c.Bins)
		}
		if !contains(HistTypes, c.HistType) {
			return invalid("--histtype", "%q is not one of %s", c.HistType, quoteAll(HistTypes))
		}
	case c.Kind.IsHeatmap():
		if !colormap.Known(c.Colormap) {
			return invalid("--heatmap", "unknown colormap %q", c.Colormap)
		}
		if c.ZMin != nil && c.ZMax != nil && !(*c.ZMin < *c.ZMax) {
			return invalid("--zmin", "must be below --zmax (%v >= %v)", *c.ZMin, *c.ZMax)
		}
		if c.Kind == KindHist2D && c.Bins2D < 1 {
			return invalid("--nBins", "must be at least 1, got %d", c.Bins2D)
		}
	}
	return nil
}

func (c *Config) validateColumns() error {
	if c.Kind == KindMatrix {
		return nil
	}
	if c.XCol < 0 {
		return invalid("--xCol", "column index must be >= 0, got %d", c.XCol)
	}
	if len(c.YCols) == 0 {
		return invalid("--yCol", "at least one column is required")
	}
	if len(c.YCols) > 1 && !c.Kind.ColumnLists() {
		return invalid("--yCol", "%s takes one column, got %d", c.Kind, len(c.YCols))
	}
	for _, col := range c.YCols {
		if col < 0 {
			return invalid("--yCol", "column index must be >= 0, got %d", col)
		}
	}
	if c.Kind == KindHeat && c.ZCol < 0 {
		return invalid("--zCol", "column index must be >= 0, got %d", c.ZCol)
	}
	return nil
}

func validLimits(option string, l *Limits) error {
	if l == nil {
		return nil
	}
	if math.IsNaN(l.Min) || math.IsNaN(l.Max) || !(l.Min < l.Max) {
		return invalid(option, "want min < max, got %v,%v", l.Min, l.Max)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func quoteAll(list []string) string {
	q := make([]string, len(list))
	for i, s := range list {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, ", ")
}
