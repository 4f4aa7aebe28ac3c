// Package figure holds the backend-neutral description of one plot.
// Plotting operations fill a Figure and renderers draw it; there is no
// global drawing state.
package figure

import (
	"github.com/banshee-data/datplot/internal/binning"
	"github.com/banshee-data/datplot/internal/grid"
	"github.com/banshee-data/datplot/internal/style"
)

// Dash is a line dash pattern name: solid, dashed, dashdot or dotted.
type Dash string

const (
	DashSolid   Dash = "solid"
	DashDashed  Dash = "dashed"
	DashDashDot Dash = "dashdot"
	DashDotted  Dash = "dotted"
)

// HistType is how several histogram datasets share an axis.
type HistType string

const (
	HistBar        HistType = "bar"
	HistBarStacked HistType = "barstacked"
	HistStep       HistType = "step"
	HistStepFilled HistType = "stepfilled"
)

// Range is an explicit axis interval.
type Range struct {
	Min, Max float64
}

// LineSeries is one polyline.
type LineSeries struct {
	Label string
	X, Y  []float64
	Dash  Dash
}

// HistSeries is one binned dataset.
type HistSeries struct {
	Label string
	binning.Hist
}

// HeatLayer is a colour-mapped grid covering the rectangle
// [XMin,XMax] x [YMin,YMax]. Grid.At(0, 0) is the top-left cell.
type HeatLayer struct {
	Grid *grid.Grid

	XMin, XMax float64
	YMin, YMax float64

	// ZMin and ZMax bound the colour scale. Nil means the data range.
	ZMin, ZMax *float64

	Colormap string
	ZLabel   string
	ColorBar bool
}

// ZLimits returns the colour scale bounds, falling back to the range of
// the finite cells. ok is false when no bound can be determined.
func (h *HeatLayer) ZLimits() (lo, hi float64, ok bool) {
	min, max, finite := h.Grid.ZRange()
	switch {
	case h.ZMin != nil:
		lo = *h.ZMin
	case finite:
		lo = min
	default:
		return 0, 0, false
	}
	switch {
	case h.ZMax != nil:
		hi = *h.ZMax
	case finite:
		hi = max
	default:
		return 0, 0, false
	}
	return lo, hi, true
}

// ColorRange returns the colour scale used to draw h. An undetermined
// scale falls back to [0, 1] and an empty one is widened by 0.5 either
// side, so palette lookups stay defined.
func (h *HeatLayer) ColorRange() (lo, hi float64) {
	lo, hi, ok := h.ZLimits()
	if !ok {
		return 0, 1
	}
	if !(lo < hi) {
		return lo - 0.5, lo + 0.5
	}
	return lo, hi
}

// Legend placement.
type Legend struct {
	Show     bool
	Location string
}

// Figure is one plot.
type Figure struct {
	Title  string
	XLabel string
	YLabel string

	XLim *Range
	YLim *Range

	// Width and Height are in inches.
	Width  float64
	Height float64
	DPI    int

	Style  *style.Style
	Legend Legend

	Lines    []LineSeries
	Hists    []HistSeries
	HistType HistType
	Heat     *HeatLayer
}

// New returns an empty figure of the given size using st, or the default
// style when st is nil.
func New(width, height float64, dpi int, st *style.Style) *Figure {
	if st == nil {
		st, _ = style.Builtin(style.DefaultName)
	}
	return &Figure{
		Width:    width,
		Height:   height,
		DPI:      dpi,
		Style:    st,
		HistType: HistBar,
		Legend:   Legend{Location: "upper right"},
	}
}

// Pixels returns the raster size of the figure at its DPI.
func (f *Figure) Pixels() (w, h int) {
	return int(f.Width*float64(f.DPI) + 0.5), int(f.Height*float64(f.DPI) + 0.5)
}

// Empty reports whether the figure has nothing to draw.
func (f *Figure) Empty() bool {
	return len(f.Lines) == 0 && len(f.Hists) == 0 && f.Heat == nil
}

// AddLine appends a line series.
func (f *Figure) AddLine(s LineSeries) {
	f.Lines = append(f.Lines, s)
}

// AddHist appends a histogram dataset.
func (f *Figure) AddHist(label string, h binning.Hist) {
	f.Hists = append(f.Hists, HistSeries{Label: label, Hist: h})
}

// HasLabels reports whether any series carries a legend label.
func (f *Figure) HasLabels() bool {
	for _, l := range f.Lines {
		if l.Label != "" {
			return true
		}
	}
	for _, h := range f.Hists {
		if h.Label != "" {
			return true
		}
	}
	return false
}
