// Package plots implements the plot kinds. Each operation reads its input
// through a Loader, fills the Figure it is given and returns it.
package plots

import (
	"fmt"

	"github.com/banshee-data/datplot/internal/binning"
	"github.com/banshee-data/datplot/internal/config"
	"github.com/banshee-data/datplot/internal/figure"
	"github.com/banshee-data/datplot/internal/grid"
)

// discardBelow is the count under which hist2d cells are hidden with
// --discardZero.
const discardBelow = 1e-8

// Operation fills fig for one plot kind.
type Operation func(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error)

var operations = map[config.Kind]Operation{
	config.KindLine:      Line,
	config.KindMultiLine: MultiLine,
	config.KindHist:      Hist,
	config.KindMultiHist: MultiHist,
	config.KindHeat:      Heat,
	config.KindMatrix:    Matrix,
	config.KindHist2D:    Hist2D,
}

// Run dispatches on cfg.Kind, then applies the shared title, label and
// limit options.
func Run(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	op, ok := operations[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("no plot operation for %q", cfg.Kind)
	}
	fig, err := op(fig, cfg, l)
	if err != nil {
		return nil, err
	}
	ApplyCommon(fig, cfg)
	return fig, nil
}

// ApplyCommon sets the title, axis labels and axis limits.
func ApplyCommon(fig *figure.Figure, cfg *config.Config) {
	fig.Title = cfg.Title
	fig.XLabel = cfg.XLabel
	fig.YLabel = cfg.YLabel
	if cfg.XLim != nil {
		fig.XLim = &figure.Range{Min: cfg.XLim.Min, Max: cfg.XLim.Max}
	}
	if cfg.YLim != nil {
		fig.YLim = &figure.Range{Min: cfg.YLim.Min, Max: cfg.YLim.Max}
	}
}

func label(cfg *config.Config, i int) string {
	if i < len(cfg.Labels) {
		return cfg.Labels[i]
	}
	return ""
}

func setLegend(fig *figure.Figure, cfg *config.Config) {
	fig.Legend.Show = len(cfg.Labels) > 0
	fig.Legend.Location = cfg.LegendLoc
}

func scaled(v []float64, s float64) []float64 {
	if s == 1 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}

// Line plots one or more y columns of one file against its x column.
func Line(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	t, err := l.Load(cfg.Files[0])
	if err != nil {
		return nil, err
	}
	x, err := t.Column(cfg.XCol)
	if err != nil {
		return nil, err
	}
	ys, err := t.Columns(cfg.YCols)
	if err != nil {
		return nil, err
	}

	x = scaled(x, cfg.XScale)
	for i, y := range ys {
		fig.AddLine(figure.LineSeries{
			Label: label(cfg, i),
			X:     x,
			Y:     scaled(y, cfg.YScale),
			Dash:  figure.Dash(cfg.LineStyle),
		})
		tracef("series %d: column %d, %d points", i, cfg.YCols[i], len(y))
	}
	setLegend(fig, cfg)
	return fig, nil
}

// MultiLine plots the same columns from every file, one series per file.
func MultiLine(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	for i, path := range cfg.Files {
		t, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		x, err := t.Column(cfg.XCol)
		if err != nil {
			return nil, err
		}
		y, err := t.Column(cfg.YCols[0])
		if err != nil {
			return nil, err
		}
		fig.AddLine(figure.LineSeries{
			Label: label(cfg, i),
			X:     scaled(x, cfg.XScale),
			Y:     scaled(y, cfg.YScale),
			Dash:  figure.Dash(cfg.LineStyle),
		})
	}
	setLegend(fig, cfg)
	return fig, nil
}

// Hist bins each y column of one file. Several columns share one set of
// bins and are drawn side by side.
func Hist(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	t, err := l.Load(cfg.Files[0])
	if err != nil {
		return nil, err
	}
	datasets, err := t.Columns(cfg.YCols)
	if err != nil {
		return nil, err
	}
	return addHists(fig, cfg, datasets, figure.HistBar)
}

// MultiHist bins one column from several files, pooled into a single
// dataset unless cfg.Separate is set.
func MultiHist(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	var datasets [][]float64
	var pooled []float64
	for _, path := range cfg.Files {
		t, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		y, err := t.Column(cfg.YCols[0])
		if err != nil {
			return nil, err
		}
		if cfg.Separate {
			datasets = append(datasets, y)
		} else {
			pooled = append(pooled, y...)
		}
	}
	if !cfg.Separate {
		datasets = [][]float64{pooled}
	}
	return addHists(fig, cfg, datasets, figure.HistType(cfg.HistType))
}

func addHists(fig *figure.Figure, cfg *config.Config, datasets [][]float64, ht figure.HistType) (*figure.Figure, error) {
	bin := binning.Shared
	if ht == figure.HistBarStacked {
		bin = binning.Stacked
	}
	hists, err := bin(datasets, cfg.Bins, cfg.Norm)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	for i, h := range hists {
		fig.AddHist(label(cfg, i), h)
		diagf("dataset %d: %v values in %d bins [%g, %g]", i, h.Total(), len(h.Weights), h.Edges[0], h.Edges[len(h.Edges)-1])
	}
	fig.HistType = ht
	setLegend(fig, cfg)
	return fig, nil
}

// Heat reconstructs a grid from x, y and z columns and draws it as a
// heatmap covering the cell extents of both axes.
func Heat(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	path := cfg.Files[0]
	t, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	cols, err := t.Columns([]int{cfg.XCol, cfg.YCols[0], cfg.ZCol})
	if err != nil {
		return nil, err
	}

	g, err := grid.Reconstruct(cols[0], cols[1], cols[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ny, nx := g.Dims()
	diagf("%s: reconstructed %dx%d grid", path, nx, ny)

	if cfg.DiscardZero {
		g = g.MaskZeros()
	}
	layer := newLayer(g, cfg)
	if layer.XMin, layer.XMax, err = grid.Extent(g.X); err != nil {
		return nil, fmt.Errorf("%s: x axis: %w", path, err)
	}
	if layer.YMin, layer.YMax, err = grid.Extent(g.Y); err != nil {
		return nil, fmt.Errorf("%s: y axis: %w", path, err)
	}
	if cfg.UseRelative {
		layer.Grid = g.Relative()
	}

	fig.Heat = layer
	return fig, nil
}

// Matrix draws a whole file as a heatmap with file row 0 at the bottom
// and one unit cell per value.
func Matrix(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	path := cfg.Files[0]
	t, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	rows, err := t.Matrix()
	if err != nil {
		return nil, err
	}
	g, err := grid.FromMatrix(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	layer := newLayer(g, cfg)
	ny, nx := g.Dims()
	layer.XMin, layer.XMax = -0.5, float64(nx)-0.5
	layer.YMin, layer.YMax = -0.5, float64(ny)-0.5

	fig.Heat = layer
	return fig, nil
}

// Hist2D bins x and y columns into a square grid of counts.
func Hist2D(fig *figure.Figure, cfg *config.Config, l Loader) (*figure.Figure, error) {
	path := cfg.Files[0]
	t, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	cols, err := t.Columns([]int{cfg.XCol, cfg.YCols[0]})
	if err != nil {
		return nil, err
	}
	h, err := binning.New2D(cols[0], cols[1], cfg.Bins2D)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	g := h.Grid
	if cfg.DiscardZero {
		if g, err = binning.DiscardBelow(g, discardBelow); err != nil {
			return nil, err
		}
	}
	layer := newLayer(g, cfg)
	layer.XMin, layer.XMax = h.XEdges[0], h.XEdges[len(h.XEdges)-1]
	layer.YMin, layer.YMax = h.YEdges[0], h.YEdges[len(h.YEdges)-1]

	fig.Heat = layer
	return fig, nil
}

func newLayer(g *grid.Grid, cfg *config.Config) *figure.HeatLayer {
	layer := &figure.HeatLayer{
		Grid:     g,
		ZMin:     cfg.ZMin,
		ZMax:     cfg.ZMax,
		Colormap: cfg.Colormap,
		ZLabel:   cfg.ZLabel,
		ColorBar: true,
	}
	if _, _, ok := g.ZRange(); !ok && (cfg.ZMin == nil || cfg.ZMax == nil) {
		opsf("every cell is empty; the heatmap will be blank")
	}
	return layer
}
