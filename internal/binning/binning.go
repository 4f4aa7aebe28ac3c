// Package binning computes 1D and 2D histograms with numpy's bin edge
// conventions: equal-width bins over the data range, the last bin closed
// on the right.
package binning

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/datplot/internal/grid"
)

var (
	// ErrBadBinCount is returned when fewer than one bin is requested.
	ErrBadBinCount = errors.New("binning: bin count must be at least 1")

	// ErrNoValues is returned when no finite values are available to bin.
	ErrNoValues = errors.New("binning: no finite values")

	// ErrLengthMismatch is returned when paired x and y samples differ in length.
	ErrLengthMismatch = errors.New("binning: x and y lengths differ")
)

// Hist is a binned dataset. Weights[i] covers [Edges[i], Edges[i+1]).
type Hist struct {
	Edges   []float64
	Weights []float64
}

// Width returns the width of bin i.
func (h Hist) Width(i int) float64 { return h.Edges[i+1] - h.Edges[i] }

// Total returns the sum of the weights.
func (h Hist) Total() float64 { return floats.Sum(h.Weights) }

// Range returns the smallest and largest finite value across datasets.
func Range(datasets ...[]float64) (min, max float64, err error) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, ds := range datasets {
		for _, v := range ds {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return 0, 0, ErrNoValues
	}
	return min, max, nil
}

// Edges returns n+1 equally spaced edges from min to max. A zero-width
// range is widened to [min-0.5, max+0.5].
func Edges(min, max float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadBinCount, n)
	}
	if min == max {
		min -= 0.5
		max += 0.5
	}
	return floats.Span(make([]float64, n+1), min, max), nil
}

// New bins values into n equal-width bins spanning their range.
func New(values []float64, n int, density bool) (Hist, error) {
	min, max, err := Range(values)
	if err != nil {
		return Hist{}, err
	}
	edges, err := Edges(min, max, n)
	if err != nil {
		return Hist{}, err
	}
	return Histogram(values, edges, density), nil
}

// Shared bins every dataset on one set of n bins spanning all of them.
// With density set, each dataset is normalised to area 1 on its own.
func Shared(datasets [][]float64, n int, density bool) ([]Hist, error) {
	edges, err := sharedEdges(datasets, n)
	if err != nil {
		return nil, err
	}
	hists := make([]Hist, len(datasets))
	for i, ds := range datasets {
		hists[i] = Histogram(ds, edges, density)
	}
	return hists, nil
}

// Stacked is Shared for histograms drawn on top of each other. With
// density set, weights are divided by the pooled count so the whole
// stack has area 1.
func Stacked(datasets [][]float64, n int, density bool) ([]Hist, error) {
	edges, err := sharedEdges(datasets, n)
	if err != nil {
		return nil, err
	}
	hists := make([]Hist, len(datasets))
	var total float64
	for i, ds := range datasets {
		hists[i] = Histogram(ds, edges, false)
		total += hists[i].Total()
	}
	if density && total > 0 {
		for _, h := range hists {
			for b := range h.Weights {
				h.Weights[b] /= total * h.Width(b)
			}
		}
	}
	return hists, nil
}

func sharedEdges(datasets [][]float64, n int) ([]float64, error) {
	min, max, err := Range(datasets...)
	if err != nil {
		return nil, err
	}
	return Edges(min, max, n)
}

// Histogram counts values into the given sorted edges. Values outside
// [edges[0], edges[len-1]] and NaNs are ignored. With density set, each
// weight is divided by total count times bin width so the area is 1.
func Histogram(values, edges []float64, density bool) Hist {
	lo, hi := edges[0], edges[len(edges)-1]
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lo && v <= hi {
			x = append(x, v)
		}
	}
	sort.Float64s(x)

	// stat.Histogram uses half-open bins; nudge the last divider so
	// values equal to the upper edge land in the final bin.
	dividers := append([]float64(nil), edges...)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)
	h := Hist{Edges: append([]float64(nil), edges...), Weights: counts}

	if density && len(x) > 0 {
		total := float64(len(x))
		for i := range h.Weights {
			h.Weights[i] /= total * h.Width(i)
		}
	}
	return h
}

// Hist2D is a two-dimensional histogram. Grid holds the counts with bin
// centres as axes.
type Hist2D struct {
	Grid   *grid.Grid
	XEdges []float64
	YEdges []float64
}

// New2D bins the (x, y) pairs into n x n bins spanning the data range of
// each axis. Pairs with a NaN coordinate are skipped.
func New2D(xs, ys []float64, n int) (*Hist2D, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(xs), len(ys))
	}
	xmin, xmax, err := Range(xs)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	ymin, ymax, err := Range(ys)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	xEdges, err := Edges(xmin, xmax, n)
	if err != nil {
		return nil, err
	}
	yEdges, _ := Edges(ymin, ymax, n)

	// Row 0 is the highest y bin.
	counts := mat.NewDense(n, n, nil)
	for i := range xs {
		xi := binIndex(xEdges, xs[i])
		yi := binIndex(yEdges, ys[i])
		if xi < 0 || yi < 0 {
			continue
		}
		row := n - 1 - yi
		counts.Set(row, xi, counts.At(row, xi)+1)
	}

	g, err := grid.New(centres(xEdges), centres(yEdges), counts)
	if err != nil {
		return nil, err
	}
	return &Hist2D{Grid: g, XEdges: xEdges, YEdges: yEdges}, nil
}

// binIndex returns the bin holding v, with the last bin closed on the
// right, or -1 when v is outside the edges.
func binIndex(edges []float64, v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	last := len(edges) - 1
	if v == edges[last] {
		return last - 1
	}
	return floats.Within(edges, v)
}

func centres(edges []float64) []float64 {
	c := make([]float64, len(edges)-1)
	for i := range c {
		c[i] = (edges[i] + edges[i+1]) / 2
	}
	return c
}

// DiscardBelow returns a copy of g with cells below min set to NaN.
func DiscardBelow(g *grid.Grid, min float64) (*grid.Grid, error) {
	rows := g.Rows()
	r, c := g.Dims()
	data := mat.NewDense(r, c, nil)
	for i, row := range rows {
		for j, v := range row {
			if v < min {
				v = math.NaN()
			}
			data.Set(i, j, v)
		}
	}
	return grid.New(g.X, g.Y, data)
}
