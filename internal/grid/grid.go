// Package grid rebuilds dense 2D matrices from flattened x/y/z columns
// and holds the heatmap post-processing steps.
package grid

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Grid is a dense matrix of z values addressed by axis position.
//
// Row 0 holds the maximum y value: At(row, col) is the value measured at
// x = X[col], y = Y[len(Y)-1-row]. A Grid is not modified after it is
// built; the post-processing methods return new grids.
type Grid struct {
	// X and Y are the sorted distinct axis values.
	X []float64
	Y []float64

	data *mat.Dense
}

// AxisSet returns the sorted distinct values of values. The input is not
// modified.
func AxisSet(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	axis := sorted[:1]
	for _, v := range sorted[1:] {
		if v != axis[len(axis)-1] {
			axis = append(axis, v)
		}
	}
	return axis
}

// Reconstruct builds the grid of a function z=f(x,y) sampled in a nested
// loop with x as the outer variable and y as the inner one, so that
// consecutive records share x while y sweeps all its values.
//
// The sampling must be complete and rectangular: len(xs) must equal
// |X-axis| * |Y-axis|. Each axis needs at least two distinct values.
func Reconstruct(xs, ys, zs []float64) (*Grid, error) {
	n := len(zs)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if len(xs) != n || len(ys) != n {
		return nil, fmt.Errorf("%w: %d x, %d y and %d z samples", ErrShapeMismatch, len(xs), len(ys), n)
	}

	xAxis := AxisSet(xs)
	yAxis := AxisSet(ys)
	nx, ny := len(xAxis), len(yAxis)
	if nx*ny != n {
		return nil, fmt.Errorf("%w: %d samples for a %d x %d grid (want %d)", ErrShapeMismatch, n, nx, ny, nx*ny)
	}
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrInsufficientAxisSamples, nx, ny)
	}

	// Records iterate y fastest: zs[j + i*ny] is (x_i, y_j).
	data := mat.NewDense(ny, nx, nil)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			data.Set(j, i, zs[j+i*ny])
		}
	}
	flipRows(data)

	return &Grid{X: xAxis, Y: yAxis, data: data}, nil
}

// New wraps data whose row 0 corresponds to the largest y value. The
// matrix dimensions must be (len(y), len(x)). data is used directly.
func New(x, y []float64, data *mat.Dense) (*Grid, error) {
	if data == nil || len(x) == 0 || len(y) == 0 {
		return nil, ErrEmptyInput
	}
	r, c := data.Dims()
	if r != len(y) || c != len(x) {
		return nil, fmt.Errorf("%w: %dx%d matrix for %d x and %d y values", ErrShapeMismatch, r, c, len(x), len(y))
	}
	return &Grid{X: x, Y: y, data: data}, nil
}

// FromMatrix builds a grid from matrix rows as they appear in a file.
// Axes are the column and row indices and file row 0 sits at y = 0, at the
// bottom of the image.
func FromMatrix(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyInput
	}
	nr, nc := len(rows), len(rows[0])

	data := mat.NewDense(nr, nc, nil)
	for r, row := range rows {
		if len(row) != nc {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShapeMismatch, r, len(row), nc)
		}
		data.SetRow(nr-1-r, row)
	}

	return &Grid{X: indexAxis(nc), Y: indexAxis(nr), data: data}, nil
}

func indexAxis(n int) []float64 {
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(i)
	}
	return axis
}

// flipRows reverses the row order of m in place.
func flipRows(m *mat.Dense) {
	r, c := m.Dims()
	tmp := make([]float64, c)
	for top, bottom := 0, r-1; top < bottom; top, bottom = top+1, bottom-1 {
		copy(tmp, m.RawRowView(top))
		m.SetRow(top, m.RawRowView(bottom))
		m.SetRow(bottom, tmp)
	}
}

// Dims returns the number of rows (y values) and columns (x values).
func (g *Grid) Dims() (rows, cols int) {
	return g.data.Dims()
}

// At returns the value at the given row and column. Row 0 is the top row.
func (g *Grid) At(row, col int) float64 {
	return g.data.At(row, col)
}

// AtXY returns the value at axis indices (xi, yi), where yi = 0 is the
// smallest y value.
func (g *Grid) AtXY(xi, yi int) float64 {
	return g.data.At(len(g.Y)-1-yi, xi)
}

// Rows returns a copy of the grid, top row first.
func (g *Grid) Rows() [][]float64 {
	r, _ := g.data.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, g.data)
	}
	return out
}

// Unflipped returns a copy of the grid in sampling order, with row 0
// holding the smallest y value.
func (g *Grid) Unflipped() [][]float64 {
	rows := g.Rows()
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

// ZRange returns the smallest and largest values, ignoring NaN cells.
// ok is false when every cell is NaN.
func (g *Grid) ZRange() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	r, c := g.data.Dims()
	for i := 0; i < r; i++ {
		for _, v := range g.data.RawRowView(i)[:c] {
			if math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	return min, max, !math.IsInf(min, 1)
}

func (g *Grid) clone() *Grid {
	return &Grid{X: g.X, Y: g.Y, data: mat.DenseCopyOf(g.data)}
}
