package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"
)

// sweep samples z = x + y with x outer and y inner.
func sweep(xAxis, yAxis []float64) (xs, ys, zs []float64) {
	for _, x := range xAxis {
		for _, y := range yAxis {
			xs = append(xs, x)
			ys = append(ys, y)
			zs = append(zs, x+y)
		}
	}
	return xs, ys, zs
}

func TestReconstruct(t *testing.T) {
	xs, ys, zs := sweep([]float64{0, 1, 2}, []float64{0, 10})

	g, err := Reconstruct(xs, ys, zs)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	rows, cols := g.Dims()
	if rows != 2 || cols != 3 {
		t.Fatalf("Dims() = (%d, %d), want (2, 3)", rows, cols)
	}

	wantUnflipped := [][]float64{{0, 1, 2}, {10, 11, 12}}
	if diff := cmp.Diff(wantUnflipped, g.Unflipped()); diff != "" {
		t.Errorf("unflipped grid mismatch (-want +got):\n%s", diff)
	}

	wantFlipped := [][]float64{{10, 11, 12}, {0, 1, 2}}
	if diff := cmp.Diff(wantFlipped, g.Rows()); diff != "" {
		t.Errorf("flipped grid mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]float64{0, 1, 2}, g.X); diff != "" {
		t.Errorf("X axis mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 10}, g.Y); diff != "" {
		t.Errorf("Y axis mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstruct_CellAddressing(t *testing.T) {
	xAxis := []float64{-1, 0.5, 2, 3.5}
	yAxis := []float64{0, 1, 2}
	xs, ys, zs := sweep(xAxis, yAxis)

	g, err := Reconstruct(xs, ys, zs)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	for col, x := range xAxis {
		for yi, y := range yAxis {
			row := len(yAxis) - 1 - yi
			if got := g.At(row, col); got != x+y {
				t.Errorf("At(%d, %d) = %v, want %v", row, col, got, x+y)
			}
			if got := g.AtXY(col, yi); got != x+y {
				t.Errorf("AtXY(%d, %d) = %v, want %v", col, yi, got, x+y)
			}
		}
	}
}

func TestReconstruct_Errors(t *testing.T) {
	tests := []struct {
		name       string
		xs, ys, zs []float64
		want       error
	}{
		{
			name: "empty",
			want: ErrEmptyInput,
		},
		{
			name: "five samples for a 2x3 grid",
			xs:   []float64{0, 0, 0, 1, 1},
			ys:   []float64{0, 1, 2, 0, 1},
			zs:   []float64{1, 2, 3, 4, 5},
			want: ErrShapeMismatch,
		},
		{
			name: "column lengths differ",
			xs:   []float64{0, 0, 1, 1},
			ys:   []float64{0, 1, 0},
			zs:   []float64{1, 2, 3, 4},
			want: ErrShapeMismatch,
		},
		{
			name: "single x value",
			xs:   []float64{0, 0, 0},
			ys:   []float64{0, 1, 2},
			zs:   []float64{1, 2, 3},
			want: ErrInsufficientAxisSamples,
		},
		{
			name: "single y value",
			xs:   []float64{0, 1},
			ys:   []float64{5, 5},
			zs:   []float64{1, 2},
			want: ErrInsufficientAxisSamples,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Reconstruct(tt.xs, tt.ys, tt.zs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Reconstruct error = %v, want %v", err, tt.want)
			}
			if g != nil {
				t.Errorf("expected nil grid on error, got %v", g.Rows())
			}
		})
	}
}

func TestAxisSet(t *testing.T) {
	tests := []struct {
		in   []float64
		want []float64
	}{
		{in: []float64{2, 1, 1, 2}, want: []float64{1, 2}},
		{in: []float64{3}, want: []float64{3}},
		{in: []float64{0.5, -1, 0.5, 7, -1}, want: []float64{-1, 0.5, 7}},
		{in: nil, want: nil},
	}

	for _, tt := range tests {
		in := append([]float64(nil), tt.in...)
		got := AxisSet(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("AxisSet(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}
		if diff := cmp.Diff(in, tt.in); diff != "" {
			t.Errorf("AxisSet modified its input:\n%s", diff)
		}
	}
}

func TestFromMatrix(t *testing.T) {
	rows := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	g, err := FromMatrix(rows)
	if err != nil {
		t.Fatalf("FromMatrix: %v", err)
	}

	// File row 0 is drawn at the bottom.
	if got := g.AtXY(0, 0); got != 1 {
		t.Errorf("AtXY(0, 0) = %v, want 1", got)
	}
	if got := g.AtXY(2, 1); got != 6 {
		t.Errorf("AtXY(2, 1) = %v, want 6", got)
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, g.X); diff != "" {
		t.Errorf("X axis mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1}, g.Y); diff != "" {
		t.Errorf("Y axis mismatch (-want +got):\n%s", diff)
	}

	if _, err := FromMatrix([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("ragged matrix error = %v, want ErrShapeMismatch", err)
	}
	if _, err := FromMatrix(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty matrix error = %v, want ErrEmptyInput", err)
	}
}

func TestNew(t *testing.T) {
	data := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if _, err := New([]float64{0, 1, 2}, []float64{0, 1}, data); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := New([]float64{0, 1}, []float64{0, 1}, data); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("New with wrong axes error = %v, want ErrShapeMismatch", err)
	}
}

func TestMaskZeros(t *testing.T) {
	xs, ys, zs := sweep([]float64{0, 1, 2}, []float64{0, 10})
	g, err := Reconstruct(xs, ys, zs)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	masked := g.MaskZeros()

	// z = 0 only at (x=0, y=0): bottom-left cell.
	if v := masked.AtXY(0, 0); !math.IsNaN(v) {
		t.Errorf("masked zero cell = %v, want NaN", v)
	}
	if v := masked.AtXY(1, 0); v != 1 {
		t.Errorf("masked non-zero cell = %v, want 1", v)
	}
	if v := g.AtXY(0, 0); v != 0 {
		t.Errorf("MaskZeros modified the source grid: got %v", v)
	}
}

func TestRelative(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{5, 7, 9, math.NaN()})
	g, err := New([]float64{0, 1}, []float64{0, 1}, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rel := g.Relative()
	want := [][]float64{{0, 2}, {4, math.NaN()}}
	if diff := cmp.Diff(want, rel.Rows(), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("Relative mismatch (-want +got):\n%s", diff)
	}

	min, max, ok := rel.ZRange()
	if !ok || min != 0 || max != 4 {
		t.Errorf("ZRange() = (%v, %v, %v), want (0, 4, true)", min, max, ok)
	}
}

func TestRelative_AllNaN(t *testing.T) {
	data := mat.NewDense(1, 2, []float64{math.NaN(), math.NaN()})
	g, err := New([]float64{0, 1}, []float64{0}, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, ok := g.Relative().ZRange(); ok {
		t.Error("expected no finite values after Relative on an all-NaN grid")
	}
}

func TestExtent(t *testing.T) {
	lo, hi, err := Extent([]float64{0, 2, 4})
	if err != nil {
		t.Fatalf("Extent: %v", err)
	}
	if lo != -1 || hi != 5 {
		t.Errorf("Extent([0 2 4]) = (%v, %v), want (-1, 5)", lo, hi)
	}

	if _, _, err := Extent([]float64{3}); !errors.Is(err, ErrInsufficientAxisSamples) {
		t.Errorf("Extent of one sample error = %v, want ErrInsufficientAxisSamples", err)
	}
}
