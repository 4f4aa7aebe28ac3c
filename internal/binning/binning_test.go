package binning

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEdges(t *testing.T) {
	edges, err := Edges(0, 10, 5)
	if err != nil {
		t.Fatalf("Edges: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 2, 4, 6, 8, 10}, edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	edges, err = Edges(3, 3, 2)
	if err != nil {
		t.Fatalf("Edges: %v", err)
	}
	if diff := cmp.Diff([]float64{2.5, 3, 3.5}, edges); diff != "" {
		t.Errorf("zero-width edges mismatch (-want +got):\n%s", diff)
	}

	if _, err := Edges(0, 1, 0); !errors.Is(err, ErrBadBinCount) {
		t.Errorf("Edges(n=0) error = %v, want ErrBadBinCount", err)
	}
}

func TestNew_Counts(t *testing.T) {
	values := []float64{0, 1, 1, 2, 3, 4, math.NaN()}

	h, err := New(values, 4, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Bins [0,1) [1,2) [2,3) [3,4]; 4 lands in the closed last bin.
	if diff := cmp.Diff([]float64{1, 2, 1, 2}, h.Weights); diff != "" {
		t.Errorf("weights mismatch (-want +got):\n%s", diff)
	}
	if h.Total() != 6 {
		t.Errorf("Total() = %v, want 6", h.Total())
	}
}

func TestNew_Density(t *testing.T) {
	values := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}

	h, err := New(values, 7, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	area := 0.0
	for i, w := range h.Weights {
		area += w * h.Width(i)
	}
	if math.Abs(area-1) > 1e-12 {
		t.Errorf("density area = %v, want 1", area)
	}
}

func TestNew_NoValues(t *testing.T) {
	if _, err := New([]float64{math.NaN()}, 10, false); !errors.Is(err, ErrNoValues) {
		t.Errorf("New of NaN error = %v, want ErrNoValues", err)
	}
}

func TestShared(t *testing.T) {
	hists, err := Shared([][]float64{{0, 1}, {3, 4}}, 2, false)
	if err != nil {
		t.Fatalf("Shared: %v", err)
	}
	if len(hists) != 2 {
		t.Fatalf("got %d histograms, want 2", len(hists))
	}
	for i, h := range hists {
		if diff := cmp.Diff([]float64{0, 2, 4}, h.Edges); diff != "" {
			t.Errorf("hist %d edges mismatch (-want +got):\n%s", i, diff)
		}
	}
	if diff := cmp.Diff([]float64{2, 0}, hists[0].Weights); diff != "" {
		t.Errorf("first dataset weights mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 2}, hists[1].Weights); diff != "" {
		t.Errorf("second dataset weights mismatch (-want +got):\n%s", diff)
	}
}

func area(h Hist) float64 {
	var a float64
	for i, w := range h.Weights {
		a += w * h.Width(i)
	}
	return a
}

func TestStacked(t *testing.T) {
	datasets := [][]float64{{0, 1, 1, 2}, {1, 2, 2, 2}}

	counts, err := Stacked(datasets, 3, false)
	if err != nil {
		t.Fatalf("Stacked: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 1, 3}, counts[1].Weights); diff != "" {
		t.Errorf("second dataset counts mismatch (-want +got):\n%s", diff)
	}

	hists, err := Stacked(datasets, 3, true)
	if err != nil {
		t.Fatalf("Stacked: %v", err)
	}
	var total float64
	for _, h := range hists {
		total += area(h)
	}
	if math.Abs(total-1) > 1e-12 {
		t.Errorf("stacked area = %v, want 1", total)
	}
	if got := area(hists[0]); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("first layer area = %v, want 0.5", got)
	}

	// Shared normalises each dataset separately.
	separate, err := Shared(datasets, 3, true)
	if err != nil {
		t.Fatalf("Shared: %v", err)
	}
	if got := area(separate[0]) + area(separate[1]); math.Abs(got-2) > 1e-12 {
		t.Errorf("separate areas sum = %v, want 2", got)
	}
}

func TestNew2D(t *testing.T) {
	xs := []float64{0, 0, 1, 2, 2}
	ys := []float64{0, 0, 1, 2, 0}

	h, err := New2D(xs, ys, 2)
	if err != nil {
		t.Fatalf("New2D: %v", err)
	}

	// x bins [0,1) [1,2]; y bins [0,1) [1,2].
	if got := h.Grid.AtXY(0, 0); got != 2 {
		t.Errorf("count at low x, low y = %v, want 2", got)
	}
	if got := h.Grid.AtXY(1, 0); got != 1 {
		t.Errorf("count at high x, low y = %v, want 1", got)
	}
	if got := h.Grid.AtXY(1, 1); got != 2 {
		t.Errorf("count at high x, high y = %v, want 2", got)
	}
	if got := h.Grid.AtXY(0, 1); got != 0 {
		t.Errorf("count at low x, high y = %v, want 0", got)
	}

	if diff := cmp.Diff([]float64{0.5, 1.5}, h.Grid.X); diff != "" {
		t.Errorf("x centres mismatch (-want +got):\n%s", diff)
	}

	if _, err := New2D([]float64{1}, []float64{1, 2}, 2); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("New2D length mismatch error = %v", err)
	}
}

func TestDiscardBelow(t *testing.T) {
	h, err := New2D([]float64{0, 1}, []float64{0, 1}, 2)
	if err != nil {
		t.Fatalf("New2D: %v", err)
	}

	g, err := DiscardBelow(h.Grid, 1e-8)
	if err != nil {
		t.Fatalf("DiscardBelow: %v", err)
	}
	want := [][]float64{{math.NaN(), 1}, {1, math.NaN()}}
	if diff := cmp.Diff(want, g.Rows(), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("discarded grid mismatch (-want +got):\n%s", diff)
	}
}
