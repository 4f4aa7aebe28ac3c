package testutil

import (
	"math"
	"testing"
)

func TestColumns(t *testing.T) {
	got := Columns([]float64{0, 1.5}, []float64{1, -2}, []float64{math.NaN()})
	want := "0 1.5\n1 -2\nNaN\n"
	if got != want {
		t.Errorf("Columns = %q, want %q", got, want)
	}
	if got := Columns(); got != "" {
		t.Errorf("Columns() = %q, want empty", got)
	}
}

func TestSweep(t *testing.T) {
	got := Sweep([]float64{0, 1}, []float64{0, 10}, func(x, y float64) float64 { return x + y })
	want := "0 0 0\n0 10 10\n1 0 1\n1 10 11\n"
	if got != want {
		t.Errorf("Sweep = %q, want %q", got, want)
	}
}

func TestNewFS(t *testing.T) {
	fs := NewFS(map[string]string{"a.dat": "1 2\n", "sub/b.dat": "3\n"})
	data, err := fs.ReadFile("a.dat")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "1 2\n" {
		t.Errorf("a.dat = %q", data)
	}
	if !fs.Exists("sub/b.dat") {
		t.Error("sub/b.dat missing")
	}
	if fs.Exists("c.dat") {
		t.Error("c.dat should not exist")
	}
}
