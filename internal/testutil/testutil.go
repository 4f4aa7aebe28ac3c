// Package testutil provides shared test fixtures for data files.
package testutil

import (
	"strconv"
	"strings"

	"github.com/banshee-data/datplot/internal/fsutil"
)

// NewFS returns an in-memory filesystem holding files, keyed by path.
func NewFS(files map[string]string) *fsutil.MemoryFileSystem {
	fs := fsutil.NewMemoryFileSystem()
	for name, text := range files {
		fs.AddString(name, text)
	}
	return fs
}

// Columns formats rows as a whitespace-delimited data file.
func Columns(rows ...[]float64) string {
	var b strings.Builder
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Sweep formats an x/y/z sweep with x as the outer loop, the order a
// heat file is written in.
func Sweep(xs, ys []float64, z func(x, y float64) float64) string {
	rows := make([][]float64, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			rows = append(rows, []float64{x, y, z(x, y)})
		}
	}
	return Columns(rows...)
}
