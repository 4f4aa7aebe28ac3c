package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaskZeros returns a copy of g where every cell equal to exactly 0 is
// NaN, so renderers leave it blank.
func (g *Grid) MaskZeros() *Grid {
	out := g.clone()
	out.data.Apply(func(_, _ int, v float64) float64 {
		if v == 0 {
			return math.NaN()
		}
		return v
	}, out.data)
	return out
}

// Relative returns a copy of g shifted so that its smallest non-NaN value
// is 0. A grid with no finite values is returned unchanged.
func (g *Grid) Relative() *Grid {
	out := g.clone()
	min, _, ok := g.ZRange()
	if !ok {
		return out
	}
	out.data.Apply(func(_, _ int, v float64) float64 {
		return v - min
	}, out.data)
	return out
}

// Extent returns the displayed range of a sorted axis:
// [min - w/2, max + w/2] where w = axis[1] - axis[0]. Spacing is assumed
// uniform and is not checked past the first two samples.
func Extent(axis []float64) (lo, hi float64, err error) {
	if len(axis) < 2 {
		return 0, 0, fmt.Errorf("%w: axis has %d values", ErrInsufficientAxisSamples, len(axis))
	}
	half := (axis[1] - axis[0]) / 2
	return floats.Min(axis) - half, floats.Max(axis) + half, nil
}
