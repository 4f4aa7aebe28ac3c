package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/banshee-data/datplot/internal/colormap"
	"github.com/banshee-data/datplot/internal/figure"
	"github.com/banshee-data/datplot/internal/grid"
)

// colorBarSteps is the number of cells drawn in a colour bar.
const colorBarSteps = 128

// gridXYZ adapts a grid.Grid to plotter.GridXYZ. Column c and row r are
// axis indices with r = 0 at the smallest y.
type gridXYZ struct {
	g *grid.Grid
}

func (g gridXYZ) Dims() (c, r int)   { return len(g.g.X), len(g.g.Y) }
func (g gridXYZ) Z(c, r int) float64 { return g.g.AtXY(c, r) }
func (g gridXYZ) X(c int) float64    { return g.g.X[c] }
func (g gridXYZ) Y(r int) float64    { return g.g.Y[r] }

// rampXYZ is a two column strip whose value equals its y coordinate,
// used to draw colour bars.
type rampXYZ struct {
	lo, hi float64
	n      int
}

func (r rampXYZ) Dims() (c, rows int)  { return 2, r.n }
func (r rampXYZ) Z(c, row int) float64 { return r.Y(row) }
func (r rampXYZ) X(c int) float64      { return float64(c) }
func (r rampXYZ) Y(row int) float64    { return r.lo + (float64(row)+0.5)*(r.hi-r.lo)/float64(r.n) }

func heatMap(g plotter.GridXYZ, p palette.Palette, lo, hi float64) *plotter.HeatMap {
	hm := plotter.NewHeatMap(g, p)
	hm.Min, hm.Max = lo, hi
	colors := p.Colors()
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	return hm
}

func addHeat(p *plot.Plot, h *figure.HeatLayer) error {
	pal, err := colormap.Lookup(h.Colormap, colormap.DefaultSize)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	lo, hi := h.ColorRange()
	p.Add(heatMap(gridXYZ{h.Grid}, pal, lo, hi))

	p.X.Min, p.X.Max = h.XMin, h.XMax
	p.Y.Min, p.Y.Max = h.YMin, h.YMax
	p.X.Padding, p.Y.Padding = 0, 0
	return nil
}

// ColorBar builds the colour bar panel for fig, or returns nil when fig
// has no heat layer with a bar.
func ColorBar(fig *figure.Figure) (*plot.Plot, error) {
	h := fig.Heat
	if h == nil || !h.ColorBar {
		return nil, nil
	}
	pal, err := colormap.Lookup(h.Colormap, colormap.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	lo, hi := h.ColorRange()

	p := plot.New()
	applyStyle(p, fig.Style)
	ramp := rampXYZ{lo: lo, hi: hi, n: colorBarSteps}
	p.Add(heatMap(ramp, pal, lo, hi))
	p.HideX()
	p.X.Min, p.X.Max = -0.5, 1.5
	p.Y.Min, p.Y.Max = lo, hi
	p.Y.Padding = 0
	p.Y.Label.Text = h.ZLabel
	if fig.Title != "" {
		// Keeps the bar aligned with the axes below the main title.
		p.Title.Text = " "
	}
	return p, nil
}
