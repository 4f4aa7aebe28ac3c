// Package render draws a figure.Figure with gonum/plot and rasterises it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/datplot/internal/figure"
	"github.com/banshee-data/datplot/internal/style"
)

// colorBarWidth is the space reserved right of the axes for a colour bar.
const colorBarWidth = 1.2 * vg.Inch

// Plot builds the main axes of fig.
func Plot(fig *figure.Figure) (*plot.Plot, error) {
	if fig.Empty() {
		return nil, fmt.Errorf("render: figure has nothing to draw")
	}
	st := fig.Style

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	applyStyle(p, st)

	if st.Grid {
		g := plotter.NewGrid()
		g.Vertical.Color = st.GridColor
		g.Horizontal.Color = st.GridColor
		p.Add(g)
	}

	if fig.Heat != nil {
		if err := addHeat(p, fig.Heat); err != nil {
			return nil, err
		}
	}
	if err := addLines(p, fig); err != nil {
		return nil, err
	}
	addHists(p, fig)

	if fig.Legend.Show {
		placeLegend(&p.Legend, fig.Legend.Location, vg.Length(fig.Width)*vg.Inch)
	}

	if fig.XLim != nil {
		p.X.Min, p.X.Max = fig.XLim.Min, fig.XLim.Max
	}
	if fig.YLim != nil {
		p.Y.Min, p.Y.Max = fig.YLim.Min, fig.YLim.Max
	}
	return p, nil
}

func applyStyle(p *plot.Plot, st *style.Style) {
	fg := st.Foreground
	size := vg.Points(st.FontSize)

	p.BackgroundColor = st.Background
	p.Title.TextStyle.Color = fg
	p.Title.TextStyle.Font.Size = size * 1.2
	p.Legend.TextStyle.Color = fg
	p.Legend.TextStyle.Font.Size = size

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Color = fg
		ax.Label.TextStyle.Color = fg
		ax.Label.TextStyle.Font.Size = size
		ax.Tick.Color = fg
		ax.Tick.Label.Color = fg
		ax.Tick.Label.Font.Size = size * 0.85
	}
}

func addLines(p *plot.Plot, fig *figure.Figure) error {
	width := vg.Points(fig.Style.LineWidth)
	for i, s := range fig.Lines {
		segments := finiteRuns(s.X, s.Y)
		for j, pts := range segments {
			l, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("render: series %d: %w", i, err)
			}
			l.Color = fig.Style.SeriesColor(i)
			l.Width = width
			l.Dashes = Dashes(s.Dash, width)
			p.Add(l)
			if j == 0 && fig.Legend.Show && s.Label != "" {
				p.Legend.Add(s.Label, l)
			}
		}
	}
	return nil
}

// finiteRuns splits a series at points with a NaN or infinite coordinate,
// so gaps in the data show as breaks in the line.
func finiteRuns(x, y []float64) []plotter.XYs {
	var runs []plotter.XYs
	var cur plotter.XYs
	for i := range x {
		if bad(x[i]) || bad(y[i]) {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

func bad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Dashes returns the dash pattern for d at the given line width.
func Dashes(d figure.Dash, width vg.Length) []vg.Length {
	if width < 1 {
		width = 1
	}
	switch d {
	case figure.DashDashed:
		return []vg.Length{3.7 * width, 1.6 * width}
	case figure.DashDashDot:
		return []vg.Length{6.4 * width, 1.6 * width, 1 * width, 1.6 * width}
	case figure.DashDotted:
		return []vg.Length{1 * width, 1.65 * width}
	}
	return nil
}

// Image rasterises fig at its size and DPI.
func Image(fig *figure.Figure) (image.Image, error) {
	img, err := canvas(fig)
	if err != nil {
		return nil, err
	}
	return img.Image(), nil
}

// WritePNG rasterises fig and writes it to w as PNG.
func WritePNG(w io.Writer, fig *figure.Figure) error {
	img, err := canvas(fig)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

func canvas(fig *figure.Figure) (*vgimg.Canvas, error) {
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(fig.Width)*vg.Inch, vg.Length(fig.Height)*vg.Inch),
		vgimg.UseDPI(fig.DPI),
		vgimg.UseBackgroundColor(fig.Style.Background),
	)
	if err := drawFigure(draw.New(img), fig); err != nil {
		return nil, err
	}
	return img, nil
}

// drawFigure draws the axes of fig into dc, with the colour bar, if any,
// in a strip on the right.
func drawFigure(dc draw.Canvas, fig *figure.Figure) error {
	main, err := Plot(fig)
	if err != nil {
		return err
	}
	bar, err := ColorBar(fig)
	if err != nil {
		return err
	}

	axes := dc
	if bar != nil {
		axes = draw.Crop(dc, 0, -colorBarWidth, 0, 0)
		bar.Draw(draw.Crop(dc, dc.Max.X-dc.Min.X-colorBarWidth, 0, 0, 0))
	}
	if fig.Legend.Show && centeredVertically(fig.Legend.Location) {
		centerLegend(main, axes)
	}
	main.Draw(axes)
	return nil
}

// fade returns c at the given opacity.
func fade(c color.Color, alpha uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alpha
	return n
}
