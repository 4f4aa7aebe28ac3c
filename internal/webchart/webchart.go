// Package webchart renders a figure.Figure as an interactive go-echarts
// HTML page.
package webchart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/datplot/internal/colormap"
	"github.com/banshee-data/datplot/internal/figure"
)

// visualMapSteps is the number of colours handed to the echarts visual map.
const visualMapSteps = 16

// missing is the echarts placeholder for an absent value.
const missing = "-"

// ErrEmptyFigure is returned for figures with nothing to draw.
var ErrEmptyFigure = errors.New("webchart: figure has nothing to draw")

// Render writes fig as a standalone HTML page.
func Render(w io.Writer, fig *figure.Figure) error {
	chart, err := Chart(fig)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.AddCharts(chart)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("webchart: render: %w", err)
	}
	return nil
}

// Chart builds the echarts chart for fig.
func Chart(fig *figure.Figure) (components.Charter, error) {
	switch {
	case fig.Heat != nil:
		hm, err := heatChart(fig)
		if err != nil {
			return nil, err
		}
		return hm, nil
	case len(fig.Hists) > 0:
		return histChart(fig), nil
	case len(fig.Lines) > 0:
		return lineChart(fig), nil
	}
	return nil, ErrEmptyFigure
}

func globalOptions(fig *figure.Figure) []charts.GlobalOpts {
	w, h := fig.Pixels()
	theme := "white"
	if dark(fig.Style.Background) {
		theme = "dark"
	}
	o := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle(fig),
			Theme:     theme,
			Width:     fmt.Sprintf("%dpx", w),
			Height:    fmt.Sprintf("%dpx", h),
		}),
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
	if fig.Legend.Show {
		o = append(o, charts.WithLegendOpts(legendOptions(fig.Legend.Location)))
	}
	return o
}

func pageTitle(fig *figure.Figure) string {
	if fig.Title != "" {
		return fig.Title
	}
	return "datplot"
}

// dark reports whether c is closer to black than to white.
func dark(c color.Color) bool {
	if c == nil {
		return false
	}
	r, g, b, _ := c.RGBA()
	return (299*r+587*g+114*b)/1000 < 0x8000
}

func legendOptions(loc string) opts.Legend {
	l := opts.Legend{Show: opts.Bool(true), Top: "top", Right: "5%"}
	switch loc {
	case "upper left":
		l = opts.Legend{Show: opts.Bool(true), Top: "top", Left: "10%"}
	case "lower left":
		l = opts.Legend{Show: opts.Bool(true), Bottom: "15%", Left: "10%"}
	case "lower right":
		l = opts.Legend{Show: opts.Bool(true), Bottom: "15%", Right: "5%"}
	case "center left":
		l = opts.Legend{Show: opts.Bool(true), Top: "middle", Left: "10%"}
	case "right", "center right":
		l = opts.Legend{Show: opts.Bool(true), Top: "middle", Right: "5%"}
	case "center":
		l = opts.Legend{Show: opts.Bool(true), Top: "middle", Left: "center"}
	case "upper center":
		l = opts.Legend{Show: opts.Bool(true), Top: "top", Left: "center"}
	case "lower center":
		l = opts.Legend{Show: opts.Bool(true), Bottom: "15%", Left: "center"}
	}
	return l
}

func xAxis(fig *figure.Figure, typ string) opts.XAxis {
	ax := opts.XAxis{Name: fig.XLabel, Type: typ, NameLocation: "middle", NameGap: 25}
	if fig.XLim != nil {
		ax.Min, ax.Max = fig.XLim.Min, fig.XLim.Max
	}
	return ax
}

func yAxis(fig *figure.Figure, typ string) opts.YAxis {
	ax := opts.YAxis{Name: fig.YLabel, Type: typ, NameLocation: "middle", NameGap: 40}
	if fig.YLim != nil {
		ax.Min, ax.Max = fig.YLim.Min, fig.YLim.Max
	}
	return ax
}

// value returns v for the JSON payload, or the missing marker when v has
// no JSON encoding.
func value(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return v
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func lineChart(fig *figure.Figure) *charts.Line {
	line := charts.NewLine()
	o := globalOptions(fig)
	o = append(o,
		charts.WithXAxisOpts(xAxis(fig, "value")),
		charts.WithYAxisOpts(yAxis(fig, "value")),
	)
	line.SetGlobalOptions(o...)

	for i, s := range fig.Lines {
		name := s.Label
		if name == "" {
			name = fmt.Sprintf("series %d", i+1)
		}
		line.AddSeries(name, LineData(s),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: dashType(s.Dash), Color: colormap.ToHex(fig.Style.SeriesColor(i))}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colormap.ToHex(fig.Style.SeriesColor(i))}),
		)
	}
	return line
}

// LineData converts a series to echarts [x, y] pairs.
func LineData(s figure.LineSeries) []opts.LineData {
	data := make([]opts.LineData, len(s.X))
	for i := range s.X {
		data[i] = opts.LineData{Value: []interface{}{value(s.X[i]), value(s.Y[i])}}
	}
	return data
}

func dashType(d figure.Dash) string {
	switch d {
	case figure.DashDashed, figure.DashDashDot:
		return "dashed"
	case figure.DashDotted:
		return "dotted"
	}
	return "solid"
}

func histChart(fig *figure.Figure) *charts.Bar {
	bar := charts.NewBar()
	o := globalOptions(fig)
	o = append(o,
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel, Type: "category", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(yAxis(fig, "value")),
	)
	bar.SetGlobalOptions(o...)
	bar.SetXAxis(BinLabels(fig.Hists[0].Edges))

	chartOpts := opts.BarChart{BarGap: "0%", BarCategoryGap: "0%"}
	if fig.HistType == figure.HistBarStacked {
		chartOpts.Stack = "total"
	}
	for i, h := range fig.Hists {
		name := h.Label
		if name == "" {
			name = fmt.Sprintf("dataset %d", i+1)
		}
		data := make([]opts.BarData, len(h.Weights))
		for b, w := range h.Weights {
			data[b] = opts.BarData{Value: w}
		}
		bar.AddSeries(name, data,
			charts.WithBarChartOpts(chartOpts),
			charts.WithItemStyleOpts(histItemStyle(fig.HistType, fig.Style.SeriesColor(i))),
		)
	}
	return bar
}

func histItemStyle(ht figure.HistType, c color.Color) opts.ItemStyle {
	hex := colormap.ToHex(c)
	switch ht {
	case figure.HistStep:
		return opts.ItemStyle{Color: "transparent", BorderColor: hex}
	case figure.HistStepFilled:
		return opts.ItemStyle{Color: hex + "99", BorderColor: hex}
	}
	return opts.ItemStyle{Color: hex}
}

// BinLabels names each bin by its centre.
func BinLabels(edges []float64) []string {
	out := make([]string, len(edges)-1)
	for i := range out {
		out[i] = label((edges[i] + edges[i+1]) / 2)
	}
	return out
}

func heatChart(fig *figure.Figure) (*charts.HeatMap, error) {
	h := fig.Heat
	g := h.Grid

	colors, err := colormap.Lookup(h.Colormap, visualMapSteps)
	if err != nil {
		return nil, fmt.Errorf("webchart: %w", err)
	}
	hm := charts.NewHeatMap()
	lo, hi := h.ColorRange()

	ycats := make([]string, len(g.Y))
	for i, y := range g.Y {
		ycats[i] = label(y)
	}
	xcats := make([]string, len(g.X))
	for i, x := range g.X {
		xcats[i] = label(x)
	}

	o := globalOptions(fig)
	o = append(o,
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel, Type: "category", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.YLabel, Type: "category", Data: ycats, NameLocation: "middle", NameGap: 40}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			Text:       []string{h.ZLabel},
			InRange:    &opts.VisualMapInRange{Color: colormap.Hex(colors)},
		}),
	)
	hm.SetGlobalOptions(o...)
	hm.SetXAxis(xcats)
	hm.AddSeries("z", HeatData(h))
	return hm, nil
}

// HeatData converts the grid to echarts [xi, yi, z] triples with yi = 0
// at the smallest y. Masked cells carry the missing marker.
func HeatData(h *figure.HeatLayer) []opts.HeatMapData {
	g := h.Grid
	data := make([]opts.HeatMapData, 0, len(g.X)*len(g.Y))
	for xi := range g.X {
		for yi := range g.Y {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{xi, yi, value(g.AtXY(xi, yi))}})
		}
	}
	return data
}
