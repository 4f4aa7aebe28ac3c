package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/datplot/internal/binning"
	"github.com/banshee-data/datplot/internal/figure"
)

// barFill is the share of a bin covered by side-by-side bars when several
// datasets share the bins.
const barFill = 0.8

// HistBars lays out one bar set per dataset for the histogram type, in
// drawing order. order[i] is the dataset index of bars[i].
func HistBars(hists []figure.HistSeries, ht figure.HistType) (bars [][]plotter.HistogramBin, order []int) {
	k := len(hists)
	switch {
	case ht == figure.HistBarStacked:
		// Cumulative totals, tallest first so lower layers stay visible.
		var cum []float64
		stacked := make([][]plotter.HistogramBin, k)
		for i, h := range hists {
			if cum == nil {
				cum = make([]float64, len(h.Weights))
			}
			stacked[i] = make([]plotter.HistogramBin, len(h.Weights))
			for b, w := range h.Weights {
				cum[b] += w
				stacked[i][b] = plotter.HistogramBin{Min: h.Edges[b], Max: h.Edges[b+1], Weight: cum[b]}
			}
		}
		for i := k - 1; i >= 0; i-- {
			bars = append(bars, stacked[i])
			order = append(order, i)
		}
	case ht == figure.HistBar && k > 1:
		for i, h := range hists {
			set := make([]plotter.HistogramBin, len(h.Weights))
			for b, w := range h.Weights {
				width := h.Width(b) * barFill / float64(k)
				lo := h.Edges[b] + h.Width(b)*(1-barFill)/2 + float64(i)*width
				set[b] = plotter.HistogramBin{Min: lo, Max: lo + width, Weight: w}
			}
			bars = append(bars, set)
			order = append(order, i)
		}
	default:
		for i, h := range hists {
			bars = append(bars, bins(h.Hist))
			order = append(order, i)
		}
	}
	return bars, order
}

func bins(h binning.Hist) []plotter.HistogramBin {
	out := make([]plotter.HistogramBin, len(h.Weights))
	for b, w := range h.Weights {
		out[b] = plotter.HistogramBin{Min: h.Edges[b], Max: h.Edges[b+1], Weight: w}
	}
	return out
}

func addHists(p *plot.Plot, fig *figure.Figure) {
	if len(fig.Hists) == 0 {
		return
	}
	bars, order := HistBars(fig.Hists, fig.HistType)
	legend := make([]*plotter.Histogram, len(fig.Hists))

	for n, set := range bars {
		i := order[n]
		c := fig.Style.SeriesColor(i)
		h := &plotter.Histogram{
			Bins:  set,
			Width: set[0].Max - set[0].Min,
		}
		h.LineStyle = plotter.DefaultLineStyle
		h.LineStyle.Width = vg.Points(fig.Style.LineWidth)

		switch fig.HistType {
		case figure.HistStep:
			h.FillColor = nil
			h.LineStyle.Color = c
		case figure.HistStepFilled:
			h.FillColor = fade(c, 0x99)
			h.LineStyle.Color = c
		default:
			h.FillColor = c
			h.LineStyle.Color = edgeColor(fig)
			h.LineStyle.Width = vg.Points(0.5)
		}
		p.Add(h)
		legend[i] = h
	}

	if !fig.Legend.Show {
		return
	}
	for i, s := range fig.Hists {
		if s.Label != "" {
			p.Legend.Add(s.Label, legend[i])
		}
	}
}

func edgeColor(fig *figure.Figure) color.Color {
	return fig.Style.Background
}
