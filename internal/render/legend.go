package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// legendInset is the gap between the legend and the edge of the axes.
var legendInset = vg.Points(6)

// placeLegend positions l for a matplotlib-style location name. gonum
// anchors legends to the left or right edge, so the horizontally centred
// locations are offset from the left by a share of the figure width.
// Vertically centred locations are finished by centerLegend at draw time.
func placeLegend(l *plot.Legend, loc string, figWidth vg.Length) {
	l.Top, l.Left = true, false
	l.XOffs, l.YOffs = -legendInset, -legendInset

	switch loc {
	case "upper left", "center left":
		l.Left = true
	case "lower left":
		l.Left, l.Top = true, false
	case "lower right":
		l.Top = false
	case "center", "upper center", "lower center":
		l.Left = true
		l.XOffs = figWidth * 0.35
		if loc == "lower center" {
			l.Top = false
		}
	}

	if l.Left && l.XOffs < 0 {
		l.XOffs = -l.XOffs
	}
	if !l.Top {
		l.YOffs = legendInset
	}
}

// centeredVertically reports whether loc sits halfway up the axes.
func centeredVertically(loc string) bool {
	switch loc {
	case "right", "center left", "center right", "center":
		return true
	}
	return false
}

// centerLegend sets the vertical offset that puts the middle of p's
// legend on the middle of the axes p draws into c.
func centerLegend(p *plot.Plot, c draw.Canvas) {
	l := &p.Legend
	top := c.Max.Y
	if p.Title.Text != "" {
		top -= p.Title.TextStyle.Rectangle(p.Title.Text).Size().Y + p.Title.Padding
	}
	da := p.DataCanvas(c)
	r := l.Rectangle(da)
	h := r.Max.Y - r.Min.Y
	mid := (da.Min.Y + da.Max.Y) / 2

	l.Top = true
	l.YOffs = mid + h/2 - top
}
