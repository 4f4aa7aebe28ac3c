package config

import (
	"errors"
	"testing"
)

func float(v float64) *float64 { return &v }

func valid(kind Kind) *Config {
	c := Defaults(kind)
	c.Files = []string{"a.dat"}
	if kind.MultiFile() {
		c.Files = []string{"a.dat", "b.dat"}
	}
	return c
}

func TestDefaults(t *testing.T) {
	c := Defaults(KindLine)

	if c.XCol != 0 || len(c.YCols) != 1 || c.YCols[0] != 1 || c.ZCol != 2 {
		t.Errorf("unexpected default columns: x=%d y=%v z=%d", c.XCol, c.YCols, c.ZCol)
	}
	if c.FigWidth != 6.4 || c.FigHeight != 4.8 {
		t.Errorf("unexpected default figure size %vx%v", c.FigWidth, c.FigHeight)
	}
	if c.Bins != 100 || c.Bins2D != 25 {
		t.Errorf("unexpected default bins %d / %d", c.Bins, c.Bins2D)
	}
	if c.LegendLoc != "upper right" || c.LineStyle != "solid" || c.HistType != "bar" {
		t.Errorf("unexpected default styles %q %q %q", c.LegendLoc, c.LineStyle, c.HistType)
	}
	if c.Labels != nil || c.XLim != nil || c.ZMin != nil {
		t.Error("optional values should default to unset")
	}
}

func TestValidate_Defaults(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			if err := valid(kind).Validate(); err != nil {
				t.Errorf("Validate() on defaults: %v", err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind("hist2d"); !ok || k != KindHist2D {
		t.Errorf("ParseKind(hist2d) = %q, %v", k, ok)
	}
	if _, ok := ParseKind("scatter"); ok {
		t.Error("ParseKind accepted an unknown command")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		mutate func(c *Config)
		option string
	}{
		{"no files", KindLine, func(c *Config) { c.Files = nil }, "files"},
		{"two files for plot", KindLine, func(c *Config) { c.Files = []string{"a", "b"} }, "files"},
		{"negative x column", KindLine, func(c *Config) { c.XCol = -1 }, "--xCol"},
		{"no y columns", KindLine, func(c *Config) { c.YCols = nil }, "--yCol"},
		{"column list for multi", KindMultiLine, func(c *Config) { c.YCols = []int{1, 2} }, "--yCol"},
		{"column list for multihist", KindMultiHist, func(c *Config) { c.YCols = []int{1, 2} }, "--yCol"},
		{"column list for heat", KindHeat, func(c *Config) { c.YCols = []int{1, 2} }, "--yCol"},
		{"negative z column", KindHeat, func(c *Config) { c.ZCol = -3 }, "--zCol"},
		{"bad legend location", KindLine, func(c *Config) { c.LegendLoc = "top" }, "--legendLoc"},
		{"label count", KindLine, func(c *Config) { c.YCols = []int{1, 2}; c.Labels = []string{"a"} }, "--labels"},
		{"labels for heatmap", KindHeat, func(c *Config) { c.Labels = []string{"a"} }, "--labels"},
		{"pooled multihist takes one label", KindMultiHist, func(c *Config) { c.Labels = []string{"a", "b"} }, "--labels"},
		{"reversed limits", KindLine, func(c *Config) { c.XLim = &Limits{Min: 2, Max: 1} }, "--xLim"},
		{"empty y limits", KindLine, func(c *Config) { c.YLim = &Limits{Min: 1, Max: 1} }, "--yLim"},
		{"zero figure", KindLine, func(c *Config) { c.FigWidth = 0 }, "--figSize"},
		{"dpi", KindLine, func(c *Config) { c.DPI = 5 }, "--dpi"},
		{"backend", KindLine, func(c *Config) { c.Backend = "pdf" }, "--backend"},
		{"listen", KindLine, func(c *Config) { c.Backend = "browser"; c.Listen = "" }, "--listen"},
		{"line style", KindLine, func(c *Config) { c.LineStyle = "wavy" }, "--style"},
		{"bins", KindHist, func(c *Config) { c.Bins = 0 }, "--numOfBin"},
		{"histtype", KindMultiHist, func(c *Config) { c.HistType = "violin" }, "--histtype"},
		{"colormap", KindMatrix, func(c *Config) { c.Colormap = "nope" }, "--heatmap"},
		{"zmin above zmax", KindHeat, func(c *Config) { c.ZMin = float(3); c.ZMax = float(1) }, "--zmin"},
		{"2d bins", KindHist2D, func(c *Config) { c.Bins2D = 0 }, "--nBins"},
		{"unknown kind", Kind("pie"), func(c *Config) {}, "command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid(tt.kind)
			tt.mutate(c)

			err := c.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Option != tt.option {
				t.Errorf("option = %q, want %q (%v)", ve.Option, tt.option, err)
			}
		})
	}
}

func TestValidate_Labels(t *testing.T) {
	c := valid(KindMultiHist)
	c.Separate = true
	c.Labels = []string{"run 1", "run 2"}
	if err := c.Validate(); err != nil {
		t.Errorf("separate multihist with one label per file: %v", err)
	}

	c = valid(KindLine)
	c.YCols = []int{1, 2, 3}
	c.Labels = []string{"a", "b", "c"}
	if err := c.Validate(); err != nil {
		t.Errorf("plot with one label per column: %v", err)
	}
}

func TestSeriesCount(t *testing.T) {
	tests := []struct {
		kind     Kind
		separate bool
		want     int
	}{
		{KindLine, false, 1},
		{KindMultiLine, false, 2},
		{KindMultiHist, false, 1},
		{KindMultiHist, true, 2},
		{KindHeat, false, 0},
	}
	for _, tt := range tests {
		c := valid(tt.kind)
		c.Separate = tt.separate
		if got := c.SeriesCount(); got != tt.want {
			t.Errorf("%s (separate=%v) SeriesCount() = %d, want %d", tt.kind, tt.separate, got, tt.want)
		}
	}
}
