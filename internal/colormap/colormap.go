// Package colormap resolves matplotlib-style colormap names to gonum
// palettes.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

// Default is the colormap used when none is requested.
const Default = "viridis"

// DefaultSize is the number of palette entries used by heatmaps.
const DefaultSize = 256

// ErrUnknownColormap is returned for names Lookup does not know.
var ErrUnknownColormap = errors.New("colormap: unknown colormap")

// Colors is a fixed list of colours implementing palette.Palette.
type Colors []color.Color

// Colors implements palette.Palette.
func (c Colors) Colors() []color.Color { return c }

// viridisStops are evenly spaced samples of matplotlib's viridis.
var viridisStops = hexColors(
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
)

var jetStops = hexColors("#00007f", "#0000ff", "#00ffff", "#ffff00", "#ff0000", "#7f0000")

var grayStops = hexColors("#000000", "#ffffff")

type builder func(n int) (palette.Palette, error)

var builtins = map[string]builder{
	"viridis": stops(viridisStops),
	"jet":     stops(jetStops),
	"gray":    stops(grayStops),
	"grey":    stops(grayStops),
	"hot": func(n int) (palette.Palette, error) {
		return palette.Heat(n, 1), nil
	},
	"rainbow": func(n int) (palette.Palette, error) {
		// Hue runs from blue (2/3) down to red (0).
		return palette.Rainbow(n, 2.0/3.0, 0, 1, 1, 1), nil
	},
	"coolwarm":          colorMap(func() palette.ColorMap { return moreland.SmoothBlueRed() }),
	"blackbody":         colorMap(moreland.BlackBody),
	"extendedblackbody": colorMap(moreland.ExtendedBlackBody),
	"kindlmann":         colorMap(moreland.Kindlmann),
	"extendedkindlmann": colorMap(moreland.ExtendedKindlmann),
}

// brewerNames are the ColorBrewer schemes exposed under their matplotlib names.
var brewerNames = []string{
	"Blues", "BuGn", "BuPu", "GnBu", "Greens", "Greys", "OrRd", "Oranges",
	"PuBu", "PuBuGn", "PuRd", "Purples", "RdPu", "Reds", "YlGn", "YlGnBu",
	"YlOrBr", "YlOrRd", "BrBG", "PiYG", "PRGn", "PuOr", "RdBu", "RdGy",
	"RdYlBu", "RdYlGn", "Spectral",
}

// Names returns every accepted colormap name, without "_r" variants.
func Names() []string {
	names := make([]string, 0, len(builtins)+len(brewerNames))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, brewerNames...)
}

// Known reports whether Lookup accepts name.
func Known(name string) bool {
	_, _, ok := resolve(name)
	return ok
}

// Lookup returns an n-colour palette for name. A "_r" suffix reverses the
// map. The empty name selects Default.
func Lookup(name string, n int) (palette.Palette, error) {
	if n < 2 {
		n = 2
	}
	b, reversed, ok := resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownColormap, name, strings.Join(Names(), ", "))
	}
	p, err := b(n)
	if err != nil {
		return nil, fmt.Errorf("colormap %q: %w", name, err)
	}
	if reversed {
		p = reverse(p)
	}
	return p, nil
}

func resolve(name string) (b builder, reversed bool, ok bool) {
	if name == "" {
		name = Default
	}
	if base, found := strings.CutSuffix(name, "_r"); found {
		name, reversed = base, true
	}
	if b, ok := builtins[strings.ToLower(name)]; ok {
		return b, reversed, true
	}
	for _, bn := range brewerNames {
		if bn == name {
			return brewerBuilder(bn), reversed, true
		}
	}
	return nil, false, false
}

func stops(c []color.Color) builder {
	return func(n int) (palette.Palette, error) {
		return Interpolate(c, n), nil
	}
}

func colorMap(newMap func() palette.ColorMap) builder {
	return func(n int) (palette.Palette, error) {
		cm := newMap()
		cm.SetMin(0)
		cm.SetMax(1)
		return cm.Palette(n), nil
	}
}

func brewerBuilder(name string) builder {
	return func(n int) (palette.Palette, error) {
		// Schemes have between 3 and 12 classes depending on type; take
		// the largest available and interpolate.
		var lastErr error
		for k := 12; k >= 3; k-- {
			p, err := brewer.GetPalette(brewer.TypeAny, name, k)
			if err == nil {
				return Interpolate(p.Colors(), n), nil
			}
			lastErr = err
		}
		return nil, lastErr
	}
}

// Interpolate returns n colours evenly spaced along the piecewise-linear
// path through stops.
func Interpolate(stops []color.Color, n int) Colors {
	out := make(Colors, n)
	if len(stops) == 1 || n == 1 {
		for i := range out {
			out[i] = stops[0]
		}
		return out
	}
	segments := float64(len(stops) - 1)
	for i := range out {
		t := float64(i) / float64(n-1) * segments
		k := int(t)
		if k >= len(stops)-1 {
			k = len(stops) - 2
		}
		out[i] = lerp(stops[k], stops[k+1], t-float64(k))
	}
	return out
}

func lerp(a, b color.Color, t float64) color.Color {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8((float64(x)*(1-t) + float64(y)*t) / 257)
	}
	return color.NRGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}

func reverse(p palette.Palette) palette.Palette {
	src := p.Colors()
	out := make(Colors, len(src))
	for i, c := range src {
		out[len(src)-1-i] = c
	}
	return out
}

// Hex returns the palette as "#rrggbb" strings.
func Hex(p palette.Palette) []string {
	cs := p.Colors()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = ToHex(c)
	}
	return out
}

// ToHex formats c as "#rrggbb", dropping alpha.
func ToHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// ParseHex parses "#rgb" or "#rrggbb" colours.
func ParseHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("want #rgb or #rrggbb")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}

func hexColors(hex ...string) []color.Color {
	out := make([]color.Color, len(hex))
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}
