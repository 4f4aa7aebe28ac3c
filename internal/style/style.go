// Package style loads named figure styles (background, text colour, grid,
// font size, line width and colour cycle) from HCL.
package style

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/banshee-data/datplot/internal/colormap"
	"github.com/banshee-data/datplot/internal/fsutil"
)

// DefaultName is the style used when none is requested.
const DefaultName = "default"

// maxStyleFileSize bounds user style files.
const maxStyleFileSize = 1 << 20

//go:embed styles.hcl
var builtinSource []byte

// ErrUnknownStyle is returned for style names that are neither built in
// nor an .hcl file.
var ErrUnknownStyle = errors.New("style: unknown style")

// Style is a resolved figure style.
type Style struct {
	Name       string
	Background color.Color
	Foreground color.Color
	Grid       bool
	GridColor  color.Color
	FontSize   float64 // points
	LineWidth  float64 // points
	Cycle      []color.Color
}

// SeriesColor returns the colour of series i, cycling through Cycle.
func (s *Style) SeriesColor(i int) color.Color {
	if len(s.Cycle) == 0 {
		return s.Foreground
	}
	return s.Cycle[i%len(s.Cycle)]
}

// hclStyleFile is the top-level structure of a style file for decoding.
type hclStyleFile struct {
	Styles []*hclStyle `hcl:"style,block"`
}

type hclStyle struct {
	Name       string   `hcl:"name,label"`
	Base       *string  `hcl:"base,optional"`
	Background *string  `hcl:"background,optional"`
	Foreground *string  `hcl:"foreground,optional"`
	Grid       *bool    `hcl:"grid,optional"`
	GridColor  *string  `hcl:"grid_color,optional"`
	FontSize   *float64 `hcl:"font_size,optional"`
	LineWidth  *float64 `hcl:"line_width,optional"`
	Cycle      []string `hcl:"cycle,optional"`
}

var tab10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

var greys = []string{"#000000", "#555555", "#888888", "#aaaaaa", "#cccccc"}

func evalContext() *hcl.EvalContext {
	list := func(hex []string) cty.Value {
		vals := make([]cty.Value, len(hex))
		for i, h := range hex {
			vals[i] = cty.StringVal(h)
		}
		return cty.ListVal(vals)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"tab10": list(tab10),
			"greys": list(greys),
		},
	}
}

var builtins map[string]*Style

func init() {
	styles, err := parse(builtinSource, "styles.hcl", nil)
	if err != nil {
		panic(fmt.Sprintf("style: built-in styles: %v", err))
	}
	builtins = make(map[string]*Style, len(styles))
	for _, s := range styles {
		builtins[s.Name] = s
	}
}

// Names returns the built-in style names.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a copy of the named built-in style.
func Builtin(name string) (*Style, error) {
	s, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (built-in: %s)", ErrUnknownStyle, name, strings.Join(Names(), ", "))
	}
	c := *s
	c.Cycle = append([]color.Color(nil), s.Cycle...)
	return &c, nil
}

// Load resolves nameOrPath: a path ending in .hcl is read through fsys
// and its first style block is used; anything else names a built-in.
func Load(fsys fsutil.FileSystem, nameOrPath string) (*Style, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultName
	}
	if filepath.Ext(nameOrPath) != ".hcl" {
		return Builtin(nameOrPath)
	}

	src, err := fsutil.ReadFileLimited(fsys, nameOrPath, maxStyleFileSize)
	if err != nil {
		return nil, fmt.Errorf("read style file: %w", err)
	}
	styles, err := parse(src, nameOrPath, builtins)
	if err != nil {
		return nil, err
	}
	if len(styles) == 0 {
		return nil, fmt.Errorf("style file %s defines no style blocks", nameOrPath)
	}
	return styles[0], nil
}

// parse decodes every style block in src. Styles may name a base from
// bases or from earlier blocks in the same file.
func parse(src []byte, filename string, bases map[string]*Style) ([]*Style, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse style file %s: %w", filename, diags)
	}

	var parsed hclStyleFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode style file %s: %w", filename, diags)
	}

	known := make(map[string]*Style, len(bases))
	for k, v := range bases {
		known[k] = v
	}

	styles := make([]*Style, 0, len(parsed.Styles))
	for _, hs := range parsed.Styles {
		s, err := hs.resolve(known)
		if err != nil {
			return nil, fmt.Errorf("style %q in %s: %w", hs.Name, filename, err)
		}
		known[s.Name] = s
		styles = append(styles, s)
	}
	return styles, nil
}

func (hs *hclStyle) resolve(known map[string]*Style) (*Style, error) {
	s := &Style{
		Name:       hs.Name,
		Background: color.White,
		Foreground: color.Black,
		GridColor:  color.Gray{Y: 0xb0},
		FontSize:   10,
		LineWidth:  1.5,
	}
	if hs.Base != nil {
		base, ok := known[*hs.Base]
		if !ok {
			return nil, fmt.Errorf("%w %q used as base", ErrUnknownStyle, *hs.Base)
		}
		*s = *base
		s.Name = hs.Name
	}

	var err error
	setColor := func(dst *color.Color, src *string) {
		if src == nil || err != nil {
			return
		}
		var c color.NRGBA
		if c, err = colormap.ParseHex(*src); err == nil {
			*dst = c
		}
	}
	setColor(&s.Background, hs.Background)
	setColor(&s.Foreground, hs.Foreground)
	setColor(&s.GridColor, hs.GridColor)
	if err != nil {
		return nil, err
	}

	if hs.Grid != nil {
		s.Grid = *hs.Grid
	}
	if hs.FontSize != nil {
		if *hs.FontSize <= 0 {
			return nil, fmt.Errorf("font_size must be positive, got %v", *hs.FontSize)
		}
		s.FontSize = *hs.FontSize
	}
	if hs.LineWidth != nil {
		if *hs.LineWidth <= 0 {
			return nil, fmt.Errorf("line_width must be positive, got %v", *hs.LineWidth)
		}
		s.LineWidth = *hs.LineWidth
	}
	if hs.Cycle != nil {
		cycle := make([]color.Color, len(hs.Cycle))
		for i, h := range hs.Cycle {
			c, err := colormap.ParseHex(h)
			if err != nil {
				return nil, fmt.Errorf("cycle[%d]: %w", i, err)
			}
			cycle[i] = c
		}
		s.Cycle = cycle
	}
	if len(s.Cycle) == 0 {
		s.Cycle = []color.Color{s.Foreground}
	}
	return s, nil
}
