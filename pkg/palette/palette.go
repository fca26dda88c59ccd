// Package palette provides the ordered color lists used to fill nodes.
//
// A [Palette] is positional: the i-th color belongs to the i-th node in
// node order. Named palettes can be looked up with [Lookup]; custom palettes
// are parsed from a comma-separated list of hex colors with [Parse].
package palette

import (
	"slices"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
)

// Palette is an ordered list of CSS hex colors.
type Palette []string

// Spectral8 is the eight-color diverging Spectral scheme.
var Spectral8 = Palette{
	"#3288bd", "#66c2a5", "#abdda4", "#e6f598",
	"#fee08b", "#fdae61", "#f46d43", "#d53e4f",
}

// Blues8 is a sequential blue scheme.
var Blues8 = Palette{
	"#084594", "#2171b5", "#4292c6", "#6baed6",
	"#9ecae1", "#c6dbef", "#deebf7", "#f7fbff",
}

// Category10 is a qualitative scheme for unrelated nodes.
var Category10 = Palette{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// DefaultName names the palette used when none is configured.
const DefaultName = "Spectral8"

var named = map[string]Palette{
	"Spectral8":  Spectral8,
	"Blues8":     Blues8,
	"Category10": Category10,
}

// Names returns the registered palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the named palette. Names are case-insensitive.
func Lookup(name string) (Palette, bool) {
	for n, p := range named {
		if strings.EqualFold(n, name) {
			return slices.Clone(p), true
		}
	}
	return nil, false
}

// Resolve interprets spec as either a registered palette name or a
// comma-separated hex list. An empty spec selects [DefaultName].
func Resolve(spec string) (Palette, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = DefaultName
	}
	if p, ok := Lookup(spec); ok {
		return p, nil
	}
	if strings.HasPrefix(spec, "#") {
		return Parse(spec)
	}
	return nil, perrors.New(perrors.ErrCodeInvalidPalette,
		"unknown palette %q (available: %s, or a list like #ff0000,#00ff00)", spec, strings.Join(Names(), ", "))
}

// Parse reads a comma-separated list of hex colors such as
// "#3288bd,#66c2a5". Short forms like "#fff" are accepted; the result is
// normalized to lower-case six-digit form.
func Parse(s string) (Palette, error) {
	var p Palette
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := colorful.Hex(expandShortHex(part))
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidPalette, err, "color #%d %q", i, part)
		}
		p = append(p, c.Hex())
	}
	if len(p) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidPalette, "palette is empty")
	}
	return p, nil
}

func expandShortHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}

// LabelColor picks a readable text color for labels drawn on top of fill.
// Unparseable fills get black.
func LabelColor(fill string) string {
	c, err := colorful.Hex(expandShortHex(fill))
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l < 0.55 {
		return "#ffffff"
	}
	return "#000000"
}

// Stroke returns a darker shade of fill for node outlines.
func Stroke(fill string) string {
	c, err := colorful.Hex(expandShortHex(fill))
	if err != nil {
		return "#333333"
	}
	return c.BlendLab(colorful.Color{}, 0.35).Clamped().Hex()
}
