package zone

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/accufoot/pkg/mesh"
)

// defaultHexPalette maps every known reflex zone to its display color. Hex
// keeps the table human-editable; config overrides use the same notation.
var defaultHexPalette = map[string]string{
	"adrenal_gland":    "#FFA500",
	"appendix":         "#8B4513",
	"ascending_colon":  "#996633",
	"bladder":          "#FFD700",
	"brain_stem":       "#800080",
	"descending_colon": "#8B4513",
	"duodenum":         "#D2691E",
	"ear":              "#FFC0CB",
	"eye":              "#00BFFF",
	"gall_bladder":     "#32CD32",
	"head_brain":       "#9370DB",
	"heart":            "#FF0000",
	"anus":             "#8B0000",
	"kidney":           "#CD5C5C",
	"liver":            "#A52A2A",
	"lungs":            "#87CEEB",
	"neck":             "#FFE4C4",
	"pancreas":         "#FF8C00",
	"pituitary_gland":  "#FF69B4",
	"rectum":           "#800000",
	"sex_gland":        "#C71585",
	"sinus":            "#ADD8E6",
	"small_intestine":  "#F4A460",
	"solar_plexus":     "#FFFF00",
	"spleen":           "#DC143C",
	"stomach":          "#F08080",
	"thyroid":          "#008080",
	"trapezoid":        "#EE82EE",
	"transverse_colon": "#A0522D",
	"ureter":           "#DAA520",
}

// Palette maps folded zone names to bump colors. Lookups never fail: zones
// without an entry get mesh.DefaultColor.
type Palette map[string]mesh.Color

// DefaultPalette returns the built-in zone palette.
func DefaultPalette() Palette {
	p := make(Palette, len(defaultHexPalette))
	for name, hex := range defaultHexPalette {
		c, err := parseHexColor(hex)
		if err != nil {
			// Static table, unreachable unless the table itself is edited.
			panic(fmt.Sprintf("zone: bad builtin color %s=%s: %v", name, hex, err))
		}
		p[name] = c
	}
	return p
}

// Get returns the color for a zone, falling back to the default gray.
func (p Palette) Get(zone string) mesh.Color {
	if c, ok := p[strings.ToLower(zone)]; ok {
		return c
	}
	return mesh.DefaultColor
}

// Apply merges hex-notation overrides into the palette. Zone names without
// a builtin entry are accepted and simply extend the table.
func (p Palette) Apply(overrides map[string]string) error {
	for name, hex := range overrides {
		c, err := parseHexColor(hex)
		if err != nil {
			return fmt.Errorf("palette override %q: %w", name, err)
		}
		p[strings.ToLower(name)] = c
	}
	return nil
}

// parseHexColor decodes "#RRGGBB" into an opaque color.
func parseHexColor(hex string) (mesh.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mesh.Color{}, err
	}
	r, g, b := c.RGB255()
	return mesh.Color{R: r, G: g, B: b, A: 255}, nil
}
