// Package color matches sampled colors against reference palettes: the RAL
// Classic range and the decor ranges of panel manufacturers.
package color

import (
	"embed"
	"fmt"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed palettes/*.yaml
var paletteFS embed.FS

// RALPaletteID is the id of the reference palette in the embedded set.
const RALPaletteID = "ral"

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Distance returns the Euclidean distance between two colors in RGB space.
func (c RGB) Distance(o RGB) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Reference is one named color of a palette.
type Reference struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	Hex  string `yaml:"hex" json:"hex"`
	RGB  RGB    `yaml:"-" json:"-"`
}

// Label returns "code name", e.g. "RAL 9010 Pure white".
func (r Reference) Label() string {
	return r.Code + " " + r.Name
}

// Palette is an ordered set of reference colors.
type Palette struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Manufacturer string      `yaml:"manufacturer"`
	Colors       []Reference `yaml:"colors"`
}

// ParsePalette decodes a YAML palette and resolves each entry's RGB value.
func ParsePalette(data []byte) (Palette, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("failed to parse palette YAML: %w", err)
	}
	if p.ID == "" {
		return Palette{}, fmt.Errorf("palette has no id")
	}
	for i := range p.Colors {
		rgb, err := ParseHex(p.Colors[i].Hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s, color %s: %w", p.ID, p.Colors[i].Code, err)
		}
		p.Colors[i].RGB = rgb
		p.Colors[i].Hex = rgb.Hex()
	}
	return p, nil
}

// EmbeddedPalettes returns every palette shipped with the package, sorted
// by id.
func EmbeddedPalettes() ([]Palette, error) {
	entries, err := paletteFS.ReadDir("palettes")
	if err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}
	var out []Palette
	for _, e := range entries {
		data, err := paletteFS.ReadFile(path.Join("palettes", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read palette %s: %w", e.Name(), err)
		}
		p, err := ParsePalette(data)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
