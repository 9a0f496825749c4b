package color

import (
	"fmt"
	"strings"
)

// DefaultSearchLimit caps Search results when no limit is given.
const DefaultSearchLimit = 6

// Match is the nearest reference color found for a sample.
type Match struct {
	Palette   string    `json:"palette"`
	Reference Reference `json:"reference"`
	Distance  float64   `json:"distance"`
}

// Sample is a picked color together with its nearest RAL reference.
type Sample struct {
	Hex     string `json:"hex"`
	RGB     RGB    `json:"-"`
	Nearest Match  `json:"nearest"`
}

// Matcher looks colors up in the RAL palette and in manufacturer palettes.
type Matcher struct {
	ral           Palette
	manufacturers []Palette
}

// NewMatcher builds a matcher over the embedded palettes.
func NewMatcher() (*Matcher, error) {
	palettes, err := EmbeddedPalettes()
	if err != nil {
		return nil, err
	}
	return NewMatcherFrom(palettes)
}

// NewMatcherFrom builds a matcher over the given palettes. One of them must
// have RALPaletteID; the rest are treated as manufacturer palettes, in the
// order given.
func NewMatcherFrom(palettes []Palette) (*Matcher, error) {
	m := &Matcher{}
	found := false
	for _, p := range palettes {
		if p.ID == RALPaletteID {
			m.ral = p
			found = true
			continue
		}
		m.manufacturers = append(m.manufacturers, p)
	}
	if !found || len(m.ral.Colors) == 0 {
		return nil, fmt.Errorf("no %s reference palette", RALPaletteID)
	}
	return m, nil
}

// Manufacturers returns the manufacturer palette ids.
func (m *Matcher) Manufacturers() []string {
	ids := make([]string, len(m.manufacturers))
	for i, p := range m.manufacturers {
		ids[i] = p.ID
	}
	return ids
}

// Nearest returns the RAL color closest to c. Ties go to the color listed
// first.
func (m *Matcher) Nearest(c RGB) Match {
	return nearest(m.ral, c)
}

// NearestHex parses hex and returns its nearest RAL color. Input that does
// not parse is matched as black.
func (m *Matcher) NearestHex(hex string) Match {
	c, err := ParseHex(hex)
	if err != nil {
		c = RGB{}
	}
	return m.Nearest(c)
}

// NearestByManufacturer returns the closest decor of every manufacturer
// palette, keyed by palette id.
func (m *Matcher) NearestByManufacturer(c RGB) map[string]Match {
	out := make(map[string]Match, len(m.manufacturers))
	for _, p := range m.manufacturers {
		if len(p.Colors) == 0 {
			continue
		}
		out[p.ID] = nearest(p, c)
	}
	return out
}

// Sample resolves a hex string into a Sample.
func (m *Matcher) Sample(hex string) Sample {
	c, err := ParseHex(hex)
	if err != nil {
		c = RGB{}
	}
	return Sample{Hex: c.Hex(), RGB: c, Nearest: m.Nearest(c)}
}

// Search returns colors whose code or name contains query, ignoring case.
// RAL colors come first, then each manufacturer palette in order. A limit
// of zero or less means DefaultSearchLimit.
func (m *Matcher) Search(query string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Match
	for _, p := range append([]Palette{m.ral}, m.manufacturers...) {
		for _, r := range p.Colors {
			if !strings.Contains(strings.ToLower(r.Code), q) && !strings.Contains(strings.ToLower(r.Name), q) {
				continue
			}
			out = append(out, Match{Palette: p.ID, Reference: r})
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

func nearest(p Palette, c RGB) Match {
	best := Match{Palette: p.ID, Distance: -1}
	for _, r := range p.Colors {
		d := c.Distance(r.RGB)
		if best.Distance < 0 || d < best.Distance {
			best.Reference = r
			best.Distance = d
		}
	}
	if best.Distance < 0 {
		best.Distance = 0
	}
	return best
}
