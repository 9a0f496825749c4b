package model

import (
	"strings"

	"github.com/google/uuid"
)

// PricingMode tells how a material's supply cost is computed.
type PricingMode string

const (
	PricedByArea   PricingMode = "area"   // price per m²
	PricedByLength PricingMode = "linear" // price per linear meter
)

// Material is a catalog attachment: a stock panel or profile that can be
// attached to a cutting line or a layer. Dimensions are in mm.
type Material struct {
	ID            string      `json:"id"`
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	Pricing       PricingMode `json:"pricing"`
	PricePerArea  float64     `json:"price_per_m2"`
	PricePerMeter float64     `json:"price_per_m"`
	Length        float64     `json:"length"`
	Width         float64     `json:"width"`
	Thickness     float64     `json:"thickness"`
}

// NewPanelMaterial creates an area-priced panel with a generated ID.
func NewPanelMaterial(code, name string, length, width, thickness, pricePerArea float64) Material {
	return Material{
		ID:           uuid.New().String()[:8],
		Code:         code,
		Name:         name,
		Pricing:      PricedByArea,
		PricePerArea: pricePerArea,
		Length:       length,
		Width:        width,
		Thickness:    thickness,
	}
}

// NewProfileMaterial creates a linear-priced material such as a solid wood
// strip or worktop edge profile.
func NewProfileMaterial(code, name string, length, width, thickness, pricePerMeter float64) Material {
	return Material{
		ID:            uuid.New().String()[:8],
		Code:          code,
		Name:          name,
		Pricing:       PricedByLength,
		PricePerMeter: pricePerMeter,
		Length:        length,
		Width:         width,
		Thickness:     thickness,
	}
}

// Area returns the stock panel area in m².
func (m Material) Area() float64 {
	return Dimensions{Length: m.Length, Width: m.Width}.Area()
}

// EdgeBand is a banding reel that can be applied around a composed panel.
type EdgeBand struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Thickness     float64 `json:"thickness"` // mm
	PricePerMeter float64 `json:"price_per_m"`
}

// NewEdgeBand creates an EdgeBand with a generated ID.
func NewEdgeBand(code, name string, thickness, pricePerMeter float64) EdgeBand {
	return EdgeBand{
		ID:            uuid.New().String()[:8],
		Code:          code,
		Name:          name,
		Thickness:     thickness,
		PricePerMeter: pricePerMeter,
	}
}

// Catalog holds the materials and edge bands offered for sale.
type Catalog struct {
	Materials []Material `json:"materials"`
	EdgeBands []EdgeBand `json:"edge_bands"`
}

// DefaultCatalog returns a catalog populated with common panels.
func DefaultCatalog() Catalog {
	return Catalog{
		Materials: []Material{
			NewPanelMaterial("MDF18", "MDF 18mm", 2800, 2070, 18, 14.50),
			NewPanelMaterial("MDF10", "MDF 10mm", 2800, 2070, 10, 9.80),
			NewPanelMaterial("MDFH19", "MDF moisture resistant 19mm", 2800, 2070, 19, 19.90),
			NewPanelMaterial("PLY18", "Birch plywood 18mm", 2500, 1250, 18, 42.00),
			NewPanelMaterial("PLY15", "Birch plywood 15mm", 2500, 1250, 15, 36.50),
			NewPanelMaterial("HPL08", "HPL laminate 0.8mm", 3050, 1300, 0.8, 22.00),
			NewPanelMaterial("CHIP19", "Melamine chipboard 19mm", 2800, 2070, 19, 11.20),
			NewPanelMaterial("HDF03", "HDF 3mm", 2800, 2070, 3, 4.90),
			NewProfileMaterial("OAK40", "Solid oak strip 40mm", 2400, 40, 20, 18.00),
		},
		EdgeBands: []EdgeBand{
			NewEdgeBand("ABS1-WH", "ABS 1mm white", 1, 0.95),
			NewEdgeBand("ABS2-WH", "ABS 2mm white", 2, 1.45),
			NewEdgeBand("OAK05", "Oak veneer 0.5mm", 0.5, 2.10),
		},
	}
}

// FindMaterialByID returns a pointer to the material with the given ID, or nil.
func (c *Catalog) FindMaterialByID(id string) *Material {
	for i := range c.Materials {
		if c.Materials[i].ID == id {
			return &c.Materials[i]
		}
	}
	return nil
}

// FindMaterialByCode returns the first material whose code matches,
// ignoring case, or nil.
func (c *Catalog) FindMaterialByCode(code string) *Material {
	code = strings.TrimSpace(code)
	for i := range c.Materials {
		if strings.EqualFold(c.Materials[i].Code, code) {
			return &c.Materials[i]
		}
	}
	return nil
}

// FindEdgeBandByCode returns the first edge band whose code matches, ignoring case, or nil.
func (c *Catalog) FindEdgeBandByCode(code string) *EdgeBand {
	code = strings.TrimSpace(code)
	for i := range c.EdgeBands {
		if strings.EqualFold(c.EdgeBands[i].Code, code) {
			return &c.EdgeBands[i]
		}
	}
	return nil
}

// MaterialCodes returns the material codes in catalog order.
func (c *Catalog) MaterialCodes() []string {
	codes := make([]string, len(c.Materials))
	for i, m := range c.Materials {
		codes[i] = m.Code
	}
	return codes
}
