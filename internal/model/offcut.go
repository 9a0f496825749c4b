package model

import "github.com/google/uuid"

// Strip is a rectangular piece of leftover material in mm.
type Strip struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// Area returns the strip area in m².
func (s Strip) Area() float64 {
	return Dimensions{Length: s.Length, Width: s.Width}.Area()
}

// Offcut is the material left over from one layer once the stack has been
// trimmed to its final size.
type Offcut struct {
	ID         string    `json:"id"`
	LayerID    string    `json:"layer_id"`
	LayerIndex int       `json:"layer_index"`
	Role       LayerRole `json:"role"`
	Material   Material  `json:"material"`
	Strips     []Strip   `json:"strips"`
	Area       float64   `json:"area"`  // m², sum of strips
	Value      float64   `json:"value"` // Area x layer price per m², set by the engine
}

// NewOffcut builds an offcut for a layer and sums the strip areas. Value is
// left for the caller to price.
func NewOffcut(layer MaterialLayer, index int, strips []Strip) Offcut {
	o := Offcut{
		ID:         uuid.New().String()[:8],
		LayerID:    layer.ID,
		LayerIndex: index,
		Role:       layer.Role,
		Strips:     strips,
	}
	if layer.Material != nil {
		o.Material = *layer.Material
	}
	for _, s := range strips {
		o.Area += s.Area()
	}
	return o
}

// ToMaterials converts each strip into a catalog material so the leftover
// can be resold. Strip materials keep the source price per m².
func (o Offcut) ToMaterials() []Material {
	out := make([]Material, 0, len(o.Strips))
	for _, s := range o.Strips {
		m := NewPanelMaterial(o.Material.Code+"-OFF", "Offcut "+o.Material.Name,
			s.Length, s.Width, o.Material.Thickness, o.Material.PricePerArea)
		out = append(out, m)
	}
	return out
}

// TotalOffcutArea returns the total area of all offcuts in m².
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area
	}
	return total
}

// TotalOffcutValue returns the summed estimated value of all offcuts.
func TotalOffcutValue(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Value
	}
	return total
}
