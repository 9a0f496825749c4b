package engine

import (
	"math"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// Composition is the resolved geometry and cost of a layer stack.
// Dimensions are in mm; costs excl. tax.
type Composition struct {
	FinalLength    float64 `json:"final_length"`
	FinalWidth     float64 `json:"final_width"`
	TotalThickness float64 `json:"total_thickness"`
	DeliveryLength float64 `json:"delivery_length"` // final + customer oversize allowance
	DeliveryWidth  float64 `json:"delivery_width"`
	Joints         int     `json:"joints"`
	GluingCost     float64 `json:"gluing_cost"`
	EdgeBandCost   float64 `json:"edge_band_cost"`
	MaterialCost   float64 `json:"material_cost"` // full stock panels of every assigned layer
	TotalCost      float64 `json:"total_cost"`
	AssignedLayers int     `json:"assigned_layers"`
	Complete       bool    `json:"complete"`
}

// FinalArea returns the composed panel area in m².
func (c Composition) FinalArea() float64 {
	return model.Dimensions{Length: c.FinalLength, Width: c.FinalWidth}.Area()
}

// Compose resolves a layer stack into one panel. The final length and width
// are the smallest over assigned layers and the thickness is their sum, so
// the result does not depend on layer order. An incomplete stack yields
// provisional geometry over its assigned layers.
func (e *Engine) Compose(s model.LayerStack) Composition {
	c := Composition{Complete: s.Complete()}

	first := true
	for _, l := range s.Layers {
		if !l.Assigned() {
			continue
		}
		m := l.Material
		c.AssignedLayers++
		c.TotalThickness += positive(m.Thickness)
		c.MaterialCost += m.Area() * positive(m.PricePerArea)
		if first {
			c.FinalLength, c.FinalWidth = positive(m.Length), positive(m.Width)
			first = false
			continue
		}
		c.FinalLength = math.Min(c.FinalLength, positive(m.Length))
		c.FinalWidth = math.Min(c.FinalWidth, positive(m.Width))
	}

	if len(s.Layers) > 1 {
		c.Joints = len(s.Layers) - 1
	}
	c.DeliveryLength, c.DeliveryWidth = c.FinalLength, c.FinalWidth

	switch g := s.GlueOrDefault().(type) {
	case model.SupplierGlue:
		c.GluingCost = float64(c.Joints) * positive(e.Pricing.GluingRatePerJoint) * c.FinalArea()
		if g.EdgeBand != nil && c.FinalLength > 0 && c.FinalWidth > 0 {
			perimeter := 2 * (c.FinalLength + c.FinalWidth) / 1000
			c.EdgeBandCost = perimeter * positive(g.EdgeBand.PricePerMeter)
		}
	case model.CustomerGlue:
		if c.FinalLength > 0 && c.FinalWidth > 0 {
			c.DeliveryLength += positive(g.Oversize)
			c.DeliveryWidth += positive(g.Oversize)
		}
	}

	c.GluingCost = roundCents(c.GluingCost)
	c.EdgeBandCost = roundCents(c.EdgeBandCost)
	c.MaterialCost = roundCents(c.MaterialCost)
	c.TotalCost = roundCents(c.MaterialCost + c.GluingCost + c.EdgeBandCost)
	return c
}

// AddLayer appends an unassigned layer. At the configured maximum the stack
// is returned unchanged.
func (e *Engine) AddLayer(s model.LayerStack, role model.LayerRole) model.LayerStack {
	_, max := e.Pricing.LayerBounds()
	return s.WithLayerAdded(role, max)
}

// RemoveLayer drops the layer at idx. At the configured minimum the stack
// is returned unchanged.
func (e *Engine) RemoveLayer(s model.LayerStack, idx int) model.LayerStack {
	min, _ := e.Pricing.LayerBounds()
	return s.WithLayerRemoved(idx, min)
}
