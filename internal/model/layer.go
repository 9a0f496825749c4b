package model

import "github.com/google/uuid"

// LayerRole is the position a layer plays in a multi-layer panel.
type LayerRole int

const (
	RoleFaceA LayerRole = iota
	RoleCore
	RoleFaceB
	RoleOther
)

func (r LayerRole) String() string {
	switch r {
	case RoleFaceA:
		return "Face A"
	case RoleCore:
		return "Core"
	case RoleFaceB:
		return "Face B"
	default:
		return "Other"
	}
}

// MaterialLayer is one sheet of a layer stack. Material is nil until the
// customer picks one.
type MaterialLayer struct {
	ID       string    `json:"id"`
	Role     LayerRole `json:"role"`
	Material *Material `json:"material,omitempty"`
}

// NewMaterialLayer creates an unassigned layer.
func NewMaterialLayer(role LayerRole) MaterialLayer {
	return MaterialLayer{
		ID:   uuid.New().String()[:8],
		Role: role,
	}
}

// Assigned reports whether a material has been picked.
func (l MaterialLayer) Assigned() bool {
	return l.Material != nil
}

// GlueMode says who glues the layers together. The concrete types are
// SupplierGlue and CustomerGlue.
type GlueMode interface {
	BySupplier() bool
	isGlueMode()
}

// SupplierGlue has the supplier glue the stack. EdgeBand is optional.
type SupplierGlue struct {
	EdgeBand *EdgeBand `json:"edge_band,omitempty"`
}

func (SupplierGlue) BySupplier() bool { return true }
func (SupplierGlue) isGlueMode()      {}

// CustomerGlue ships the layers loose. Oversize is the extra allowance in
// mm the customer wants on the delivered length and width.
type CustomerGlue struct {
	Oversize float64 `json:"oversize"`
}

func (CustomerGlue) BySupplier() bool { return false }
func (CustomerGlue) isGlueMode()      {}

// Default layer count bounds.
const (
	DefaultMinLayers = 2
	DefaultMaxLayers = 6
)

// LayerStack is an ordered set of layers composed into one panel.
// The slice order is the order index of each layer.
type LayerStack struct {
	Layers []MaterialLayer `json:"layers"`
	Glue   GlueMode        `json:"-"`
}

// NewLayerStack returns a classic three-layer sandwich glued by the supplier.
func NewLayerStack() LayerStack {
	return LayerStack{
		Layers: []MaterialLayer{
			NewMaterialLayer(RoleFaceA),
			NewMaterialLayer(RoleCore),
			NewMaterialLayer(RoleFaceB),
		},
		Glue: SupplierGlue{},
	}
}

// GlueOrDefault returns the glue mode, treating nil as supplier glue.
func (s LayerStack) GlueOrDefault() GlueMode {
	if s.Glue == nil {
		return SupplierGlue{}
	}
	return s.Glue
}

// Clone returns a deep copy of the stack.
func (s LayerStack) Clone() LayerStack {
	cp := s
	cp.Layers = make([]MaterialLayer, len(s.Layers))
	for i, l := range s.Layers {
		cp.Layers[i] = l
		if l.Material != nil {
			m := *l.Material
			cp.Layers[i].Material = &m
		}
	}
	if g, ok := s.Glue.(SupplierGlue); ok && g.EdgeBand != nil {
		eb := *g.EdgeBand
		cp.Glue = SupplierGlue{EdgeBand: &eb}
	}
	return cp
}

// Complete reports whether every layer has a material.
func (s LayerStack) Complete() bool {
	for _, l := range s.Layers {
		if !l.Assigned() {
			return false
		}
	}
	return true
}

// WithLayerAdded appends an unassigned layer unless the stack already holds
// max layers, in which case the stack is returned unchanged.
func (s LayerStack) WithLayerAdded(role LayerRole, max int) LayerStack {
	if len(s.Layers) >= max {
		return s
	}
	cp := s.Clone()
	cp.Layers = append(cp.Layers, NewMaterialLayer(role))
	return cp
}

// WithLayerRemoved drops the layer at idx unless that would leave fewer
// than min layers or idx is out of range.
func (s LayerStack) WithLayerRemoved(idx, min int) LayerStack {
	if idx < 0 || idx >= len(s.Layers) || len(s.Layers) <= min {
		return s
	}
	cp := s.Clone()
	cp.Layers = append(cp.Layers[:idx], cp.Layers[idx+1:]...)
	return cp
}

// WithMaterial assigns m to the layer at idx. A nil m clears the layer.
func (s LayerStack) WithMaterial(idx int, m *Material) LayerStack {
	if idx < 0 || idx >= len(s.Layers) {
		return s
	}
	cp := s.Clone()
	if m == nil {
		cp.Layers[idx].Material = nil
	} else {
		mm := *m
		cp.Layers[idx].Material = &mm
	}
	return cp
}

// WithGlue returns the stack with a different gluing mode.
func (s LayerStack) WithGlue(g GlueMode) LayerStack {
	cp := s.Clone()
	cp.Glue = g
	return cp
}
