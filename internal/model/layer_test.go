package model

import "testing"

func TestNewLayerStack(t *testing.T) {
	s := NewLayerStack()
	if len(s.Layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(s.Layers))
	}
	if s.Layers[0].Role != RoleFaceA || s.Layers[1].Role != RoleCore || s.Layers[2].Role != RoleFaceB {
		t.Errorf("unexpected roles %v %v %v", s.Layers[0].Role, s.Layers[1].Role, s.Layers[2].Role)
	}
	if !s.GlueOrDefault().BySupplier() {
		t.Error("expected supplier glue by default")
	}
	if s.Complete() {
		t.Error("a fresh stack has no materials and must not be complete")
	}
}

func TestGlueOrDefaultNil(t *testing.T) {
	var s LayerStack
	if _, ok := s.GlueOrDefault().(SupplierGlue); !ok {
		t.Error("nil glue should read as SupplierGlue")
	}
}

func TestLayerStackAddRemoveBounds(t *testing.T) {
	s := NewLayerStack()
	for i := 0; i < 5; i++ {
		s = s.WithLayerAdded(RoleOther, DefaultMaxLayers)
	}
	if len(s.Layers) != DefaultMaxLayers {
		t.Errorf("expected %d layers, got %d", DefaultMaxLayers, len(s.Layers))
	}

	for i := 0; i < 10; i++ {
		s = s.WithLayerRemoved(0, DefaultMinLayers)
	}
	if len(s.Layers) != DefaultMinLayers {
		t.Errorf("expected %d layers, got %d", DefaultMinLayers, len(s.Layers))
	}

	if got := s.WithLayerRemoved(7, 0); len(got.Layers) != len(s.Layers) {
		t.Error("out of range removal should be a no-op")
	}
}

func TestLayerStackWithMaterial(t *testing.T) {
	m := NewPanelMaterial("PLY18", "Plywood", 2500, 1250, 18, 42)
	s := NewLayerStack()

	withMat := s
	for i := range s.Layers {
		withMat = withMat.WithMaterial(i, &m)
	}
	if !withMat.Complete() {
		t.Error("expected complete stack")
	}
	if s.Layers[0].Assigned() {
		t.Error("original stack was modified")
	}

	m.PricePerArea = 1
	if withMat.Layers[0].Material.PricePerArea != 42 {
		t.Error("layer shares the material pointer with the caller")
	}

	cleared := withMat.WithMaterial(1, nil)
	if cleared.Layers[1].Assigned() || cleared.Complete() {
		t.Error("nil material should clear the layer")
	}
	if got := s.WithMaterial(-1, &m); got.Layers[0].Assigned() {
		t.Error("negative index should be a no-op")
	}
}

func TestLayerStackCloneCopiesEdgeBand(t *testing.T) {
	eb := NewEdgeBand("ABS2", "ABS 2mm", 2, 1.45)
	s := NewLayerStack().WithGlue(SupplierGlue{EdgeBand: &eb})

	cp := s.Clone()
	cp.Glue.(SupplierGlue).EdgeBand.PricePerMeter = 9

	if s.Glue.(SupplierGlue).EdgeBand.PricePerMeter != 1.45 {
		t.Error("clone shares the edge band with the original")
	}

	loose := s.WithGlue(CustomerGlue{Oversize: 10})
	if loose.GlueOrDefault().BySupplier() {
		t.Error("expected customer glue")
	}
	if !s.GlueOrDefault().BySupplier() {
		t.Error("WithGlue modified the original")
	}
}

func TestLayerRoleString(t *testing.T) {
	if RoleCore.String() != "Core" || RoleOther.String() != "Other" {
		t.Errorf("unexpected role names %q %q", RoleCore, RoleOther)
	}
}
