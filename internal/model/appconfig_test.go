package model

import "testing"

func TestDefaultPricing(t *testing.T) {
	cfg := DefaultPricing()
	if cfg.TaxRate != 0.20 || cfg.MinSurfacePerFace != 0.5 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	for _, g := range []GlossLevel{GlossMatte, GlossSatin, GlossSemiGloss, GlossHighGloss} {
		if cfg.LacquerPrices[g] <= 0 || cfg.VarnishPrices[g] <= 0 {
			t.Errorf("missing price for gloss %q", g)
		}
	}
	if cfg.MinLayers != DefaultMinLayers || cfg.MaxLayers != DefaultMaxLayers {
		t.Errorf("unexpected layer bounds %d..%d", cfg.MinLayers, cfg.MaxLayers)
	}
}

func TestFindTemplate(t *testing.T) {
	cfg := DefaultPricing()
	groove := cfg.FindTemplate("groove")
	if groove == nil || groove.RateParam != "length" {
		t.Fatalf("expected groove template, got %v", groove)
	}
	groove.Rate = 99
	if cfg.FindTemplate("groove").Rate != 99 {
		t.Error("FindTemplate should return a pointer into the config")
	}
	if cfg.FindTemplate("laser") != nil {
		t.Error("expected nil for unknown template")
	}
}

func TestLayerBounds(t *testing.T) {
	tests := []struct {
		min, max         int
		wantMin, wantMax int
	}{
		{2, 6, 2, 6},
		{3, 4, 3, 4},
		{0, 0, 2, 6},
		{1, 8, 2, 8},
		{8, 3, 8, 8},
	}
	for _, tt := range tests {
		cfg := PricingConfig{MinLayers: tt.min, MaxLayers: tt.max}
		gotMin, gotMax := cfg.LayerBounds()
		if gotMin != tt.wantMin || gotMax != tt.wantMax {
			t.Errorf("LayerBounds(%d, %d) = %d, %d, want %d, %d", tt.min, tt.max, gotMin, gotMax, tt.wantMin, tt.wantMax)
		}
	}
}
