package model

import (
	"math"
	"testing"
)

func TestDimensionsArea(t *testing.T) {
	tests := []struct {
		d    Dimensions
		want float64
	}{
		{Dimensions{Length: 2000, Width: 600}, 1.2},
		{Dimensions{Length: 500, Width: 500, Height: 40}, 0.25},
		{Dimensions{Length: 0, Width: 600}, 0},
		{Dimensions{Length: -100, Width: 600}, 0},
		{Dimensions{Length: math.NaN(), Width: 600}, 0},
		{Dimensions{Length: math.Inf(1), Width: 600}, 0},
		{Dimensions{Length: 1e200, Width: 1e200}, 0},
	}
	for _, tt := range tests {
		if got := tt.d.Area(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Area(%+v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestNewCuttingLineDefaults(t *testing.T) {
	l := NewCuttingLine()
	if len(l.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", l.ID)
	}
	if l.Quantity != 1 || l.Faces != 1 {
		t.Errorf("expected quantity 1 and one face, got %d and %d", l.Quantity, l.Faces)
	}
	if l.FinishOrNone().Kind() != FinishNone {
		t.Errorf("expected no finish, got %v", l.FinishOrNone().Kind())
	}
}

func TestFinishOrNoneTreatsNilAsNone(t *testing.T) {
	var l CuttingLine
	if _, ok := l.FinishOrNone().(NoFinish); !ok {
		t.Error("nil finish should read as NoFinish")
	}
}

func TestDescribeFinish(t *testing.T) {
	tests := []struct {
		f    Finish
		want string
	}{
		{NoFinish{}, "None"},
		{Lacquer{ColorRef: "RAL 9010", GlossLevel: GlossSatin}, "Lacquer RAL 9010 satin"},
		{Lacquer{GlossLevel: GlossMatte}, "Lacquer matte"},
		{Varnish{GlossLevel: GlossHighGloss}, "Varnish high-gloss"},
		{Varnish{GlossLevel: GlossMatte, TintMode: true, Tint: "oak"}, "Varnish matte, tinted oak"},
	}
	for _, tt := range tests {
		if got := DescribeFinish(tt.f); got != tt.want {
			t.Errorf("DescribeFinish(%#v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestVarnishHasTint(t *testing.T) {
	if (Varnish{TintMode: true, Tint: "  "}).HasTint() {
		t.Error("blank tint should not count")
	}
	if !(Varnish{TintMode: true, Tint: "walnut"}).HasTint() {
		t.Error("expected tint to be present")
	}
	if (Varnish{Tint: "walnut"}).HasTint() {
		t.Error("a tint without tint mode should not count")
	}
}

func TestCuttingLineCloneIsIndependent(t *testing.T) {
	m := NewPanelMaterial("MDF18", "MDF", 2800, 2070, 18, 14.5)
	l := NewCuttingLine()
	l.Material = &m
	l.Machining = []MachiningOp{{TemplateID: "groove", Params: map[string]float64{"length": 500}, Quantity: 1}}

	cp := l.Clone()
	cp.Material.PricePerArea = 99
	cp.Machining[0].Params["length"] = 1
	cp.Machining[0].Quantity = 5

	if l.Material.PricePerArea != 14.5 {
		t.Error("clone shares material with original")
	}
	if l.Machining[0].Params["length"] != 500 || l.Machining[0].Quantity != 1 {
		t.Error("clone shares machining with original")
	}
}

func TestOrderWithLineEdited(t *testing.T) {
	o := NewOrder("Q-1")
	id := o.Lines[0].ID

	edited, ok := o.WithLineEdited(id, func(l *CuttingLine) { l.Reference = "Door" })
	if !ok {
		t.Fatal("expected edit to find the line")
	}
	if edited.Lines[0].Reference != "Door" {
		t.Errorf("expected edited reference, got %q", edited.Lines[0].Reference)
	}
	if o.Lines[0].Reference != "" {
		t.Error("original order was modified")
	}

	if _, ok := o.WithLineEdited("missing", func(l *CuttingLine) {}); ok {
		t.Error("expected no match for unknown ID")
	}
}

func TestOrderWithLineAndWithoutLine(t *testing.T) {
	o := NewOrder("Q-2")
	second := NewCuttingLine()
	second.Reference = "Shelf"
	o = o.WithLine(second)

	if len(o.Lines) != 2 || o.LineIndex(second.ID) != 1 {
		t.Fatalf("expected Shelf at index 1, got %d lines", len(o.Lines))
	}

	removed, ok := o.WithoutLine(o.Lines[0].ID)
	if !ok || len(removed.Lines) != 1 || removed.Lines[0].Reference != "Shelf" {
		t.Fatalf("unexpected lines after removal: %+v", removed.Lines)
	}

	last, ok := removed.WithoutLine(second.ID)
	if !ok {
		t.Fatal("expected removal of last line to succeed")
	}
	if len(last.Lines) != 1 || last.Lines[0].ID == second.ID || last.Lines[0].Reference != "" {
		t.Errorf("removing the last line should leave one blank line, got %+v", last.Lines)
	}

	if _, ok := o.WithoutLine("missing"); ok {
		t.Error("expected no match for unknown ID")
	}
}

func TestOrderCloneCopiesErrors(t *testing.T) {
	o := NewOrder("Q-3")
	o.Errors = []ValidationError{{Code: ErrMissingReference, LineIndex: 0, Message: "reference is required"}}

	cp := o.Clone()
	cp.Errors[0].Message = "changed"
	cp.Lines[0].Reference = "changed"

	if o.Errors[0].Message != "reference is required" || o.Lines[0].Reference != "" {
		t.Error("clone shares data with original")
	}
	if o.Errors[0].Error() != "reference is required" {
		t.Errorf("unexpected Error() %q", o.Errors[0].Error())
	}
}

func TestLineCostsTotals(t *testing.T) {
	c := LineCosts{Supply: 10, Finish: 5, Edges: 2, Machining: 3, Drilling: 1}
	if c.Service() != 11 {
		t.Errorf("expected service 11, got %v", c.Service())
	}
	if c.Total() != 21 {
		t.Errorf("expected total 21, got %v", c.Total())
	}
}
