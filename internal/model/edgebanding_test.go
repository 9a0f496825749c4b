package model

import (
	"math"
	"testing"
)

func TestParseEdgeSet(t *testing.T) {
	tests := []struct {
		in   string
		want EdgeSet
	}{
		{"", 0},
		{"A", NewEdgeSet(EdgeA)},
		{"ac", NewEdgeSet(EdgeA, EdgeC)},
		{"A+B", NewEdgeSet(EdgeA, EdgeB)},
		{"A,B,C,D", NewEdgeSet(EdgeA, EdgeB, EdgeC, EdgeD)},
		{"xyz", 0},
	}
	for _, tt := range tests {
		if got := ParseEdgeSet(tt.in); got != tt.want {
			t.Errorf("ParseEdgeSet(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEdgeSetString(t *testing.T) {
	if s := EdgeSet(0).String(); s != "-" {
		t.Errorf("expected '-', got %q", s)
	}
	if s := NewEdgeSet(EdgeC, EdgeA).String(); s != "A+C" {
		t.Errorf("expected 'A+C', got %q", s)
	}
}

func TestEdgeSetWithWithout(t *testing.T) {
	s := EdgeSet(0).With(EdgeB).With(EdgeD)
	if !s.Has(EdgeB) || !s.Has(EdgeD) || s.Has(EdgeA) {
		t.Errorf("unexpected set %v", s)
	}
	if s.EdgeCount() != 2 || !s.HasAny() {
		t.Errorf("expected 2 edges, got %d", s.EdgeCount())
	}
	s = s.Without(EdgeB).Without(EdgeD)
	if s.HasAny() {
		t.Errorf("expected empty set, got %v", s)
	}
}

func TestEdgeSetLinearLength(t *testing.T) {
	// A and C run along the length, B and D along the width.
	if got := NewEdgeSet(EdgeA, EdgeC).LinearLength(2000, 600); got != 4000 {
		t.Errorf("expected 4000, got %v", got)
	}
	if got := NewEdgeSet(EdgeB).LinearLength(2000, 600); got != 600 {
		t.Errorf("expected 600, got %v", got)
	}
	if got := NewEdgeSet(EdgeA, EdgeB, EdgeC, EdgeD).LinearLength(1000, 500); got != 3000 {
		t.Errorf("expected 3000, got %v", got)
	}
}

func TestCalculateEdgeBanding(t *testing.T) {
	door := NewCuttingLine()
	door.Dims = Dimensions{Length: 2000, Width: 600}
	door.Quantity = 2
	door.Edges = NewEdgeSet(EdgeA, EdgeC)

	shelf := NewCuttingLine()
	shelf.Dims = Dimensions{Length: 800, Width: 300}
	shelf.Quantity = 3

	s := CalculateEdgeBanding([]CuttingLine{door, shelf}, 50)

	if s.TotalLinearMM != 8000 {
		t.Errorf("expected 8000 mm, got %v", s.TotalLinearMM)
	}
	if math.Abs(s.TotalWithWasteM-12) > 1e-9 {
		t.Errorf("expected 12 m with waste, got %v", s.TotalWithWasteM)
	}
	if s.PieceCount != 2 || s.EdgeCount != 4 {
		t.Errorf("expected 2 pieces and 4 edges, got %d and %d", s.PieceCount, s.EdgeCount)
	}
}

func TestCalculateEdgeBandingSkipsUnusableSizes(t *testing.T) {
	var lines []CuttingLine
	for _, d := range []Dimensions{
		{Length: math.NaN(), Width: 400},
		{Length: 1e200, Width: 1e200},
		{Length: 600, Width: math.Inf(-1)},
		{Length: 0, Width: 400},
	} {
		l := NewCuttingLine()
		l.Dims = d
		l.Quantity = 1
		l.Edges = NewEdgeSet(AllEdges...)
		lines = append(lines, l)
	}

	s := CalculateEdgeBanding(lines, 10)
	if s.TotalLinearMM != 0 || s.PieceCount != 0 {
		t.Errorf("expected nothing counted, got %+v", s)
	}
}

func TestEdgeSpanNonFinite(t *testing.T) {
	if got := EdgeA.Span(math.NaN(), 100); got != 0 {
		t.Errorf("expected 0 for NaN length, got %v", got)
	}
	if got := EdgeB.Span(100, math.Inf(1)); got != 0 {
		t.Errorf("expected 0 for infinite width, got %v", got)
	}
}
