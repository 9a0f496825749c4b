package model

import (
	"math"
	"strings"
)

// Edge names one side of a rectangular piece. A and C run along the length,
// B and D run along the width.
type Edge uint8

const (
	EdgeA Edge = 1 << iota
	EdgeB
	EdgeC
	EdgeD
)

// AllEdges lists the edges in display order.
var AllEdges = []Edge{EdgeA, EdgeB, EdgeC, EdgeD}

func (e Edge) String() string {
	switch e {
	case EdgeA:
		return "A"
	case EdgeB:
		return "B"
	case EdgeC:
		return "C"
	case EdgeD:
		return "D"
	default:
		return "?"
	}
}

// Span returns the edge length in mm for a piece of the given size.
func (e Edge) Span(length, width float64) float64 {
	switch e {
	case EdgeA, EdgeC:
		return sideOrZero(length)
	case EdgeB, EdgeD:
		return sideOrZero(width)
	default:
		return 0
	}
}

// EdgeSet is the set of edges selected for treatment.
type EdgeSet uint8

// NewEdgeSet builds a set from individual edges.
func NewEdgeSet(edges ...Edge) EdgeSet {
	var s EdgeSet
	for _, e := range edges {
		s = s.With(e)
	}
	return s
}

// Has reports whether e is in the set.
func (s EdgeSet) Has(e Edge) bool { return s&EdgeSet(e) != 0 }

// With returns the set with e added.
func (s EdgeSet) With(e Edge) EdgeSet { return s | EdgeSet(e) }

// Without returns the set with e removed.
func (s EdgeSet) Without(e Edge) EdgeSet { return s &^ EdgeSet(e) }

// HasAny reports whether at least one edge is selected.
func (s EdgeSet) HasAny() bool { return s&0x0f != 0 }

// EdgeCount returns the number of selected edges.
func (s EdgeSet) EdgeCount() int {
	n := 0
	for _, e := range AllEdges {
		if s.Has(e) {
			n++
		}
	}
	return n
}

// LinearLength returns the total treated edge length in mm.
func (s EdgeSet) LinearLength(length, width float64) float64 {
	var total float64
	for _, e := range AllEdges {
		if s.Has(e) {
			total += e.Span(length, width)
		}
	}
	return total
}

// String returns e.g. "A+C", or "-" for an empty set.
func (s EdgeSet) String() string {
	var names []string
	for _, e := range AllEdges {
		if s.Has(e) {
			names = append(names, e.String())
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "+")
}

// ParseEdgeSet reads edge letters such as "AC", "a+b" or "A,B,C,D".
// Unknown characters are ignored.
func ParseEdgeSet(s string) EdgeSet {
	var set EdgeSet
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'A':
			set = set.With(EdgeA)
		case 'B':
			set = set.With(EdgeB)
		case 'C':
			set = set.With(EdgeC)
		case 'D':
			set = set.With(EdgeD)
		}
	}
	return set
}

// EdgeBandingSummary holds the edge treatment requirements of an order.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`
	TotalLinearM     float64 `json:"total_linear_m"`
	WastePercent     float64 `json:"waste_percent"`
	TotalWithWasteMM float64 `json:"total_with_waste_mm"`
	TotalWithWasteM  float64 `json:"total_with_waste_m"`
	PieceCount       int     `json:"piece_count"` // pieces with at least one treated edge
	EdgeCount        int     `json:"edge_count"`
}

// CalculateEdgeBanding computes the total treated edge length for a list of lines.
// wastePercent is the additional percentage to add for waste (e.g., 10 for 10%).
// Lines without a usable surface are skipped, as they are not charged for edges.
func CalculateEdgeBanding(lines []CuttingLine, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var pieceCount, edgeCount int

	for _, l := range lines {
		if !l.Edges.HasAny() || l.Quantity <= 0 || l.Dims.Area() <= 0 {
			continue
		}
		totalMM += l.Edges.LinearLength(l.Dims.Length, l.Dims.Width) * float64(l.Quantity)
		pieceCount += l.Quantity
		edgeCount += l.Edges.EdgeCount() * l.Quantity
	}

	withWaste := math.Ceil(totalMM * (1.0 + wastePercent/100.0))

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: withWaste,
		TotalWithWasteM:  withWaste / 1000.0,
		PieceCount:       pieceCount,
		EdgeCount:        edgeCount,
	}
}
