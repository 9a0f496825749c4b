package model

import (
	"math"
	"sort"
)

// PanelEstimate holds how many stock panels of one material an order needs.
type PanelEstimate struct {
	Material          Material `json:"material"`
	TotalPartArea     float64  `json:"total_part_area"`     // m², incl. kerf allowance
	PanelArea         float64  `json:"panel_area"`          // m² of one stock panel
	PanelsNeededExact float64  `json:"panels_needed_exact"` // fractional panels
	PanelsNeededMin   int      `json:"panels_needed_min"`   // ceiling of exact
	PanelsWithWaste   int      `json:"panels_with_waste"`   // recommended panels incl. waste factor
	WastePercent      float64  `json:"waste_percent"`
}

// EstimatePanels groups area-priced lines by material and computes how many
// stock panels must be pulled from the warehouse. Each piece gets kerf mm
// added to both sides. Lines without a material, linear-priced materials and
// materials without stock dimensions are skipped. Results are ordered by
// material code.
func EstimatePanels(lines []CuttingLine, kerf, wastePercent float64) []PanelEstimate {
	byID := make(map[string]*PanelEstimate)
	for _, l := range lines {
		m := l.Material
		if m == nil || m.Pricing == PricedByLength || m.Area() <= 0 || l.Quantity <= 0 {
			continue
		}
		if l.Dims.Area() <= 0 {
			continue
		}
		est, ok := byID[m.ID]
		if !ok {
			est = &PanelEstimate{Material: *m, PanelArea: m.Area(), WastePercent: wastePercent}
			byID[m.ID] = est
		}
		pieceArea := Dimensions{Length: l.Dims.Length + kerf, Width: l.Dims.Width + kerf}.Area()
		est.TotalPartArea += pieceArea * float64(l.Quantity)
	}

	out := make([]PanelEstimate, 0, len(byID))
	for _, est := range byID {
		est.PanelsNeededExact = est.TotalPartArea / est.PanelArea
		est.PanelsNeededMin = int(math.Ceil(est.PanelsNeededExact))

		wasteFactor := 1.0 + (wastePercent / 100.0)
		est.PanelsWithWaste = int(math.Ceil(est.PanelsNeededExact * wasteFactor))
		if est.PanelsWithWaste < est.PanelsNeededMin {
			est.PanelsWithWaste = est.PanelsNeededMin
		}
		out = append(out, *est)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Material.Code != out[j].Material.Code {
			return out[i].Material.Code < out[j].Material.Code
		}
		return out[i].Material.ID < out[j].Material.ID
	})
	return out
}
