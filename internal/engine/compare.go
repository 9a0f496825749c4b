package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// FinishScenario names one finish a line could be given.
type FinishScenario struct {
	Name   string
	Finish model.Finish
}

// FinishComparison holds the price of a line under one finish scenario.
type FinishComparison struct {
	Scenario         FinishScenario
	FinishCost       float64
	UnitPriceExclTax float64
	LinePriceExclTax float64
	Delta            float64 // line price difference against the line's current finish
}

// CompareFinishes prices the line under each scenario, in scenario order.
func (e *Engine) CompareFinishes(l model.CuttingLine, scenarios []FinishScenario) []FinishComparison {
	base := e.computeLine(l)
	results := make([]FinishComparison, 0, len(scenarios))

	for _, sc := range scenarios {
		alt := l.Clone()
		alt.Finish = sc.Finish
		c := e.computeLine(alt)
		results = append(results, FinishComparison{
			Scenario:         sc,
			FinishCost:       roundCents(c.Costs.Finish),
			UnitPriceExclTax: c.UnitPriceExclTax,
			LinePriceExclTax: c.LinePriceExclTax,
			Delta:            roundCents(c.LinePriceExclTax - base.LinePriceExclTax),
		})
	}
	return results
}

// BuildFinishScenarios lists every priced finish: no finish, then lacquer
// and varnish at each configured gloss level, cheapest first. A lacquer
// color already chosen on the line is kept.
func (e *Engine) BuildFinishScenarios(l model.CuttingLine) []FinishScenario {
	colorRef := ""
	if lq, ok := l.FinishOrNone().(model.Lacquer); ok {
		colorRef = lq.ColorRef
	}

	scenarios := []FinishScenario{{Name: "No finish", Finish: model.NoFinish{}}}
	for _, g := range sortedGloss(e.Pricing.LacquerPrices) {
		scenarios = append(scenarios, FinishScenario{
			Name:   fmt.Sprintf("Lacquer %s", g),
			Finish: model.Lacquer{ColorRef: colorRef, GlossLevel: g},
		})
	}
	for _, g := range sortedGloss(e.Pricing.VarnishPrices) {
		scenarios = append(scenarios, FinishScenario{
			Name:   fmt.Sprintf("Varnish %s", g),
			Finish: model.Varnish{GlossLevel: g},
		})
	}
	return scenarios
}

// sortedGloss orders gloss levels by price, then by name.
func sortedGloss(prices map[model.GlossLevel]float64) []model.GlossLevel {
	levels := make([]model.GlossLevel, 0, len(prices))
	for g := range prices {
		if g != model.GlossUnset {
			levels = append(levels, g)
		}
	}
	sort.Slice(levels, func(i, j int) bool {
		pi, pj := prices[levels[i]], prices[levels[j]]
		if pi != pj {
			return pi < pj
		}
		return levels[i] < levels[j]
	})
	return levels
}
