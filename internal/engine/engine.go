// Package engine prices cutting lines, aggregates and validates orders, and
// composes multi-layer panels. Every function is pure: it reads the value it
// is given plus the engine's pricing configuration and returns a new value.
package engine

import (
	"math"

	"github.com/piwi3910/SlabQuote/internal/model"
	"github.com/shopspring/decimal"
)

// Engine holds the pricing configuration shared by every calculator.
type Engine struct {
	Pricing model.PricingConfig
}

// New creates an engine for one session's price list.
func New(pricing model.PricingConfig) *Engine {
	return &Engine{Pricing: pricing}
}

// Recompute prices every line, aggregates totals and validates the order.
// The input is not modified.
func (e *Engine) Recompute(o model.Order) model.Order {
	out := o.Clone()
	if len(out.Lines) == 0 {
		out.Lines = []model.CuttingLine{model.NewCuttingLine()}
	}
	for i := range out.Lines {
		out.Lines[i].Computed = e.computeLine(out.Lines[i])
	}
	out.Totals = e.totals(out.Lines)
	res := e.validate(out.Lines, out.Totals)
	out.Valid = res.Valid
	out.Errors = res.Errors
	return out
}

// positive clamps negative and non-finite inputs to zero.
func positive(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return 0
	}
	return v
}

// roundCents rounds a money amount half away from zero to two decimals.
// Non-finite amounts count as zero.
func roundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// taxRate returns the configured tax rate, never negative.
func (e *Engine) taxRate() float64 {
	return positive(e.Pricing.TaxRate)
}
