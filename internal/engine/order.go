package engine

import (
	"github.com/piwi3910/SlabQuote/internal/model"
	"github.com/shopspring/decimal"
)

// Totals prices every line and rolls the prices up into order totals.
// Supply and service subtotals are kept apart for reporting; they always add
// up to the total excl. tax. A total below the minimum order value is not
// raised here: that rule only gates submission.
func (e *Engine) Totals(lines []model.CuttingLine) model.OrderTotals {
	priced := make([]model.CuttingLine, len(lines))
	for i, l := range lines {
		priced[i] = l
		priced[i].Computed = e.computeLine(l)
	}
	return e.totals(priced)
}

// totals aggregates lines whose computed fields are current.
func (e *Engine) totals(lines []model.CuttingLine) model.OrderTotals {
	supply := decimal.Zero
	total := decimal.Zero
	pieces := 0

	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		lineSupply := decimal.NewFromFloat(l.Computed.Costs.Supply).Mul(qty).Round(2)
		lineTotal := decimal.NewFromFloat(l.Computed.LinePriceExclTax)
		if lineSupply.GreaterThan(lineTotal) {
			lineSupply = lineTotal
		}
		supply = supply.Add(lineSupply)
		total = total.Add(lineTotal)
		pieces += l.Quantity
	}

	tax := total.Mul(decimal.NewFromFloat(e.taxRate())).Round(2)
	edges := model.CalculateEdgeBanding(lines, e.Pricing.EdgeWastePercent)

	return model.OrderTotals{
		SupplySubtotal:  supply.InexactFloat64(),
		ServiceSubtotal: total.Sub(supply).InexactFloat64(),
		TotalExclTax:    total.InexactFloat64(),
		Tax:             tax.InexactFloat64(),
		TotalInclTax:    total.Add(tax).InexactFloat64(),
		PieceCount:      pieces,
		EdgeMeters:      edges.TotalLinearM,
	}
}

// EstimatePanels returns the stock panels to pull per material for the
// order, using the configured edge waste percentage as cutting waste.
func (e *Engine) EstimatePanels(o model.Order, kerf float64) []model.PanelEstimate {
	return model.EstimatePanels(o.Lines, kerf, e.Pricing.EdgeWastePercent)
}
