package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// PriceLine returns a copy of the line with its computed fields filled in.
func (e *Engine) PriceLine(l model.CuttingLine) model.CuttingLine {
	out := l.Clone()
	out.Computed = e.computeLine(l)
	return out
}

func (e *Engine) computeLine(l model.CuttingLine) model.LineComputed {
	raw := l.Dims.Area()
	billed := math.Max(raw, positive(e.Pricing.MinSurfacePerFace))

	costs := model.LineCosts{
		Supply:    positive(e.supplyCost(l, raw)),
		Finish:    positive(e.finishCost(l, raw, billed)),
		Edges:     positive(e.edgeCost(l, raw)),
		Machining: positive(e.machiningCost(l.Machining)),
	}
	if l.Drilling {
		costs.Drilling = positive(e.Pricing.DrillingFee)
	}

	qty := 0
	if l.Quantity > 0 {
		qty = l.Quantity
	}
	tax := 1 + e.taxRate()
	unit := roundCents(costs.Total())
	line := roundCents(unit * float64(qty))

	return model.LineComputed{
		RawSurface:       raw,
		BilledSurface:    billed,
		Costs:            costs,
		UnitPriceExclTax: unit,
		UnitPriceInclTax: roundCents(unit * tax),
		LinePriceExclTax: line,
		LinePriceInclTax: roundCents(line * tax),
	}
}

// supplyCost prices the stock material of one piece. Area-priced panels are
// charged on the raw surface, profiles on their length.
func (e *Engine) supplyCost(l model.CuttingLine, raw float64) float64 {
	m := l.Material
	if m == nil {
		return 0
	}
	if m.Pricing == model.PricedByLength {
		return positive(l.Dims.Length) / 1000 * positive(m.PricePerMeter)
	}
	return raw * positive(m.PricePerArea)
}

// faceCount clamps the face count to the 0..2 range.
func faceCount(faces int) int {
	switch {
	case faces <= 0:
		return 0
	case faces >= 2:
		return 2
	default:
		return 1
	}
}

func (e *Engine) finishCost(l model.CuttingLine, raw, billed float64) float64 {
	faces := faceCount(l.Faces)
	if raw <= 0 || faces == 0 {
		return 0
	}
	switch f := l.FinishOrNone().(type) {
	case model.Lacquer:
		return billed * float64(faces) * positive(e.Pricing.LacquerPrices[f.GlossLevel])
	case model.Varnish:
		cost := billed * float64(faces) * positive(e.Pricing.VarnishPrices[f.GlossLevel])
		if f.HasTint() {
			cost += positive(e.Pricing.TintSurcharge)
		}
		return cost
	default:
		return 0
	}
}

func (e *Engine) edgeCost(l model.CuttingLine, raw float64) float64 {
	if raw <= 0 || !l.Edges.HasAny() {
		return 0
	}
	meters := l.Edges.LinearLength(l.Dims.Length, l.Dims.Width) / 1000
	return meters * positive(e.Pricing.EdgeRatePerMeter)
}

func (e *Engine) machiningCost(ops []model.MachiningOp) float64 {
	var total float64
	for _, op := range ops {
		if op.Quantity <= 0 {
			continue
		}
		tpl := e.Pricing.FindTemplate(op.TemplateID)
		if tpl == nil {
			continue
		}
		total += TemplatePrice(*tpl, op.Params) * float64(op.Quantity)
	}
	return total
}

// TemplatePrice evaluates a machining template's price function for one
// operation. Missing parameters count as zero.
func TemplatePrice(tpl model.MachiningTemplate, params map[string]float64) float64 {
	price := positive(tpl.BasePrice)
	if tpl.SizeParam != "" && len(tpl.Brackets) > 0 {
		price += positive(bracketPrice(tpl.Brackets, params[tpl.SizeParam]))
	}
	if tpl.RateParam != "" {
		price += positive(params[tpl.RateParam]) / 1000 * positive(tpl.Rate)
	}
	return price
}

// bracketPrice returns the price of the first bracket whose upper bound
// covers size. Sizes above every bracket use the largest one.
func bracketPrice(brackets []model.PriceBracket, size float64) float64 {
	sorted := make([]model.PriceBracket, len(brackets))
	copy(sorted, brackets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].UpTo < sorted[j].UpTo })
	for _, b := range sorted {
		if size <= b.UpTo {
			return b.Price
		}
	}
	return sorted[len(sorted)-1].Price
}
