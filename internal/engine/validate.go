package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// ValidationResult tells whether an order can be submitted and why not.
type ValidationResult struct {
	Valid  bool
	Errors []model.ValidationError
}

// Validate checks an order for submission. Rules run in a fixed order and
// each rule scans lines in order, so the same order always yields the same
// error list:
//
//  1. every line has a reference
//  2. every line has a material (service-only lines may be exempt)
//  3. lacquer has a color; tinted varnish has a tint
//  4. a finish has a gloss level listed in its price table
//  5. the order reaches the minimum value, or every line reaches the
//     minimum surface per face
func (e *Engine) Validate(o model.Order) ValidationResult {
	priced := make([]model.CuttingLine, len(o.Lines))
	for i, l := range o.Lines {
		priced[i] = l
		priced[i].Computed = e.computeLine(l)
	}
	return e.validate(priced, e.totals(priced))
}

func (e *Engine) validate(lines []model.CuttingLine, totals model.OrderTotals) ValidationResult {
	var errs []model.ValidationError
	// Messages carry no line number; LineIndex locates them.
	add := func(code model.ErrorCode, idx int, l model.CuttingLine, format string, args ...any) {
		errs = append(errs, model.ValidationError{
			Code:      code,
			LineIndex: idx,
			LineID:    l.ID,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	for i, l := range lines {
		if strings.TrimSpace(l.Reference) == "" {
			add(model.ErrMissingReference, i, l, "reference is required")
		}
	}

	for i, l := range lines {
		if l.Material != nil {
			continue
		}
		if l.ServiceOnly && e.Pricing.AllowServiceOnlyLines {
			continue
		}
		add(model.ErrMissingMaterial, i, l, "no material selected")
	}

	for i, l := range lines {
		switch f := l.FinishOrNone().(type) {
		case model.Lacquer:
			if strings.TrimSpace(f.ColorRef) == "" {
				add(model.ErrMissingColor, i, l, "lacquer needs a color reference")
			}
		case model.Varnish:
			if f.TintMode && !f.HasTint() {
				add(model.ErrMissingTint, i, l, "tinted varnish needs a tint")
			}
		}
	}

	for i, l := range lines {
		f := l.FinishOrNone()
		kind := strings.ToLower(f.Kind().String())
		switch {
		case f.Kind() == model.FinishNone:
		case f.Gloss() == model.GlossUnset:
			add(model.ErrMissingGloss, i, l, "%s finish needs a gloss level", kind)
		case !e.glossPriced(f):
			add(model.ErrMissingGloss, i, l, "%s gloss %q is not in the price list", kind, f.Gloss())
		}
	}

	if !e.meetsMinimum(lines, totals) {
		errs = append(errs, model.ValidationError{
			Code:      model.ErrBelowMinimum,
			LineIndex: -1,
			Message: fmt.Sprintf("Order total %.2f %s is below the minimum of %.2f %s and some pieces are under %.2f m² per face",
				totals.TotalExclTax, e.Pricing.Currency, e.Pricing.MinOrderValue, e.Pricing.Currency, e.Pricing.MinSurfacePerFace),
		})
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// glossPriced reports whether the price table of f's kind lists its gloss.
func (e *Engine) glossPriced(f model.Finish) bool {
	table := e.Pricing.LacquerPrices
	if f.Kind() == model.FinishVarnish {
		table = e.Pricing.VarnishPrices
	}
	_, ok := table[f.Gloss()]
	return ok
}

// meetsMinimum applies the order-level rule: the total excl. tax reaches the
// minimum order value, or every line's raw surface times its face count
// reaches the minimum surface per face.
func (e *Engine) meetsMinimum(lines []model.CuttingLine, totals model.OrderTotals) bool {
	if totals.TotalExclTax >= e.Pricing.MinOrderValue {
		return true
	}
	for _, l := range lines {
		if l.Dims.Area()*float64(faceCount(l.Faces)) < e.Pricing.MinSurfacePerFace {
			return false
		}
	}
	return true
}
