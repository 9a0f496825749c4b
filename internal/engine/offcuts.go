package engine

import "github.com/piwi3910/SlabQuote/internal/model"

// EstimateOffcuts returns one offcut per assigned layer that is longer or
// wider than the composed panel, in layer order. Layers are trimmed with
// two guillotine cuts: first across the length, leaving a strip of
// (length - final length) x full width, then across the width, leaving
// final length x (width - final width). A layer that already matches the
// final size yields nothing. Incomplete stacks yield nothing.
func (e *Engine) EstimateOffcuts(s model.LayerStack) []model.Offcut {
	if !s.Complete() {
		return nil
	}
	c := e.Compose(s)

	var offcuts []model.Offcut
	for i, l := range s.Layers {
		length, width := positive(l.Material.Length), positive(l.Material.Width)
		if length <= c.FinalLength && width <= c.FinalWidth {
			continue
		}

		var strips []model.Strip
		if length > c.FinalLength {
			strips = append(strips, model.Strip{Length: length - c.FinalLength, Width: width})
		}
		if width > c.FinalWidth && c.FinalLength > 0 {
			strips = append(strips, model.Strip{Length: c.FinalLength, Width: width - c.FinalWidth})
		}
		o := model.NewOffcut(l, i, strips)
		o.Value = o.Area * positive(l.Material.PricePerArea)
		offcuts = append(offcuts, o)
	}
	return offcuts
}

// OffcutValue returns the rounded total value of a stack's offcuts.
func (e *Engine) OffcutValue(s model.LayerStack) float64 {
	return roundCents(model.TotalOffcutValue(e.EstimateOffcuts(s)))
}
