package importer

import (
	"fmt"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// ToLines turns imported records into cutting lines, attaching catalog
// materials by code. Records without a material hint get fallbackCode (if
// any). Unknown codes leave the line without material and add a warning;
// the validator will flag those lines.
func ToLines(records []Record, catalog model.Catalog, fallbackCode string) ([]model.CuttingLine, []string) {
	var warnings []string
	lines := make([]model.CuttingLine, 0, len(records))

	for i, r := range records {
		l := model.NewCuttingLine()
		l.Reference = r.Reference
		l.Dims = r.Dims
		l.Quantity = r.Quantity
		l.Edges = r.Edges

		code := r.MaterialHint
		if code == "" {
			code = fallbackCode
		}
		if code != "" {
			if m := catalog.FindMaterialByCode(code); m != nil {
				mat := *m
				l.Material = &mat
				if l.Dims.Thickness == 0 {
					l.Dims.Thickness = mat.Thickness
				}
			} else {
				warnings = append(warnings, fmt.Sprintf("Line %d (%s): Unknown material '%s'", i+1, r.Reference, code))
			}
		}

		lines = append(lines, l)
	}
	return lines, warnings
}
