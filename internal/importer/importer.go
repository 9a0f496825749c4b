// Package importer reads cut lists from CSV, Excel and DXF files into raw
// line records. Column roles come from a header row when one is present
// (any case, common aliases accepted) and from position otherwise. Imports
// never fail hard: problems are reported per row in ImportResult.
package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// Record is one cut list row before catalog resolution.
type Record struct {
	Reference    string
	Dims         model.Dimensions
	Quantity     int
	Edges        model.EdgeSet
	MaterialHint string // catalog code as written in the source file
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Records  []Record
	Errors   []string
	Warnings []string
}

func (r *ImportResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ImportResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ColumnMapping holds the column index of each field, -1 when absent.
type ColumnMapping struct {
	Reference int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Edges     int
	Material  int
}

// positionalColumns is used for files without a header row.
var positionalColumns = ColumnMapping{
	Reference: 0,
	Length:    1,
	Width:     2,
	Quantity:  3,
	Edges:     4,
	Material:  5,
	Thickness: 6,
}

// headerNames maps a lowercased header cell to the field it names.
var headerNames = func() map[string]func(*ColumnMapping) *int {
	fields := []struct {
		slot    func(*ColumnMapping) *int
		aliases string
	}{
		{func(m *ColumnMapping) *int { return &m.Reference }, "reference|ref|label|name|part|part name|description|desc|piece|item"},
		{func(m *ColumnMapping) *int { return &m.Length }, "length|len|l|x"},
		{func(m *ColumnMapping) *int { return &m.Width }, "width|w|y"},
		{func(m *ColumnMapping) *int { return &m.Thickness }, "thickness|thk|th|t|depth"},
		{func(m *ColumnMapping) *int { return &m.Quantity }, "quantity|qty|count|num|amount|pcs|pieces"},
		{func(m *ColumnMapping) *int { return &m.Edges }, "edges|edge|edging|banding|edge banding"},
		{func(m *ColumnMapping) *int { return &m.Material }, "material|mat|board|panel|code|material code"},
	}
	names := make(map[string]func(*ColumnMapping) *int)
	for _, f := range fields {
		for _, alias := range strings.Split(f.aliases, "|") {
			names[alias] = f.slot
		}
	}
	return names
}()

// DetectColumns reads row as a header. If no cell names a known field, it
// returns the positional mapping and false. The first column naming a field
// wins.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}
	found := false
	for i, cell := range row {
		slot, ok := headerNames[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		found = true
		if p := slot(&m); *p == -1 {
			*p = i
		}
	}
	if !found {
		return positionalColumns, false
	}
	return m, true
}

// ImportFile picks the importer from the file extension. Anything that is
// not Excel or DXF is read as delimited text.
func ImportFile(path string) ImportResult {
	var result ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		result = ImportExcel(path)
	case ".dxf":
		result = ImportDXF(path)
	default:
		result = ImportCSV(path)
	}
	log.WithFields(log.Fields{
		"path":     path,
		"records":  len(result.Records),
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Info("cut list imported")
	return result
}

// importRows turns tabular data into records. rowNoun labels messages,
// "Line" for text files and "Row" for spreadsheets, numbered from 1.
func importRows(rows [][]string, rowNoun string, result ImportResult) ImportResult {
	if len(rows) == 0 {
		result.errorf("File is empty")
		return result
	}

	cols, header := DetectColumns(rows[0])
	if !header && len(rows[0]) >= 3 {
		// Unknown header words: the length column of a data row is numeric.
		_, err := parseNumber(strings.TrimSpace(rows[0][1]))
		header = err != nil
	}
	first := 0
	if header {
		first = 1
		result.warnf("Detected header row, skipping")
	}

	var missing []string
	if cols.Length < 0 {
		missing = append(missing, "Length")
	}
	if cols.Width < 0 {
		missing = append(missing, "Width")
	}
	if len(missing) > 0 {
		result.errorf("Required columns not found in header: %s", strings.Join(missing, ", "))
		return result
	}

	for i := first; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		p := rowParser{row: rows[i], cols: cols, label: fmt.Sprintf("%s %d", rowNoun, i+1)}
		rec, err := p.parse(len(result.Records) + 1)
		if err != "" {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Warnings = append(result.Warnings, p.warnings...)
		result.Records = append(result.Records, rec)
	}
	return result
}

// rowParser reads one data row. Fatal problems come back from parse as a
// message; recoverable ones collect in warnings.
type rowParser struct {
	row      []string
	cols     ColumnMapping
	label    string
	warnings []string
}

func (p *rowParser) cell(idx int) string {
	if idx < 0 || idx >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[idx])
}

func (p *rowParser) fail(format string, args ...any) string {
	return p.label + ": " + fmt.Sprintf(format, args...)
}

func (p *rowParser) warn(format string, args ...any) {
	p.warnings = append(p.warnings, p.label+": "+fmt.Sprintf(format, args...))
}

// measure reads a required dimension column.
func (p *rowParser) measure(idx int, name string) (float64, string) {
	s := p.cell(idx)
	if s == "" {
		return 0, p.fail("Missing %s value", name)
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, p.fail("Invalid %s '%s'", name, s)
	}
	return v, ""
}

func (p *rowParser) parse(n int) (Record, string) {
	length, msg := p.measure(p.cols.Length, "length")
	if msg != "" {
		return Record{}, msg
	}
	width, msg := p.measure(p.cols.Width, "width")
	if msg != "" {
		return Record{}, msg
	}

	qty := 1
	if s := p.cell(p.cols.Quantity); s != "" {
		var err error
		if qty, err = strconv.Atoi(s); err != nil {
			return Record{}, p.fail("Invalid quantity '%s'", s)
		}
	}
	if length <= 0 || width <= 0 || qty <= 0 {
		return Record{}, p.fail("Length, width, and quantity must be positive")
	}
	if math.IsInf(length*width, 0) {
		return Record{}, p.fail("Size %g x %g is out of range", length, width)
	}

	rec := Record{
		Reference:    p.cell(p.cols.Reference),
		Dims:         model.Dimensions{Length: length, Width: width},
		Quantity:     qty,
		MaterialHint: p.cell(p.cols.Material),
	}
	if rec.Reference == "" {
		rec.Reference = fmt.Sprintf("Line %d", n)
	}

	if s := p.cell(p.cols.Thickness); s != "" {
		if thk, err := parseNumber(s); err == nil && thk >= 0 {
			rec.Dims.Thickness = thk
		} else {
			p.warn("Invalid thickness '%s', ignored", s)
		}
	}

	if s := p.cell(p.cols.Edges); s != "" {
		edges, clean := parseEdges(s)
		rec.Edges = edges
		if !clean {
			p.warn("Unknown characters in edges '%s', read as %s", s, edges)
		}
	}
	return rec, ""
}

// parseEdges reads an edge column. It accepts letters A to D with any of
// the separators "+,;/ ", plus "all" and "none". The boolean is false when
// unknown characters were skipped.
func parseEdges(s string) (model.EdgeSet, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "-", "none", "no", "0":
		return 0, true
	case "all", "4":
		return model.NewEdgeSet(model.AllEdges...), true
	}
	clean := !strings.ContainsFunc(v, func(r rune) bool {
		return !strings.ContainsRune("abcd+,;/ ", r)
	})
	return model.ParseEdgeSet(v), clean
}

// parseNumber accepts both "12.5" and the decimal comma form "12,5".
// NaN and infinities are rejected.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
