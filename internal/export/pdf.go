// Package export renders priced orders to PDF documents: a customer quote
// and a sheet of QR-coded piece labels.
package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 10.0
	rowHeight    = 6.0
)

// quoteColumns are the line table columns. Widths add up to the printable width.
var quoteColumns = []struct {
	title string
	width float64
	align string
}{
	{"#", 8, "C"},
	{"Reference", 30, "L"},
	{"Material", 22, "L"},
	{"L x W x T (mm)", 32, "C"},
	{"Qty", 10, "C"},
	{"Finish", 34, "L"},
	{"Edges", 14, "C"},
	{"Unit excl.", 18, "R"},
	{"Line excl.", 18, "R"},
}

// ExportQuote writes a quote for the order: a header, one table row per
// cutting line, the totals block and any validation errors. The order is
// expected to be recomputed already.
func ExportQuote(path string, order model.Order, cfg model.PricingConfig) error {
	if len(order.Lines) == 0 {
		return fmt.Errorf("no lines to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	y := renderQuoteHeader(pdf, order)
	y = renderLineTable(pdf, order, cfg.Currency, y)
	y = renderTotals(pdf, order.Totals, cfg, y)
	renderValidation(pdf, order, y)

	return pdf.OutputFileAndClose(path)
}

func renderQuoteHeader(pdf *fpdf.Fpdf, order model.Order) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	title := "Quote"
	if order.Reference != "" {
		title = "Quote " + order.Reference
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(100, 5, "Date: "+time.Now().Format("2006-01-02"), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	sep := marginTop + headerHeight + 7
	pdf.Line(marginLeft, sep, pageWidth-marginRight, sep)
	return sep + 4
}

func renderTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for _, c := range quoteColumns {
		pdf.SetXY(x, y)
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, "C", true, 0, "")
		x += c.width
	}
	return y + rowHeight
}

func renderLineTable(pdf *fpdf.Fpdf, order model.Order, currency string, y float64) float64 {
	y = renderTableHeader(pdf, y)
	pdf.SetFont("Helvetica", "", 8)

	for i, row := range quoteRows(order, currency) {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = renderTableHeader(pdf, marginTop)
			pdf.SetFont("Helvetica", "", 8)
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range row {
			c := quoteColumns[j]
			pdf.SetXY(x, y)
			pdf.CellFormat(c.width, rowHeight, fitText(pdf, cell, c.width-1), "1", 0, c.align, true, 0, "")
			x += c.width
		}
		y += rowHeight
	}
	return y
}

// quoteRows formats one table row per line, in quoteColumns order.
func quoteRows(order model.Order, currency string) [][]string {
	rows := make([][]string, 0, len(order.Lines))
	for i, l := range order.Lines {
		material := "-"
		switch {
		case l.Material != nil:
			material = l.Material.Code
		case l.ServiceOnly:
			material = "Customer"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			l.Reference,
			material,
			fmt.Sprintf("%.0f x %.0f x %.1f", l.Dims.Length, l.Dims.Width, l.Dims.Thickness),
			fmt.Sprintf("%d", l.Quantity),
			model.DescribeFinish(l.FinishOrNone()),
			l.Edges.String(),
			formatMoney(l.Computed.UnitPriceExclTax, currency),
			formatMoney(l.Computed.LinePriceExclTax, currency),
		})
	}
	return rows
}

func renderTotals(pdf *fpdf.Fpdf, t model.OrderTotals, cfg model.PricingConfig, y float64) float64 {
	items := []struct {
		label string
		value string
	}{
		{"Pieces", fmt.Sprintf("%d", t.PieceCount)},
		{"Edge banding", fmt.Sprintf("%.2f m", t.EdgeMeters)},
		{"Supply", formatMoney(t.SupplySubtotal, cfg.Currency)},
		{"Services", formatMoney(t.ServiceSubtotal, cfg.Currency)},
		{"Total excl. tax", formatMoney(t.TotalExclTax, cfg.Currency)},
		{fmt.Sprintf("Tax (%.1f%%)", cfg.TaxRate*100), formatMoney(t.Tax, cfg.Currency)},
		{"Total incl. tax", formatMoney(t.TotalInclTax, cfg.Currency)},
	}

	needed := 8 + float64(len(items))*6
	if y+needed > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}

	y += 8
	labelX := pageWidth - marginRight - 90
	for i, item := range items {
		style := ""
		if i == len(items)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetXY(labelX, y)
		pdf.CellFormat(55, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, item.value, "", 0, "R", false, 0, "")
		y += 6
	}
	return y
}

func renderValidation(pdf *fpdf.Fpdf, order model.Order, y float64) {
	if len(order.Errors) == 0 {
		return
	}
	y += 8
	if y+12 > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(150, 7, "This order cannot be submitted yet", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, e := range order.Errors {
		if y+5 > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(180, 5, "- "+errorText(e), "", 0, "L", false, 0, "")
		y += 5
	}
}

func errorText(e model.ValidationError) string {
	if e.LineIndex < 0 {
		return e.Message
	}
	return fmt.Sprintf("Line %d: %s", e.LineIndex+1, e.Message)
}

func formatMoney(v float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, currency)
}

// fitText truncates s with "..." until it fits in width at the current font.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
