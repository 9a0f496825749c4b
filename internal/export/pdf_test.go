package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SlabQuote/internal/engine"
	"github.com/piwi3910/SlabQuote/internal/model"
)

// buildTestOrder returns a priced two-line order with one validation error.
func buildTestOrder() model.Order {
	mdf := model.NewPanelMaterial("MDF18", "MDF 18mm", 2800, 2070, 18, 14.5)

	door := model.NewCuttingLine()
	door.Reference = "Door"
	door.Material = &mdf
	door.Dims = model.Dimensions{Length: 2000, Width: 600, Thickness: 18}
	door.Quantity = 3
	door.Finish = model.Lacquer{ColorRef: "RAL 9010", GlossLevel: model.GlossSatin}
	door.Edges = model.NewEdgeSet(model.EdgeA, model.EdgeC)
	door.Computed = model.LineComputed{UnitPriceExclTax: 84.6, LinePriceExclTax: 253.8}

	shelf := model.NewCuttingLine()
	shelf.Reference = "Shelf"
	shelf.ServiceOnly = true
	shelf.Dims = model.Dimensions{Length: 800, Width: 300, Thickness: 19}
	shelf.Quantity = 2
	shelf.Finish = model.Varnish{GlossLevel: model.GlossMatte, TintMode: true, Tint: "walnut"}
	shelf.Computed = model.LineComputed{UnitPriceExclTax: 15, LinePriceExclTax: 30}

	return model.Order{
		Reference: "Q-2041",
		Lines:     []model.CuttingLine{door, shelf},
		Totals: model.OrderTotals{
			SupplySubtotal:  87,
			ServiceSubtotal: 196.8,
			TotalExclTax:    283.8,
			Tax:             56.76,
			TotalInclTax:    340.56,
			PieceCount:      5,
			EdgeMeters:      12,
		},
		Errors: []model.ValidationError{
			{Code: model.ErrMissingReference, LineIndex: 1, Message: "reference is required"},
			{Code: model.ErrBelowMinimum, LineIndex: -1, Message: "order is below the minimum value"},
		},
	}
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportQuote_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.pdf")

	require.NoError(t, ExportQuote(path, buildTestOrder(), model.DefaultPricing()))
	assertPDF(t, path)
}

func TestExportQuote_EmptyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportQuote(path, model.Order{Reference: "X"}, model.DefaultPricing())
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written for an empty order")
}

func TestExportQuote_ManyLinesSpansPages(t *testing.T) {
	order := buildTestOrder()
	base := order.Lines[0]
	for i := 0; i < 80; i++ {
		l := base.Clone()
		l.ID = fmt.Sprintf("line%03d", i)
		l.Reference = fmt.Sprintf("Part %d with a rather long reference label", i)
		order.Lines = append(order.Lines, l)
	}
	path := filepath.Join(t.TempDir(), "long.pdf")

	require.NoError(t, ExportQuote(path, order, model.DefaultPricing()))
	assertPDF(t, path)
}

func TestQuoteRows(t *testing.T) {
	rows := quoteRows(buildTestOrder(), "EUR")

	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"1", "Door", "MDF18", "2000 x 600 x 18.0", "3",
		"Lacquer RAL 9010 satin", "A+C", "84.60 EUR", "253.80 EUR",
	}, rows[0])
	assert.Equal(t, "Customer", rows[1][2])
	assert.Equal(t, "Varnish matte, tinted walnut", rows[1][5])
	assert.Equal(t, "-", rows[1][6])
	assert.Len(t, rows[0], len(quoteColumns))
}

func TestErrorText(t *testing.T) {
	order := buildTestOrder()
	assert.Equal(t, "Line 2: reference is required", errorText(order.Errors[0]))
	assert.Equal(t, "order is below the minimum value", errorText(order.Errors[1]))
}

func TestErrorText_RecomputedOrderHasSingleLinePrefix(t *testing.T) {
	order := engine.New(model.DefaultPricing()).Recompute(model.Order{})
	require.NotEmpty(t, order.Errors)

	assert.Equal(t, "Line 1: reference is required", errorText(order.Errors[0]))
	for _, e := range order.Errors {
		assert.NotContains(t, errorText(e), "Line 1: Line 1")
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "12.50 EUR", formatMoney(12.5, "EUR"))
	assert.Equal(t, "0.00", formatMoney(0, ""))
}
