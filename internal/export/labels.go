package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	OrderRef  string  `json:"order"`
	LineID    string  `json:"line_id"`
	LineIndex int     `json:"line"`
	Reference string  `json:"reference"`
	Piece     int     `json:"piece"`
	Of        int     `json:"of"`
	Length    float64 `json:"length_mm"`
	Width     float64 `json:"width_mm"`
	Thickness float64 `json:"thickness_mm"`
	Material  string  `json:"material,omitempty"`
	Finish    string  `json:"finish"`
	Edges     string  `json:"edges"`
}

// Label layout for Avery 5160-compatible sheets: 3 columns x 10 rows on US
// Letter, each label about 66.7mm x 25.4mm.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels writes one label per physical piece of the order. A line with
// quantity 3 yields labels "1/3", "2/3" and "3/3".
func ExportLabels(path string, order model.Order) error {
	labels := CollectLabelInfos(order)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Reference, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// CollectLabelInfos expands the order into one LabelInfo per piece. Lines
// without a positive surface are skipped.
func CollectLabelInfos(order model.Order) []LabelInfo {
	var labels []LabelInfo
	for i, l := range order.Lines {
		if l.Dims.Area() <= 0 || l.Quantity < 1 {
			continue
		}
		material := ""
		if l.Material != nil {
			material = l.Material.Code
		}
		for n := 1; n <= l.Quantity; n++ {
			labels = append(labels, LabelInfo{
				OrderRef:  order.Reference,
				LineID:    l.ID,
				LineIndex: i + 1,
				Reference: l.Reference,
				Piece:     n,
				Of:        l.Quantity,
				Length:    l.Dims.Length,
				Width:     l.Dims.Width,
				Thickness: l.Dims.Thickness,
				Material:  material,
				Finish:    model.DescribeFinish(l.FinishOrNone()),
				Edges:     l.Edges.String(),
			})
		}
	}
	return labels
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.LineID, info.Piece)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	title := info.Reference
	if title == "" {
		title = fmt.Sprintf("Line %d", info.LineIndex)
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fitText(pdf, title, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.1f mm", info.Length, info.Width, info.Thickness)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fitText(pdf, info.Finish+" | edges "+info.Edges, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Piece %d/%d", info.Piece, info.Of), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
