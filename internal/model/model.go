package model

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// FinishKind identifies which finish variant a line carries.
type FinishKind int

const (
	FinishNone FinishKind = iota
	FinishLacquer
	FinishVarnish
)

func (k FinishKind) String() string {
	switch k {
	case FinishLacquer:
		return "Lacquer"
	case FinishVarnish:
		return "Varnish"
	default:
		return "None"
	}
}

// GlossLevel is a named finish property with its own per-area price.
type GlossLevel string

const (
	GlossUnset     GlossLevel = ""
	GlossMatte     GlossLevel = "matte"
	GlossSatin     GlossLevel = "satin"
	GlossSemiGloss GlossLevel = "semi-gloss"
	GlossHighGloss GlossLevel = "high-gloss"
)

// Finish is the surface treatment applied to a line. The concrete types are
// NoFinish, Lacquer and Varnish; no other type can satisfy the interface.
type Finish interface {
	Kind() FinishKind
	Gloss() GlossLevel
	isFinish()
}

// NoFinish leaves the panel raw.
type NoFinish struct{}

func (NoFinish) Kind() FinishKind  { return FinishNone }
func (NoFinish) Gloss() GlossLevel { return GlossUnset }
func (NoFinish) isFinish()         {}

// Lacquer is an opaque coloured finish. ColorRef is the palette code the
// customer picked (e.g. "RAL 9010").
type Lacquer struct {
	ColorRef   string     `json:"color_ref"`
	GlossLevel GlossLevel `json:"gloss"`
}

func (l Lacquer) Kind() FinishKind  { return FinishLacquer }
func (l Lacquer) Gloss() GlossLevel { return l.GlossLevel }
func (Lacquer) isFinish()           {}

// Varnish is a clear finish that can optionally be tinted.
type Varnish struct {
	GlossLevel GlossLevel `json:"gloss"`
	TintMode   bool       `json:"tint_mode"` // customer asked for a tint
	Tint       string     `json:"tint"`      // tint reference, required when TintMode is set
}

func (v Varnish) Kind() FinishKind  { return FinishVarnish }
func (v Varnish) Gloss() GlossLevel { return v.GlossLevel }
func (Varnish) isFinish()           {}

// HasTint reports whether the varnish is tinted with a named tint. A tint
// value without TintMode is ignored.
func (v Varnish) HasTint() bool {
	return v.TintMode && strings.TrimSpace(v.Tint) != ""
}

// DescribeFinish returns a short human-readable finish description,
// e.g. "Lacquer RAL 9010 satin" or "Varnish matte, tinted walnut".
func DescribeFinish(f Finish) string {
	switch v := f.(type) {
	case Lacquer:
		return strings.Join(strings.Fields("Lacquer "+v.ColorRef+" "+string(v.GlossLevel)), " ")
	case Varnish:
		out := strings.TrimSpace("Varnish " + string(v.GlossLevel))
		if v.TintMode {
			out += ", tinted " + v.Tint
		}
		return strings.TrimSpace(out)
	default:
		return "None"
	}
}

// Dimensions of a cut piece in mm. Height is optional (0 when unused).
type Dimensions struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height,omitempty"`
	Thickness float64 `json:"thickness"`
}

// Area returns length x width in square meters. It is 0 when either side is
// not a positive number or the product overflows.
func (d Dimensions) Area() float64 {
	if !(d.Length > 0) || !(d.Width > 0) {
		return 0
	}
	a := d.Length * d.Width / 1e6
	if math.IsInf(a, 0) {
		return 0
	}
	return a
}

// sideOrZero returns v for a finite positive side and 0 otherwise.
func sideOrZero(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MachiningOp is one configured machining operation on a line.
type MachiningOp struct {
	TemplateID string             `json:"template_id"`
	Params     map[string]float64 `json:"params"`
	Quantity   int                `json:"quantity"`
}

// LineCosts holds the cost components of a single piece, excl. tax.
type LineCosts struct {
	Supply    float64 `json:"supply"`
	Finish    float64 `json:"finish"`
	Edges     float64 `json:"edges"`
	Machining float64 `json:"machining"`
	Drilling  float64 `json:"drilling"`
}

// Service returns every cost component except the material supply.
func (c LineCosts) Service() float64 {
	return c.Finish + c.Edges + c.Machining + c.Drilling
}

// Total returns the sum of all components.
func (c LineCosts) Total() float64 {
	return c.Supply + c.Service()
}

// LineComputed holds the derived fields of a CuttingLine. They are
// overwritten on every recomputation and never edited directly.
type LineComputed struct {
	RawSurface       float64   `json:"raw_surface"`    // m² per face
	BilledSurface    float64   `json:"billed_surface"` // m² per face, after the minimum floor
	Costs            LineCosts `json:"costs"`          // per piece
	UnitPriceExclTax float64   `json:"unit_price_excl_tax"`
	UnitPriceInclTax float64   `json:"unit_price_incl_tax"`
	LinePriceExclTax float64   `json:"line_price_excl_tax"`
	LinePriceInclTax float64   `json:"line_price_incl_tax"`
}

// CuttingLine is one piece (or batch of identical pieces) cut from stock.
type CuttingLine struct {
	ID          string        `json:"id"`
	Reference   string        `json:"reference"`
	Material    *Material     `json:"material,omitempty"`
	Dims        Dimensions    `json:"dims"`
	Quantity    int           `json:"quantity"`
	Finish      Finish        `json:"-"`
	Faces       int           `json:"faces"`
	Edges       EdgeSet       `json:"edges"`
	Machining   []MachiningOp `json:"machining,omitempty"`
	Drilling    bool          `json:"drilling"`
	ServiceOnly bool          `json:"service_only"` // customer supplies the panel
	Computed    LineComputed  `json:"computed"`
}

// NewCuttingLine returns a blank line: one piece, one face, no finish.
func NewCuttingLine() CuttingLine {
	return CuttingLine{
		ID:       uuid.New().String()[:8],
		Quantity: 1,
		Finish:   NoFinish{},
		Faces:    1,
	}
}

// FinishOrNone returns the line finish, treating nil as NoFinish.
func (l CuttingLine) FinishOrNone() Finish {
	if l.Finish == nil {
		return NoFinish{}
	}
	return l.Finish
}

// Clone returns a copy that shares no slices or maps with l.
func (l CuttingLine) Clone() CuttingLine {
	cp := l
	if l.Material != nil {
		m := *l.Material
		cp.Material = &m
	}
	if l.Machining != nil {
		cp.Machining = make([]MachiningOp, len(l.Machining))
		for i, op := range l.Machining {
			cp.Machining[i] = op
			if op.Params != nil {
				cp.Machining[i].Params = make(map[string]float64, len(op.Params))
				for k, v := range op.Params {
					cp.Machining[i].Params[k] = v
				}
			}
		}
	}
	return cp
}

// ErrorCode classifies a validation error.
type ErrorCode string

const (
	ErrMissingReference ErrorCode = "missing-reference"
	ErrMissingMaterial  ErrorCode = "missing-material"
	ErrMissingColor     ErrorCode = "missing-color"
	ErrMissingGloss     ErrorCode = "missing-gloss"
	ErrMissingTint      ErrorCode = "missing-tint"
	ErrBelowMinimum     ErrorCode = "below-minimum"
)

// ValidationError is one reason an order cannot be submitted.
// LineIndex is -1 for order-level errors.
type ValidationError struct {
	Code      ErrorCode `json:"code"`
	LineIndex int       `json:"line_index"`
	LineID    string    `json:"line_id,omitempty"`
	Message   string    `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// OrderTotals holds the aggregated prices of an order.
type OrderTotals struct {
	SupplySubtotal  float64 `json:"supply_subtotal"`
	ServiceSubtotal float64 `json:"service_subtotal"`
	TotalExclTax    float64 `json:"total_excl_tax"`
	Tax             float64 `json:"tax"`
	TotalInclTax    float64 `json:"total_incl_tax"`
	PieceCount      int     `json:"piece_count"`
	EdgeMeters      float64 `json:"edge_meters"`
}

// Order is a customer's set of cutting lines.
type Order struct {
	Reference string            `json:"reference"`
	Lines     []CuttingLine     `json:"lines"`
	Totals    OrderTotals       `json:"totals"`
	Valid     bool              `json:"valid"`
	Errors    []ValidationError `json:"errors"`
}

// NewOrder returns an order holding a single blank line.
func NewOrder(reference string) Order {
	return Order{
		Reference: reference,
		Lines:     []CuttingLine{NewCuttingLine()},
	}
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	cp := o
	cp.Lines = make([]CuttingLine, len(o.Lines))
	for i, l := range o.Lines {
		cp.Lines[i] = l.Clone()
	}
	if o.Errors != nil {
		cp.Errors = make([]ValidationError, len(o.Errors))
		copy(cp.Errors, o.Errors)
	}
	return cp
}

// LineIndex returns the position of the line with the given ID, or -1.
func (o Order) LineIndex(id string) int {
	for i, l := range o.Lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// WithLine returns a copy of the order with line appended.
func (o Order) WithLine(line CuttingLine) Order {
	cp := o.Clone()
	cp.Lines = append(cp.Lines, line.Clone())
	return cp
}

// WithLineEdited returns a copy of the order where edit has been applied to
// the line with the given ID. The second result is false if no line matched.
func (o Order) WithLineEdited(id string, edit func(*CuttingLine)) (Order, bool) {
	idx := o.LineIndex(id)
	if idx < 0 {
		return o, false
	}
	cp := o.Clone()
	edit(&cp.Lines[idx])
	return cp, true
}

// WithoutLine returns a copy of the order without the line with the given
// ID. Removing the last remaining line leaves one blank line in its place.
func (o Order) WithoutLine(id string) (Order, bool) {
	idx := o.LineIndex(id)
	if idx < 0 {
		return o, false
	}
	cp := o.Clone()
	cp.Lines = append(cp.Lines[:idx], cp.Lines[idx+1:]...)
	if len(cp.Lines) == 0 {
		cp.Lines = []CuttingLine{NewCuttingLine()}
	}
	return cp, true
}
