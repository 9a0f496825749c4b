package model

// PriceBracket is one size tier of a machining price function. The bracket
// applies to sizes up to and including UpTo.
type PriceBracket struct {
	UpTo  float64 `json:"up_to" mapstructure:"up_to" toml:"up_to"`
	Price float64 `json:"price" mapstructure:"price" toml:"price"`
}

// MachiningTemplate describes how one kind of machining operation is priced:
//
//	price = BasePrice + bracket(Params[SizeParam]) + Rate * Params[RateParam]/1000
//
// SizeParam and RateParam are optional. RateParam values are in mm and Rate
// is per meter.
type MachiningTemplate struct {
	ID        string         `json:"id" mapstructure:"id" toml:"id"`
	Name      string         `json:"name" mapstructure:"name" toml:"name"`
	BasePrice float64        `json:"base_price" mapstructure:"base_price" toml:"base_price"`
	SizeParam string         `json:"size_param" mapstructure:"size_param" toml:"size_param"`
	Brackets  []PriceBracket `json:"brackets" mapstructure:"brackets" toml:"brackets"`
	RateParam string         `json:"rate_param" mapstructure:"rate_param" toml:"rate_param"`
	Rate      float64        `json:"rate" mapstructure:"rate" toml:"rate"`
}

// PricingConfig holds every externally configurable pricing constant.
// One value is built per session and handed to the engine.
type PricingConfig struct {
	Currency string `json:"currency" mapstructure:"currency" toml:"currency"`

	// Billing floor per face in m², and the order value (excl. tax) under
	// which small orders are refused.
	MinSurfacePerFace float64 `json:"min_surface_per_face" mapstructure:"min_surface_per_face" toml:"min_surface_per_face"`
	MinOrderValue     float64 `json:"min_order_value" mapstructure:"min_order_value" toml:"min_order_value"`
	TaxRate           float64 `json:"tax_rate" mapstructure:"tax_rate" toml:"tax_rate"` // 0.20 = 20%

	// Finish prices per m² per face, by gloss level
	LacquerPrices map[GlossLevel]float64 `json:"lacquer_prices" mapstructure:"lacquer_prices" toml:"lacquer_prices"`
	VarnishPrices map[GlossLevel]float64 `json:"varnish_prices" mapstructure:"varnish_prices" toml:"varnish_prices"`
	TintSurcharge float64                `json:"tint_surcharge" mapstructure:"tint_surcharge" toml:"tint_surcharge"`

	EdgeRatePerMeter float64 `json:"edge_rate_per_m" mapstructure:"edge_rate_per_m" toml:"edge_rate_per_m"`
	EdgeWastePercent float64 `json:"edge_waste_percent" mapstructure:"edge_waste_percent" toml:"edge_waste_percent"`
	DrillingFee      float64 `json:"drilling_fee" mapstructure:"drilling_fee" toml:"drilling_fee"`

	MachiningTemplates []MachiningTemplate `json:"machining_templates" mapstructure:"machining_templates" toml:"machining_templates"`

	// Layer composition. GluingRatePerJoint is per m² of final panel.
	MinLayers          int     `json:"min_layers" mapstructure:"min_layers" toml:"min_layers"`
	MaxLayers          int     `json:"max_layers" mapstructure:"max_layers" toml:"max_layers"`
	GluingRatePerJoint float64 `json:"gluing_rate_per_joint" mapstructure:"gluing_rate_per_joint" toml:"gluing_rate_per_joint"`

	// Lines flagged service-only may skip the material check
	AllowServiceOnlyLines bool `json:"allow_service_only_lines" mapstructure:"allow_service_only_lines" toml:"allow_service_only_lines"`
}

// DefaultPricing returns the marketplace's standard price list.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		Currency:          "EUR",
		MinSurfacePerFace: 0.5,
		MinOrderValue:     150.0,
		TaxRate:           0.20,
		LacquerPrices: map[GlossLevel]float64{
			GlossMatte:     38.0,
			GlossSatin:     42.0,
			GlossSemiGloss: 48.0,
			GlossHighGloss: 95.0,
		},
		VarnishPrices: map[GlossLevel]float64{
			GlossMatte:     28.0,
			GlossSatin:     30.0,
			GlossSemiGloss: 34.0,
			GlossHighGloss: 70.0,
		},
		TintSurcharge:    25.0,
		EdgeRatePerMeter: 6.5,
		DrillingFee:      8.0,
		MachiningTemplates: []MachiningTemplate{
			{
				ID:        "hinge-bore",
				Name:      "Hinge boring",
				SizeParam: "diameter",
				Brackets: []PriceBracket{
					{UpTo: 26, Price: 2.00},
					{UpTo: 35, Price: 2.50},
					{UpTo: 40, Price: 3.20},
				},
			},
			{
				ID:        "groove",
				Name:      "Groove",
				BasePrice: 1.50,
				SizeParam: "depth",
				Brackets: []PriceBracket{
					{UpTo: 5, Price: 0},
					{UpTo: 10, Price: 1.00},
					{UpTo: 20, Price: 2.50},
				},
				RateParam: "length",
				Rate:      4.00,
			},
			{
				ID:        "cutout",
				Name:      "Sink / hob cutout",
				SizeParam: "length",
				Brackets: []PriceBracket{
					{UpTo: 300, Price: 18.0},
					{UpTo: 600, Price: 26.0},
					{UpTo: 1000, Price: 38.0},
				},
			},
			{
				ID:        "radius",
				Name:      "Corner radius",
				BasePrice: 3.50,
			},
			{
				ID:        "chamfer",
				Name:      "Chamfer",
				RateParam: "length",
				Rate:      3.00,
			},
		},
		MinLayers:             DefaultMinLayers,
		MaxLayers:             DefaultMaxLayers,
		GluingRatePerJoint:    12.0,
		AllowServiceOnlyLines: true,
		EdgeWastePercent:      10,
	}
}

// FindTemplate returns a pointer to the machining template with the given ID, or nil.
func (c *PricingConfig) FindTemplate(id string) *MachiningTemplate {
	for i := range c.MachiningTemplates {
		if c.MachiningTemplates[i].ID == id {
			return &c.MachiningTemplates[i]
		}
	}
	return nil
}

// LayerBounds returns the configured stack size bounds, falling back to
// [2,6] when the configured values are unusable.
func (c PricingConfig) LayerBounds() (min, max int) {
	min, max = c.MinLayers, c.MaxLayers
	if min < DefaultMinLayers {
		min = DefaultMinLayers
	}
	if max < min {
		max = DefaultMaxLayers
		if max < min {
			max = min
		}
	}
	return min, max
}
