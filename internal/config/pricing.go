// Package config loads and saves the pricing configuration and the material
// catalog. Both live under ~/.slabquote/ unless overridden.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/piwi3910/SlabQuote/internal/model"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. SLABQUOTE_TAX_RATE.
	EnvPrefix = "SLABQUOTE"

	envConfigPath = "SLABQUOTE_CONFIG"
)

// DefaultConfigDir returns ~/.slabquote, or ./.slabquote if the home
// directory cannot be resolved.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".slabquote")
}

// DefaultPricingPath returns $SLABQUOTE_CONFIG when set, otherwise
// ~/.slabquote/pricing.toml.
func DefaultPricingPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), "pricing.toml")
}

// LoadDotEnv loads environment variables from .env files (default ./.env).
// A missing file is not an error.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.WithError(err).Debug("no .env loaded")
		return
	}
	log.Debug(".env loaded")
}

// LoadPricing reads a TOML pricing file. Keys missing from the file keep
// their default value, and SLABQUOTE_* environment variables override both.
// If the file does not exist, the defaults are returned with no error.
func LoadPricing(path string) (model.PricingConfig, error) {
	v := viper.New()
	setPricingDefaults(v, model.DefaultPricing())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return model.PricingConfig{}, fmt.Errorf("failed to read pricing config %s: %w", path, err)
		}
		log.WithField("path", path).Debug("pricing config not found, using defaults")
	}

	var cfg model.PricingConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.PricingConfig{}, fmt.Errorf("failed to decode pricing config %s: %w", path, err)
	}
	if !v.IsSet("machining_templates") {
		cfg.MachiningTemplates = model.DefaultPricing().MachiningTemplates
	}

	for _, w := range CheckPricing(cfg) {
		log.WithField("path", path).Warn(w)
	}
	log.WithFields(log.Fields{
		"path":      path,
		"currency":  cfg.Currency,
		"templates": len(cfg.MachiningTemplates),
	}).Info("pricing config loaded")
	return cfg, nil
}

// setPricingDefaults registers every scalar and every gloss price as a leaf
// default, so partial tables in the file merge with the defaults.
func setPricingDefaults(v *viper.Viper, d model.PricingConfig) {
	v.SetDefault("currency", d.Currency)
	v.SetDefault("min_surface_per_face", d.MinSurfacePerFace)
	v.SetDefault("min_order_value", d.MinOrderValue)
	v.SetDefault("tax_rate", d.TaxRate)
	v.SetDefault("tint_surcharge", d.TintSurcharge)
	v.SetDefault("edge_rate_per_m", d.EdgeRatePerMeter)
	v.SetDefault("edge_waste_percent", d.EdgeWastePercent)
	v.SetDefault("drilling_fee", d.DrillingFee)
	v.SetDefault("min_layers", d.MinLayers)
	v.SetDefault("max_layers", d.MaxLayers)
	v.SetDefault("gluing_rate_per_joint", d.GluingRatePerJoint)
	v.SetDefault("allow_service_only_lines", d.AllowServiceOnlyLines)
	for g, p := range d.LacquerPrices {
		v.SetDefault("lacquer_prices."+string(g), p)
	}
	for g, p := range d.VarnishPrices {
		v.SetDefault("varnish_prices."+string(g), p)
	}
}

// CheckPricing returns a warning for every value the engine will treat as
// zero or clamp.
func CheckPricing(cfg model.PricingConfig) []string {
	var warnings []string
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		warnings = append(warnings, fmt.Sprintf("tax_rate %.4f is outside [0, 1)", cfg.TaxRate))
	}
	if cfg.MinSurfacePerFace < 0 {
		warnings = append(warnings, "min_surface_per_face is negative")
	}
	if min, max := cfg.LayerBounds(); min != cfg.MinLayers || max != cfg.MaxLayers {
		warnings = append(warnings, fmt.Sprintf("layer bounds [%d, %d] adjusted to [%d, %d]", cfg.MinLayers, cfg.MaxLayers, min, max))
	}
	seen := make(map[string]bool, len(cfg.MachiningTemplates))
	for _, t := range cfg.MachiningTemplates {
		if t.ID == "" {
			warnings = append(warnings, fmt.Sprintf("machining template %q has no id", t.Name))
			continue
		}
		if seen[t.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate machining template id %q", t.ID))
		}
		seen[t.ID] = true
	}
	return warnings
}

// SavePricing writes cfg as TOML, creating parent directories.
func SavePricing(path string, cfg model.PricingConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode pricing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write pricing config %s: %w", path, err)
	}
	log.WithField("path", path).Info("pricing config saved")
	return nil
}
