package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// backupFormat is the version written into new backups. Backups with a
// different major version are refused.
const backupFormat = "1.1"

// Backup is a shop's whole setup in one JSON document: the price list and
// the material catalog.
type Backup struct {
	Format  string              `json:"format"`
	Created time.Time           `json:"created"`
	Pricing model.PricingConfig `json:"pricing"`
	Catalog model.Catalog       `json:"catalog"`
}

// WriteBackup saves pricing and catalog to path, creating parent directories.
func WriteBackup(path string, pricing model.PricingConfig, cat model.Catalog) error {
	b := Backup{
		Format:  backupFormat,
		Created: time.Now().UTC().Truncate(time.Second),
		Pricing: pricing,
		Catalog: cat,
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadBackup loads and checks a backup written by WriteBackup.
func ReadBackup(path string) (Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Backup{}, fmt.Errorf("failed to read backup: %w", err)
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("failed to parse backup %s: %w", path, err)
	}
	if b.Format == "" {
		return Backup{}, fmt.Errorf("%s is not a SlabQuote backup: no format field", path)
	}
	if major(b.Format) != major(backupFormat) {
		return Backup{}, fmt.Errorf("backup format %s is not supported (expected %s.x)", b.Format, major(backupFormat))
	}
	return b, nil
}

// RestoreBackup overwrites the pricing and catalog files with the backup's
// contents. Pricing problems found by CheckPricing are logged, not fatal.
func RestoreBackup(b Backup, pricingPath, catalogPath string) error {
	for _, w := range CheckPricing(b.Pricing) {
		log.WithField("backup", b.Created).Warn(w)
	}
	if err := SavePricing(pricingPath, b.Pricing); err != nil {
		return err
	}
	if err := SaveCatalog(catalogPath, b.Catalog); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"materials": len(b.Catalog.Materials),
		"pricing":   pricingPath,
		"catalog":   catalogPath,
	}).Info("backup restored")
	return nil
}

func major(version string) string {
	m, _, _ := strings.Cut(version, ".")
	return m
}
