package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/piwi3910/SlabQuote/internal/model"
)

// DefaultCatalogPath returns ~/.slabquote/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to path as JSON.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, cat model.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return nil
}

// LoadCatalog reads the catalog from path. If the file does not exist, the
// default catalog is written there and returned.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := model.DefaultCatalog()
			log.WithField("path", path).Info("catalog not found, creating default")
			if saveErr := SaveCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return model.Catalog{}, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return model.Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path":       path,
		"materials":  len(cat.Materials),
		"edge_bands": len(cat.EdgeBands),
	}).Debug("catalog loaded")
	return cat, nil
}

// LoadOrCreateCatalog loads the catalog from the default path.
func LoadOrCreateCatalog() (model.Catalog, string, error) {
	path := DefaultCatalogPath()
	cat, err := LoadCatalog(path)
	return cat, path, err
}

// MergeCatalog adds the materials and edge bands of extra whose codes are
// not yet in existing. Codes compare case-insensitively.
func MergeCatalog(existing, extra model.Catalog) model.Catalog {
	out := model.Catalog{
		Materials: append([]model.Material(nil), existing.Materials...),
		EdgeBands: append([]model.EdgeBand(nil), existing.EdgeBands...),
	}

	matCodes := make(map[string]bool, len(out.Materials))
	for _, m := range out.Materials {
		matCodes[strings.ToUpper(m.Code)] = true
	}
	for _, m := range extra.Materials {
		if !matCodes[strings.ToUpper(m.Code)] {
			out.Materials = append(out.Materials, m)
			matCodes[strings.ToUpper(m.Code)] = true
		}
	}

	bandCodes := make(map[string]bool, len(out.EdgeBands))
	for _, b := range out.EdgeBands {
		bandCodes[strings.ToUpper(b.Code)] = true
	}
	for _, b := range extra.EdgeBands {
		if !bandCodes[strings.ToUpper(b.Code)] {
			out.EdgeBands = append(out.EdgeBands, b)
			bandCodes[strings.ToUpper(b.Code)] = true
		}
	}
	return out
}

// ImportCatalog reads a catalog file and merges it into existing.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var imported model.Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return MergeCatalog(existing, imported), nil
}

// AddOffcuts lists offcut strips in the catalog for resale. Strips sharing
// a code are numbered so each stays addressable.
func AddOffcuts(cat model.Catalog, offcuts []model.Offcut) model.Catalog {
	var extra model.Catalog
	n := 0
	for _, o := range offcuts {
		for _, m := range o.ToMaterials() {
			n++
			m.Code = fmt.Sprintf("%s-%d", m.Code, n)
			extra.Materials = append(extra.Materials, m)
		}
	}
	return MergeCatalog(cat, extra)
}
