// Package catalog loads the fixed document catalog from a YAML seed file and
// keeps the store and keyword index in sync with it.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

// seedFile is the YAML shape of the catalog seed.
type seedFile struct {
	Documents []*models.Document `yaml:"documents"`
}

// LoadSeed reads and validates the catalog seed file. Missing status,
// jurisdiction, and search priority get catalog defaults.
func LoadSeed(path string) ([]*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, doc := range seed.Documents {
		if doc.Title == "" {
			return nil, fmt.Errorf("seed document %d has no title", i)
		}
		if doc.DocumentType == "" {
			return nil, fmt.Errorf("seed document %q has no document type", doc.Title)
		}
		applyDocumentDefaults(doc)
	}
	return seed.Documents, nil
}

func applyDocumentDefaults(doc *models.Document) {
	if doc.Status == "" {
		doc.Status = "Active"
	}
	if doc.Jurisdiction == "" {
		doc.Jurisdiction = "National"
	}
	if doc.SearchPriority == 0 {
		doc.SearchPriority = 1
	}
}
