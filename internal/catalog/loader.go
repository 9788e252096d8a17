package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
)

// LoadFile reads a catalog document from disk and indexes it. Deployments
// override the built-in catalog by pointing CATALOG_PATH at a JSON file.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return New(&doc)
}

// Load returns the catalog for the given path, falling back to the built-in
// seed catalog when no path is configured.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(Seed())
	}
	return LoadFile(path)
}
