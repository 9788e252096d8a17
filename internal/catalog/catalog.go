// Package catalog loads the block catalog and serves read-only lookups over
// it. The catalog is configuration: it is loaded once at startup and never
// mutated afterwards.
package catalog

import (
	"fmt"
	"sort"

	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
)

// Catalog indexes a validated catalog document for lookup by semantic block
// tag, block id and variant nodeType.
type Catalog struct {
	categories  []domain.BlockCategory
	connections []domain.BlockConnection

	byTag      map[string]*domain.BlockType
	byBlockID  map[string]*domain.BlockType
	byNodeType map[string]*domain.BlockVariant
	variantTag map[string]string // nodeType -> semantic block tag
}

// New validates the document's referential integrity and builds the lookup
// indexes. Every block must belong to an existing category, every variant to
// its declaring block, and nodeType keys must be unique across the catalog.
func New(doc *domain.Document) (*Catalog, error) {
	c := &Catalog{
		categories:  make([]domain.BlockCategory, len(doc.Categories)),
		connections: append([]domain.BlockConnection(nil), doc.Connections...),
		byTag:       make(map[string]*domain.BlockType),
		byBlockID:   make(map[string]*domain.BlockType),
		byNodeType:  make(map[string]*domain.BlockVariant),
		variantTag:  make(map[string]string),
	}

	copy(c.categories, doc.Categories)
	sort.SliceStable(c.categories, func(i, j int) bool {
		return c.categories[i].SortOrder < c.categories[j].SortOrder
	})

	categoryIDs := make(map[string]bool, len(c.categories))
	for _, cat := range c.categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("%w: category with empty id", domain.ErrInvalidCatalog)
		}
		if categoryIDs[cat.ID] {
			return nil, fmt.Errorf("%w: duplicate category id %q", domain.ErrInvalidCatalog, cat.ID)
		}
		categoryIDs[cat.ID] = true
	}

	for ci := range c.categories {
		cat := &c.categories[ci]
		for bi := range cat.Blocks {
			b := &cat.Blocks[bi]
			if b.CategoryID != cat.ID {
				return nil, fmt.Errorf("%w: block %q declares category %q but lives under %q",
					domain.ErrInvalidCatalog, b.ID, b.CategoryID, cat.ID)
			}
			if b.BlockTag == "" {
				return nil, fmt.Errorf("%w: block %q has no blockType tag", domain.ErrInvalidCatalog, b.ID)
			}
			if len(b.Variants) == 0 {
				return nil, fmt.Errorf("%w: block %q has no variants", domain.ErrInvalidCatalog, b.ID)
			}
			if _, dup := c.byBlockID[b.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate block id %q", domain.ErrInvalidCatalog, b.ID)
			}
			c.byBlockID[b.ID] = b
			if _, dup := c.byTag[b.BlockTag]; dup {
				return nil, fmt.Errorf("%w: duplicate block tag %q", domain.ErrInvalidCatalog, b.BlockTag)
			}
			c.byTag[b.BlockTag] = b

			for vi := range b.Variants {
				v := &b.Variants[vi]
				if v.BlockID != b.ID {
					return nil, fmt.Errorf("%w: variant %q declares block %q but lives under %q",
						domain.ErrInvalidCatalog, v.ID, v.BlockID, b.ID)
				}
				if v.NodeType == "" {
					return nil, fmt.Errorf("%w: variant %q has no nodeType", domain.ErrInvalidCatalog, v.ID)
				}
				if _, dup := c.byNodeType[v.NodeType]; dup {
					return nil, fmt.Errorf("%w: duplicate nodeType %q", domain.ErrInvalidCatalog, v.NodeType)
				}
				if err := validateFields(v); err != nil {
					return nil, err
				}
				c.byNodeType[v.NodeType] = v
				c.variantTag[v.NodeType] = b.BlockTag
			}
		}
	}

	for _, conn := range c.connections {
		if _, ok := c.byBlockID[conn.SourceBlockID]; !ok {
			return nil, fmt.Errorf("%w: connection %q references unknown source block %q",
				domain.ErrInvalidCatalog, conn.ID, conn.SourceBlockID)
		}
		if _, ok := c.byBlockID[conn.TargetBlockID]; !ok {
			return nil, fmt.Errorf("%w: connection %q references unknown target block %q",
				domain.ErrInvalidCatalog, conn.ID, conn.TargetBlockID)
		}
	}

	return c, nil
}

func validateFields(v *domain.BlockVariant) error {
	seen := make(map[string]bool, len(v.Fields))
	for _, f := range v.Fields {
		if f.FieldName == "" {
			return fmt.Errorf("%w: variant %q has a field with no name", domain.ErrInvalidCatalog, v.ID)
		}
		if seen[f.FieldName] {
			return fmt.Errorf("%w: variant %q repeats field %q", domain.ErrInvalidCatalog, v.ID, f.FieldName)
		}
		seen[f.FieldName] = true
	}
	return nil
}

// Categories returns the categories ordered by SortOrder.
func (c *Catalog) Categories() []domain.BlockCategory {
	return c.categories
}

// BlockByTag resolves a semantic block tag ("contact", "service", ...).
func (c *Catalog) BlockByTag(tag string) (*domain.BlockType, error) {
	b, ok := c.byTag[tag]
	if !ok {
		return nil, fmt.Errorf("block tag %q: %w", tag, domain.ErrNotFound)
	}
	return b, nil
}

// BlockByID resolves a block by its catalog id.
func (c *Catalog) BlockByID(id string) (*domain.BlockType, error) {
	b, ok := c.byBlockID[id]
	if !ok {
		return nil, fmt.Errorf("block id %q: %w", id, domain.ErrNotFound)
	}
	return b, nil
}

// Variant resolves a variant by its nodeType key.
func (c *Catalog) Variant(nodeType string) (*domain.BlockVariant, error) {
	v, ok := c.byNodeType[nodeType]
	if !ok {
		return nil, fmt.Errorf("nodeType %q: %w", nodeType, domain.ErrNotFound)
	}
	return v, nil
}

// TagForNodeType returns the semantic block tag that owns the given nodeType.
func (c *Catalog) TagForNodeType(nodeType string) (string, error) {
	tag, ok := c.variantTag[nodeType]
	if !ok {
		return "", fmt.Errorf("nodeType %q: %w", nodeType, domain.ErrNotFound)
	}
	return tag, nil
}

// Connections returns the catalog-level connection permissions.
func (c *Catalog) Connections() []domain.BlockConnection {
	return c.connections
}

// NodeTypes returns every registered variant nodeType. Used to resolve the
// render registry once at load.
func (c *Catalog) NodeTypes() []string {
	out := make([]string, 0, len(c.byNodeType))
	for nt := range c.byNodeType {
		out = append(out, nt)
	}
	sort.Strings(out)
	return out
}
