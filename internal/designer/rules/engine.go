// Package rules decides whether a directed connection between two block
// types is permitted. The allow-list is the single source of truth for the
// contract pipeline ordering and is consulted before any edge is committed.
package rules

import (
	"fmt"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
)

// Engine holds a directed allow-list keyed by semantic block tag. Connections
// are asymmetric: contact may feed service, never the reverse.
type Engine struct {
	allowed map[string]map[string]bool
}

// NewBaseline returns the engine encoding the contract pipeline:
// contact → service → billing → terms, never backward or sideways.
func NewBaseline() *Engine {
	e := &Engine{allowed: make(map[string]map[string]bool)}
	e.allow(domain.TagContact, domain.TagService)
	e.allow(domain.TagContact, domain.TagBilling)
	e.allow(domain.TagContact, domain.TagTerms)
	e.allow(domain.TagService, domain.TagBilling)
	e.allow(domain.TagService, domain.TagTerms)
	e.allow(domain.TagBilling, domain.TagTerms)
	// terms is terminal: no outgoing connections.
	return e
}

// FromCatalog derives the allow-list from the catalog's connection records,
// resolving block ids to their semantic tags. Catalogs validated by
// catalog.New cannot reference unknown blocks, so resolution errors indicate
// a programming bug.
func FromCatalog(c *catalog.Catalog) (*Engine, error) {
	e := &Engine{allowed: make(map[string]map[string]bool)}
	for _, conn := range c.Connections() {
		src, err := c.BlockByID(conn.SourceBlockID)
		if err != nil {
			return nil, fmt.Errorf("connection %q: %w", conn.ID, err)
		}
		tgt, err := c.BlockByID(conn.TargetBlockID)
		if err != nil {
			return nil, fmt.Errorf("connection %q: %w", conn.ID, err)
		}
		e.allow(src.BlockTag, tgt.BlockTag)
	}
	return e, nil
}

func (e *Engine) allow(source, target string) {
	set, ok := e.allowed[source]
	if !ok {
		set = make(map[string]bool)
		e.allowed[source] = set
	}
	set[target] = true
}

// IsValidConnection reports whether source may connect to target. Unknown
// source tags have an empty allow-list: the connection is rejected, not an
// error.
func (e *Engine) IsValidConnection(sourceTag, targetTag string) bool {
	return e.allowed[sourceTag][targetTag]
}

// Reason explains a rejection for display on the canvas. Returns "" for a
// permitted connection.
func (e *Engine) Reason(sourceTag, targetTag string) string {
	if e.IsValidConnection(sourceTag, targetTag) {
		return ""
	}
	if len(e.allowed[sourceTag]) == 0 {
		return fmt.Sprintf("%s blocks cannot start a connection", sourceTag)
	}
	return fmt.Sprintf("%s blocks cannot connect to %s blocks", sourceTag, targetTag)
}
