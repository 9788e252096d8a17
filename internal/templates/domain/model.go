package domain

import (
	"time"

	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
)

// Template is a persisted contract template: metadata plus the graph
// document the designer edits. Version is an optimistic-concurrency stamp
// bumped on every save; conflicting editors are resolved here, not in the
// editing core.
type Template struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Version   int                     `json:"version"`
	Document  *graph.TemplateDocument `json:"document"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// TemplateVersion is one historical snapshot of a template's document.
type TemplateVersion struct {
	ID         string                  `json:"id"`
	TemplateID string                  `json:"template_id"`
	Version    int                     `json:"version"`
	Document   *graph.TemplateDocument `json:"document"`
	CreatedAt  time.Time               `json:"created_at"`
}
