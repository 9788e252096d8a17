package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/templates/domain"
)

// VersionRepository records one snapshot per template save so a template can
// be inspected or restored at any historical version.
type VersionRepository struct {
	db *sql.DB
}

// NewVersionRepository creates a new version-history repository.
func NewVersionRepository(db *sql.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// Record inserts a snapshot of the given template version.
func (r *VersionRepository) Record(ctx context.Context, templateID string, version int, doc *graph.TemplateDocument) (*domain.TemplateVersion, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	const q = `
INSERT INTO template_versions (id, template_id, version, document)
VALUES ($1, $2, $3, $4)
RETURNING created_at;
`
	v := domain.TemplateVersion{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		Version:    version,
		Document:   doc,
	}
	if err := r.db.QueryRowContext(ctx, q, v.ID, templateID, version, raw).Scan(&v.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	return &v, nil
}

// ListByTemplate returns a template's snapshots, newest first, without
// documents.
func (r *VersionRepository) ListByTemplate(ctx context.Context, templateID string) ([]domain.TemplateVersion, error) {
	const q = `
SELECT id, template_id, version, created_at
FROM template_versions
WHERE template_id = $1
ORDER BY version DESC;
`
	rows, err := r.db.QueryContext(ctx, q, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TemplateVersion, 0, 8)
	for rows.Next() {
		var v domain.TemplateVersion
		if err := rows.Scan(&v.ID, &v.TemplateID, &v.Version, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSnapshot loads one historical document.
func (r *VersionRepository) GetSnapshot(ctx context.Context, templateID string, version int) (*domain.TemplateVersion, error) {
	const q = `
SELECT id, template_id, version, document, created_at
FROM template_versions
WHERE template_id = $1 AND version = $2;
`
	var v domain.TemplateVersion
	var raw []byte
	err := r.db.QueryRowContext(ctx, q, templateID, version).
		Scan(&v.ID, &v.TemplateID, &v.Version, &raw, &v.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var doc graph.TemplateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	v.Document = &doc
	return &v, nil
}
