// Package repository persists contract templates in Postgres. The document
// column is JSONB holding the designer's TemplateDocument aggregate.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/templates/domain"
)

// TemplateRepository provides persistence operations for templates.
type TemplateRepository struct {
	db *pgxpool.Pool
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template with an empty document at version 1.
func (r *TemplateRepository) Create(ctx context.Context, name string) (*domain.Template, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	id := uuid.NewString()
	doc := graph.NewDocument(id)
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	const q = `
INSERT INTO contract_templates (id, name, version, document)
VALUES ($1, $2, 1, $3)
RETURNING id, name, version, created_at, updated_at;
`
	var t domain.Template
	if err := r.db.QueryRow(ctx, q, id, name, raw).
		Scan(&t.ID, &t.Name, &t.Version, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	t.Document = doc
	return &t, nil
}

// Get loads a template with its document.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*domain.Template, error) {
	const q = `
SELECT id, name, version, document, created_at, updated_at
FROM contract_templates
WHERE id = $1 AND deleted_at IS NULL;
`
	var t domain.Template
	var raw []byte
	err := r.db.QueryRow(ctx, q, id).
		Scan(&t.ID, &t.Name, &t.Version, &raw, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var doc graph.TemplateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	t.Document = &doc
	return &t, nil
}

// Save stores a new document revision. expectedVersion guards against
// concurrent editors: the update only lands if nobody saved in between.
func (r *TemplateRepository) Save(ctx context.Context, id string, doc *graph.TemplateDocument, expectedVersion int) (*domain.Template, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	const q = `
UPDATE contract_templates
SET document = $3, version = version + 1, updated_at = now()
WHERE id = $1 AND version = $2 AND deleted_at IS NULL
RETURNING id, name, version, created_at, updated_at;
`
	var t domain.Template
	err = r.db.QueryRow(ctx, q, id, expectedVersion, raw).
		Scan(&t.ID, &t.Name, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the template is gone or someone saved first.
			if _, getErr := r.Get(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrVersionConflict
		}
		return nil, err
	}
	t.Document = doc
	return &t, nil
}

// List returns all non-deleted templates, newest first, without documents.
func (r *TemplateRepository) List(ctx context.Context) ([]domain.Template, error) {
	const q = `
SELECT id, name, version, created_at, updated_at
FROM contract_templates
WHERE deleted_at IS NULL
ORDER BY created_at DESC;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Template, 0, 16)
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Version, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks a template as deleted.
func (r *TemplateRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	const q = `
UPDATE contract_templates
SET deleted_at = now(), updated_at = now()
WHERE id = $1 AND deleted_at IS NULL;
`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
