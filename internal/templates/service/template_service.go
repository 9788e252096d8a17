package service

import (
	"context"
	"log"

	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/templates/domain"
	"github.com/contractdesk/go-contract-backend/internal/templates/repository"
)

// TemplateService coordinates template persistence with version-history
// snapshots.
type TemplateService struct {
	repo     *repository.TemplateRepository
	versions *repository.VersionRepository
}

func NewTemplateService(repo *repository.TemplateRepository, versions *repository.VersionRepository) *TemplateService {
	return &TemplateService{repo: repo, versions: versions}
}

func (s *TemplateService) Create(ctx context.Context, name string) (*domain.Template, error) {
	return s.repo.Create(ctx, name)
}

func (s *TemplateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	return s.repo.Get(ctx, id)
}

func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	return s.repo.List(ctx)
}

func (s *TemplateService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.SoftDelete(ctx, id)
}

// Save stores a new document revision and records a history snapshot. The
// snapshot is best-effort: a failed history insert does not roll back the
// save itself.
func (s *TemplateService) Save(ctx context.Context, id string, doc *graph.TemplateDocument, expectedVersion int) (*domain.Template, error) {
	t, err := s.repo.Save(ctx, id, doc, expectedVersion)
	if err != nil {
		return nil, err
	}

	if s.versions != nil {
		if _, err := s.versions.Record(ctx, t.ID, t.Version, doc); err != nil {
			log.Printf("templates: snapshot for %s v%d failed: %v", t.ID, t.Version, err)
		}
	}
	return t, nil
}

// History lists a template's snapshots.
func (s *TemplateService) History(ctx context.Context, id string) ([]domain.TemplateVersion, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.versions.ListByTemplate(ctx, id)
}
