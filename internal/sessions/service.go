package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/designer/canvas"
	"github.com/contractdesk/go-contract-backend/internal/designer/fieldrules"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/designer/render"
	tpldomain "github.com/contractdesk/go-contract-backend/internal/templates/domain"
	tplservice "github.com/contractdesk/go-contract-backend/internal/templates/service"
)

// Service runs editing sessions: it materializes the designer core (graph,
// canvas controller, renderer) around a session's document, applies one
// gesture, and writes the session back.
type Service struct {
	repo      *Repo
	templates *tplservice.TemplateService
	catalog   *catalog.Catalog
	policy    graph.ConnectionPolicy
	registry  *render.Registry
}

func NewService(repo *Repo, templates *tplservice.TemplateService, cat *catalog.Catalog, policy graph.ConnectionPolicy, registry *render.Registry) *Service {
	return &Service{
		repo:      repo,
		templates: templates,
		catalog:   cat,
		policy:    policy,
		registry:  registry,
	}
}

// Open starts a session over the given template's current document.
func (s *Service) Open(ctx context.Context, templateID string) (*Session, error) {
	t, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		SessionID:   uuid.NewString(),
		TemplateID:  t.ID,
		BaseVersion: t.Version,
		Document:    t.Document,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	return s.repo.Get(ctx, sessionID)
}

// Close discards a session without saving.
func (s *Service) Close(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

// controller rebuilds the designer core around a session document. Selection
// is restored so gestures see the same canvas state the editor left behind.
func (s *Service) controller(sess *Session) *canvas.Controller {
	g := graph.Load(sess.Document, s.policy)
	c := canvas.New(s.catalog, g)
	switch {
	case sess.Selection.NodeID != "":
		c.SelectNode(sess.Selection.NodeID)
	case sess.Selection.EdgeID != "":
		c.SelectEdge(sess.Selection.EdgeID)
	}
	return c
}

// apply runs one gesture against a session and persists the outcome when the
// gesture mutated the document.
func (s *Service) apply(ctx context.Context, sessionID string, gesture func(*canvas.Controller) (mutated bool, err error)) (*Session, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c := s.controller(sess)
	mutated, err := gesture(c)
	if err != nil {
		return nil, err
	}

	sess.Selection = c.Selection()
	if mutated {
		sess.Dirty = true
	}
	if err := s.repo.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Drop places a node from a drag payload. A malformed payload yields no node
// and no mutation.
func (s *Service) Drop(ctx context.Context, sessionID, payload string, pos graph.Position) (*graph.TemplateNode, *Session, error) {
	var node *graph.TemplateNode
	sess, err := s.apply(ctx, sessionID, func(c *canvas.Controller) (bool, error) {
		n, err := c.HandleDrop(payload, pos)
		if err != nil {
			return false, err
		}
		node = n
		return n != nil, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return node, sess, nil
}

// Connect draws an edge. A policy rejection comes back as a result, not an
// error, and leaves the session unchanged except for bookkeeping.
func (s *Service) Connect(ctx context.Context, sessionID, sourceID, targetID, sourceHandle, targetHandle string) (*graph.TemplateEdge, *graph.Rejection, *Session, error) {
	var (
		edge      *graph.TemplateEdge
		rejection *graph.Rejection
	)
	sess, err := s.apply(ctx, sessionID, func(c *canvas.Controller) (bool, error) {
		e, rej, err := c.HandleConnect(sourceID, targetID, sourceHandle, targetHandle)
		if err != nil {
			return false, err
		}
		edge, rejection = e, rej
		return e != nil, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return edge, rejection, sess, nil
}

// Move updates a node position.
func (s *Service) Move(ctx context.Context, sessionID, nodeID string, pos graph.Position) (*Session, error) {
	return s.apply(ctx, sessionID, func(c *canvas.Controller) (bool, error) {
		if err := c.HandleMove(nodeID, pos); err != nil {
			return false, err
		}
		return true, nil
	})
}

// EditField records a field edit and its triggered calculations.
func (s *Service) EditField(ctx context.Context, sessionID, nodeID, fieldName string, value any) (*Session, error) {
	return s.apply(ctx, sessionID, func(c *canvas.Controller) (bool, error) {
		if err := c.HandleFieldEdit(nodeID, fieldName, value); err != nil {
			return false, err
		}
		return true, nil
	})
}

// RemoveNode deletes a node, cascading its edges.
func (s *Service) RemoveNode(ctx context.Context, sessionID, nodeID string) (*Session, error) {
	return s.apply(ctx, sessionID, func(c *canvas.Controller) (bool, error) {
		if err := c.HandleRemoveNode(nodeID); err != nil {
			return false, err
		}
		return true, nil
	})
}

// RemoveEdge deletes an edge.
func (s *Service) RemoveEdge(ctx context.Context, sessionID, edgeID string) (*Session, error) {
	return s.apply(ctx, sessionID, func(c *canvas.Controller) (bool, error) {
		if err := c.HandleRemoveEdge(edgeID); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Select updates the highlighted node or edge without touching the document.
func (s *Service) Select(ctx context.Context, sessionID, nodeID, edgeID string) (*Session, error) {
	return s.apply(ctx, sessionID, func(c *canvas.Controller) (bool, error) {
		switch {
		case nodeID != "":
			if _, err := c.Graph().Document().Node(nodeID); err != nil {
				return false, err
			}
			c.SelectNode(nodeID)
		case edgeID != "":
			if _, err := c.Graph().Document().Edge(edgeID); err != nil {
				return false, err
			}
			c.SelectEdge(edgeID)
		default:
			c.ClearSelection()
		}
		return false, nil
	})
}

// Render resolves design-mode views for every node in the session.
func (s *Service) Render(ctx context.Context, sessionID string, rctx render.Context) ([]render.View, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	views := make([]render.View, 0, len(sess.Document.Nodes))
	for i := range sess.Document.Nodes {
		views = append(views, s.registry.Render(&sess.Document.Nodes[i], rctx))
	}
	return views, nil
}

// Validate runs the field validation pass over the whole session document.
func (s *Service) Validate(ctx context.Context, sessionID string) (map[string][]fieldrules.FieldFailure, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.controller(sess).ValidateAll(), nil
}

// Save persists the session document back to the template. The session is
// only updated after the save is confirmed: a failed or cancelled save
// leaves the in-memory document and dirty flag untouched.
func (s *Service) Save(ctx context.Context, sessionID string) (*tpldomain.Template, *Session, error) {
	sess, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	t, err := s.templates.Save(ctx, sess.TemplateID, sess.Document, sess.BaseVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("save template %s: %w", sess.TemplateID, err)
	}

	sess.BaseVersion = t.Version
	sess.Dirty = false
	if err := s.repo.Put(ctx, sess); err != nil {
		return nil, nil, err
	}
	return t, sess, nil
}
