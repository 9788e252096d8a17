package graph

import (
	"fmt"

	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
)

// ConnectionPolicy is what the graph consults before committing an edge.
// Implemented by the connection rule engine.
type ConnectionPolicy interface {
	IsValidConnection(sourceTag, targetTag string) bool
	Reason(sourceTag, targetTag string) string
}

// Rejection is the typed outcome of a connect attempt the policy refused.
// It is an expected domain result, not an error: the canvas reports it and
// the user tries another connection.
type Rejection struct {
	SourceType string `json:"sourceType"`
	TargetType string `json:"targetType"`
	Reason     string `json:"reason"`
}

// Graph wraps a TemplateDocument with its mutation operations. One editing
// session owns one Graph; all mutations run synchronously inside a gesture.
type Graph struct {
	doc    *TemplateDocument
	policy ConnectionPolicy
}

// New creates a graph over an empty document.
func New(templateID string, policy ConnectionPolicy) *Graph {
	return &Graph{doc: NewDocument(templateID), policy: policy}
}

// Load wraps an existing document, e.g. one loaded from persistence.
func Load(doc *TemplateDocument, policy ConnectionPolicy) *Graph {
	if doc.Nodes == nil {
		doc.Nodes = []TemplateNode{}
	}
	if doc.Edges == nil {
		doc.Edges = []TemplateEdge{}
	}
	return &Graph{doc: doc, policy: policy}
}

// Document exposes the underlying aggregate for persistence and rendering.
func (g *Graph) Document() *TemplateDocument {
	return g.doc
}

// AddNode instantiates a variant on the canvas. The variant's default config
// is deep-cloned into the node so the catalog template is never shared by
// reference between nodes.
func (g *Graph) AddNode(block *domain.BlockType, variant *domain.BlockVariant, pos Position) *TemplateNode {
	node := TemplateNode{
		ID:       newNodeID(variant.NodeType),
		Type:     variant.NodeType,
		Position: pos,
		Data: NodeData{
			Label:     variant.Name,
			BlockType: block.BlockTag,
			Variant:   variant.ID,
			Fields:    map[string]any{},
			Config:    cloneConfig(variant.DefaultConfig),
		},
	}
	g.doc.Nodes = append(g.doc.Nodes, node)
	return &g.doc.Nodes[len(g.doc.Nodes)-1]
}

// MoveNode updates a node's canvas position.
func (g *Graph) MoveNode(nodeID string, pos Position) error {
	n, err := g.doc.Node(nodeID)
	if err != nil {
		return err
	}
	n.Position = pos
	return nil
}

// UpdateNodeField records a field edit. Validation is a separate explicit
// pass, not triggered per keystroke.
func (g *Graph) UpdateNodeField(nodeID, fieldName string, value any) error {
	n, err := g.doc.Node(nodeID)
	if err != nil {
		return err
	}
	if n.Data.Fields == nil {
		n.Data.Fields = map[string]any{}
	}
	n.Data.Fields[fieldName] = value
	if _, exists := n.Data.Config[fieldName]; exists {
		n.Data.Config[fieldName] = value
	}
	return nil
}

// FieldValue reads a node field, falling back to the cloned default config.
func (n *TemplateNode) FieldValue(fieldName string) (any, bool) {
	if v, ok := n.Data.Fields[fieldName]; ok {
		return v, true
	}
	v, ok := n.Data.Config[fieldName]
	return v, ok
}

// Connect draws an edge between two nodes after consulting the connection
// policy. On rejection no edge is created and no state changes; the
// rejection carries the reason for the canvas.
func (g *Graph) Connect(sourceID, targetID, sourceHandle, targetHandle string) (*TemplateEdge, *Rejection, error) {
	src, err := g.doc.Node(sourceID)
	if err != nil {
		return nil, nil, fmt.Errorf("connect source: %w", err)
	}
	tgt, err := g.doc.Node(targetID)
	if err != nil {
		return nil, nil, fmt.Errorf("connect target: %w", err)
	}

	if !g.policy.IsValidConnection(src.Data.BlockType, tgt.Data.BlockType) {
		return nil, &Rejection{
			SourceType: src.Data.BlockType,
			TargetType: tgt.Data.BlockType,
			Reason:     g.policy.Reason(src.Data.BlockType, tgt.Data.BlockType),
		}, nil
	}

	edge := TemplateEdge{
		ID:           newEdgeID(),
		Source:       sourceID,
		Target:       targetID,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
	}
	g.doc.Edges = append(g.doc.Edges, edge)
	return &g.doc.Edges[len(g.doc.Edges)-1], nil, nil
}

// RemoveNode deletes a node and every edge referencing it. Dangling edges
// are an invariant violation and must never be observable, so the cascade
// happens in the same operation.
func (g *Graph) RemoveNode(nodeID string) error {
	idx := -1
	for i := range g.doc.Nodes {
		if g.doc.Nodes[i].ID == nodeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("node %q: %w", nodeID, ErrNodeNotFound)
	}

	g.doc.Nodes = append(g.doc.Nodes[:idx], g.doc.Nodes[idx+1:]...)

	kept := g.doc.Edges[:0]
	for _, e := range g.doc.Edges {
		if e.Source != nodeID && e.Target != nodeID {
			kept = append(kept, e)
		}
	}
	g.doc.Edges = kept
	return nil
}

// RemoveEdge deletes a single edge.
func (g *Graph) RemoveEdge(edgeID string) error {
	for i := range g.doc.Edges {
		if g.doc.Edges[i].ID == edgeID {
			g.doc.Edges = append(g.doc.Edges[:i], g.doc.Edges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("edge %q: %w", edgeID, ErrEdgeNotFound)
}

// NodeCount returns the number of placed nodes.
func (g *Graph) NodeCount() int { return len(g.doc.Nodes) }

// EdgeCount returns the number of committed edges.
func (g *Graph) EdgeCount() int { return len(g.doc.Edges) }
