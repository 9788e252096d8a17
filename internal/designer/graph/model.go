// Package graph is the mutable template document behind an editing session:
// block instances placed on the canvas and the validated connections between
// them. This is the aggregate that gets persisted and exported.
package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
)

// Position is a node's canvas coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the instance state of a placed block. Config starts as a
// deep clone of the variant's default config; Fields holds the user's edits.
type NodeData struct {
	Label     string         `json:"label"`
	BlockType string         `json:"blockType"`
	Variant   string         `json:"variant"`
	Fields    map[string]any `json:"fields,omitempty"`
	Config    map[string]any `json:"config,omitempty"`
}

// TemplateNode is a block instance on the canvas. Type is the catalog
// variant's nodeType and always resolves through the render registry.
type TemplateNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// TemplateEdge is a directed, validated connection between two nodes.
type TemplateEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// TemplateDocument is the persisted aggregate: everything an editing session
// owns. It round-trips losslessly through JSON.
type TemplateDocument struct {
	TemplateID string         `json:"templateId"`
	Nodes      []TemplateNode `json:"nodes"`
	Edges      []TemplateEdge `json:"edges"`
}

// NewDocument returns an empty document for the given template.
func NewDocument(templateID string) *TemplateDocument {
	return &TemplateDocument{
		TemplateID: templateID,
		Nodes:      []TemplateNode{},
		Edges:      []TemplateEdge{},
	}
}

// Node returns the node with the given id.
func (d *TemplateDocument) Node(id string) (*TemplateNode, error) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("node %q: %w", id, ErrNodeNotFound)
}

// Edge returns the edge with the given id.
func (d *TemplateDocument) Edge(id string) (*TemplateEdge, error) {
	for i := range d.Edges {
		if d.Edges[i].ID == id {
			return &d.Edges[i], nil
		}
	}
	return nil, fmt.Errorf("edge %q: %w", id, ErrEdgeNotFound)
}

// newNodeID builds a collision-resistant node id. The nodeType prefix keeps
// ids readable in persisted documents; the uuid guarantees uniqueness under
// rapid programmatic creation (multi-node paste).
func newNodeID(nodeType string) string {
	return fmt.Sprintf("%s-%s", nodeType, uuid.NewString())
}

func newEdgeID() string {
	return "edge-" + uuid.NewString()
}

// deepClone copies a JSON-shaped value (maps, slices, scalars) so that node
// configs never alias the catalog's default config template.
func deepClone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepClone(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepClone(item)
		}
		return out
	default:
		return val
	}
}

// cloneConfig deep-clones a config map, returning an empty map for nil input
// so node configs are always writable.
func cloneConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return deepClone(cfg).(map[string]any)
}
