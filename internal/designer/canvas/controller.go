// Package canvas translates editor gestures (drop, connect, move, field
// edit, select) into graph mutations, delegating legality checks to the
// connection rule engine and surfacing rejections as ordinary results.
package canvas

import (
	"errors"
	"log"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	catdomain "github.com/contractdesk/go-contract-backend/internal/catalog/domain"
	"github.com/contractdesk/go-contract-backend/internal/designer/fieldrules"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
)

// Selection tracks what the canvas currently highlights. Node and edge
// selection are mutually exclusive: picking one clears the other.
type Selection struct {
	NodeID string `json:"nodeId,omitempty"`
	EdgeID string `json:"edgeId,omitempty"`
}

// Controller mediates one editing session's gestures over one graph.
type Controller struct {
	catalog *catalog.Catalog
	graph   *graph.Graph

	selection     Selection
	lastRejection *graph.Rejection
}

// New builds a controller over the given graph.
func New(cat *catalog.Catalog, g *graph.Graph) *Controller {
	return &Controller{catalog: cat, graph: g}
}

// Graph exposes the controlled graph.
func (c *Controller) Graph() *graph.Graph { return c.graph }

// HandleDrop instantiates a node from a drag payload. A malformed payload is
// a logged no-op (stray drag events must not crash the canvas); an unknown
// nodeType is a NotFound error, since instantiating a broken node is worse
// than refusing.
func (c *Controller) HandleDrop(rawPayload string, pos graph.Position) (*graph.TemplateNode, error) {
	payload, ok := ParseDropPayload(rawPayload)
	if !ok {
		log.Printf("canvas: ignoring malformed drop payload (%d bytes)", len(rawPayload))
		return nil, nil
	}

	variant, err := c.catalog.Variant(payload.Type)
	if err != nil {
		return nil, err
	}
	block, err := c.catalog.BlockByID(variant.BlockID)
	if err != nil {
		return nil, err
	}

	node := c.graph.AddNode(block, variant, pos)
	if payload.Label != "" {
		node.Data.Label = payload.Label
	}
	for name, value := range payload.Fields {
		node.Data.Fields[name] = value
		if _, exists := node.Data.Config[name]; exists {
			node.Data.Config[name] = value
		}
	}

	c.SelectNode(node.ID)
	return node, nil
}

// HandleConnect draws an edge between two nodes. A policy rejection is a
// normal outcome: the edge is not created, the canvas stays unchanged, and
// the reason stays retrievable via LastRejection.
func (c *Controller) HandleConnect(sourceID, targetID, sourceHandle, targetHandle string) (*graph.TemplateEdge, *graph.Rejection, error) {
	edge, rejection, err := c.graph.Connect(sourceID, targetID, sourceHandle, targetHandle)
	if err != nil {
		return nil, nil, err
	}
	if rejection != nil {
		c.lastRejection = rejection
		return nil, rejection, nil
	}
	c.lastRejection = nil
	c.SelectEdge(edge.ID)
	return edge, nil, nil
}

// LastRejection returns the most recent connect rejection, for display.
func (c *Controller) LastRejection() *graph.Rejection { return c.lastRejection }

// HandleMove updates a node's position.
func (c *Controller) HandleMove(nodeID string, pos graph.Position) error {
	return c.graph.MoveNode(nodeID, pos)
}

// HandleFieldEdit records a field edit and re-runs the calculation rules the
// field triggers. Validation stays a separate explicit pass.
func (c *Controller) HandleFieldEdit(nodeID, fieldName string, value any) error {
	if err := c.graph.UpdateNodeField(nodeID, fieldName, value); err != nil {
		return err
	}

	node, err := c.graph.Document().Node(nodeID)
	if err != nil {
		return err
	}
	variant, err := c.catalog.Variant(node.Type)
	if err != nil {
		// Nodes are only created through catalog lookups, so a missing
		// variant here means the catalog changed under a live session.
		return err
	}
	fieldrules.Recalculate(node, variant, fieldName)
	return nil
}

// HandleRemoveNode deletes a node (cascading its edges) and clears any
// selection pointing at it.
func (c *Controller) HandleRemoveNode(nodeID string) error {
	if err := c.graph.RemoveNode(nodeID); err != nil {
		return err
	}
	if c.selection.NodeID == nodeID {
		c.ClearSelection()
	}
	return nil
}

// HandleRemoveEdge deletes an edge and clears any selection pointing at it.
func (c *Controller) HandleRemoveEdge(edgeID string) error {
	if err := c.graph.RemoveEdge(edgeID); err != nil {
		return err
	}
	if c.selection.EdgeID == edgeID {
		c.ClearSelection()
	}
	return nil
}

// SelectNode highlights a node, clearing any edge selection.
func (c *Controller) SelectNode(nodeID string) {
	c.selection = Selection{NodeID: nodeID}
}

// SelectEdge highlights an edge, clearing any node selection.
func (c *Controller) SelectEdge(edgeID string) {
	c.selection = Selection{EdgeID: edgeID}
}

// ClearSelection clears both selections.
func (c *Controller) ClearSelection() {
	c.selection = Selection{}
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection { return c.selection }

// ValidateNode runs the node's validation rules.
func (c *Controller) ValidateNode(nodeID string) ([]fieldrules.FieldFailure, error) {
	node, err := c.graph.Document().Node(nodeID)
	if err != nil {
		return nil, err
	}
	variant, err := c.catalog.Variant(node.Type)
	if err != nil {
		return nil, err
	}
	return fieldrules.Validate(node, variant), nil
}

// ValidateAll runs validation rules for every node, keyed by node id. Nodes
// whose variant vanished from the catalog report a synthetic failure rather
// than aborting the whole report.
func (c *Controller) ValidateAll() map[string][]fieldrules.FieldFailure {
	report := make(map[string][]fieldrules.FieldFailure)
	for i := range c.graph.Document().Nodes {
		node := &c.graph.Document().Nodes[i]
		variant, err := c.catalog.Variant(node.Type)
		if err != nil {
			if errors.Is(err, catdomain.ErrNotFound) {
				report[node.ID] = []fieldrules.FieldFailure{
					{FieldName: "", Message: "unknown block variant " + node.Type},
				}
			}
			continue
		}
		if failures := fieldrules.Validate(node, variant); len(failures) > 0 {
			report[node.ID] = failures
		}
	}
	return report
}
