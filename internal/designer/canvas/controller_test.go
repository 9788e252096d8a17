package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/designer/rules"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	cat, err := catalog.New(catalog.Seed())
	require.NoError(t, err)
	g := graph.New("tpl-test", rules.NewBaseline())
	return New(cat, g)
}

func TestHandleDropCreatesNode(t *testing.T) {
	c := newController(t)

	payload := `{"type":"contactSingle","label":"Customer","fields":{"displayName":"Acme Corp"}}`
	node, err := c.HandleDrop(payload, graph.Position{X: 12, Y: 34})
	require.NoError(t, err)
	require.NotNil(t, node)

	assert.Equal(t, "contactSingle", node.Type)
	assert.Equal(t, "contact", node.Data.BlockType)
	assert.Equal(t, "Customer", node.Data.Label)
	assert.Equal(t, "Acme Corp", node.Data.Fields["displayName"])
	assert.Equal(t, "Acme Corp", node.Data.Config["displayName"])
	assert.Equal(t, graph.Position{X: 12, Y: 34}, node.Position)

	// Dropping selects the new node.
	assert.Equal(t, node.ID, c.Selection().NodeID)
}

func TestHandleDropMalformedPayloadIsNoOp(t *testing.T) {
	c := newController(t)

	for _, raw := range []string{"", "   ", "{not json", `{"label":"no type"}`, "42"} {
		node, err := c.HandleDrop(raw, graph.Position{})
		assert.NoError(t, err, "payload %q", raw)
		assert.Nil(t, node, "payload %q", raw)
	}
	assert.Equal(t, 0, c.Graph().NodeCount())
}

func TestHandleDropUnknownNodeTypeRefused(t *testing.T) {
	c := newController(t)

	node, err := c.HandleDrop(`{"type":"ghostNode"}`, graph.Position{})
	assert.Nil(t, node)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, c.Graph().NodeCount())
}

func TestHandleConnectRejectionRetrievable(t *testing.T) {
	c := newController(t)

	contact, err := c.HandleDrop(`{"type":"contactSingle"}`, graph.Position{})
	require.NoError(t, err)
	service, err := c.HandleDrop(`{"type":"serviceItem"}`, graph.Position{X: 100})
	require.NoError(t, err)

	edge, rejection, err := c.HandleConnect(contact.ID, service.ID, "out", "in")
	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, edge)
	assert.Nil(t, c.LastRejection())
	assert.Equal(t, edge.ID, c.Selection().EdgeID)

	// Invalid gesture: rejected, canvas unchanged, reason retrievable,
	// and the user can immediately try again.
	edge, rejection, err = c.HandleConnect(service.ID, contact.ID, "", "")
	require.NoError(t, err)
	assert.Nil(t, edge)
	require.NotNil(t, rejection)
	assert.Equal(t, rejection, c.LastRejection())
	assert.Equal(t, 1, c.Graph().EdgeCount())

	billing, err := c.HandleDrop(`{"type":"billingRecurring"}`, graph.Position{X: 200})
	require.NoError(t, err)
	_, rejection, err = c.HandleConnect(service.ID, billing.ID, "", "")
	require.NoError(t, err)
	assert.Nil(t, rejection)
	assert.Nil(t, c.LastRejection())
}

func TestSelectionMutuallyExclusive(t *testing.T) {
	c := newController(t)

	contact, err := c.HandleDrop(`{"type":"contactSingle"}`, graph.Position{})
	require.NoError(t, err)
	service, err := c.HandleDrop(`{"type":"serviceItem"}`, graph.Position{})
	require.NoError(t, err)
	edge, _, err := c.HandleConnect(contact.ID, service.ID, "", "")
	require.NoError(t, err)

	c.SelectNode(contact.ID)
	assert.Equal(t, Selection{NodeID: contact.ID}, c.Selection())

	c.SelectEdge(edge.ID)
	assert.Equal(t, Selection{EdgeID: edge.ID}, c.Selection())

	c.ClearSelection()
	assert.Equal(t, Selection{}, c.Selection())
}

func TestRemoveClearsSelection(t *testing.T) {
	c := newController(t)

	contact, err := c.HandleDrop(`{"type":"contactSingle"}`, graph.Position{})
	require.NoError(t, err)

	c.SelectNode(contact.ID)
	require.NoError(t, c.HandleRemoveNode(contact.ID))
	assert.Equal(t, Selection{}, c.Selection())
}

func TestHandleFieldEditRunsCalculations(t *testing.T) {
	c := newController(t)

	billing, err := c.HandleDrop(`{"type":"billingRecurring"}`, graph.Position{})
	require.NoError(t, err)

	require.NoError(t, c.HandleFieldEdit(billing.ID, "baseAmount", float64(100)))

	node, err := c.Graph().Document().Node(billing.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(1200), node.Data.Fields["annualAmount"])
}

func TestValidateAll(t *testing.T) {
	c := newController(t)

	contact, err := c.HandleDrop(`{"type":"contactSingle"}`, graph.Position{})
	require.NoError(t, err)
	_, err = c.HandleDrop(`{"type":"serviceItem","fields":{"serviceName":"Consulting"}}`, graph.Position{})
	require.NoError(t, err)

	report := c.ValidateAll()
	require.Contains(t, report, contact.ID)
	assert.Len(t, report, 1, "filled service node must not be flagged")

	failures, err := c.ValidateNode(contact.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, failures)
}
