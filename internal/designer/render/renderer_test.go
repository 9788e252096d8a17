package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/designer/rules"
)

func setup(t *testing.T) (*Registry, *graph.Graph, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.New(catalog.Seed())
	require.NoError(t, err)
	return NewRegistry(cat), graph.New("tpl-render", rules.NewBaseline()), cat
}

func place(t *testing.T, g *graph.Graph, cat *catalog.Catalog, nodeType string) *graph.TemplateNode {
	t.Helper()
	variant, err := cat.Variant(nodeType)
	require.NoError(t, err)
	block, err := cat.BlockByID(variant.BlockID)
	require.NoError(t, err)
	return g.AddNode(block, variant, graph.Position{})
}

func TestRenderDesignComponent(t *testing.T) {
	reg, g, cat := setup(t)
	node := place(t, g, cat, "contactSingle")
	node.Data.Fields["displayName"] = "Acme Corp"

	view := reg.Render(node, DefaultContext())

	assert.Equal(t, node.ID, view.NodeID)
	assert.Equal(t, "card", view.Layout)
	assert.Equal(t, "primary", view.Style)
	assert.True(t, view.ShowAvatar)
	assert.False(t, view.Generic)
	assert.Equal(t, "#2563EB", view.Color)

	require.Len(t, view.Fields, 3)
	assert.Equal(t, "displayName", view.Fields[0].Name)
	assert.Equal(t, "Name", view.Fields[0].Label)
	assert.True(t, view.Fields[0].Required)
	assert.Equal(t, "Acme Corp", view.Fields[0].Value)
}

func TestIconClusterCappedAtTwo(t *testing.T) {
	reg, g, cat := setup(t)
	node := place(t, g, cat, "contactSingle")

	ctx := DefaultContext()
	ctx.IconSet = map[string]string{"user": "https://cdn.example/user.svg"}

	view := reg.Render(node, ctx)
	require.Len(t, view.Icons, 2)
	assert.Equal(t, "user", view.Icons[0].Name)
	assert.Equal(t, 0, view.Icons[0].ZIndex)
	assert.Equal(t, "https://cdn.example/user.svg", view.Icons[0].URL)
	assert.Equal(t, 1, view.Icons[1].ZIndex)
}

func TestRenderVariantWithoutComponentFallsBack(t *testing.T) {
	reg, g, cat := setup(t)

	// termsStandard declares no component descriptor.
	node := place(t, g, cat, "termsStandard")
	view := reg.Render(node, DefaultContext())

	assert.True(t, view.Generic)
	assert.Equal(t, "generic", view.Layout)
	assert.Equal(t, "terms", view.BlockType)
	assert.Equal(t, "Standard Terms", view.Label)
	// Block styling still applies on the generic path.
	assert.Equal(t, "#7C3AED", view.Color)
}

func TestRenderUnknownNodeTypeNeverFails(t *testing.T) {
	reg, _, _ := setup(t)

	node := &graph.TemplateNode{
		ID:   "mystery-1",
		Type: "mysteryNode",
		Data: graph.NodeData{Label: "Mystery", BlockType: "mystery"},
	}

	view := reg.Render(node, DefaultContext())
	assert.True(t, view.Generic)
	assert.Equal(t, "Mystery", view.Label)
	assert.Equal(t, "mystery", view.BlockType)
	assert.Equal(t, DefaultContext().DefaultColor, view.Color)
}

func TestContractOnlyComponentRendersGenericOnCanvas(t *testing.T) {
	// The canvas is always design mode: a displayMode=contract component
	// must not drive canvas rendering.
	reg, g, cat := setup(t)
	node := place(t, g, cat, "serviceItem")

	view := reg.Render(node, DefaultContext())
	// serviceItem declares a design component, so it renders through it.
	assert.False(t, view.Generic)
	assert.Equal(t, "list", view.Layout)

	// contactMulti has no component at all.
	multi := place(t, g, cat, "contactMulti")
	view = reg.Render(multi, DefaultContext())
	assert.True(t, view.Generic)
}
