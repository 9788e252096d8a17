// Package render maps a placed node to its design-mode visual description by
// resolving the node's variant to a catalog component descriptor. Rendering
// is purely derived from (node, catalog, context); nothing here mutates the
// graph.
package render

import (
	"sort"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
)

// Context carries the theme and icon set explicitly so rendering is testable
// without a UI environment.
type Context struct {
	DefaultColor  string
	DefaultBorder domain.BorderStyle
	IconSet       map[string]string // icon name -> asset URL
}

// DefaultContext is the stock theme.
func DefaultContext() Context {
	return Context{
		DefaultColor:  "#6B7280",
		DefaultBorder: domain.BorderSolid,
	}
}

// Icon is one icon of a node's icon cluster, stacked by ZIndex.
type Icon struct {
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	ZIndex int    `json:"zIndex"`
}

// FieldView is one form field in render order.
type FieldView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
	Width       string `json:"width,omitempty"`
	Value       any    `json:"value,omitempty"`
}

// View is the design-mode visual description of a node.
type View struct {
	NodeID     string             `json:"nodeId"`
	NodeType   string             `json:"nodeType"`
	Label      string             `json:"label"`
	BlockType  string             `json:"blockType"`
	Layout     string             `json:"layout"`
	Style      string             `json:"style,omitempty"`
	ShowAvatar bool               `json:"showAvatar,omitempty"`
	Color      string             `json:"color"`
	Border     domain.BorderStyle `json:"border"`
	Icons      []Icon             `json:"icons,omitempty"`
	Fields     []FieldView        `json:"fields,omitempty"`
	Generic    bool               `json:"generic,omitempty"`
}

// maxIcons caps the icon cluster at two stacked icons.
const maxIcons = 2

// Renderer produces the view for one nodeType.
type Renderer interface {
	Render(node *graph.TemplateNode, ctx Context) View
}

// Registry resolves nodeType keys to renderers. It is built once at catalog
// load; unknown nodeTypes resolve to an explicit fallback renderer instead
// of silently defaulting.
type Registry struct {
	renderers map[string]Renderer
	unknown   Renderer
}

// NewRegistry resolves every catalog variant to a renderer up front.
// Variants with a design component get the component renderer; variants
// without one fall back to the generic rendering, which must never hard-fail
// (new block types may land in the catalog before their design component
// does).
func NewRegistry(cat *catalog.Catalog) *Registry {
	r := &Registry{
		renderers: make(map[string]Renderer),
		unknown:   unknownRenderer{},
	}

	for _, nodeType := range cat.NodeTypes() {
		variant, err := cat.Variant(nodeType)
		if err != nil {
			continue
		}
		tag, _ := cat.TagForNodeType(nodeType)
		block, err := cat.BlockByTag(tag)
		if err != nil {
			continue
		}

		if hasDesignComponent(variant) {
			r.renderers[nodeType] = componentRenderer{block: block, variant: variant}
		} else {
			r.renderers[nodeType] = genericRenderer{block: block}
		}
	}

	return r
}

func hasDesignComponent(v *domain.BlockVariant) bool {
	if v.Component == nil || v.Component.Config.Design == nil {
		return false
	}
	switch v.Component.DisplayMode {
	case domain.DisplayDesign, domain.DisplayBoth:
		return true
	default:
		return false
	}
}

// Resolve returns the renderer for a nodeType, or the unknown fallback.
func (r *Registry) Resolve(nodeType string) Renderer {
	if renderer, ok := r.renderers[nodeType]; ok {
		return renderer
	}
	return r.unknown
}

// Render resolves and renders a node in one step.
func (r *Registry) Render(node *graph.TemplateNode, ctx Context) View {
	return r.Resolve(node.Type).Render(node, ctx)
}

// componentRenderer renders a variant through its design component
// descriptor: declared field list, icon cluster, block styling.
type componentRenderer struct {
	block   *domain.BlockType
	variant *domain.BlockVariant
}

func (cr componentRenderer) Render(node *graph.TemplateNode, ctx Context) View {
	design := cr.variant.Component.Config.Design

	v := View{
		NodeID:     node.ID,
		NodeType:   node.Type,
		Label:      node.Data.Label,
		BlockType:  node.Data.BlockType,
		Layout:     design.Layout,
		Style:      design.Style,
		ShowAvatar: design.ShowAvatar,
		Color:      blockColor(cr.block, ctx),
		Border:     blockBorder(cr.block, ctx),
		Icons:      iconCluster(cr.block, ctx),
	}

	declared := fieldDefs(cr.variant)
	for _, spec := range design.Fields {
		fv := FieldView{Name: spec.Name, Label: spec.Name, Width: spec.Width}
		if def, ok := declared[spec.Name]; ok {
			fv.Label = def.Config.Label
			fv.Placeholder = def.Config.Placeholder
			fv.Required = def.Required
		}
		if value, ok := node.FieldValue(spec.Name); ok {
			fv.Value = value
		}
		v.Fields = append(v.Fields, fv)
	}

	return v
}

// genericRenderer covers variants with no design component: label, tag and
// the variant's declared fields in sort order.
type genericRenderer struct {
	block *domain.BlockType
}

func (gr genericRenderer) Render(node *graph.TemplateNode, ctx Context) View {
	v := View{
		NodeID:    node.ID,
		NodeType:  node.Type,
		Label:     node.Data.Label,
		BlockType: node.Data.BlockType,
		Layout:    "generic",
		Color:     blockColor(gr.block, ctx),
		Border:    blockBorder(gr.block, ctx),
		Icons:     iconCluster(gr.block, ctx),
		Generic:   true,
	}
	return v
}

// unknownRenderer is the explicit fallback for nodeTypes absent from the
// registry: minimal label + tag rendering, never a failure.
type unknownRenderer struct{}

func (unknownRenderer) Render(node *graph.TemplateNode, ctx Context) View {
	return View{
		NodeID:    node.ID,
		NodeType:  node.Type,
		Label:     node.Data.Label,
		BlockType: node.Data.BlockType,
		Layout:    "generic",
		Color:     ctx.DefaultColor,
		Border:    ctx.DefaultBorder,
		Generic:   true,
	}
}

func blockColor(b *domain.BlockType, ctx Context) string {
	if b.HexColor != "" {
		return b.HexColor
	}
	return ctx.DefaultColor
}

func blockBorder(b *domain.BlockType, ctx Context) domain.BorderStyle {
	if b.BorderStyle != "" {
		return b.BorderStyle
	}
	return ctx.DefaultBorder
}

// iconCluster returns at most two icons, stacked with z-index by position.
func iconCluster(b *domain.BlockType, ctx Context) []Icon {
	names := b.IconNames
	if len(names) > maxIcons {
		names = names[:maxIcons]
	}
	icons := make([]Icon, 0, len(names))
	for i, name := range names {
		icons = append(icons, Icon{Name: name, URL: ctx.IconSet[name], ZIndex: i})
	}
	return icons
}

func fieldDefs(v *domain.BlockVariant) map[string]domain.BlockField {
	defs := make(map[string]domain.BlockField, len(v.Fields))
	fields := append([]domain.BlockField(nil), v.Fields...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].SortOrder < fields[j].SortOrder })
	for _, f := range fields {
		defs[f.FieldName] = f
	}
	return defs
}
