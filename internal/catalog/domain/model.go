// Package domain defines the block catalog data model: categories of
// contract-building blocks, their variants, and the per-variant component,
// field and rule declarations the canvas editor is driven by.
package domain

// BorderStyle is the visual border treatment of a block on the canvas.
type BorderStyle string

const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
)

// DisplayMode says which rendering pipelines a block component participates in.
type DisplayMode string

const (
	DisplayDesign   DisplayMode = "design"
	DisplayContract DisplayMode = "contract"
	DisplayBoth     DisplayMode = "both"
)

// ConnectionType classifies a catalog-level connection permission.
type ConnectionType string

const (
	ConnectionDataFlow    ConnectionType = "data_flow"
	ConnectionSequence    ConnectionType = "sequence"
	ConnectionConditional ConnectionType = "conditional"
)

// Well-known semantic block tags. The connection rule engine keys off these,
// not off BlockType ids.
const (
	TagContact = "contact"
	TagService = "service"
	TagBilling = "billing"
	TagTerms   = "terms"
)

// BlockCategory groups block types for the catalog panel. SortOrder drives
// panel display order.
type BlockCategory struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	SortOrder   int         `json:"sortOrder"`
	Blocks      []BlockType `json:"blocks"`
}

// NodeConfig constrains how instances of a block may appear on the canvas.
type NodeConfig struct {
	MinInstances int      `json:"minInstances"`
	MaxInstances int      `json:"maxInstances"`
	Inputs       []string `json:"inputs,omitempty"`
	Outputs      []string `json:"outputs,omitempty"`
}

// BlockType is a draggable block offered by the catalog. BlockTag is the
// semantic tag ("contact", "service", ...) consumed by the connection rules.
type BlockType struct {
	ID            string         `json:"id"`
	CategoryID    string         `json:"categoryId"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	BlockTag      string         `json:"blockType"`
	IconNames     []string       `json:"iconNames,omitempty"`
	HexColor      string         `json:"hexColor,omitempty"`
	BorderStyle   BorderStyle    `json:"borderStyle,omitempty"`
	CanRotate     bool           `json:"canRotate"`
	CanResize     bool           `json:"canResize"`
	Bidirectional bool           `json:"isBidirectional"`
	NodeConfig    NodeConfig     `json:"nodeConfig"`
	Variants      []BlockVariant `json:"variants"`
}

// BlockVariant is a configured flavor of a block ("Single Contact" vs
// "Multiple Contacts"). NodeType is the unique catalog key the node renderer
// dispatches on. DefaultConfig is a template object: it is deep-cloned into
// every node instance created from the variant, never aliased.
type BlockVariant struct {
	ID            string          `json:"id"`
	BlockID       string          `json:"blockId"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	NodeType      string          `json:"nodeType"`
	DefaultConfig map[string]any  `json:"defaultConfig,omitempty"`
	Component     *BlockComponent `json:"component,omitempty"`
	Rules         []BlockRule     `json:"rules,omitempty"`
	Fields        []BlockField    `json:"fields,omitempty"`
}

// BlockComponent describes how a variant renders. Design mode is the canvas
// presentation, contract mode the generated-document presentation. A variant
// may declare either, both, or neither.
type BlockComponent struct {
	ID            string          `json:"id"`
	ComponentName string          `json:"componentName"`
	DisplayMode   DisplayMode     `json:"displayMode"`
	Config        ComponentConfig `json:"componentConfig"`
}

type ComponentConfig struct {
	Design   *DesignLayout   `json:"design,omitempty"`
	Contract *ContractLayout `json:"contract,omitempty"`
}

// DesignLayout is the editor-canvas presentation of a variant.
type DesignLayout struct {
	Layout     string      `json:"layout"`
	ShowAvatar bool        `json:"showAvatar,omitempty"`
	Fields     []FieldSpec `json:"fields,omitempty"`
	Style      string      `json:"style,omitempty"`
}

// ContractLayout is the generated-document presentation of a variant. It is
// carried as catalog data; rendering documents from it lives outside this
// service.
type ContractLayout struct {
	Layout       string `json:"layout"`
	Template     string `json:"template,omitempty"`
	ShowSchedule bool   `json:"showSchedule,omitempty"`
	HideIfEmpty  bool   `json:"hideIfEmpty,omitempty"`
}

// FieldSpec names a field shown inside a design layout.
type FieldSpec struct {
	Name  string `json:"name"`
	Width string `json:"width,omitempty"`
}

// FieldConfig carries presentation hints for a form field.
type FieldConfig struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Format      string `json:"format,omitempty"`
}

// BlockField declares a form field of a variant. FieldName is unique within
// the variant; SortOrder drives form-rendering order.
type BlockField struct {
	ID        string      `json:"id"`
	FieldName string      `json:"fieldName"`
	FieldType string      `json:"fieldType"`
	Config    FieldConfig `json:"fieldConfig"`
	Required  bool        `json:"isRequired"`
	SortOrder int         `json:"sortOrder"`
}

// ConnectionRules is optional catalog metadata attached to a connection
// permission. Only the tag-based allow-list is enforced at connect time;
// DataMapping and AllowMultiple are preserved for the export pipeline.
type ConnectionRules struct {
	AllowMultiple bool                  `json:"allowMultiple"`
	DataMapping   map[string]string     `json:"dataMapping,omitempty"`
	Validation    *ConnectionValidation `json:"validation,omitempty"`
}

type ConnectionValidation struct {
	Message string `json:"message"`
}

// BlockConnection is a catalog-level permission: instances of the source
// block may connect to instances of the target block. Distinct from a graph
// edge, which is a placed, validated instance of such a permission.
type BlockConnection struct {
	ID            string          `json:"id"`
	SourceBlockID string          `json:"sourceBlockId"`
	TargetBlockID string          `json:"targetBlockId"`
	Type          ConnectionType  `json:"connectionType"`
	Rules         ConnectionRules `json:"connectionRules"`
}

// Document is the catalog load shape: the full catalog as served to the
// canvas at session start.
type Document struct {
	Categories  []BlockCategory   `json:"categories"`
	Connections []BlockConnection `json:"connections"`
}
