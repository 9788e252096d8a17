package fieldrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractdesk/go-contract-backend/internal/catalog"
	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
	"github.com/contractdesk/go-contract-backend/internal/designer/rules"
)

func placeNode(t *testing.T, nodeType string) (*graph.TemplateNode, *domain.BlockVariant) {
	t.Helper()
	cat, err := catalog.New(catalog.Seed())
	require.NoError(t, err)

	variant, err := cat.Variant(nodeType)
	require.NoError(t, err)
	block, err := cat.BlockByID(variant.BlockID)
	require.NoError(t, err)

	g := graph.New("tpl-test", rules.NewBaseline())
	return g.AddNode(block, variant, graph.Position{}), variant
}

func TestValidateReportsAllFailures(t *testing.T) {
	node, variant := placeNode(t, "contactSingle")

	// Fresh contact: name and email both empty, both reported.
	failures := Validate(node, variant)
	require.Len(t, failures, 2)

	fields := []string{failures[0].FieldName, failures[1].FieldName}
	assert.Contains(t, fields, "displayName")
	assert.Contains(t, fields, "email")
}

func TestValidatePassesWhenFieldsFilled(t *testing.T) {
	node, variant := placeNode(t, "contactSingle")
	node.Data.Fields["displayName"] = "Acme Corp"
	node.Data.Fields["email"] = "legal@acme.example"

	assert.Empty(t, Validate(node, variant))
}

func TestValidateDoesNotBlockEditing(t *testing.T) {
	node, variant := placeNode(t, "billingRecurring")
	node.Data.Fields["baseAmount"] = float64(-5)

	failures := Validate(node, variant)
	require.Len(t, failures, 1)
	assert.Equal(t, "baseAmount", failures[0].FieldName)
	assert.Equal(t, "amount must not be negative", failures[0].Message)

	// The invalid value stays editable; nothing was reverted.
	v, ok := node.FieldValue("baseAmount")
	require.True(t, ok)
	assert.Equal(t, float64(-5), v)
}

func TestRecalculateOnTriggerField(t *testing.T) {
	node, variant := placeNode(t, "billingRecurring")
	node.Data.Fields["baseAmount"] = float64(100)

	Recalculate(node, variant, "baseAmount")
	assert.Equal(t, float64(1200), node.Data.Fields["annualAmount"])

	node.Data.Fields["periodsPerYear"] = float64(4)
	Recalculate(node, variant, "periodsPerYear")
	assert.Equal(t, float64(400), node.Data.Fields["annualAmount"])
}

func TestRecalculateIgnoresNonTriggerField(t *testing.T) {
	node, variant := placeNode(t, "billingRecurring")
	node.Data.Fields["baseAmount"] = float64(100)
	node.Data.Fields["annualAmount"] = float64(0)

	Recalculate(node, variant, "paymentTermsDays")
	assert.Equal(t, float64(0), node.Data.Fields["annualAmount"])
}

func TestHiddenFields(t *testing.T) {
	node, variant := placeNode(t, "termsStandard")

	// autoRenew defaults to true: renewal note visible.
	hidden := HiddenFields(node, variant)
	assert.False(t, hidden["renewalNote"])

	node.Data.Fields["autoRenew"] = false
	hidden = HiddenFields(node, variant)
	assert.True(t, hidden["renewalNote"])
}

func TestConditionOperators(t *testing.T) {
	node, _ := placeNode(t, "contactSingle")

	tests := []struct {
		name     string
		cond     domain.Condition
		setField string
		setValue any
		failed   bool
	}{
		{"required missing", domain.Condition{Field: "nickname", Operator: "required"}, "", nil, true},
		{"required present", domain.Condition{Field: "nickname", Operator: "required"}, "nickname", "Ada", false},
		{"maxLength over", domain.Condition{Field: "nickname", Operator: "maxLength", Value: float64(2)}, "nickname", "Ada", true},
		{"minLength under", domain.Condition{Field: "nickname", Operator: "minLength", Value: float64(5)}, "nickname", "Ada", true},
		{"min under", domain.Condition{Field: "count", Operator: "min", Value: float64(1)}, "count", float64(0), true},
		{"max over", domain.Condition{Field: "count", Operator: "max", Value: float64(10)}, "count", float64(11), true},
		{"eq mismatch", domain.Condition{Field: "kind", Operator: "eq", Value: "b2b"}, "kind", "b2c", true},
		{"ne match", domain.Condition{Field: "kind", Operator: "ne", Value: "b2c"}, "kind", "b2c", true},
		{"oneOf hit", domain.Condition{Field: "kind", Operator: "oneOf", Value: []any{"b2b", "b2c"}}, "kind", "b2c", false},
		{"oneOf miss", domain.Condition{Field: "kind", Operator: "oneOf", Value: []any{"b2b"}}, "kind", "b2c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setField != "" {
				node.Data.Fields[tt.setField] = tt.setValue
			}
			_, failed := checkCondition(node, tt.cond)
			assert.Equal(t, tt.failed, failed)
		})
	}
}
