// Package fieldrules evaluates a variant's block rules against a placed
// node: validation failures for save/export gating, calculation re-runs on
// trigger-field changes, and field visibility.
package fieldrules

import (
	"fmt"
	"sort"

	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
	"github.com/contractdesk/go-contract-backend/internal/designer/graph"
)

// FieldFailure flags one field as currently invalid. Failures never block
// editing or node creation; they only gate save/export.
type FieldFailure struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// orderedRules returns the variant's rules of the given type in ascending
// execution order.
func orderedRules(variant *domain.BlockVariant, t domain.RuleType) []domain.BlockRule {
	var out []domain.BlockRule
	for _, r := range variant.Rules {
		if r.Type == t {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExecutionOrder < out[j].ExecutionOrder
	})
	return out
}

// Validate runs every validation rule of the variant against the node. All
// configured conditions are evaluated and the failures unioned.
func Validate(node *graph.TemplateNode, variant *domain.BlockVariant) []FieldFailure {
	var failures []FieldFailure
	for _, rule := range orderedRules(variant, domain.RuleValidation) {
		cfg, ok := rule.Config.(domain.ValidationRuleConfig)
		if !ok {
			continue
		}
		for _, cond := range cfg.Conditions {
			if msg, failed := checkCondition(node, cond); failed {
				failures = append(failures, FieldFailure{FieldName: cond.Field, Message: msg})
			}
		}
	}
	return failures
}

// Recalculate re-runs every calculation rule whose trigger fields include
// changedField, writing derived values back into the node. An empty
// changedField re-runs all calculation rules.
func Recalculate(node *graph.TemplateNode, variant *domain.BlockVariant, changedField string) {
	for _, rule := range orderedRules(variant, domain.RuleCalculation) {
		cfg, ok := rule.Config.(domain.CalculationRuleConfig)
		if !ok {
			continue
		}
		if changedField != "" && !contains(cfg.TriggerFields, changedField) {
			continue
		}
		if v, ok := derive(node, cfg); ok {
			node.Data.Fields[cfg.TargetField] = v
			if _, exists := node.Data.Config[cfg.TargetField]; exists {
				node.Data.Config[cfg.TargetField] = v
			}
		}
	}
}

// HiddenFields returns the set of fields visibility rules currently hide.
func HiddenFields(node *graph.TemplateNode, variant *domain.BlockVariant) map[string]bool {
	hidden := map[string]bool{}
	for _, rule := range orderedRules(variant, domain.RuleVisibility) {
		cfg, ok := rule.Config.(domain.VisibilityRuleConfig)
		if !ok {
			continue
		}
		if _, failed := checkCondition(node, cfg.When); failed {
			for _, f := range cfg.TargetFields {
				hidden[f] = true
			}
		}
	}
	return hidden
}

func derive(node *graph.TemplateNode, cfg domain.CalculationRuleConfig) (float64, bool) {
	if len(cfg.OperandFields) == 0 {
		return 0, false
	}

	operands := make([]float64, 0, len(cfg.OperandFields))
	for _, f := range cfg.OperandFields {
		raw, ok := node.FieldValue(f)
		if !ok {
			return 0, false
		}
		n, ok := asNumber(raw)
		if !ok {
			return 0, false
		}
		operands = append(operands, n)
	}

	switch cfg.Operation {
	case "multiply":
		out := 1.0
		for _, n := range operands {
			out *= n
		}
		return out, true
	case "sum":
		out := 0.0
		for _, n := range operands {
			out += n
		}
		return out, true
	case "subtract":
		out := operands[0]
		for _, n := range operands[1:] {
			out -= n
		}
		return out, true
	default:
		return 0, false
	}
}

// checkCondition evaluates one condition against the node. Returns the
// failure message and true when the condition does not hold.
func checkCondition(node *graph.TemplateNode, cond domain.Condition) (string, bool) {
	value, present := node.FieldValue(cond.Field)

	fail := func() (string, bool) {
		if cond.Message != "" {
			return cond.Message, true
		}
		return fmt.Sprintf("%s failed %s check", cond.Field, cond.Operator), true
	}

	switch cond.Operator {
	case "required":
		if !present || isEmpty(value) {
			return fail()
		}
	case "minLength":
		s, _ := value.(string)
		if want, ok := asNumber(cond.Value); ok && float64(len(s)) < want {
			return fail()
		}
	case "maxLength":
		s, _ := value.(string)
		if want, ok := asNumber(cond.Value); ok && float64(len(s)) > want {
			return fail()
		}
	case "min":
		n, okN := asNumber(value)
		if want, ok := asNumber(cond.Value); ok && (!okN || n < want) {
			return fail()
		}
	case "max":
		n, okN := asNumber(value)
		if want, ok := asNumber(cond.Value); ok && (!okN || n > want) {
			return fail()
		}
	case "eq":
		if !looseEqual(value, cond.Value) {
			return fail()
		}
	case "ne":
		if looseEqual(value, cond.Value) {
			return fail()
		}
	case "oneOf":
		opts, _ := cond.Value.([]any)
		for _, opt := range opts {
			if looseEqual(value, opt) {
				return "", false
			}
		}
		return fail()
	}

	return "", false
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// asNumber normalizes the numeric types JSON decoding can produce.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func looseEqual(a, b any) bool {
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an == bn
		}
	}
	return a == b
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
