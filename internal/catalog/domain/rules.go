package domain

import (
	"encoding/json"
	"fmt"
)

// RuleType discriminates the shape of a rule's configuration.
type RuleType string

const (
	RuleValidation  RuleType = "validation"
	RuleCalculation RuleType = "calculation"
	RuleVisibility  RuleType = "visibility"
	RuleDependency  RuleType = "dependency"
)

// RuleConfig is the closed set of per-ruleType configuration shapes. The
// source material carried these as untyped blobs; here each ruleType gets a
// statically checkable struct.
type RuleConfig interface {
	ruleConfig()
}

// Condition is a single field predicate used by validation and visibility
// rules. Operator is one of: required, minLength, maxLength, min, max, eq,
// ne, oneOf.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ValidationRuleConfig holds the conditions of a validation rule. All
// conditions are evaluated and failures unioned per field.
type ValidationRuleConfig struct {
	Conditions []Condition `json:"conditions"`
}

// CalculationRuleConfig derives TargetField from the operand fields whenever
// one of the trigger fields changes. Operation is one of: multiply, sum,
// subtract.
type CalculationRuleConfig struct {
	TargetField   string   `json:"targetField"`
	Operation     string   `json:"operation"`
	OperandFields []string `json:"operandFields"`
	TriggerFields []string `json:"triggerFields"`
}

// VisibilityRuleConfig hides TargetFields unless the condition holds.
type VisibilityRuleConfig struct {
	TargetFields []string  `json:"targetFields"`
	When         Condition `json:"when"`
}

// DependencyRuleConfig records that a field depends on others. Preserved as
// catalog data; no runtime behavior is attached.
type DependencyRuleConfig struct {
	Field     string   `json:"field"`
	DependsOn []string `json:"dependsOn"`
}

func (ValidationRuleConfig) ruleConfig()  {}
func (CalculationRuleConfig) ruleConfig() {}
func (VisibilityRuleConfig) ruleConfig()  {}
func (DependencyRuleConfig) ruleConfig()  {}

// BlockRule attaches behavior to a variant. Rules are evaluated in ascending
// ExecutionOrder.
type BlockRule struct {
	ID             string
	Type           RuleType
	Name           string
	ExecutionOrder int
	Config         RuleConfig
}

type blockRuleWire struct {
	ID             string          `json:"id"`
	Type           RuleType        `json:"ruleType"`
	Name           string          `json:"ruleName"`
	ExecutionOrder int             `json:"executionOrder"`
	Config         json.RawMessage `json:"ruleConfig,omitempty"`
}

func (r *BlockRule) UnmarshalJSON(data []byte) error {
	var w blockRuleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	r.ID = w.ID
	r.Type = w.Type
	r.Name = w.Name
	r.ExecutionOrder = w.ExecutionOrder
	r.Config = nil

	if len(w.Config) == 0 {
		return nil
	}

	switch w.Type {
	case RuleValidation:
		var cfg ValidationRuleConfig
		if err := json.Unmarshal(w.Config, &cfg); err != nil {
			return fmt.Errorf("rule %q: %w", w.Name, err)
		}
		r.Config = cfg
	case RuleCalculation:
		var cfg CalculationRuleConfig
		if err := json.Unmarshal(w.Config, &cfg); err != nil {
			return fmt.Errorf("rule %q: %w", w.Name, err)
		}
		r.Config = cfg
	case RuleVisibility:
		var cfg VisibilityRuleConfig
		if err := json.Unmarshal(w.Config, &cfg); err != nil {
			return fmt.Errorf("rule %q: %w", w.Name, err)
		}
		r.Config = cfg
	case RuleDependency:
		var cfg DependencyRuleConfig
		if err := json.Unmarshal(w.Config, &cfg); err != nil {
			return fmt.Errorf("rule %q: %w", w.Name, err)
		}
		r.Config = cfg
	default:
		return fmt.Errorf("rule %q: unknown ruleType %q", w.Name, w.Type)
	}

	return nil
}

func (r BlockRule) MarshalJSON() ([]byte, error) {
	w := blockRuleWire{
		ID:             r.ID,
		Type:           r.Type,
		Name:           r.Name,
		ExecutionOrder: r.ExecutionOrder,
	}

	if r.Config != nil {
		raw, err := json.Marshal(r.Config)
		if err != nil {
			return nil, err
		}
		w.Config = raw
	}

	return json.Marshal(w)
}
