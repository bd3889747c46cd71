/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package model contains the shared template schema and parameter types
// consumed by the cost engine and the deployment orchestrator.
package model

// ParameterType identifies how a parameter value is interpreted
type ParameterType string

const (
	ParameterTypeString  ParameterType = "string"
	ParameterTypeInteger ParameterType = "integer"
	ParameterTypeEnum    ParameterType = "enum"
)

// ParameterSpec declares a single parameter in a template's contract
type ParameterSpec struct {
	Name          string
	Type          ParameterType
	Default       *string // nil means no default
	Required      bool
	AllowedValues []string // populated for enum parameters only
	Description   string
}

// HasDefault reports whether the spec declares a default value
func (ps *ParameterSpec) HasDefault() bool {
	return ps.Default != nil
}

// Allows reports whether value is in the spec's allowed-values set
func (ps *ParameterSpec) Allows(value string) bool {
	for _, allowed := range ps.AllowedValues {
		if allowed == value {
			return true
		}
	}
	return false
}

// ResourceDeclaration describes one resource a template will create,
// carrying only the attributes relevant to cost estimation
type ResourceDeclaration struct {
	LogicalID string
	Kind      string // CloudFormation resource type, e.g. AWS::EC2::Instance

	// CostAttributes maps cost-relevant attribute names to either a literal
	// value or a parameter reference of the form "param:<name>"
	CostAttributes map[string]string
}

// TemplateSchema is the immutable parameter contract and resource listing
// loaded from one catalog template
type TemplateSchema struct {
	Name        string
	Description string
	Parameters  []ParameterSpec
	Resources   []ResourceDeclaration
	Body        string // raw CloudFormation template text
}

// Spec returns the parameter spec with the given name
func (ts *TemplateSchema) Spec(name string) (*ParameterSpec, bool) {
	for i := range ts.Parameters {
		if ts.Parameters[i].Name == name {
			return &ts.Parameters[i], true
		}
	}
	return nil, false
}

// ParameterNames returns parameter names in declaration order
func (ts *TemplateSchema) ParameterNames() []string {
	names := make([]string, len(ts.Parameters))
	for i, spec := range ts.Parameters {
		names[i] = spec.Name
	}
	return names
}
