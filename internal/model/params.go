/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import "strconv"

// ValueKind discriminates the variants of a bound parameter value
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInteger
	ValueEnum
)

// String returns a human-readable kind name
func (k ValueKind) String() string {
	switch k {
	case ValueInteger:
		return "integer"
	case ValueEnum:
		return "enum"
	default:
		return "string"
	}
}

// Value is a parameter value that has been validated against its spec.
// Downstream consumers can rely on the variant matching the declared type
// without re-checking.
type Value struct {
	Kind   ValueKind
	Raw    string // wire representation, always populated
	Number int64  // populated for ValueInteger only
}

// StringValue constructs a string-typed value
func StringValue(s string) Value {
	return Value{Kind: ValueString, Raw: s}
}

// IntegerValue constructs an integer-typed value
func IntegerValue(n int64) Value {
	return Value{Kind: ValueInteger, Raw: strconv.FormatInt(n, 10), Number: n}
}

// EnumValue constructs an enum-typed value already checked against its
// allowed-values set
func EnumValue(s string) Value {
	return Value{Kind: ValueEnum, Raw: s}
}

// Int returns the numeric form and whether the value is integer-typed
func (v Value) Int() (int64, bool) {
	return v.Number, v.Kind == ValueInteger
}

// ParameterSet holds the resolved values for one template instantiation.
// It is built once by the binder and treated as immutable thereafter.
type ParameterSet struct {
	names  []string
	values map[string]Value
}

// NewParameterSet creates an empty parameter set
func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: make(map[string]Value)}
}

// Add records a value, preserving insertion order
func (ps *ParameterSet) Add(name string, value Value) {
	if _, exists := ps.values[name]; !exists {
		ps.names = append(ps.names, name)
	}
	ps.values[name] = value
}

// Value returns the bound value for name
func (ps *ParameterSet) Value(name string) (Value, bool) {
	v, ok := ps.values[name]
	return v, ok
}

// Raw returns the wire representation for name, or empty string if unbound
func (ps *ParameterSet) Raw(name string) string {
	return ps.values[name].Raw
}

// Names returns parameter names in binding order
func (ps *ParameterSet) Names() []string {
	names := make([]string, len(ps.names))
	copy(names, ps.names)
	return names
}

// Len returns the number of bound parameters
func (ps *ParameterSet) Len() int {
	return len(ps.names)
}

// StringMap returns the wire form expected by the control plane
func (ps *ParameterSet) StringMap() map[string]string {
	result := make(map[string]string, len(ps.values))
	for name, value := range ps.values {
		result[name] = value.Raw
	}
	return result
}
