/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package resolve binds user-supplied parameter overrides against a
// template's declared contract, producing the validated parameter set
// consumed by the cost engine and the deployment orchestrator.
package resolve

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/stackpilot/stackpilot/internal/model"
)

// MissingRequiredParameterError indicates a required parameter with no
// override and no default
type MissingRequiredParameterError struct {
	Name string
}

func (e *MissingRequiredParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Name)
}

// InvalidParameterTypeError indicates a value that does not parse as the
// declared type
type InvalidParameterTypeError struct {
	Name  string
	Value string
	Type  model.ParameterType
}

func (e *InvalidParameterTypeError) Error() string {
	return fmt.Sprintf("parameter %q: value %q is not a valid %s", e.Name, e.Value, e.Type)
}

// InvalidParameterValueError indicates an enum value outside its
// allowed-values set
type InvalidParameterValueError struct {
	Name    string
	Value   string
	Allowed []string
}

func (e *InvalidParameterValueError) Error() string {
	return fmt.Sprintf("parameter %q: value %q is not one of %v", e.Name, e.Value, e.Allowed)
}

// UnknownParameterError indicates an override key not declared in the schema
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Name)
}

// Bind merges overrides with schema defaults and validates the result.
// It is a pure function: neither input is mutated and no I/O occurs.
func Bind(schema *model.TemplateSchema, overrides map[string]string) (*model.ParameterSet, error) {
	// Reject typo'd override keys before anything else, so a silent no-op
	// override can never slip through.
	var unknown []string
	for key := range overrides {
		if _, ok := schema.Spec(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownParameterError{Name: unknown[0]}
	}

	params := model.NewParameterSet()
	for i := range schema.Parameters {
		spec := &schema.Parameters[i]

		raw, supplied := overrides[spec.Name]
		if !supplied {
			if spec.HasDefault() {
				raw = *spec.Default
			} else if spec.Required {
				return nil, &MissingRequiredParameterError{Name: spec.Name}
			} else {
				continue
			}
		}

		value, err := checkValue(spec, raw)
		if err != nil {
			return nil, err
		}
		params.Add(spec.Name, value)
	}

	return params, nil
}

// checkValue validates one raw value against its spec and produces the
// tagged variant
func checkValue(spec *model.ParameterSpec, raw string) (model.Value, error) {
	switch spec.Type {
	case model.ParameterTypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.Value{}, &InvalidParameterTypeError{Name: spec.Name, Value: raw, Type: spec.Type}
		}
		return model.IntegerValue(n), nil

	case model.ParameterTypeEnum:
		if !spec.Allows(raw) {
			return model.Value{}, &InvalidParameterValueError{Name: spec.Name, Value: raw, Allowed: spec.AllowedValues}
		}
		return model.EnumValue(raw), nil

	default:
		if spec.Required && raw == "" {
			return model.Value{}, &MissingRequiredParameterError{Name: spec.Name}
		}
		return model.StringValue(raw), nil
	}
}
