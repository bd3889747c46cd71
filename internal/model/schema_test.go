/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterSpecDefaults(t *testing.T) {
	value := "t3.micro"
	withDefault := ParameterSpec{Name: "InstanceType", Default: &value}
	assert.True(t, withDefault.HasDefault())

	withoutDefault := ParameterSpec{Name: "Environment"}
	assert.False(t, withoutDefault.HasDefault())
}

func TestParameterSpecAllows(t *testing.T) {
	spec := ParameterSpec{Name: "Size", AllowedValues: []string{"s", "m", "l"}}

	assert.True(t, spec.Allows("m"))
	assert.False(t, spec.Allows("xl"))
	assert.False(t, spec.Allows(""))
}

func TestTemplateSchemaSpecLookup(t *testing.T) {
	schema := &TemplateSchema{
		Name: "web-app",
		Parameters: []ParameterSpec{
			{Name: "InstanceType"},
			{Name: "Environment"},
		},
	}

	spec, ok := schema.Spec("Environment")
	require.True(t, ok)
	assert.Equal(t, "Environment", spec.Name)

	_, ok = schema.Spec("Missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"InstanceType", "Environment"}, schema.ParameterNames())
}
