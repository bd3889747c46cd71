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

func TestValueConstructors(t *testing.T) {
	s := StringValue("hello")
	assert.Equal(t, ValueString, s.Kind)
	assert.Equal(t, "hello", s.Raw)

	n := IntegerValue(42)
	assert.Equal(t, ValueInteger, n.Kind)
	assert.Equal(t, "42", n.Raw)
	got, ok := n.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), got)

	e := EnumValue("t3.micro")
	assert.Equal(t, ValueEnum, e.Kind)
	_, ok = e.Int()
	assert.False(t, ok)
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "string", ValueString.String())
	assert.Equal(t, "integer", ValueInteger.String())
	assert.Equal(t, "enum", ValueEnum.String())
}

func TestParameterSetPreservesOrder(t *testing.T) {
	params := NewParameterSet()
	params.Add("b", StringValue("2"))
	params.Add("a", StringValue("1"))
	params.Add("c", IntegerValue(3))

	assert.Equal(t, []string{"b", "a", "c"}, params.Names())
	assert.Equal(t, 3, params.Len())
}

func TestParameterSetLookup(t *testing.T) {
	params := NewParameterSet()
	params.Add("InstanceType", EnumValue("t3.micro"))

	value, ok := params.Value("InstanceType")
	require.True(t, ok)
	assert.Equal(t, "t3.micro", value.Raw)

	_, ok = params.Value("Missing")
	assert.False(t, ok)
	assert.Equal(t, "", params.Raw("Missing"))
}

func TestParameterSetStringMap(t *testing.T) {
	params := NewParameterSet()
	params.Add("InstanceType", EnumValue("t3.micro"))
	params.Add("StorageGB", IntegerValue(100))

	assert.Equal(t, map[string]string{
		"InstanceType": "t3.micro",
		"StorageGB":    "100",
	}, params.StringMap())
}

func TestParameterSetAddOverwritesWithoutDuplicatingName(t *testing.T) {
	params := NewParameterSet()
	params.Add("Key", StringValue("first"))
	params.Add("Key", StringValue("second"))

	assert.Equal(t, []string{"Key"}, params.Names())
	assert.Equal(t, "second", params.Raw("Key"))
}
