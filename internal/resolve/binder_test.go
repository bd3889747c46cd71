/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackpilot/stackpilot/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func bindSchema() *model.TemplateSchema {
	return &model.TemplateSchema{
		Name: "web-app",
		Parameters: []model.ParameterSpec{
			{Name: "Environment", Type: model.ParameterTypeString, Required: true},
			{Name: "InstanceType", Type: model.ParameterTypeEnum, Default: strPtr("t3.micro"), AllowedValues: []string{"t3.micro", "t3.small", "t3.large"}},
			{Name: "StorageGB", Type: model.ParameterTypeInteger, Default: strPtr("20")},
			{Name: "Owner", Type: model.ParameterTypeString},
		},
	}
}

func TestBindMergesOverridesWithDefaults(t *testing.T) {
	params, err := Bind(bindSchema(), map[string]string{
		"Environment":  "prod",
		"InstanceType": "t3.large",
	})

	require.NoError(t, err)
	assert.Equal(t, "prod", params.Raw("Environment"))
	assert.Equal(t, "t3.large", params.Raw("InstanceType"))
	// Defaults fill the gaps.
	assert.Equal(t, "20", params.Raw("StorageGB"))
	// Optional parameter without default or override stays unbound.
	_, bound := params.Value("Owner")
	assert.False(t, bound)
}

func TestBindProducesTypedValues(t *testing.T) {
	params, err := Bind(bindSchema(), map[string]string{
		"Environment": "dev",
		"StorageGB":   "100",
	})

	require.NoError(t, err)

	storage, bound := params.Value("StorageGB")
	require.True(t, bound)
	assert.Equal(t, model.ValueInteger, storage.Kind)
	n, ok := storage.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(100), n)

	instance, bound := params.Value("InstanceType")
	require.True(t, bound)
	assert.Equal(t, model.ValueEnum, instance.Kind)
}

func TestBindPreservesDeclarationOrder(t *testing.T) {
	params, err := Bind(bindSchema(), map[string]string{"Environment": "dev"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Environment", "InstanceType", "StorageGB"}, params.Names())
}

func TestBindMissingRequiredParameter(t *testing.T) {
	_, err := Bind(bindSchema(), nil)

	var missing *MissingRequiredParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Environment", missing.Name)
}

func TestBindRejectsUnknownOverride(t *testing.T) {
	_, err := Bind(bindSchema(), map[string]string{
		"Environment":  "dev",
		"InstanceSize": "t3.micro",
	})

	var unknown *UnknownParameterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "InstanceSize", unknown.Name)
}

func TestBindRejectsNonIntegerValue(t *testing.T) {
	_, err := Bind(bindSchema(), map[string]string{
		"Environment": "dev",
		"StorageGB":   "lots",
	})

	var invalid *InvalidParameterTypeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "StorageGB", invalid.Name)
	assert.Equal(t, "lots", invalid.Value)
}

func TestBindRejectsEnumOutsideAllowedValues(t *testing.T) {
	_, err := Bind(bindSchema(), map[string]string{
		"Environment":  "dev",
		"InstanceType": "m5.24xlarge",
	})

	var invalid *InvalidParameterValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "InstanceType", invalid.Name)
	assert.Equal(t, []string{"t3.micro", "t3.small", "t3.large"}, invalid.Allowed)
}

func TestBindDoesNotMutateInputs(t *testing.T) {
	schema := bindSchema()
	overrides := map[string]string{"Environment": "dev"}

	_, err := Bind(schema, overrides)

	require.NoError(t, err)
	assert.Len(t, overrides, 1)
	assert.Equal(t, 4, len(schema.Parameters))
}
