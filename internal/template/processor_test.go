/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSubstitutesVariables(t *testing.T) {
	body := "InstanceType: {{ .InstanceType }}\nEnvironment: {{ .Environment }}\n"

	result, err := NewSprigProcessor().Process(body, map[string]interface{}{
		"InstanceType": "t3.micro",
		"Environment":  "prod",
	})

	require.NoError(t, err)
	assert.Contains(t, result, "InstanceType: t3.micro")
	assert.Contains(t, result, "Environment: prod")
}

func TestProcessSupportsSprigFunctions(t *testing.T) {
	body := "Name: {{ .Name | upper }}\n"

	result, err := NewSprigProcessor().Process(body, map[string]interface{}{"Name": "web-app"})

	require.NoError(t, err)
	assert.Contains(t, result, "Name: WEB-APP")
}

func TestProcessPassesPlainBodiesThrough(t *testing.T) {
	body := "AWSTemplateFormatVersion: '2010-09-09'\n"

	result, err := NewSprigProcessor().Process(body, nil)

	require.NoError(t, err)
	assert.Equal(t, body, result)
}

func TestProcessReportsParseErrors(t *testing.T) {
	_, err := NewSprigProcessor().Process("{{ .Unclosed", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template body")
}
