/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	expected := []string{"deploy", "delete", "estimate", "list", "status", "templates", "validate"}

	registered := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %s should be registered", name)
	}
}

func TestRootCmdGlobalFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("region"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("profile"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("templates-dir"))
}

func TestParseParams(t *testing.T) {
	overrides, err := parseParams([]string{"InstanceType=t3.micro", "Environment=prod"})

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		"InstanceType": "t3.micro",
		"Environment":  "prod",
	}, overrides)
}

func TestParseParamsRejectsMalformedPairs(t *testing.T) {
	for _, pair := range []string{"InstanceType", "=t3.micro", ""} {
		_, err := parseParams([]string{pair})
		assert.Error(t, err, "pair %q should be rejected", pair)
	}
}

func TestParseParamsKeepsEqualsInValue(t *testing.T) {
	overrides, err := parseParams([]string{"Expression=a=b"})

	assert.NoError(t, err)
	assert.Equal(t, "a=b", overrides["Expression"])
}
