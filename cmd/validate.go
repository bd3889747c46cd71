/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/resolve"
	"github.com/stackpilot/stackpilot/internal/template"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <template>",
	Short: "Validate a catalogue template against CloudFormation",
	Long: `Validate a catalogue template without deploying anything.

The template's parameter contract is checked locally, the body is rendered
with the given parameters, and the result is submitted to CloudFormation's
template validation endpoint.

Examples:
  stackpilot validate web-app
  stackpilot validate web-app --param InstanceType=t3.small`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateName := args[0]
		ctx := cmd.Context()

		r, err := getResolver(cmd)
		if err != nil {
			return err
		}
		schema, err := r.Resolve(templateName)
		if err != nil {
			return err
		}

		pairs, _ := cmd.Flags().GetStringArray("param")
		overrides, err := parseParams(pairs)
		if err != nil {
			return err
		}

		params, err := resolve.Bind(schema, overrides)
		if err != nil {
			return err
		}

		variables := make(map[string]interface{})
		for name, value := range params.StringMap() {
			variables[name] = value
		}
		body, err := template.NewSprigProcessor().Process(schema.Body, variables)
		if err != nil {
			return err
		}

		cp, err := getControlPlane(cmd)
		if err != nil {
			return err
		}
		if err := cp.ValidateTemplate(ctx, body); err != nil {
			return fmt.Errorf("template %s failed validation: %w", templateName, err)
		}

		fmt.Printf("Template %s is valid\n", templateName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringArray("param", nil, "parameter override as key=value (repeatable)")
}
