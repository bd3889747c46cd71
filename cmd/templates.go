/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates available in the catalogue",
	Long: `List every template in the catalogue together with its parameter
contract: each parameter's type, whether it is required, and its default.

Examples:
  stackpilot templates
  stackpilot templates --templates-dir ./infra/templates`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := getResolver(cmd)
		if err != nil {
			return err
		}

		schemas, err := r.List()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		fmt.Print(getStyles().FormatTemplates(schemas))
		return nil
	},
}

// templatesShowCmd represents the templates show command
var templatesShowCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Show one template's full parameter and resource contract",
	Long: `Show a single template in detail: every parameter with its type,
default, allowed values and description, plus the resources the cost
estimate covers.

Examples:
  stackpilot templates show web-app`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := getResolver(cmd)
		if err != nil {
			return err
		}

		schema, err := r.Resolve(args[0])
		if err != nil {
			return err
		}

		fmt.Print(getStyles().FormatTemplateDetail(schema))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesShowCmd)
}
