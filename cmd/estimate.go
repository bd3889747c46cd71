/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/resolve"
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <template>",
	Short: "Project the monthly cost of a template before deploying it",
	Long: `Estimate the recurring monthly cost of instantiating a template with the
given parameters, without touching the control plane.

Live AWS Pricing API rates are used where available; when a lookup fails or
is ambiguous, a built-in price table takes over and the estimate is labelled
STATIC_FALLBACK. An estimate is always produced.

Examples:
  stackpilot estimate web-app
  stackpilot estimate web-app --param InstanceType=t3.large
  stackpilot estimate data-lake --param StorageGB=500`,
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

		e, err := getEstimator(cmd)
		if err != nil {
			return err
		}
		estimate, err := e.Estimate(ctx, schema, params)
		if err != nil {
			return fmt.Errorf("failed to estimate cost for template %s: %w", templateName, err)
		}

		fmt.Print(getStyles().FormatEstimate(estimate))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().StringArray("param", nil, "parameter override as key=value (repeatable)")
}
