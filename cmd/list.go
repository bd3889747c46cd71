/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List deployed stacks",
	Long: `List every stack visible in the configured AWS account and region,
with its current status and creation time. Deleted stacks are omitted.

Examples:
  stackpilot list
  stackpilot list --region eu-west-1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cp, err := getControlPlane(cmd)
		if err != nil {
			return err
		}

		stacks, err := cp.ListStacks(ctx)
		if err != nil {
			return fmt.Errorf("failed to list stacks: %w", err)
		}

		fmt.Print(getStyles().FormatStackList(stacks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
