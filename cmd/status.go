/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/aws"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <stack-name>",
	Short: "Show the current state of a stack",
	Long: `Show the current status, timestamps and parameters of a deployed stack.

The stack remains queryable by name even when a deployment was abandoned
locally; status always reflects what the control plane reports now.

Examples:
  stackpilot status web-app-prod`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stackName := args[0]
		ctx := cmd.Context()

		cp, err := getControlPlane(cmd)
		if err != nil {
			return err
		}

		stack, err := cp.GetStack(ctx, stackName)
		if err != nil {
			if aws.IsStackNotFound(err) {
				return fmt.Errorf("stack %s does not exist", stackName)
			}
			return fmt.Errorf("failed to describe stack %s: %w", stackName, err)
		}

		fmt.Print(getStyles().FormatStackStatus(stack))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
