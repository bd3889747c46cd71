/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/deploy"
	"github.com/stackpilot/stackpilot/internal/prompt"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <stack-name>",
	Short: "Delete a deployed stack",
	Long: `Delete a CloudFormation stack and all the resources it manages.

Deletion is destructive and cannot be undone, so explicit confirmation is
required before anything is submitted. Progress is reported until the
control plane confirms the stack is gone.

Examples:
  stackpilot delete web-app-dev
  stackpilot delete web-app-ci --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stackName := args[0]
		ctx := cmd.Context()

		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			var err error
			confirmed, err = prompt.Confirm(fmt.Sprintf("Delete stack %s? This cannot be undone.", stackName))
			if err != nil {
				return err
			}
		}
		if !confirmed {
			fmt.Println("Deletion cancelled")
			return nil
		}

		o, err := getOrchestrator(cmd)
		if err != nil {
			return err
		}

		op, err := o.Submit(ctx, deploy.SubmitInput{
			Kind:            deploy.OperationDelete,
			StackName:       stackName,
			DeleteConfirmed: true,
		})
		if err != nil {
			return fmt.Errorf("failed to submit deletion of stack %s: %w", stackName, err)
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		if timeout <= 0 {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			timeout = cfg.DeployTimeout
		}

		result, err := awaitWithProgress(cmd, o, op, timeout)
		if err != nil {
			return err
		}

		fmt.Print(getStyles().FormatResult(stackName, result))
		if result.Status != deploy.StatusComplete {
			return fmt.Errorf("deletion of stack %s finished with status %s", stackName, result.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	deleteCmd.Flags().Duration("timeout", 0, "how long to observe the deletion (default from environment)")
}
