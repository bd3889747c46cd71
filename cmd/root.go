/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackpilot",
	Short: "Guardrailed CloudFormation provisioning with cost estimates",
	Long: `Stackpilot provisions AWS CloudFormation stacks from a curated template
catalogue with guardrails built in:

• Declared parameter contracts with type and allowed-value validation
• A monthly cost estimate shown before anything is provisioned
• Confirmation prompts ahead of every change
• Progress reporting while the control plane converges
• Explicit confirmation required for destructive operations

Use stackpilot to estimate, deploy, update, and delete CloudFormation stacks
without ever submitting a change sight unseen.`,

	SilenceUsage: true,
}

// RootCmd returns the base command for execution by main
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region (overrides environment)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile (overrides environment)")
	rootCmd.PersistentFlags().String("templates-dir", "", "template catalogue directory (overrides environment)")
}
