/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackpilot/stackpilot/internal/deploy"
	"github.com/stackpilot/stackpilot/internal/prompt"
	"github.com/stackpilot/stackpilot/internal/resolve"
	"github.com/stackpilot/stackpilot/internal/template"
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy <template> <stack-name>",
	Short: "Deploy a stack from a catalogue template",
	Long: `Deploy a CloudFormation stack from a catalogue template with the cost
guardrail applied.

Before anything is submitted, the command binds your parameters against the
template's declared contract, shows the projected monthly cost, and prompts
for confirmation. Only after you confirm is the change handed to the control
plane, after which progress is reported until the stack reaches a terminal
state.

Use --update to change an existing stack instead of creating a new one.
Creating a stack whose name already exists is rejected.

Examples:
  stackpilot deploy web-app web-app-dev
  stackpilot deploy web-app web-app-prod --param InstanceType=t3.large
  stackpilot deploy web-app web-app-prod --update --param InstanceType=m5.large
  stackpilot deploy web-app web-app-ci --yes --timeout 10m`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateName, stackName := args[0], args[1]
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

		// Render the body with the bound parameters before submission.
		variables := make(map[string]interface{})
		for name, value := range params.StringMap() {
			variables[name] = value
		}
		body, err := template.NewSprigProcessor().Process(schema.Body, variables)
		if err != nil {
			return err
		}

		// Cost guardrail: the estimate is always shown before the prompt.
		e, err := getEstimator(cmd)
		if err != nil {
			return err
		}
		estimate, err := e.Estimate(ctx, schema, params)
		if err != nil {
			return fmt.Errorf("failed to estimate cost for template %s: %w", templateName, err)
		}
		fmt.Print(getStyles().FormatEstimate(estimate))

		assumeYes, _ := cmd.Flags().GetBool("yes")
		if !assumeYes {
			confirmed, err := prompt.Confirm(fmt.Sprintf("Deploy stack %s from template %s?", stackName, templateName))
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Deployment cancelled")
				return nil
			}
		}

		kind := deploy.OperationCreate
		if update, _ := cmd.Flags().GetBool("update"); update {
			kind = deploy.OperationUpdate
		}

		o, err := getOrchestrator(cmd)
		if err != nil {
			return err
		}

		op, err := o.Submit(ctx, deploy.SubmitInput{
			Kind:         kind,
			StackName:    stackName,
			Schema:       schema,
			Params:       params,
			TemplateBody: body,
		})
		if err != nil {
			return fmt.Errorf("failed to submit deployment of stack %s: %w", stackName, err)
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
			return fmt.Errorf("deployment of stack %s finished with status %s", stackName, result.Status)
		}
		return nil
	},
}

// awaitWithProgress drives an operation to a terminal state, printing each
// progress event without ever blocking the polling loop
func awaitWithProgress(cmd *cobra.Command, o *deploy.Orchestrator, op *deploy.Operation, timeout time.Duration) (*deploy.TerminalResult, error) {
	sink := deploy.NewBufferedSink(func(event deploy.ProgressEvent) {
		fmt.Println(getStyles().FormatProgress(event))
	}, 64)

	result, err := o.Await(cmd.Context(), op, timeout, sink)
	sink.Close()
	if err != nil {
		return nil, fmt.Errorf("failed awaiting stack %s: %w", op.Name, err)
	}
	return result, nil
}

func init() {
	rootCmd.AddCommand(deployCmd)
	deployCmd.Flags().StringArray("param", nil, "parameter override as key=value (repeatable)")
	deployCmd.Flags().Bool("update", false, "update an existing stack instead of creating one")
	deployCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	deployCmd.Flags().Duration("timeout", 0, "how long to observe the deployment (default from environment)")
}
