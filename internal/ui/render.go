/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/cost"
	"github.com/stackpilot/stackpilot/internal/deploy"
	"github.com/stackpilot/stackpilot/internal/model"
)

// FormatEstimate renders a cost estimate as a line-item table with the
// monthly total, source tag and assumptions. Amounts are rounded to cents
// for display only.
func (s *Styles) FormatEstimate(estimate *cost.Estimate) string {
	var output strings.Builder

	output.WriteString(s.Title.Render(fmt.Sprintf("Cost estimate: %s", estimate.Template)))
	output.WriteString("\n\n")

	idWidth, kindWidth := len("RESOURCE"), len("KIND")
	for _, item := range estimate.Items {
		if len(item.LogicalID) > idWidth {
			idWidth = len(item.LogicalID)
		}
		if len(item.Kind) > kindWidth {
			kindWidth = len(item.Kind)
		}
	}

	header := fmt.Sprintf("  %-*s  %-*s  %12s  %10s  %9s  %s",
		idWidth, "RESOURCE", kindWidth, "KIND", "UNIT PRICE", "MONTHLY", "SOURCE", "DETAIL")
	output.WriteString(s.Bold.Render(header))
	output.WriteString("\n")

	for _, item := range estimate.Items {
		row := fmt.Sprintf("  %-*s  %-*s  %12s  %10s  %9s  %s",
			idWidth, item.LogicalID,
			kindWidth, item.Kind,
			formatUnitPrice(item.UnitPrice, item.Unit),
			formatMoney(item.Monthly),
			item.Source,
			item.Detail)
		output.WriteString(row)
		output.WriteString("\n")
	}

	output.WriteString("\n")
	total := fmt.Sprintf("Total: %s %s/month", formatMoney(estimate.TotalMonthly), estimate.Currency)
	output.WriteString(s.Bold.Render(total))
	output.WriteString(s.Subtle.Render(fmt.Sprintf("  (pricing: %s)", estimate.Source)))
	output.WriteString("\n")

	if len(estimate.Assumptions) > 0 {
		output.WriteString("\nAssumptions:\n")
		for _, assumption := range estimate.Assumptions {
			output.WriteString(s.Subtle.Render(fmt.Sprintf("  - %s", assumption)))
			output.WriteString("\n")
		}
	}

	return output.String()
}

// FormatStackList renders a one-line-per-stack listing
func (s *Styles) FormatStackList(stacks []*aws.Stack) string {
	if len(stacks) == 0 {
		return "No stacks found\n"
	}

	var output strings.Builder

	nameWidth := len("NAME")
	for _, stack := range stacks {
		if len(stack.Name) > nameWidth {
			nameWidth = len(stack.Name)
		}
	}

	output.WriteString(s.Bold.Render(fmt.Sprintf("%-*s  %-24s  %s", nameWidth, "NAME", "STATUS", "CREATED")))
	output.WriteString("\n")

	for _, stack := range stacks {
		created := ""
		if stack.CreatedTime != nil {
			created = formatTime(*stack.CreatedTime)
		}
		output.WriteString(fmt.Sprintf("%-*s  %-24s  %s\n", nameWidth, stack.Name, stack.Status, created))
	}

	return output.String()
}

// FormatStackStatus renders the detail view of a single stack
func (s *Styles) FormatStackStatus(stack *aws.Stack) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s %s\n", s.Key.Render("Stack:"), stack.Name))
	output.WriteString(fmt.Sprintf("%s %s\n", s.Key.Render("Status:"), stack.Status))
	if stack.StatusReason != "" {
		output.WriteString(fmt.Sprintf("%s %s\n", s.Key.Render("Reason:"), stack.StatusReason))
	}
	if stack.CreatedTime != nil {
		output.WriteString(fmt.Sprintf("%s %s\n", s.Key.Render("Created:"), formatTime(*stack.CreatedTime)))
	}
	if stack.UpdatedTime != nil {
		output.WriteString(fmt.Sprintf("%s %s\n", s.Key.Render("Updated:"), formatTime(*stack.UpdatedTime)))
	}
	if stack.Description != "" {
		output.WriteString(fmt.Sprintf("%s %s\n", s.Key.Render("Description:"), stack.Description))
	}

	if len(stack.Parameters) > 0 {
		output.WriteString("\nParameters:\n")
		writeKeyValueMap(&output, stack.Parameters)
	}

	return output.String()
}

// FormatTemplates renders the template catalogue listing
func (s *Styles) FormatTemplates(schemas []*model.TemplateSchema) string {
	if len(schemas) == 0 {
		return "No templates found\n"
	}

	var output strings.Builder
	for _, schema := range schemas {
		output.WriteString(s.Bold.Render(schema.Name))
		if schema.Description != "" {
			output.WriteString(s.Subtle.Render(fmt.Sprintf("  %s", schema.Description)))
		}
		output.WriteString("\n")
		for _, spec := range schema.Parameters {
			line := fmt.Sprintf("  %s (%s", spec.Name, spec.Type)
			if spec.Required {
				line += ", required"
			}
			if spec.HasDefault() {
				line += fmt.Sprintf(", default %s", *spec.Default)
			}
			line += ")"
			output.WriteString(line)
			output.WriteString("\n")
		}
	}
	return output.String()
}

// FormatTemplateDetail renders the full contract of a single template,
// including allowed values and the resources the estimate will cover
func (s *Styles) FormatTemplateDetail(schema *model.TemplateSchema) string {
	var output strings.Builder

	output.WriteString(s.Title.Render(schema.Name))
	output.WriteString("\n")
	if schema.Description != "" {
		output.WriteString(schema.Description)
		output.WriteString("\n")
	}

	if len(schema.Parameters) > 0 {
		output.WriteString("\nParameters:\n")
		for _, spec := range schema.Parameters {
			line := fmt.Sprintf("  %s (%s", s.Key.Render(spec.Name), spec.Type)
			if spec.Required {
				line += ", required"
			}
			if spec.HasDefault() {
				line += fmt.Sprintf(", default %s", *spec.Default)
			}
			line += ")"
			output.WriteString(line)
			output.WriteString("\n")
			if spec.Description != "" {
				output.WriteString(s.Subtle.Render(fmt.Sprintf("    %s", spec.Description)))
				output.WriteString("\n")
			}
			if len(spec.AllowedValues) > 0 {
				output.WriteString(s.Subtle.Render(fmt.Sprintf("    allowed: %s", strings.Join(spec.AllowedValues, ", "))))
				output.WriteString("\n")
			}
		}
	}

	if len(schema.Resources) > 0 {
		output.WriteString("\nResources:\n")
		for _, resource := range schema.Resources {
			output.WriteString(fmt.Sprintf("  %s (%s)\n", s.Key.Render(resource.LogicalID), resource.Kind))
			keys := make([]string, 0, len(resource.CostAttributes))
			for key := range resource.CostAttributes {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				output.WriteString(s.Subtle.Render(fmt.Sprintf("    %s: %s", key, resource.CostAttributes[key])))
				output.WriteString("\n")
			}
		}
	}

	return output.String()
}

// FormatProgress renders one progress event as a single line
func (s *Styles) FormatProgress(event deploy.ProgressEvent) string {
	elapsed := event.Elapsed.Round(time.Second)
	if event.Kind == deploy.EventStateChange {
		return fmt.Sprintf("[%s] %s", elapsed, s.Bold.Render(event.RemoteStatus))
	}
	return s.Subtle.Render(fmt.Sprintf("[%s] %s", elapsed, event.RemoteStatus))
}

// FormatResult renders the terminal outcome of an operation
func (s *Styles) FormatResult(stackName string, result *deploy.TerminalResult) string {
	var output strings.Builder

	status := s.StatusStyle(string(result.Status)).Render(string(result.Status))
	output.WriteString(fmt.Sprintf("Stack %s: %s (%s)\n", stackName, status, result.Elapsed.Round(time.Second)))
	if result.Reason != "" {
		output.WriteString(fmt.Sprintf("%s %s\n", s.Key.Render("Reason:"), result.Reason))
	}

	return output.String()
}

// formatMoney rounds to cents for display; internal figures stay exact
func formatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// formatUnitPrice keeps more precision than display money because unit
// rates are often fractions of a cent
func formatUnitPrice(price decimal.Decimal, unit string) string {
	return fmt.Sprintf("$%s/%s", price.StringFixed(6), unit)
}

// formatTime formats time in a human-readable format
func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05 MST")
}

// writeKeyValueMap writes a sorted map as key-value pairs with indentation
func writeKeyValueMap(output *strings.Builder, m map[string]string) {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(output, "  %s: %s\n", key, m[key])
	}
}
