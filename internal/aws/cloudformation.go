/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// StackStatus represents the status of a CloudFormation stack
type StackStatus string

const (
	StackStatusCreateInProgress         StackStatus = "CREATE_IN_PROGRESS"
	StackStatusCreateComplete           StackStatus = "CREATE_COMPLETE"
	StackStatusCreateFailed             StackStatus = "CREATE_FAILED"
	StackStatusDeleteInProgress         StackStatus = "DELETE_IN_PROGRESS"
	StackStatusDeleteComplete           StackStatus = "DELETE_COMPLETE"
	StackStatusDeleteFailed             StackStatus = "DELETE_FAILED"
	StackStatusUpdateInProgress         StackStatus = "UPDATE_IN_PROGRESS"
	StackStatusUpdateComplete           StackStatus = "UPDATE_COMPLETE"
	StackStatusUpdateFailed             StackStatus = "UPDATE_FAILED"
	StackStatusUpdateRollbackInProgress StackStatus = "UPDATE_ROLLBACK_IN_PROGRESS"
	StackStatusUpdateRollbackComplete   StackStatus = "UPDATE_ROLLBACK_COMPLETE"
	StackStatusUpdateRollbackFailed     StackStatus = "UPDATE_ROLLBACK_FAILED"
	StackStatusRollbackInProgress       StackStatus = "ROLLBACK_IN_PROGRESS"
	StackStatusRollbackComplete         StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackFailed           StackStatus = "ROLLBACK_FAILED"
	StackStatusReviewInProgress         StackStatus = "REVIEW_IN_PROGRESS"
)

// IsTerminal reports whether no further transition occurs without a new
// operation being submitted
func (s StackStatus) IsTerminal() bool {
	switch s {
	case StackStatusCreateComplete, StackStatusCreateFailed,
		StackStatusDeleteComplete, StackStatusDeleteFailed,
		StackStatusUpdateComplete, StackStatusUpdateFailed,
		StackStatusUpdateRollbackComplete, StackStatusUpdateRollbackFailed,
		StackStatusRollbackComplete, StackStatusRollbackFailed:
		return true
	}
	return false
}

// IsRollback reports whether the status denotes a reverted operation
func (s StackStatus) IsRollback() bool {
	switch s {
	case StackStatusRollbackInProgress, StackStatusRollbackComplete, StackStatusRollbackFailed,
		StackStatusUpdateRollbackInProgress, StackStatusUpdateRollbackComplete, StackStatusUpdateRollbackFailed:
		return true
	}
	return false
}

// Stack represents a CloudFormation stack with essential information
type Stack struct {
	Name         string
	Status       StackStatus
	StatusReason string
	CreatedTime  *time.Time
	UpdatedTime  *time.Time
	Description  string
	Parameters   map[string]string
}

// StackEvent represents one entry in a stack's per-resource event trail
type StackEvent struct {
	Timestamp            time.Time
	LogicalResourceID    string
	ResourceType         string
	ResourceStatus       string
	ResourceStatusReason string
}

// StackChangeInput contains parameters for creating or updating a stack
type StackChangeInput struct {
	StackName    string
	TemplateBody string
	Parameters   map[string]string
	Capabilities []string
}

// DefaultControlPlaneOperations provides CloudFormation-specific operations
type DefaultControlPlaneOperations struct {
	client CloudFormationAPI
}

// NewControlPlaneOperations creates a new CloudFormation operations wrapper
func NewControlPlaneOperations(client CloudFormationAPI) *DefaultControlPlaneOperations {
	return &DefaultControlPlaneOperations{client: client}
}

// CreateStack submits a stack creation request
func (cp *DefaultControlPlaneOperations) CreateStack(ctx context.Context, input StackChangeInput) error {
	_, err := cp.client.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:    aws.String(input.StackName),
		TemplateBody: aws.String(input.TemplateBody),
		Parameters:   toParameters(input.Parameters),
		Capabilities: toCapabilities(input.Capabilities),
	})
	if err != nil {
		return fmt.Errorf("failed to create stack %s: %w", input.StackName, err)
	}
	return nil
}

// UpdateStack submits a stack update request
func (cp *DefaultControlPlaneOperations) UpdateStack(ctx context.Context, input StackChangeInput) error {
	_, err := cp.client.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(input.StackName),
		TemplateBody: aws.String(input.TemplateBody),
		Parameters:   toParameters(input.Parameters),
		Capabilities: toCapabilities(input.Capabilities),
	})
	if err != nil {
		return fmt.Errorf("failed to update stack %s: %w", input.StackName, err)
	}
	return nil
}

// DeleteStack submits a stack deletion request
func (cp *DefaultControlPlaneOperations) DeleteStack(ctx context.Context, stackName string) error {
	_, err := cp.client.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", stackName, err)
	}
	return nil
}

// GetStack retrieves information about a specific stack
func (cp *DefaultControlPlaneOperations) GetStack(ctx context.Context, stackName string) (*Stack, error) {
	result, err := cp.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}
	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackName)
	}

	cfnStack := result.Stacks[0]
	stack := &Stack{
		Name:         aws.ToString(cfnStack.StackName),
		Status:       StackStatus(cfnStack.StackStatus),
		StatusReason: aws.ToString(cfnStack.StackStatusReason),
		CreatedTime:  cfnStack.CreationTime,
		UpdatedTime:  cfnStack.LastUpdatedTime,
		Description:  aws.ToString(cfnStack.Description),
		Parameters:   make(map[string]string),
	}
	for _, param := range cfnStack.Parameters {
		stack.Parameters[aws.ToString(param.ParameterKey)] = aws.ToString(param.ParameterValue)
	}

	return stack, nil
}

// ListStacks returns all CloudFormation stacks that are not deleted
func (cp *DefaultControlPlaneOperations) ListStacks(ctx context.Context) ([]*Stack, error) {
	var stacks []*Stack
	paginator := cloudformation.NewListStacksPaginator(cp.client, &cloudformation.ListStacksInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stacks: %w", err)
		}

		for _, summary := range page.StackSummaries {
			// Skip deleted stacks
			if summary.StackStatus == types.StackStatusDeleteComplete {
				continue
			}
			stacks = append(stacks, &Stack{
				Name:        aws.ToString(summary.StackName),
				Status:      StackStatus(summary.StackStatus),
				CreatedTime: summary.CreationTime,
				UpdatedTime: summary.LastUpdatedTime,
				Description: aws.ToString(summary.TemplateDescription),
			})
		}
	}

	return stacks, nil
}

// StackExists checks if a stack exists
func (cp *DefaultControlPlaneOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := cp.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if IsStackNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if stack exists: %w", err)
	}
	return true, nil
}

// ValidateTemplate validates a CloudFormation template
func (cp *DefaultControlPlaneOperations) ValidateTemplate(ctx context.Context, templateBody string) error {
	_, err := cp.client.ValidateTemplate(ctx, &cloudformation.ValidateTemplateInput{
		TemplateBody: aws.String(templateBody),
	})
	if err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}
	return nil
}

// DescribeStackEvents returns the stack's event trail, most recent first
func (cp *DefaultControlPlaneOperations) DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error) {
	result, err := cp.client.DescribeStackEvents(ctx, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe events for stack %s: %w", stackName, err)
	}

	events := make([]StackEvent, 0, len(result.StackEvents))
	for _, e := range result.StackEvents {
		event := StackEvent{
			LogicalResourceID:    aws.ToString(e.LogicalResourceId),
			ResourceType:         aws.ToString(e.ResourceType),
			ResourceStatus:       string(e.ResourceStatus),
			ResourceStatusReason: aws.ToString(e.ResourceStatusReason),
		}
		if e.Timestamp != nil {
			event.Timestamp = *e.Timestamp
		}
		events = append(events, event)
	}

	return events, nil
}

func toParameters(params map[string]string) []types.Parameter {
	result := make([]types.Parameter, 0, len(params))
	for key, value := range params {
		result = append(result, types.Parameter{
			ParameterKey:   aws.String(key),
			ParameterValue: aws.String(value),
		})
	}
	return result
}

func toCapabilities(capabilities []string) []types.Capability {
	result := make([]types.Capability, len(capabilities))
	for i, c := range capabilities {
		result[i] = types.Capability(c)
	}
	return result
}
