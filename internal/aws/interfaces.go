/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
)

// CloudFormationAPI defines the subset of the CloudFormation client used by
// stackpilot. This allows for easier testing with mock implementations.
type CloudFormationAPI interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackEvents(ctx context.Context, params *cloudformation.DescribeStackEventsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error)
	ListStacks(ctx context.Context, params *cloudformation.ListStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error)
	ValidateTemplate(ctx context.Context, params *cloudformation.ValidateTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error)
}

// PricingAPI defines the subset of the Pricing client used by stackpilot
type PricingAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Ensure the actual SDK clients implement our interfaces
var _ CloudFormationAPI = (*cloudformation.Client)(nil)
var _ PricingAPI = (*pricing.Client)(nil)

// ControlPlaneOperations is the high-level control-plane surface consumed by
// the deployment orchestrator. It is the only path that performs network I/O
// against CloudFormation.
type ControlPlaneOperations interface {
	CreateStack(ctx context.Context, input StackChangeInput) error
	UpdateStack(ctx context.Context, input StackChangeInput) error
	DeleteStack(ctx context.Context, stackName string) error
	GetStack(ctx context.Context, stackName string) (*Stack, error)
	ListStacks(ctx context.Context) ([]*Stack, error)
	StackExists(ctx context.Context, stackName string) (bool, error)
	ValidateTemplate(ctx context.Context, templateBody string) error
	DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error)
}

// PricingOperations is the high-level pricing surface consumed by the cost
// engine
type PricingOperations interface {
	// FindProducts returns every product matching the given TERM_MATCH
	// attribute filters for an AWS service code
	FindProducts(ctx context.Context, serviceCode string, filters map[string]string, maxResults int32) ([]Product, error)
}

var _ ControlPlaneOperations = (*DefaultControlPlaneOperations)(nil)
var _ PricingOperations = (*DefaultPricingOperations)(nil)
