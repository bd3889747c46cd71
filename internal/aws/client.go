/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package aws wraps the AWS SDK clients behind the narrow interfaces the
// rest of stackpilot depends on.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
)

// The Pricing API is only served from a handful of regions; us-east-1 is
// the conventional endpoint regardless of where stacks are deployed.
const pricingRegion = "us-east-1"

// Config holds configuration for creating an AWS client
type Config struct {
	Region  string
	Profile string
}

// Client provides access to the control-plane and pricing operations
type Client struct {
	config  aws.Config
	cfn     *cloudformation.Client
	pricing *pricing.Client
}

// NewClient creates a new AWS client with the specified configuration
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	pricingCfg := awsCfg.Copy()
	pricingCfg.Region = pricingRegion

	return &Client{
		config:  awsCfg,
		cfn:     cloudformation.NewFromConfig(awsCfg),
		pricing: pricing.NewFromConfig(pricingCfg),
	}, nil
}

// Region returns the configured AWS region
func (c *Client) Region() string {
	return c.config.Region
}

// ControlPlane returns the CloudFormation operations wrapper
func (c *Client) ControlPlane() ControlPlaneOperations {
	return NewControlPlaneOperations(c.cfn)
}

// Pricing returns the pricing operations wrapper
func (c *Client) Pricing() PricingOperations {
	return NewPricingOperations(c.pricing)
}
