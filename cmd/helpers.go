/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/config"
	"github.com/stackpilot/stackpilot/internal/cost"
	"github.com/stackpilot/stackpilot/internal/deploy"
	"github.com/stackpilot/stackpilot/internal/logging"
	"github.com/stackpilot/stackpilot/internal/template"
	"github.com/stackpilot/stackpilot/internal/ui"
)

var (
	// Injection points for testing; nil means build the default.
	resolver     template.Resolver
	controlPlane aws.ControlPlaneOperations
	pricingOps   aws.PricingOperations
	orchestrator *deploy.Orchestrator
	estimator    cost.Estimator

	// registry is shared across every operation in this process so the
	// per-stack-name exclusivity guarantee holds.
	registry = deploy.NewRegistry()

	loadedConfig *config.Config
	logger       *zap.Logger
	styles       *ui.Styles
	awsClient    *aws.Client
)

// SetResolver allows injection of a template resolver (for testing)
func SetResolver(r template.Resolver) {
	resolver = r
}

// SetControlPlane allows injection of control-plane operations (for testing)
func SetControlPlane(cp aws.ControlPlaneOperations) {
	controlPlane = cp
	orchestrator = nil
}

// SetPricing allows injection of pricing operations (for testing)
func SetPricing(p aws.PricingOperations) {
	pricingOps = p
	estimator = nil
}

// SetEstimator allows injection of a cost estimator (for testing)
func SetEstimator(e cost.Estimator) {
	estimator = e
}

// SetOrchestrator allows injection of an orchestrator (for testing)
func SetOrchestrator(o *deploy.Orchestrator) {
	orchestrator = o
}

// getConfig loads environment configuration once per process
func getConfig() (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	loadedConfig = cfg
	return cfg, nil
}

// getLogger builds the shared logger from the configured level
func getLogger() *zap.Logger {
	if logger != nil {
		return logger
	}
	level := "warn"
	if cfg, err := getConfig(); err == nil {
		level = cfg.LogLevel
	}
	logger = logging.New(level)
	return logger
}

// getStyles builds the output styles once, honouring NO_COLOR
func getStyles() *ui.Styles {
	if styles == nil {
		styles = ui.NewStyles(ui.ShouldUseColour())
	}
	return styles
}

// getResolver returns the template resolver, defaulting to the on-disk
// catalogue. The --templates-dir flag overrides the environment.
func getResolver(cmd *cobra.Command) (template.Resolver, error) {
	if resolver != nil {
		return resolver, nil
	}

	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}

	dir := cfg.TemplatesDir
	if flagDir, _ := cmd.Flags().GetString("templates-dir"); flagDir != "" {
		dir = flagDir
	}
	return template.NewDirCatalog(dir), nil
}

// getAWSClient creates the AWS client once, with flags overriding the
// environment for region and profile
func getAWSClient(cmd *cobra.Command) (*aws.Client, error) {
	if awsClient != nil {
		return awsClient, nil
	}

	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if flagRegion, _ := cmd.Flags().GetString("region"); flagRegion != "" {
		region = flagRegion
	}
	profile := cfg.Profile
	if flagProfile, _ := cmd.Flags().GetString("profile"); flagProfile != "" {
		profile = flagProfile
	}

	client, err := aws.NewClient(context.Background(), aws.Config{Region: region, Profile: profile})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS client: %w", err)
	}
	awsClient = client
	return client, nil
}

// getControlPlane returns the control-plane operations
func getControlPlane(cmd *cobra.Command) (aws.ControlPlaneOperations, error) {
	if controlPlane != nil {
		return controlPlane, nil
	}
	client, err := getAWSClient(cmd)
	if err != nil {
		return nil, err
	}
	controlPlane = client.ControlPlane()
	return controlPlane, nil
}

// getOrchestrator returns the deployment orchestrator
func getOrchestrator(cmd *cobra.Command) (*deploy.Orchestrator, error) {
	if orchestrator != nil {
		return orchestrator, nil
	}

	cp, err := getControlPlane(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}

	orchestrator = deploy.NewOrchestrator(cp, registry, getLogger(), deploy.Options{
		PollInterval:        cfg.PollInterval,
		BackoffBase:         cfg.BackoffBase,
		BackoffCeiling:      cfg.BackoffCeiling,
		MaxTransportRetries: cfg.MaxRetries,
	})
	return orchestrator, nil
}

// getEstimator returns the cost estimator. Without AWS credentials the
// engine still works; every lookup falls back to the static table.
func getEstimator(cmd *cobra.Command) (cost.Estimator, error) {
	if estimator != nil {
		return estimator, nil
	}

	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}

	pricing := pricingOps
	if pricing == nil {
		if client, err := getAWSClient(cmd); err == nil {
			pricing = client.Pricing()
		}
	}

	estimator = cost.NewEngine(pricing, getLogger(), cfg.PricingTimeout)
	return estimator, nil
}

// parseParams converts repeated key=value flags into an override map
func parseParams(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}
