/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package config loads runtime settings from STACKPILOT_* environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings for stackpilot
type Config struct {
	// Region is the AWS region from STACKPILOT_REGION.
	Region string `env:"STACKPILOT_REGION"`
	// Profile is the AWS shared-config profile from STACKPILOT_PROFILE.
	Profile string `env:"STACKPILOT_PROFILE"`
	// TemplatesDir is the template catalogue directory from STACKPILOT_TEMPLATES_DIR.
	TemplatesDir string `env:"STACKPILOT_TEMPLATES_DIR" envDefault:"templates"`
	// PollInterval is the stack polling interval from STACKPILOT_POLL_INTERVAL.
	PollInterval time.Duration `env:"STACKPILOT_POLL_INTERVAL" envDefault:"5s"`
	// DeployTimeout bounds how long a deployment is observed, from STACKPILOT_DEPLOY_TIMEOUT.
	DeployTimeout time.Duration `env:"STACKPILOT_DEPLOY_TIMEOUT" envDefault:"5m"`
	// PricingTimeout bounds each live pricing lookup, from STACKPILOT_PRICING_TIMEOUT.
	PricingTimeout time.Duration `env:"STACKPILOT_PRICING_TIMEOUT" envDefault:"10s"`
	// BackoffBase seeds transient-retry backoff, from STACKPILOT_BACKOFF_BASE.
	BackoffBase time.Duration `env:"STACKPILOT_BACKOFF_BASE" envDefault:"500ms"`
	// BackoffCeiling caps transient-retry backoff, from STACKPILOT_BACKOFF_CEILING.
	BackoffCeiling time.Duration `env:"STACKPILOT_BACKOFF_CEILING" envDefault:"30s"`
	// MaxRetries bounds consecutive transient retries, from STACKPILOT_MAX_RETRIES.
	MaxRetries int `env:"STACKPILOT_MAX_RETRIES" envDefault:"5"`
	// LogLevel is the zap level name from STACKPILOT_LOG_LEVEL.
	LogLevel string `env:"STACKPILOT_LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first without overriding variables already set.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.DeployTimeout <= 0 {
		return fmt.Errorf("deploy timeout must be positive, got %s", c.DeployTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}
