// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package config

import (
	"fmt"
	"regexp"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAlma(); err != nil {
		return err
	}

	if err := c.validateSecrets(); err != nil {
		return err
	}

	if err := c.validateTimeoutBudget(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateTimeoutBudget requires the response deadline to outlast one
// secret lookup plus one Alma call.
func (c *Config) validateTimeoutBudget() error {
	budget := c.Alma.Timeout + c.Secrets.Timeout
	if c.Server.WriteTimeout <= budget {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT (%s) must exceed ALMA_TIMEOUT + SECRETS_TIMEOUT (%s)",
			c.Server.WriteTimeout, budget)
	}
	return nil
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be positive")
	}
	return nil
}

// validHeadingAttributes defines the supported column heading conventions
var validHeadingAttributes = map[string]bool{
	HeadingColumnHeading: true,
	HeadingType:          true,
}

// validateAlma validates the outbound Alma API configuration
func (c *Config) validateAlma() error {
	if c.Alma.BaseURL != "" {
		if err := validateBaseURL(c.Alma.BaseURL, "ALMA_BASE_URL"); err != nil {
			return err
		}
	}
	if c.Alma.Limit < 1 || c.Alma.Limit > 1000 {
		return fmt.Errorf("ALMA_LIMIT must be between 1 and 1000")
	}
	if !validHeadingAttributes[c.Alma.HeadingAttribute] {
		return fmt.Errorf("ALMA_HEADING_ATTRIBUTE must be one of: %s, %s", HeadingColumnHeading, HeadingType)
	}
	if c.Alma.Timeout <= 0 {
		return fmt.Errorf("ALMA_TIMEOUT must be positive")
	}
	return c.validateCircuitBreaker()
}

// validateCircuitBreaker validates breaker tuning (only if enabled)
func (c *Config) validateCircuitBreaker() error {
	cb := c.Alma.CircuitBreaker
	if !cb.Enabled {
		return nil
	}
	if cb.MinRequests == 0 {
		return fmt.Errorf("ALMA_CIRCUIT_BREAKER_MIN_REQUESTS must be at least 1")
	}
	if cb.FailureRatio <= 0 || cb.FailureRatio > 1 {
		return fmt.Errorf("ALMA_CIRCUIT_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if cb.OpenTimeout <= 0 {
		return fmt.Errorf("ALMA_CIRCUIT_BREAKER_OPEN_TIMEOUT must be positive")
	}
	return nil
}

// keyVaultNamePattern matches Azure Key Vault naming rules (3-24 chars, alphanumeric and dashes)
var keyVaultNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]{1,22}[a-zA-Z0-9]$`)

// validateSecrets validates the secret store selection
func (c *Config) validateSecrets() error {
	if c.Secrets.Timeout <= 0 {
		return fmt.Errorf("SECRETS_TIMEOUT must be positive")
	}

	switch c.Secrets.Provider {
	case ProviderKeyVault:
		if c.Secrets.KeyVault.Name == "" {
			return fmt.Errorf("KEY_VAULT_NAME is required when SECRETS_PROVIDER=%s", ProviderKeyVault)
		}
		if !keyVaultNamePattern.MatchString(c.Secrets.KeyVault.Name) {
			return fmt.Errorf("KEY_VAULT_NAME %q is not a valid Key Vault name", c.Secrets.KeyVault.Name)
		}
	case ProviderAWS:
		// Region may come from the SDK default chain (AWS_REGION, shared config)
	case ProviderStatic:
		if len(c.Secrets.Static) == 0 {
			return fmt.Errorf("STATIC_SECRETS must contain at least one entry when SECRETS_PROVIDER=%s", ProviderStatic)
		}
	default:
		return fmt.Errorf("SECRETS_PROVIDER must be one of: %s, %s, %s", ProviderKeyVault, ProviderAWS, ProviderStatic)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
