// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package config

import (
	"fmt"
	"time"
)

// Secret provider names accepted by SecretsConfig.Provider.
const (
	ProviderKeyVault = "keyvault"
	ProviderAWS      = "aws"
	ProviderStatic   = "static"
)

// Heading attribute conventions accepted by AlmaConfig.HeadingAttribute.
const (
	// HeadingColumnHeading reads the saw-sql:columnHeading attribute of each schema element.
	HeadingColumnHeading = "columnHeading"

	// HeadingType reads the unprefixed type attribute of each schema element.
	HeadingType = "type"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Alma    AlmaConfig    `koanf:"alma"`
	Secrets SecretsConfig `koanf:"secrets"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds the inbound HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
//   - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown window (default: 10s)
//   - HTTP_MAX_BODY_BYTES: Maximum accepted request body (default: 64KB)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: none)
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AlmaConfig holds settings for the outbound Alma Analytics API call.
//
// Environment Variables:
//   - ALMA_BASE_URL: Override the region-derived host (e.g. an egress proxy)
//   - ALMA_LIMIT: Row limit sent as the limit query parameter (default: 1000)
//   - ALMA_HEADING_ATTRIBUTE: columnHeading or type (default: columnHeading)
//   - ALMA_TIMEOUT: Bound on the outbound call (default: 60s)
//   - ALMA_CIRCUIT_BREAKER_ENABLED: Fail fast while Alma is down (default: true)
type AlmaConfig struct {
	BaseURL          string               `koanf:"base_url"`
	Limit            int                  `koanf:"limit"`
	HeadingAttribute string               `koanf:"heading_attribute"`
	Timeout          time.Duration        `koanf:"timeout"`
	CircuitBreaker   CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig tunes the breaker wrapped around the Alma API call.
// The breaker never retries; it only rejects calls while open.
type CircuitBreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
	Interval     time.Duration `koanf:"interval"`
	OpenTimeout  time.Duration `koanf:"open_timeout"`
}

// SecretsConfig selects and configures the store holding per-institution API keys.
//
// Environment Variables:
//   - SECRETS_PROVIDER: keyvault, aws or static (default: keyvault)
//   - SECRETS_TIMEOUT: Bound on a single secret lookup (default: 10s)
//   - KEY_VAULT_NAME: Azure Key Vault name, required for the keyvault provider
//   - AWS_SECRETS_REGION: AWS region for the aws provider (falls back to the SDK default chain)
//   - STATIC_SECRETS: name=value pairs for the static provider
type SecretsConfig struct {
	Provider string            `koanf:"provider"`
	Timeout  time.Duration     `koanf:"timeout"`
	KeyVault KeyVaultConfig    `koanf:"keyvault"`
	AWS      AWSSecretsConfig  `koanf:"aws"`
	Static   map[string]string `koanf:"static"`
}

// KeyVaultConfig holds Azure Key Vault settings.
type KeyVaultConfig struct {
	Name string `koanf:"name"`
}

// VaultURL returns the Key Vault endpoint for the configured vault name.
func (k KeyVaultConfig) VaultURL() string {
	return fmt.Sprintf("https://%s.vault.azure.net", k.Name)
}

// AWSSecretsConfig holds AWS Secrets Manager settings.
type AWSSecretsConfig struct {
	Region string `koanf:"region"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using Koanf with layered sources.
// configPath may be empty, in which case CONFIG_PATH and the default paths are searched.
func Load(configPath string) (*Config, error) {
	return LoadWithKoanf(configPath)
}
