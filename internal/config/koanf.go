// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/almareport/config.yaml",
	"/etc/almareport/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second, // Must outlast alma.timeout + secrets.timeout
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    64 << 10,
			CORSOrigins:     []string{},
		},
		Alma: AlmaConfig{
			BaseURL:          "", // Derived from the request region
			Limit:            1000,
			HeadingAttribute: HeadingColumnHeading,
			Timeout:          60 * time.Second,
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:      true,
				MinRequests:  10,
				FailureRatio: 0.6,
				Interval:     time.Minute,
				OpenTimeout:  30 * time.Second,
			},
		},
		Secrets: SecretsConfig{
			Provider: ProviderKeyVault,
			Timeout:  10 * time.Second,
			KeyVault: KeyVaultConfig{Name: ""},
			AWS:      AWSSecretsConfig{Region: ""},
			Static:   map[string]string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// An explicit configPath must exist; the default search paths are optional.
func LoadWithKoanf(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// KEY_VAULT_NAME -> secrets.keyvault.name
	// ALMA_TIMEOUT -> alma.timeout
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processMapFields(k); err != nil {
		return nil, fmt.Errorf("failed to process map fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// mapConfigPaths defines which config paths should be parsed as comma-separated key=value pairs
var mapConfigPaths = []string{
	"secrets.static",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// processMapFields converts "a=1,b=2" string values to maps for known map fields.
// Values coming from YAML are already maps and are left alone.
func processMapFields(k *koanf.Koanf) error {
	for _, path := range mapConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parsed := parseMapString(strVal)
		// koanf merges maps, so the string value has to be cleared first.
		k.Delete(path)
		if len(parsed) == 0 {
			continue
		}

		m := make(map[string]interface{}, len(parsed))
		for key, val := range parsed {
			m[key] = val
		}
		if err := k.Set(path, m); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables are skipped so unrelated environment does not pollute config.
//
// Examples:
//   - KEY_VAULT_NAME -> secrets.keyvault.name
//   - HTTP_PORT -> server.port
//   - ALMA_HEADING_ATTRIBUTE -> alma.heading_attribute
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":             "server.host",
		"http_port":             "server.port",
		"http_read_timeout":     "server.read_timeout",
		"http_write_timeout":    "server.write_timeout",
		"http_idle_timeout":     "server.idle_timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",
		"http_max_body_bytes":   "server.max_body_bytes",
		"cors_origins":          "server.cors_origins",

		// Alma mappings
		"alma_base_url":          "alma.base_url",
		"alma_limit":             "alma.limit",
		"alma_heading_attribute": "alma.heading_attribute",
		"alma_timeout":           "alma.timeout",

		"alma_circuit_breaker_enabled":       "alma.circuit_breaker.enabled",
		"alma_circuit_breaker_min_requests":  "alma.circuit_breaker.min_requests",
		"alma_circuit_breaker_failure_ratio": "alma.circuit_breaker.failure_ratio",
		"alma_circuit_breaker_interval":      "alma.circuit_breaker.interval",
		"alma_circuit_breaker_open_timeout":  "alma.circuit_breaker.open_timeout",

		// Secret store mappings
		"secrets_provider":   "secrets.provider",
		"secrets_timeout":    "secrets.timeout",
		"key_vault_name":     "secrets.keyvault.name",
		"aws_secrets_region": "secrets.aws.region",
		"static_secrets":     "secrets.static",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
