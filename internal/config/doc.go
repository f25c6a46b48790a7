// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package config provides centralized configuration management for Almareport.

Configuration is loaded once at startup and is immutable afterwards. The
report handler, the Alma client and the secret providers only ever read it.

# Configuration Sources

Koanf v2 merges three layers, highest priority last:
  - Built-in defaults (defaultConfig)
  - YAML file (--config flag, CONFIG_PATH, ./config.yaml, /etc/almareport/config.yaml)
  - Environment variables (explicit mapping table in envTransformFunc)

# Configuration Structure

  - ServerConfig: inbound HTTP server (host, port, timeouts, CORS, body limit)
  - AlmaConfig: outbound Alma Analytics call (base URL override, row limit,
    column heading convention, timeout, circuit breaker)
  - SecretsConfig: secret store for per-institution API keys
    (keyvault, aws, static)
  - LoggingConfig: zerolog level, format and caller info

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - HTTP_MAX_BODY_BYTES (default 65536)
  - CORS_ORIGINS: comma-separated list

Alma:
  - ALMA_BASE_URL: replaces https://api-{region}.hosted.exlibrisgroup.com[.cn]
  - ALMA_LIMIT (default 1000)
  - ALMA_HEADING_ATTRIBUTE: columnHeading (default) or type
  - ALMA_TIMEOUT (default 60s)
  - ALMA_CIRCUIT_BREAKER_ENABLED, ALMA_CIRCUIT_BREAKER_MIN_REQUESTS,
    ALMA_CIRCUIT_BREAKER_FAILURE_RATIO, ALMA_CIRCUIT_BREAKER_INTERVAL,
    ALMA_CIRCUIT_BREAKER_OPEN_TIMEOUT

Secrets:
  - SECRETS_PROVIDER: keyvault (default), aws, static
  - SECRETS_TIMEOUT (default 10s)
  - KEY_VAULT_NAME: required for keyvault
  - AWS_SECRETS_REGION: optional for aws
  - STATIC_SECRETS: name=value,name=value for static

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default info)
  - LOG_FORMAT: json, console (default json)
  - LOG_CALLER: true/false

# Example config.yaml

	server:
	  port: 8080
	alma:
	  heading_attribute: columnHeading
	  timeout: 45s
	secrets:
	  provider: keyvault
	  keyvault:
	    name: library-kv
	logging:
	  level: debug
	  format: console
*/
package config
