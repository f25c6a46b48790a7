// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

// Package main is the entry point for the Almareport server.
//
// Almareport accepts {path, iz, region} report requests over HTTP, reads the
// institution's Alma API key from the configured secret store, runs the
// Analytics report against the regional Alma API and returns the rows as JSON.
//
// # Startup
//
//  1. Flags: --config, --log-level, --port (spf13/pflag)
//  2. Configuration: defaults, YAML file, environment (Koanf v2)
//  3. Logging: zerolog, plus an slog bridge for the supervisor
//  4. Secret provider: Azure Key Vault, AWS Secrets Manager or static map.
//     A provider that fails to initialize is logged and the server still
//     starts; report requests then fail with CONFIGURATION_ERROR and
//     /health/ready reports not_ready.
//  5. Alma fetcher and chi router
//  6. Supervisor tree with the HTTP server service
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server stops
// accepting connections and waits up to server.shutdown_timeout for
// in-flight report requests.
package main
