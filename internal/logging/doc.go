// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

// Package logging provides centralized zerolog-based structured logging for Almareport.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from config.LoggingConfig
//   - JSON output for production, console output for development
//   - Context-aware logging that tags every line of a report fetch with
//     request_id, iz and region
//   - An slog adapter so suture's supervisor events land in the same stream
//   - Redaction helpers that keep API keys out of log output
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     cfg.Logging.Level,
//	    Format:    cfg.Logging.Format,
//	    Caller:    cfg.Logging.Caller,
//	    Timestamp: true,
//	})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
//	ctx = logging.ContextWithReport(ctx, req.IZ, req.Region)
//	logging.Ctx(ctx).Info().Int("rows", len(rows)).Msg("Report fetched")
//
// # Secrets
//
// The Alma API key travels in the query string. Never log a raw request URL:
//
//	logging.Ctx(ctx).Debug().Str("url", logging.RedactURL(u)).Msg("Calling Alma")
//
// # Output Formats
//
// JSON Format (Production):
//
//	{"level":"info","service":"almareport","time":"2026-01-03T10:30:00Z","message":"Report fetched","rows":42}
//
// Console Format (Development):
//
//	10:30:00 INF Report fetched rows=42 service=almareport
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
//	var buf bytes.Buffer
//	logging.SetLogger(logging.NewTestLogger(&buf))
package logging
