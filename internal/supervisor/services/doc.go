// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package services provides suture.Service wrappers for Almareport components.

Each wrapper implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService translates the blocking ListenAndServe of *http.Server into
Serve, and performs a graceful Shutdown bounded by server.shutdown_timeout
when the supervisor cancels its context.
*/
package services
