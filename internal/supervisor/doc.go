// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package supervisor provides process supervision for Almareport using suture v4.

	RootSupervisor ("almareport")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with backoff. Once FailureThreshold failures
accumulate (decaying at FailureDecay per second) the supervisor waits
FailureBackoff before the next restart.

Supervisor events go to slog through sutureslog. main passes
logging.NewSlogLogger() so they land in the same zerolog stream as
everything else.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor tree exited")
	}
*/
package supervisor
