// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tomtom215/almareport/internal/alma"
	"github.com/tomtom215/almareport/internal/api"
	"github.com/tomtom215/almareport/internal/config"
	"github.com/tomtom215/almareport/internal/logging"
	"github.com/tomtom215/almareport/internal/metrics"
	"github.com/tomtom215/almareport/internal/secrets"
	"github.com/tomtom215/almareport/internal/supervisor"
	"github.com/tomtom215/almareport/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options holds command-line overrides. Zero values leave the loaded
// configuration untouched.
type options struct {
	configPath string
	logLevel   string
	port       int
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("almareport", pflag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to config.yaml (default: CONFIG_PATH or ./config.yaml)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level override: trace, debug, info, warn, error")
	fs.IntVarP(&opts.port, "port", "p", 0, "HTTP listen port override")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// applyFlags overlays the flag values on cfg and re-validates it.
func applyFlags(cfg *config.Config, opts options) error {
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	return cfg.Validate()
}

// newHTTPServer wires the report fetcher into the chi router.
func newHTTPServer(cfg *config.Config, fetcher api.ReportFetcher) *http.Server {
	handler := api.NewHandler(fetcher, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromOrigins(cfg.Server.CORSOrigins))

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid command line")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := applyFlags(cfg, opts); err != nil {
		logging.Fatal().Err(err).Msg("Invalid command line override")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("secrets_provider", cfg.Secrets.Provider).
		Str("heading_attribute", cfg.Alma.HeadingAttribute).
		Bool("circuit_breaker", cfg.Alma.CircuitBreaker.Enabled).
		Msg("Starting Almareport")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Requests fail with a configuration error until the provider is fixed.
	provider, err := secrets.New(ctx, cfg.Secrets)
	if err != nil {
		logging.Error().Err(err).Msg("Secret provider unavailable, report requests will fail")
	}

	fetcher := alma.NewFetcher(cfg.Alma, provider)
	server := newHTTPServer(cfg, fetcher)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Str("version", version).Msg("Almareport stopped")
}
