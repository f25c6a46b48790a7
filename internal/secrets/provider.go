// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/almareport/internal/config"
)

// apiKeySuffix is appended to the institution code to form the secret name.
const apiKeySuffix = "-ALMA-API-KEY"

var (
	// ErrSecretNotFound is returned when the store has no secret with the requested name.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrEmptySecret is returned when the secret exists but carries no usable value.
	ErrEmptySecret = errors.New("secret has no value")
)

// Provider resolves a named secret from a secret store.
// Implementations must be safe for concurrent use and must not cache values.
type Provider interface {
	// GetSecret returns the current value of the named secret.
	GetSecret(ctx context.Context, name string) (string, error)

	// Name identifies the backing store in logs and metrics (keyvault, aws, static).
	Name() string
}

// SecretName returns the name of the Alma API key secret for an institution.
//
//	SecretName("01UNI_INST") // "01UNI_INST-ALMA-API-KEY"
func SecretName(iz string) string {
	return iz + apiKeySuffix
}

// New builds the Provider selected by cfg.Provider, wrapped with lookup
// timeouts, metrics and logging.
func New(ctx context.Context, cfg config.SecretsConfig) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch cfg.Provider {
	case config.ProviderKeyVault:
		p, err = NewKeyVaultProvider(cfg.KeyVault.VaultURL())
	case config.ProviderAWS:
		p, err = NewAWSProvider(ctx, cfg.AWS.Region)
	case config.ProviderStatic:
		p = NewStaticProvider(cfg.Static)
	default:
		return nil, fmt.Errorf("unknown secrets provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s secrets provider: %w", cfg.Provider, err)
	}

	return Instrument(p, cfg.Timeout), nil
}
