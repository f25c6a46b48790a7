// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package secrets

import (
	"context"
	"fmt"
)

// StaticProvider serves secrets from an in-memory map.
// It backs local development and tests.
type StaticProvider struct {
	values map[string]string
}

// NewStaticProvider copies values so later changes to the caller's map are not observed.
func NewStaticProvider(values map[string]string) *StaticProvider {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticProvider{values: copied}
}

// Name returns "static".
func (p *StaticProvider) Name() string {
	return "static"
}

// GetSecret returns the configured value for name.
func (p *StaticProvider) GetSecret(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	value, ok := p.values[name]
	if !ok {
		return "", fmt.Errorf("static secrets: %s: %w", name, ErrSecretNotFound)
	}
	if value == "" {
		return "", fmt.Errorf("static secrets: %s: %w", name, ErrEmptySecret)
	}
	return value, nil
}
