// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// keyVaultClient is the subset of *azsecrets.Client used by KeyVaultProvider.
type keyVaultClient interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// KeyVaultProvider reads secrets from Azure Key Vault.
// Credentials come from azidentity.DefaultAzureCredential: environment
// variables, workload identity, managed identity or the Azure CLI login.
type KeyVaultProvider struct {
	client   keyVaultClient
	vaultURL string
}

// NewKeyVaultProvider creates a provider for the vault at vaultURL
// (https://{name}.vault.azure.net).
func NewKeyVaultProvider(vaultURL string) (*KeyVaultProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("key vault client for %s: %w", vaultURL, err)
	}

	return newKeyVaultProviderWithClient(client, vaultURL), nil
}

// newKeyVaultProviderWithClient injects a client; tests use it with fakes.
func newKeyVaultProviderWithClient(client keyVaultClient, vaultURL string) *KeyVaultProvider {
	return &KeyVaultProvider{client: client, vaultURL: vaultURL}
}

// Name returns "keyvault".
func (p *KeyVaultProvider) Name() string {
	return "keyvault"
}

// GetSecret fetches the latest version of the named secret.
func (p *KeyVaultProvider) GetSecret(ctx context.Context, name string) (string, error) {
	// Empty version selects the latest
	resp, err := p.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("key vault %s: %s: %w", p.vaultURL, name, ErrSecretNotFound)
		}
		return "", fmt.Errorf("key vault %s: get %s: %w", p.vaultURL, name, err)
	}

	if resp.Value == nil || *resp.Value == "" {
		return "", fmt.Errorf("key vault %s: %s: %w", p.vaultURL, name, ErrEmptySecret)
	}
	return *resp.Value, nil
}
