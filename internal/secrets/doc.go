// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package secrets resolves per-institution Alma API keys from a secret store.

Each report request looks up the secret named {iz}-ALMA-API-KEY. Values are
fetched on every request and never cached or logged.

# Providers

  - keyvault: Azure Key Vault at https://{KEY_VAULT_NAME}.vault.azure.net,
    authenticated with azidentity.DefaultAzureCredential
  - aws: AWS Secrets Manager, default AWS credential chain
  - static: in-memory map from STATIC_SECRETS, for local development

New wraps the selected provider with Instrument, which applies
SECRETS_TIMEOUT to each lookup and records secret_lookups_total and
secret_lookup_duration_seconds.

# Errors

A missing secret wraps ErrSecretNotFound and a secret without a value wraps
ErrEmptySecret. Anything else (authentication, network, throttling) is
returned wrapped with the store name. Callers treat every error the same
way; the distinction only feeds metrics and logs.
*/
package secrets
