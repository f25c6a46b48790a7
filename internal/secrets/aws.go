// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// secretsManagerClient is the subset of *secretsmanager.Client used by AWSProvider.
type secretsManagerClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSProvider reads secrets from AWS Secrets Manager using the SDK's
// default credential chain.
type AWSProvider struct {
	client secretsManagerClient
}

// NewAWSProvider loads the default AWS configuration. An empty region
// defers to AWS_REGION and the shared config files.
func NewAWSProvider(ctx context.Context, region string) (*AWSProvider, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.Region == "" {
		return nil, errors.New("aws region is not set (AWS_SECRETS_REGION or AWS_REGION)")
	}

	return newAWSProviderWithClient(secretsmanager.NewFromConfig(cfg)), nil
}

// newAWSProviderWithClient injects a client; tests use it with fakes.
func newAWSProviderWithClient(client secretsManagerClient) *AWSProvider {
	return &AWSProvider{client: client}
}

// Name returns "aws".
func (p *AWSProvider) Name() string {
	return "aws"
}

// GetSecret fetches the current (AWSCURRENT) string value of the named secret.
func (p *AWSProvider) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("secrets manager: %s: %w", name, ErrSecretNotFound)
		}
		return "", fmt.Errorf("secrets manager: get %s: %w", name, err)
	}

	value := aws.ToString(out.SecretString)
	if value == "" {
		return "", fmt.Errorf("secrets manager: %s: %w", name, ErrEmptySecret)
	}
	return value, nil
}
