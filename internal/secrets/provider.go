package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Source determines where secrets are resolved from
type Source string

const (
	// SourceEnvironment resolves secrets from environment variables
	SourceEnvironment Source = "environment"
	// SourceVault resolves secrets from Azure Key Vault
	SourceVault Source = "vault"
	// SourceAuto picks environment for development and vault otherwise
	SourceAuto Source = "auto"
)

// Provider resolves named secrets from the configured source
type Provider struct {
	source SourceVaultOrEnv
	logger *zap.Logger
}

// SourceVaultOrEnv is the minimal resolver both backends satisfy
type SourceVaultOrEnv interface {
	Get(ctx context.Context, name string) (string, error)
	Kind() Source
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       Source
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewProvider creates a secrets provider. With SourceAuto, development and
// empty environments use env vars, everything else uses the vault.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := cfg.Source
	if source == SourceAuto {
		switch cfg.Environment {
		case "development", "local", "":
			source = SourceEnvironment
		default:
			source = SourceVault
		}
		logger.Info("Auto-detected secret source",
			zap.String("source", string(source)),
			zap.String("environment", cfg.Environment),
		)
	}

	p := &Provider{logger: logger}

	switch source {
	case SourceEnvironment:
		p.source = envSource{}
	case SourceVault:
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.source = vault
	default:
		return nil, fmt.Errorf("unknown secret source: %s", source)
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)

	return p, nil
}

// GetSecret retrieves a secret by name from the configured source
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	return p.source.Get(ctx, name)
}

// GetSecretOrEnv resolves a secret, letting an explicitly set environment
// variable override the configured source. Useful for local testing against
// vault-backed environments.
func (p *Provider) GetSecretOrEnv(ctx context.Context, name, envName string) (string, error) {
	if v := os.Getenv(envName); v != "" {
		p.logger.Debug("Using environment variable override", zap.String("env_name", envName))
		return v, nil
	}
	return p.source.Get(ctx, name)
}

// IsVaultEnabled returns true if secrets are resolved from Key Vault
func (p *Provider) IsVaultEnabled() bool {
	return p.source.Kind() == SourceVault
}

type envSource struct{}

func (envSource) Get(_ context.Context, name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("environment variable '%s' not set", name)
	}
	return v, nil
}

func (envSource) Kind() Source { return SourceEnvironment }
