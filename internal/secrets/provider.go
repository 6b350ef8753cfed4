package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource selects where runtime secrets come from.
type SecretSource string

const (
	// SourceEnvironment reads secrets from environment variables.
	SourceEnvironment SecretSource = "environment"
	// SourceVault reads secrets from Azure Key Vault.
	SourceVault SecretSource = "vault"
	// SourceAuto picks vault for staging/production and environment
	// variables for local development.
	SourceAuto SecretSource = "auto"
)

// Provider resolves secrets for the offerte-api: database credentials,
// the boekhouding connection string and Azure storage keys all go
// through here so the rest of the code never touches os.Getenv directly.
type Provider struct {
	source      SecretSource
	vaultClient *VaultClient
	logger      *zap.Logger
	environment string
}

type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string // "development", "staging", "production"
	CacheEnabled bool
	CacheTTL     time.Duration
}

func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := cfg.Source
	if source == SourceAuto {
		switch cfg.Environment {
		case "development", "local", "":
			source = SourceEnvironment
		default:
			source = SourceVault
		}
		logger.Info("secret source resolved",
			zap.String("source", string(source)),
			zap.String("environment", cfg.Environment))
	}

	provider := &Provider{
		source:      source,
		logger:      logger,
		environment: cfg.Environment,
	}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}

		vaultClient, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		provider.vaultClient = vaultClient
	}

	logger.Info("secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment))

	return provider, nil
}

// GetSecret retrieves a secret by name. For the vault source the name is
// the Key Vault secret name; for the environment source it is the
// environment variable name.
func (p *Provider) GetSecret(ctx context.Context, secretName string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(secretName)
		if value == "" {
			return "", fmt.Errorf("environment variable '%s' not set", secretName)
		}
		return value, nil

	case SourceVault:
		if p.vaultClient == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vaultClient.GetSecret(ctx, secretName)

	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretWithDefault retrieves a secret, returning defaultValue when
// it cannot be resolved.
func (p *Provider) GetSecretWithDefault(ctx context.Context, secretName, defaultValue string) string {
	value, err := p.GetSecret(ctx, secretName)
	if err != nil {
		p.logger.Debug("using default value for secret",
			zap.String("secretName", secretName),
			zap.String("source", string(p.source)))
		return defaultValue
	}
	return value
}

// GetSecretOrEnv checks the environment variable first so a vault-backed
// secret can still be overridden locally, then falls back to the
// configured source.
func (p *Provider) GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if envValue := os.Getenv(envName); envValue != "" {
		p.logger.Debug("using environment variable override",
			zap.String("envName", envName))
		return envValue, nil
	}
	return p.GetSecret(ctx, secretName)
}

// GetSecretOrEnvWithDefault combines GetSecretOrEnv with a default
// fallback.
func (p *Provider) GetSecretOrEnvWithDefault(ctx context.Context, secretName, envName, defaultValue string) string {
	value, err := p.GetSecretOrEnv(ctx, secretName, envName)
	if err != nil {
		p.logger.Debug("using default value",
			zap.String("secretName", secretName),
			zap.String("envName", envName))
		return defaultValue
	}
	return value
}

// Source returns the resolved secret source.
func (p *Provider) Source() SecretSource {
	return p.source
}

// IsVaultEnabled reports whether secrets are loaded from Key Vault.
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}
