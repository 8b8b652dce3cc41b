// internal/workers/agent/search-web/bootstrap.go
package searchweb

import (
	"context"

	"websearch-action/internal/common/aws"
	"websearch-action/internal/common/config"
	"websearch-action/internal/common/logger"
	"websearch-action/internal/common/observability"
)

// SecretLookup resolves the search credential from a secret store.
type SecretLookup interface {
	GetAPIKey(ctx context.Context, secretID string) (string, error)
}

// SecretLookupFactory creates a SecretLookup for a region on demand, so
// processes without a secret id never touch the AWS SDK.
type SecretLookupFactory func(ctx context.Context, region string) (SecretLookup, error)

// AWSSecretLookup is the default factory backed by Secrets Manager.
func AWSSecretLookup(ctx context.Context, region string) (SecretLookup, error) {
	client, err := aws.NewSecretsClient(ctx, region)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ResolveAPIKey returns the configured key, falling back to the secret
// store when only a secret id is set. Lookup failures are logged and yield
// an empty key; the search call then fails and reports it in the text.
func ResolveAPIKey(ctx context.Context, cfg *config.Config, factory SecretLookupFactory, log logger.Logger) string {
	if cfg.Search.APIKey != "" || cfg.Search.APIKeySecretID == "" {
		return cfg.Search.APIKey
	}
	if factory == nil {
		factory = AWSSecretLookup
	}

	lookup, err := factory(ctx, cfg.AWS.Region)
	if err != nil {
		log.Error("failed to create secret client", map[string]interface{}{
			"error":    err.Error(),
			"secretId": cfg.Search.APIKeySecretID,
		})
		return ""
	}

	key, err := lookup.GetAPIKey(ctx, cfg.Search.APIKeySecretID)
	if err != nil {
		log.Error("failed to resolve search API key", map[string]interface{}{
			"error":    err.Error(),
			"secretId": cfg.Search.APIKeySecretID,
		})
		return ""
	}

	log.Info("search API key resolved from secret", map[string]interface{}{
		"secretId": cfg.Search.APIKeySecretID,
	})
	return key
}

// NewHandlerFromConfig wires a Handler from application config. The
// credential is resolved once here, at process start.
func NewHandlerFromConfig(ctx context.Context, cfg *config.Config, factory SecretLookupFactory, log logger.Logger, obs *observability.Observability) *Handler {
	messages := ConfigFromApp(cfg)
	apiKey := ""
	if cfg.Search.Provider != config.ProviderStatic {
		apiKey = ResolveAPIKey(ctx, cfg, factory, log)
		if apiKey == "" {
			log.Warn("no search API key configured; searches will report failures", nil)
		}
	}

	return NewHandler(HandlerOptions{
		Config:        messages,
		Searcher:      NewSearcher(cfg, apiKey, messages),
		Logger:        log,
		Observability: obs,
	})
}
