// internal/common/aws/secrets.go
package aws

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	apperrors "websearch-action/internal/common/errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type SecretsClient struct {
	client SecretsAPI
}

func NewSecretsClient(ctx context.Context, region string) (*SecretsClient, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("secretsmanager", err)
	}
	return &SecretsClient{client: secretsmanager.NewFromConfig(cfg)}, nil
}

func NewSecretsClientWithAPI(api SecretsAPI) *SecretsClient {
	return &SecretsClient{client: api}
}

// apiKeyFields are the JSON keys probed when a secret holds an object.
var apiKeyFields = []string{"SERPER_API_KEY", "api_key", "apiKey"}

// GetAPIKey returns the secret's string value. JSON object secrets are
// searched for a well-known API key field.
func (s *SecretsClient) GetAPIKey(ctx context.Context, secretID string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: awssdk.String(secretID),
	})
	if err != nil {
		return "", apperrors.NewSecretLookupFailedError(secretID, err)
	}

	value := strings.TrimSpace(awssdk.ToString(out.SecretString))
	if value == "" {
		return "", apperrors.NewSecretLookupFailedError(secretID, errors.New("secret has no string value"))
	}
	if !strings.HasPrefix(value, "{") {
		return value, nil
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(value), &fields); err != nil {
		return value, nil
	}
	for _, name := range apiKeyFields {
		if key, ok := fields[name].(string); ok && key != "" {
			return key, nil
		}
	}
	return "", apperrors.NewSecretLookupFailedError(secretID, errors.New("secret object has no api key field"))
}
