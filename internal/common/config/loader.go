// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "websearch-action/internal/common/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderSerper = "serper"
	ProviderStatic = "static"

	DefaultSearchBaseURL = "https://google.serper.dev/search"
	DefaultSearchTimeout = 10000 // milliseconds
	DefaultMaxResults    = 5
	DefaultUserAgent     = "websearch-action/1.0"
)

// envBindings maps config keys onto the environment variables operators
// already use for them.
var envBindings = map[string]string{
	"search.api_key":           "SERPER_API_KEY",
	"search.api_key_secret_id": "SERPER_API_KEY_SECRET_ID",
	"search.provider":          "SEARCH_PROVIDER",
	"camunda.broker_address":   "CAMUNDA_BROKER_ADDRESS",
	"logging.level":            "LOG_LEVEL",
	"aws.region":               "AWS_REGION",
}

// Load reads configs/config.yaml (and config.<APP_ENVIRONMENT>.yaml) when
// present, then applies env overrides and defaults. A missing file is not
// an error; the Lambda runtime ships without one.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working
// directory, so tests in nested packages see the same values.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills values the YAML left blank straight from the
// environment.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("SERPER_API_KEY")
	}
	if cfg.Search.APIKeySecretID == "" {
		cfg.Search.APIKeySecretID = os.Getenv("SERPER_API_KEY_SECRET_ID")
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = os.Getenv("AWS_REGION")
	}
	if cfg.Camunda.BrokerAddress == "" {
		cfg.Camunda.BrokerAddress = os.Getenv("CAMUNDA_BROKER_ADDRESS")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "websearch-action"
	}

	if cfg.Search.Provider == "" {
		cfg.Search.Provider = ProviderSerper
	}
	cfg.Search.Provider = strings.ToLower(strings.TrimSpace(cfg.Search.Provider))
	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = DefaultSearchBaseURL
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = DefaultSearchTimeout
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = DefaultMaxResults
	}
	if cfg.Search.UserAgent == "" {
		cfg.Search.UserAgent = DefaultUserAgent
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
	if cfg.Observability.MetricsAddr == "" {
		cfg.Observability.MetricsAddr = ":8080"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		cfg.Workers[key] = worker
	}
}

// validateConfig rejects shapes the adapter cannot run with. A missing
// API key is deliberately not checked: the outbound call fails and the
// failure text is returned to the caller.
func validateConfig(cfg *Config) error {
	switch cfg.Search.Provider {
	case ProviderSerper, ProviderStatic:
	default:
		return apperrors.NewConfigInvalidError(fmt.Sprintf("search.provider %q is not supported", cfg.Search.Provider))
	}
	if cfg.Search.MaxResults < 0 {
		return apperrors.NewConfigInvalidError("search.max_results must not be negative")
	}
	if cfg.Search.Timeout < 0 {
		return apperrors.NewConfigInvalidError("search.timeout must not be negative")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults.
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    0,
	}
}

func IsWorkerEnabled(cfg *Config, workerName string) bool {
	return GetWorkerConfig(cfg, workerName).Enabled
}
