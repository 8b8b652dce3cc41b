// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Search        SearchConfig            `mapstructure:"search"`
	Action        ActionConfig            `mapstructure:"action"`
	Messages      MessagesConfig          `mapstructure:"messages"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	AWS           AWSConfig               `mapstructure:"aws"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// SearchConfig describes the outbound web-search provider.
type SearchConfig struct {
	Provider       string `mapstructure:"provider"` // serper | static
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	APIKeySecretID string `mapstructure:"api_key_secret_id"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
	MaxResults     int    `mapstructure:"max_results"`
	DefaultQuery   string `mapstructure:"default_query"`
	UserAgent      string `mapstructure:"user_agent"`
}

// ActionConfig holds the identifiers echoed in the response envelope.
type ActionConfig struct {
	FunctionName   string `mapstructure:"function_name"`
	MessageVersion string `mapstructure:"message_version"`
}

// MessagesConfig holds the user-visible placeholder texts.
type MessagesConfig struct {
	NoResults          string `mapstructure:"no_results"`
	SearchFailedPrefix string `mapstructure:"search_failed_prefix"`
	StaticResult       string `mapstructure:"static_result"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type ObservabilityConfig struct {
	ServiceName  string `mapstructure:"service_name"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}
