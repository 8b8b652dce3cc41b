// internal/workers/agent/search-web/config.go
package searchweb

import (
	"time"

	"websearch-action/internal/common/config"
)

const (
	DefaultQuery          = "complex physics formula"
	DefaultFunctionName   = "searchWeb"
	DefaultMessageVersion = "1.0"
	DefaultMaxResults     = 5
	DefaultCommandTimeout = 30 * time.Second

	DefaultNoResultsText      = "查無搜尋結果"
	DefaultSearchFailedPrefix = "搜尋失敗: "
	DefaultStaticResultText   = "Static test result: Search was executed successfully."
)

type Config struct {
	DefaultQuery   string
	FunctionName   string
	MessageVersion string
	MaxResults     int
	Timeout        time.Duration
	// CommandTimeout bounds each complete, fail or throw command sent
	// back to the Zeebe gateway.
	CommandTimeout time.Duration

	NoResultsText      string
	SearchFailedPrefix string
	StaticResultText   string
}

func LoadConfig() *Config {
	return (&Config{}).withDefaults()
}

// ConfigFromApp maps the application config onto the adapter's settings.
func ConfigFromApp(cfg *config.Config) *Config {
	c := &Config{
		DefaultQuery:       cfg.Search.DefaultQuery,
		FunctionName:       cfg.Action.FunctionName,
		MessageVersion:     cfg.Action.MessageVersion,
		MaxResults:         cfg.Search.MaxResults,
		Timeout:            config.GetDuration(cfg.Search.Timeout),
		CommandTimeout:     config.GetDuration(cfg.Camunda.RequestTimeout),
		NoResultsText:      cfg.Messages.NoResults,
		SearchFailedPrefix: cfg.Messages.SearchFailedPrefix,
		StaticResultText:   cfg.Messages.StaticResult,
	}
	return c.withDefaults()
}

func (c *Config) withDefaults() *Config {
	if c.DefaultQuery == "" {
		c.DefaultQuery = DefaultQuery
	}
	if c.FunctionName == "" {
		c.FunctionName = DefaultFunctionName
	}
	if c.MessageVersion == "" {
		c.MessageVersion = DefaultMessageVersion
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.Timeout <= 0 {
		c.Timeout = config.GetDuration(config.DefaultSearchTimeout)
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = DefaultCommandTimeout
	}
	if c.NoResultsText == "" {
		c.NoResultsText = DefaultNoResultsText
	}
	if c.SearchFailedPrefix == "" {
		c.SearchFailedPrefix = DefaultSearchFailedPrefix
	}
	if c.StaticResultText == "" {
		c.StaticResultText = DefaultStaticResultText
	}
	return c
}
