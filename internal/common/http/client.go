// internal/common/http/client.go
package http

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewClient returns a resty client with a fixed timeout and user agent.
// Retries stay disabled: callers report failures instead of re-sending.
func NewClient(timeout time.Duration, userAgent string) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return client
}
