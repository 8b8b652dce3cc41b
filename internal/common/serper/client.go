// internal/common/serper/client.go
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	apperrors "websearch-action/internal/common/errors"
	commonhttp "websearch-action/internal/common/http"

	"github.com/go-resty/resty/v2"
)

const DefaultEndpoint = "https://google.serper.dev/search"

// SearchRequest is the body posted to the search endpoint.
type SearchRequest struct {
	Q string `json:"q"`
}

// OrganicResult is one organic entry; only title and link are consumed.
type OrganicResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SearchResponse is the decoded provider reply. OrganicPresent records
// whether the "organic" key existed at all, which is distinct from an
// empty list. Entries stay raw until TopResults decodes the kept ones.
type SearchResponse struct {
	StatusCode     int
	Organic        []json.RawMessage
	OrganicPresent bool
}

func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Valid JSON that is not an object carries no organic key.
		if json.Valid(data) {
			return nil
		}
		return err
	}

	raw, ok := fields["organic"]
	if !ok {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New("organic is null")
	}
	if err := json.Unmarshal(raw, &r.Organic); err != nil {
		return fmt.Errorf("organic: %w", err)
	}
	r.OrganicPresent = true
	return nil
}

// TopResults decodes the first max organic entries (all when max <= 0).
// Entries past max are never inspected. A kept entry that is not an
// object, or lacks a string title or link, fails the whole reply.
func (r *SearchResponse) TopResults(max int) ([]OrganicResult, error) {
	items := r.Organic
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	out := make([]OrganicResult, 0, len(items))
	for i, raw := range items {
		result, err := decodeOrganic(raw)
		if err != nil {
			return nil, apperrors.NewSearchResponseInvalidError(fmt.Errorf("organic[%d]: %w", i, err))
		}
		out = append(out, result)
	}
	return out, nil
}

func decodeOrganic(raw json.RawMessage) (OrganicResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return OrganicResult{}, errors.New("entry is not an object")
	}

	title, err := requiredString(fields, "title")
	if err != nil {
		return OrganicResult{}, err
	}
	link, err := requiredString(fields, "link")
	if err != nil {
		return OrganicResult{}, err
	}
	return OrganicResult{Title: title, Link: link}, nil
}

func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("missing %s", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%s is not a string", key)
	}
	return s, nil
}

// Client posts queries to the Serper search API.
type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
}

func NewClient(endpoint, apiKey string, timeout time.Duration, userAgent string) *Client {
	return NewClientWithResty(commonhttp.NewClient(timeout, userAgent), endpoint, apiKey)
}

func NewClientWithResty(rc *resty.Client, endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{http: rc, endpoint: endpoint, apiKey: apiKey}
}

// HasAPIKey reports whether a non-blank credential is configured.
func (c *Client) HasAPIKey() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Search performs one POST. The status code is not checked: provider error
// bodies are decoded like any other reply and simply lack "organic".
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(SearchRequest{Q: query}).
		Post(c.endpoint)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, apperrors.NewSearchTimeoutError(err)
		}
		return nil, apperrors.NewSearchRequestFailedError(err)
	}

	result := &SearchResponse{}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return nil, apperrors.NewSearchResponseInvalidError(
			fmt.Errorf("status %d: %w", resp.StatusCode(), err))
	}
	result.StatusCode = resp.StatusCode()
	return result, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
