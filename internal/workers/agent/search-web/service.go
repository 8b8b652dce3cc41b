// internal/workers/agent/search-web/service.go
package searchweb

import (
	"context"
	"fmt"
	"strings"

	"websearch-action/internal/common/config"
	"websearch-action/internal/common/serper"
)

// ResultItem is one organic search hit.
type ResultItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SearchResult is a provider reply reduced to what the summary needs.
type SearchResult struct {
	Items          []ResultItem
	OrganicPresent bool
	// StaticText, when set, replaces the rendered summary.
	StaticText string
	StatusCode int
}

// Searcher runs one query against a search backend.
type Searcher interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
	Name() string
}

type serperSearcher struct {
	client     *serper.Client
	maxResults int
}

// NewSerperSearcher keeps at most maxResults organic items per reply.
// Items past the limit are not decoded.
func NewSerperSearcher(client *serper.Client, maxResults int) Searcher {
	return &serperSearcher{client: client, maxResults: maxResults}
}

func (s *serperSearcher) Name() string { return config.ProviderSerper }

func (s *serperSearcher) Search(ctx context.Context, query string) (*SearchResult, error) {
	resp, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	top, err := resp.TopResults(s.maxResults)
	if err != nil {
		return nil, err
	}
	items := make([]ResultItem, 0, len(top))
	for _, r := range top {
		items = append(items, ResultItem{Title: r.Title, Link: r.Link})
	}
	return &SearchResult{
		Items:          items,
		OrganicPresent: resp.OrganicPresent,
		StatusCode:     resp.StatusCode,
	}, nil
}

// staticSearcher answers every query with a fixed text and never touches
// the network. Used for dry runs and wiring checks.
type staticSearcher struct {
	text string
}

func NewStaticSearcher(text string) Searcher {
	if text == "" {
		text = DefaultStaticResultText
	}
	return &staticSearcher{text: text}
}

func (s *staticSearcher) Name() string { return config.ProviderStatic }

func (s *staticSearcher) Search(ctx context.Context, query string) (*SearchResult, error) {
	return &SearchResult{StaticText: s.text}, nil
}

// NewSearcher builds the searcher selected by cfg.Search.Provider.
// apiKey is passed separately so callers can resolve it from a secret.
func NewSearcher(cfg *config.Config, apiKey string, messages *Config) Searcher {
	if cfg.Search.Provider == config.ProviderStatic {
		return NewStaticSearcher(messages.StaticResultText)
	}
	client := serper.NewClient(
		cfg.Search.BaseURL,
		apiKey,
		config.GetDuration(cfg.Search.Timeout),
		cfg.Search.UserAgent,
	)
	return NewSerperSearcher(client, messages.MaxResults)
}

// Summarize renders up to max items as "title: link" lines. A reply
// without an organic section yields noResults.
func Summarize(result *SearchResult, max int, noResults string) string {
	if result.StaticText != "" {
		return result.StaticText
	}
	if !result.OrganicPresent {
		return noResults
	}

	items := result.Items
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %s", item.Title, item.Link))
	}
	return strings.Join(lines, "\n")
}

// FailureText embeds err in the configured failure placeholder.
func FailureText(prefix string, err error) string {
	return prefix + err.Error()
}
