package serper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "websearch-action/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Search_SendsQueryAndKey(t *testing.T) {
	var gotKey, gotContentType string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotKey = r.Header.Get("X-API-KEY")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"organic":[{"title":"A","link":"u1","snippet":"ignored"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 2*time.Second, "test-agent")
	resp, err := client.Search(context.Background(), "golang generics")

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotContentType, "application/json")
	assert.Equal(t, map[string]interface{}{"q": "golang generics"}, gotBody)
	assert.True(t, resp.OrganicPresent)
	top, err := resp.TopResults(0)
	require.NoError(t, err)
	assert.Equal(t, []OrganicResult{{Title: "A", Link: "u1"}}, top)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_Search_ResponseShapes(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantPresent bool
		wantCount   int
		wantCode    apperrors.ErrorCode
	}{
		{name: "no organic key", status: 200, body: `{"searchParameters":{"q":"x"}}`},
		{name: "empty organic", status: 200, body: `{"organic":[]}`, wantPresent: true},
		{name: "provider error body", status: 403, body: `{"message":"Unauthorized.","statusCode":403}`},
		{name: "json array body", status: 200, body: `[1,2,3]`},
		{name: "html body", status: 502, body: `<html>bad gateway</html>`, wantCode: apperrors.ErrCodeSearchResponseInvalid},
		{name: "null organic", status: 200, body: `{"organic":null}`, wantCode: apperrors.ErrCodeSearchResponseInvalid},
		{name: "organic not a list", status: 200, body: `{"organic":"nope"}`, wantCode: apperrors.ErrCodeSearchResponseInvalid},
		{name: "seven results", status: 200, body: `{"organic":[{},{},{},{},{},{},{}]}`, wantPresent: true, wantCount: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body)
			client := NewClient(server.URL, "k", time.Second, "")

			resp, err := client.Search(context.Background(), "q")
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPresent, resp.OrganicPresent)
			assert.Len(t, resp.Organic, tt.wantCount)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestSearchResponse_TopResults(t *testing.T) {
	good := func(n int) string {
		return fmt.Sprintf(`{"title":"T%d","link":"u%d"}`, n, n)
	}

	tests := []struct {
		name      string
		body      string
		max       int
		wantLinks []string
		wantErr   bool
	}{
		{name: "all kept", body: `{"organic":[` + good(1) + `,` + good(2) + `]}`, max: 5, wantLinks: []string{"u1", "u2"}},
		{name: "no limit", body: `{"organic":[` + good(1) + `,` + good(2) + `]}`, max: 0, wantLinks: []string{"u1", "u2"}},
		{name: "cut before decoding", body: `{"organic":[` + good(1) + `,{"title":7,"link":"u2"}]}`, max: 1, wantLinks: []string{"u1"}},
		{name: "extra fields ignored", body: `{"organic":[{"title":"T1","link":"u1","position":1,"sitelinks":[]}]}`, max: 5, wantLinks: []string{"u1"}},
		{name: "empty title allowed", body: `{"organic":[{"title":"","link":"u1"}]}`, max: 5, wantLinks: []string{"u1"}},
		{name: "missing title", body: `{"organic":[` + good(1) + `,{"link":"u2"}]}`, max: 5, wantErr: true},
		{name: "missing link", body: `{"organic":[{"title":"T1"}]}`, max: 5, wantErr: true},
		{name: "numeric title", body: `{"organic":[{"title":7,"link":"u1"}]}`, max: 5, wantErr: true},
		{name: "null link", body: `{"organic":[{"title":"T1","link":null}]}`, max: 5, wantErr: true},
		{name: "item not an object", body: `{"organic":["T1"]}`, max: 5, wantErr: true},
		{name: "null item", body: `{"organic":[null]}`, max: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp SearchResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))

			top, err := resp.TopResults(tt.max)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeSearchResponseInvalid, apperrors.GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			links := make([]string, 0, len(top))
			for _, r := range top {
				links = append(links, r.Link)
			}
			assert.Equal(t, tt.wantLinks, links)
		})
	}
}

func TestClient_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = io.WriteString(w, `{"organic":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", 50*time.Millisecond, "")
	_, err := client.Search(context.Background(), "slow")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSearchTimeout, apperrors.GetErrorCode(err))
}

func TestClient_Search_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "k", time.Second, "")
	_, err := client.Search(context.Background(), "q")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSearchRequestFailed, apperrors.GetErrorCode(err))
}

func TestClient_HasAPIKey(t *testing.T) {
	assert.False(t, NewClient("", "  ", time.Second, "").HasAPIKey())
	assert.True(t, NewClient("", "key", time.Second, "").HasAPIKey())
}
