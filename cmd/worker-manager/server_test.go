// cmd/worker-manager/server_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"websearch-action/internal/common/logger"
	searchweb "websearch-action/internal/workers/agent/search-web"
)

func testMux(t *testing.T, ready readinessFunc) http.Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	handler := searchweb.NewHandler(searchweb.HandlerOptions{
		Searcher: searchweb.NewStaticSearcher("static answer"),
		Logger:   log,
	})
	return newMux(handler, ready, log)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}

func TestReady(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t, func(ctx context.Context) error { return nil }).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	testMux(t, func(ctx context.Context) error { return errors.New("no brokers") }).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no brokers")
}

func TestMetricsEndpoint(t *testing.T) {
	mux := testMux(t, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "search_action_invocations_total")
}

func TestInvoke(t *testing.T) {
	body := `{"actionGroup":"web","apiPath":"/search","httpMethod":"POST","parameters":{"query":"go"}}`

	rec := httptest.NewRecorder()
	testMux(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var result searchweb.HTTPResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, http.StatusOK, result.StatusCode)

	var env searchweb.ResponseEnvelope
	require.NoError(t, json.Unmarshal([]byte(result.Body), &env))
	assert.Equal(t, "static answer", env.Text())
}

func TestInvoke_GarbageStillAnswers(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(`not json`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"statusCode":200`)
}

func TestInvoke_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoke", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}
