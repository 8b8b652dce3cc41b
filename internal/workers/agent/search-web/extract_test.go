// internal/workers/agent/search-web/extract_test.go
package searchweb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertiesEvent(props ...map[string]interface{}) Event {
	list := make([]interface{}, 0, len(props))
	for _, p := range props {
		list = append(list, p)
	}
	return Event{
		"requestBody": map[string]interface{}{
			"content": map[string]interface{}{
				"application/json": map[string]interface{}{
					"properties": list,
				},
			},
		},
	}
}

func pair(name string, value interface{}) map[string]interface{} {
	return map[string]interface{}{"name": name, "value": value}
}

func TestResolveQuery(t *testing.T) {
	tests := []struct {
		name       string
		event      Event
		wantQuery  string
		wantSource QuerySource
	}{
		{
			name:       "empty event uses default",
			event:      Event{},
			wantQuery:  DefaultQuery,
			wantSource: SourceDefault,
		},
		{
			name:       "nil event uses default",
			event:      nil,
			wantQuery:  DefaultQuery,
			wantSource: SourceDefault,
		},
		{
			name:       "properties query",
			event:      propertiesEvent(pair("lang", "en"), pair("query", "golang generics")),
			wantQuery:  "golang generics",
			wantSource: SourceProperties,
		},
		{
			name: "properties win over parameters",
			event: func() Event {
				e := propertiesEvent(pair("query", "X"))
				e["parameters"] = map[string]interface{}{"query": "Y"}
				return e
			}(),
			wantQuery:  "X",
			wantSource: SourceProperties,
		},
		{
			name: "first query pair in properties wins",
			event: propertiesEvent(
				pair("query", "first"),
				pair("query", "second"),
			),
			wantQuery:  "first",
			wantSource: SourceProperties,
		},
		{
			name:       "parameters as mapping",
			event:      Event{"parameters": map[string]interface{}{"query": "Y"}},
			wantQuery:  "Y",
			wantSource: SourceParameters,
		},
		{
			name: "parameters as list",
			event: Event{"parameters": []interface{}{
				pair("query", "Y"),
			}},
			wantQuery:  "Y",
			wantSource: SourceParameters,
		},
		{
			name: "later duplicate parameter wins",
			event: Event{"parameters": []interface{}{
				pair("query", "old"),
				pair("query", "new"),
			}},
			wantQuery:  "new",
			wantSource: SourceParameters,
		},
		{
			name: "properties without query fall through to parameters",
			event: func() Event {
				e := propertiesEvent(pair("lang", "en"))
				e["parameters"] = []interface{}{pair("query", "Y")}
				return e
			}(),
			wantQuery:  "Y",
			wantSource: SourceParameters,
		},
		{
			name:       "empty query in parameters uses default",
			event:      Event{"parameters": map[string]interface{}{"query": ""}},
			wantQuery:  DefaultQuery,
			wantSource: SourceDefault,
		},
		{
			name:       "parameters of wrong shape",
			event:      Event{"parameters": "query=Y"},
			wantQuery:  DefaultQuery,
			wantSource: SourceDefault,
		},
		{
			name: "malformed list entries are skipped",
			event: Event{"parameters": []interface{}{
				"junk",
				42.0,
				map[string]interface{}{"name": 7, "value": "bad"},
				pair("query", "Y"),
			}},
			wantQuery:  "Y",
			wantSource: SourceParameters,
		},
		{
			name: "requestBody of wrong shape",
			event: Event{
				"requestBody": []interface{}{"nope"},
				"parameters":  map[string]interface{}{"query": "Y"},
			},
			wantQuery:  "Y",
			wantSource: SourceParameters,
		},
		{
			name: "properties not a list",
			event: Event{"requestBody": map[string]interface{}{
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{"properties": "query"},
				},
			}},
			wantQuery:  DefaultQuery,
			wantSource: SourceDefault,
		},
		{
			name:       "numeric query is stringified",
			event:      Event{"parameters": map[string]interface{}{"query": 42.5}},
			wantQuery:  "42.5",
			wantSource: SourceParameters,
		},
		{
			name:       "boolean query is ignored",
			event:      Event{"parameters": map[string]interface{}{"query": true}},
			wantQuery:  DefaultQuery,
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, src := ResolveQuery(tt.event, DefaultQuery)
			assert.Equal(t, tt.wantQuery, q)
			assert.Equal(t, tt.wantSource, src)
		})
	}
}

func TestResolveQuery_FromDecodedJSON(t *testing.T) {
	raw := `{
		"actionGroup": "web",
		"requestBody": {"content": {"application/json": {"properties": [
			{"name": "query", "value": "zeebe job workers"}
		]}}}
	}`

	event, err := DecodeEvent([]byte(raw))
	require.NoError(t, err)

	q, src := ResolveQuery(event, DefaultQuery)
	assert.Equal(t, "zeebe job workers", q)
	assert.Equal(t, SourceProperties, src)
}

func TestStringValue(t *testing.T) {
	v, ok := stringValue(json.Number("12"))
	assert.True(t, ok)
	assert.Equal(t, "12", v)

	_, ok = stringValue(json.Number("0"))
	assert.False(t, ok)

	_, ok = stringValue(nil)
	assert.False(t, ok)

	_, ok = stringValue(map[string]interface{}{"q": "x"})
	assert.False(t, ok)
}

func TestStringField(t *testing.T) {
	event := Event{"actionGroup": "web", "apiPath": 12.0}

	got := stringField(event, "actionGroup")
	require.NotNil(t, got)
	assert.Equal(t, "web", *got)

	assert.Nil(t, stringField(event, "apiPath"))
	assert.Nil(t, stringField(event, "httpMethod"))
}

func TestDecodeEvent(t *testing.T) {
	for _, raw := range []string{`null`, `[1,2]`, `"text"`, `{broken`} {
		event, err := DecodeEvent([]byte(raw))
		assert.Error(t, err, raw)
		assert.NotNil(t, event, raw)
		assert.Empty(t, event, raw)
	}
}
