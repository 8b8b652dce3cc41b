// internal/workers/agent/search-web/extract.go
package searchweb

import (
	"encoding/json"
	"strconv"
)

const queryParamName = "query"

// ResolveQuery walks the event's query sources in priority order:
// requestBody properties, then parameters, then the fallback.
func ResolveQuery(event Event, fallback string) (string, QuerySource) {
	if q, ok := queryFromProperties(event); ok {
		return q, SourceProperties
	}
	if q, ok := queryFromParameters(event); ok {
		return q, SourceParameters
	}
	return fallback, SourceDefault
}

// queryFromProperties reads requestBody.content["application/json"].properties.
// Only the first pair named "query" is considered; an empty value there
// does not keep scanning.
func queryFromProperties(event Event) (string, bool) {
	raw, ok := lookupPath(event, "requestBody", "content", "application/json", "properties")
	if !ok {
		return "", false
	}
	props, ok := raw.([]interface{})
	if !ok {
		return "", false
	}

	for _, p := range props {
		pair, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		if name, _ := pair["name"].(string); name == queryParamName {
			return stringValue(pair["value"])
		}
	}
	return "", false
}

func queryFromParameters(event Event) (string, bool) {
	params := normalizeParameters(event["parameters"])
	return stringValue(params[queryParamName])
}

// normalizeParameters accepts a name→value mapping or a list of
// {name, value} pairs. Later duplicate names win. Anything else is empty.
func normalizeParameters(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v
	case Event:
		return v
	case []interface{}:
		out := make(map[string]interface{}, len(v))
		for _, item := range v {
			pair, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			name, ok := pair["name"].(string)
			if !ok {
				continue
			}
			out[name] = pair["value"]
		}
		return out
	default:
		return map[string]interface{}{}
	}
}

// lookupPath descends through nested mappings, failing on the first
// missing key or non-mapping node.
func lookupPath(data map[string]interface{}, path ...string) (interface{}, bool) {
	var current interface{} = data
	for _, key := range path {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Event:
		return m, true
	}
	return nil, false
}

// stringValue accepts non-empty strings and non-zero numbers. Empty
// strings, zero, booleans, null and containers count as "not found".
func stringValue(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, s != ""
	case float64:
		if s == 0 {
			return "", false
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case json.Number:
		if f, err := s.Float64(); err != nil || f == 0 {
			return "", false
		}
		return s.String(), true
	case int:
		if s == 0 {
			return "", false
		}
		return strconv.Itoa(s), true
	}
	return "", false
}

// stringField reads a top-level string field for echoing into the
// envelope. Absent or non-string values yield nil.
func stringField(event Event, key string) *string {
	s, ok := event[key].(string)
	if !ok {
		return nil
	}
	return &s
}
