// internal/workers/agent/search-web/activity.go
package searchweb

import (
	"encoding/json"

	apperrors "websearch-action/internal/common/errors"
	"websearch-action/pkg/registry"
)

// EventSchema documents the event fields that are read. Nothing is
// enforced at runtime; every field is optional.
const EventSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "actionGroup": {"type": "string"},
    "apiPath": {"type": "string"},
    "httpMethod": {"type": "string"},
    "requestBody": {
      "type": "object",
      "properties": {
        "content": {
          "type": "object",
          "properties": {
            "application/json": {
              "type": "object",
              "properties": {
                "properties": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "properties": {"name": {"type": "string"}, "value": {}}
                  }
                }
              }
            }
          }
        }
      }
    },
    "parameters": {
      "oneOf": [
        {"type": "object"},
        {"type": "array", "items": {"type": "object", "properties": {"name": {"type": "string"}, "value": {}}}}
      ]
    }
  }
}`

// Activity describes the search-web action for the activity registry.
func Activity(cfg *Config) registry.Activity {
	if cfg == nil {
		cfg = LoadConfig()
	}
	return registry.Activity{
		ID:                   TaskType,
		DisplayName:          "Search Web",
		Description:          "Runs a web search for the query in an agent action-group event and returns the top organic results as text",
		Category:             "agent",
		Version:              cfg.MessageVersion,
		TaskType:             TaskType,
		FunctionName:         cfg.FunctionName,
		Transports:           []string{TransportLambda, TransportZeebe, TransportHTTP},
		ImplementationStatus: "completed",
		InputSchema:          mustSchemaMap(EventSchema),
		OutputSchema:         mustSchemaMap(EnvelopeSchema),
		ErrorCodes:           []string{string(apperrors.ErrCodeEventDecodeFailed)},
		Timeout:              cfg.Timeout.String(),
		Retries:              0,
		Tags:                 []string{"search", "serper", "action-group"},
	}
}

func mustSchemaMap(schema string) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(schema), &m); err != nil {
		panic("searchweb: invalid embedded schema: " + err.Error())
	}
	return m
}
