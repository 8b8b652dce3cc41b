// internal/workers/agent/search-web/models.go
package searchweb

// Event is the loosely typed invocation event sent by the orchestrator.
type Event map[string]interface{}

// HTTPResult is what the orchestrator receives back. StatusCode is always 200.
type HTTPResult struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

type ResponseEnvelope struct {
	MessageVersion string           `json:"messageVersion"`
	Response       EnvelopeResponse `json:"response"`
}

type EnvelopeResponse struct {
	ActionGroupInvocationResults []ActionGroupResult `json:"actionGroupInvocationResults"`
}

// ActionGroupResult echoes the routing fields; absent ones encode as null.
type ActionGroupResult struct {
	ActionGroupName  *string          `json:"actionGroupName"`
	APIPath          *string          `json:"apiPath"`
	HTTPMethod       *string          `json:"httpMethod"`
	Function         string           `json:"function"`
	FunctionResponse FunctionResponse `json:"functionResponse"`
}

type FunctionResponse struct {
	ResponseBody ResponseBody `json:"responseBody"`
}

type ResponseBody struct {
	Text TextBody `json:"TEXT"`
}

type TextBody struct {
	Body string `json:"body"`
}

// Text returns the summary carried by the first invocation result.
func (e *ResponseEnvelope) Text() string {
	if len(e.Response.ActionGroupInvocationResults) == 0 {
		return ""
	}
	return e.Response.ActionGroupInvocationResults[0].FunctionResponse.ResponseBody.Text.Body
}

// JobOutput is the variable set a completed search-web job publishes.
type JobOutput struct {
	SearchWebResult ResponseEnvelope `json:"searchWebResult"`
	SearchSummary   string           `json:"searchSummary"`
}

// QuerySource records which part of the event supplied the query.
type QuerySource string

const (
	SourceProperties QuerySource = "properties"
	SourceParameters QuerySource = "parameters"
	SourceDefault    QuerySource = "default"
)

// EnvelopeSchema is the contract the orchestrator holds us to.
const EnvelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["messageVersion", "response"],
  "properties": {
    "messageVersion": {"type": "string"},
    "response": {
      "type": "object",
      "required": ["actionGroupInvocationResults"],
      "properties": {
        "actionGroupInvocationResults": {
          "type": "array",
          "minItems": 1,
          "maxItems": 1,
          "items": {
            "type": "object",
            "required": ["actionGroupName", "apiPath", "httpMethod", "function", "functionResponse"],
            "properties": {
              "actionGroupName": {"type": ["string", "null"]},
              "apiPath": {"type": ["string", "null"]},
              "httpMethod": {"type": ["string", "null"]},
              "function": {"type": "string", "minLength": 1},
              "functionResponse": {
                "type": "object",
                "required": ["responseBody"],
                "properties": {
                  "responseBody": {
                    "type": "object",
                    "required": ["TEXT"],
                    "properties": {
                      "TEXT": {
                        "type": "object",
                        "required": ["body"],
                        "properties": {"body": {"type": "string"}}
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`
