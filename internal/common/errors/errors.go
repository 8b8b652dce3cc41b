// internal/common/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeSearchRequestFailed   ErrorCode = "SEARCH_REQUEST_FAILED"
	ErrCodeSearchResponseInvalid ErrorCode = "SEARCH_RESPONSE_INVALID"
	ErrCodeSearchTimeout         ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeEventDecodeFailed  ErrorCode = "EVENT_DECODE_FAILED"
	ErrCodeSecretLookupFailed ErrorCode = "SECRET_LOOKUP_FAILED"
	ErrCodeConfigInvalid      ErrorCode = "CONFIG_INVALID"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// BPMNError is the shape thrown back to Zeebe when a job cannot complete.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewSearchRequestFailedError(err error) *StandardError {
	return newError(ErrCodeSearchRequestFailed, "search request failed", err, false)
}

func NewSearchResponseInvalidError(err error) *StandardError {
	return newError(ErrCodeSearchResponseInvalid, "search response could not be decoded", err, false)
}

func NewSearchTimeoutError(err error) *StandardError {
	return newError(ErrCodeSearchTimeout, "search request timed out", err, false)
}

func NewEventDecodeFailedError(err error) *StandardError {
	return newError(ErrCodeEventDecodeFailed, "invocation event could not be decoded", err, false)
}

func NewSecretLookupFailedError(secretID string, err error) *StandardError {
	e := newError(ErrCodeSecretLookupFailed, "secret lookup failed", err, true)
	e.Metadata = map[string]interface{}{"secretId": secretID}
	return e
}

func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("external service '%s' error", service), err, true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("service '%s' timeout", service), err, true)
}

// GetErrorCode returns the code of the first StandardError in err's chain,
// or INTERNAL_ERROR.
func GetErrorCode(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeExternalService, ErrCodeSecretLookupFailed:
		return 3
	case ErrCodeTimeout:
		return 2
	default:
		// Search failures are reported as text, never retried.
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.HasPrefix(codeStr, "EVENT"), strings.HasPrefix(codeStr, "CONFIG"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "SECRET"):
		return "CREDENTIALS"
	case code == ErrCodeExternalService, code == ErrCodeTimeout:
		return "INTEGRATION"
	default:
		return "OTHER"
	}
}
