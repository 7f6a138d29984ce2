package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Validation errors (request side, mapped to 400 by the HTTP layer)
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation pipeline errors
	CodeUnsupportedFormat    ErrorCode = "UNSUPPORTED_FORMAT"
	CodeExtractionFailure    ErrorCode = "EXTRACTION_FAILURE"
	CodeNoMaterial           ErrorCode = "NO_MATERIAL_PROVIDED"
	CodeModelNotAllowed      ErrorCode = "MODEL_NOT_ALLOWED"
	CodeGatewayNotConfigured ErrorCode = "GATEWAY_NOT_CONFIGURED"
	CodeGatewayError         ErrorCode = "GATEWAY_ERROR"
	CodeContentBlocked       ErrorCode = "CONTENT_BLOCKED"
	CodeEmptyGatewayResponse ErrorCode = "EMPTY_GATEWAY_RESPONSE"
	CodeMalformedModelOutput ErrorCode = "MALFORMED_MODEL_OUTPUT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches a key/value pair for the HTTP layer to surface
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Helper constructors for the generation pipeline

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnsupportedFormatError(filename, mimeType string) *DomainError {
	return NewError(CodeUnsupportedFormat,
		fmt.Sprintf("Unsupported file format for %q (%s)", filename, mimeType), nil).
		WithContext("filename", filename)
}

func NewExtractionFailureError(filename string, cause error) *DomainError {
	return NewError(CodeExtractionFailure,
		fmt.Sprintf("Failed to extract text from %q", filename), cause).
		WithContext("filename", filename)
}

func NewNoMaterialError() *DomainError {
	return NewError(CodeNoMaterial, "No material provided: paste text or upload at least one file", nil)
}

func NewModelNotAllowedError(model string) *DomainError {
	return NewError(CodeModelNotAllowed,
		fmt.Sprintf("Model %q is not in the allow-list", model), nil).
		WithContext("model", model)
}

func NewGatewayNotConfiguredError() *DomainError {
	return NewError(CodeGatewayNotConfigured, "Generation gateway is not configured: missing API credential", nil)
}

func NewGatewayError(status int, body string) *DomainError {
	return NewError(CodeGatewayError,
		fmt.Sprintf("Generation endpoint returned status %d", status), nil).
		WithContext("status", status).
		WithContext("body", body)
}

func NewContentBlockedError(reason string) *DomainError {
	return NewError(CodeContentBlocked,
		fmt.Sprintf("Generation request was blocked by the provider: %s", reason), nil).
		WithContext("block_reason", reason)
}

func NewEmptyGatewayResponseError() *DomainError {
	return NewError(CodeEmptyGatewayResponse, "Generation endpoint returned no text content", nil)
}

// NewMalformedModelOutputError keeps the raw model text in the error context
// so the caller can surface it for debugging. Losing the raw payload would
// make these failures unrecoverable for the caller.
func NewMalformedModelOutputError(raw string, cause error) *DomainError {
	return NewError(CodeMalformedModelOutput, "Model output did not match the expected question schema", cause).
		WithContext("raw_output", raw)
}

// ValidationError represents a single field-level validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures for one request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value)}
}
