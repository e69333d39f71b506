// Package apierr defines the error body returned by every endpoint and the
// echo error handler that renders it.
package apierr

import (
	"net/http"
)

// Codes are machine-friendly identifiers carried in the error body.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeValidation       = "VALIDATION_FAILED"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeTimeout          = "GATEWAY_TIMEOUT"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

// FieldError is a validation failure on a single input field.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the JSON error body. It implements error so handlers can
// return it directly.
type HTTPError struct {
	Status  int          `json:"status"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func New(status int, code, message string) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message}
}

func NotFound(message string) *HTTPError {
	return New(http.StatusNotFound, CodeNotFound, message)
}

// Conflict is reported as 400 to match the published API contract.
func Conflict(message string) *HTTPError {
	return New(http.StatusBadRequest, CodeConflict, message)
}

func BadRequest(message string) *HTTPError {
	return New(http.StatusBadRequest, CodeBadRequest, message)
}

func Unauthorized(message string) *HTTPError {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func PayloadTooLarge(message string) *HTTPError {
	return New(http.StatusRequestEntityTooLarge, CodePayloadTooLarge, message)
}

func TooManyRequests() *HTTPError {
	return New(http.StatusTooManyRequests, CodeTooManyRequests, "rate limit exceeded")
}

func Timeout() *HTTPError {
	return New(http.StatusGatewayTimeout, CodeTimeout, "request processing exceeded the allowed time limit")
}

func Internal() *HTTPError {
	return New(http.StatusInternalServerError, CodeInternal, "internal server error")
}

// Validation builds a 422 error listing the offending fields.
func Validation(message string, fields ...FieldError) *HTTPError {
	if message == "" {
		message = "validation failed"
	}
	return &HTTPError{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidation,
		Message: message,
		Errors:  fields,
	}
}
