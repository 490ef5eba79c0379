package errors

import "net/http"

// Code classifies service errors so transports can translate them without
// inspecting error strings.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeRateLimited  Code = "rate_limited"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal_error"
)

// ServiceError carries a code plus a human-readable message. The message is
// safe to return to callers for every code except CodeInternal.
type ServiceError struct {
	Code    Code
	Message string
	Err     error
}

func (e ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e ServiceError) Unwrap() error {
	return e.Err
}

// New builds a ServiceError with the given code and message.
func New(code Code, message string) ServiceError {
	return ServiceError{Code: code, Message: message}
}

// Wrap builds a ServiceError that wraps an underlying cause.
func Wrap(code Code, message string, err error) ServiceError {
	return ServiceError{Code: code, Message: message, Err: err}
}

// ToHTTPStatus maps error codes to HTTP status codes.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
