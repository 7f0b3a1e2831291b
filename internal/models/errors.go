package models

import (
	"errors"
	"fmt"
)

// Error codes shared by the service and handler layers
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeConfiguration      = "CONFIGURATION_ERROR"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeServiceUnreachable = "SERVICE_UNREACHABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// Common error types
var (
	ErrMissingConfig = errors.New("required configuration missing")
	ErrUnreachable   = errors.New("remote service unreachable")
)

// AppError represents an application-level error with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// ErrConfiguration creates a server-side misconfiguration error
func ErrConfiguration(message string) error {
	return &AppError{
		Code:    CodeConfiguration,
		Message: message,
		Err:     ErrMissingConfig,
	}
}

// ErrServiceUnreachable wraps a transport failure against a remote service
func ErrServiceUnreachable(message string, cause error) error {
	return &AppError{
		Code:    CodeServiceUnreachable,
		Message: message,
		Err:     errors.Join(ErrUnreachable, cause),
	}
}

// UpstreamError is returned when a remote API answers with a non-2xx status
type UpstreamError struct {
	Service    string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Detail)
}

// ErrorCode extracts the AppError code, or CodeInternal for anything else
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return CodeUpstream
	}
	if errors.Is(err, ErrUnreachable) {
		return CodeServiceUnreachable
	}
	return CodeInternal
}
