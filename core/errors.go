package core

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes filter-layer errors.
type ErrorCode string

const (
	// ErrUnknownProvider marks a configuration naming a backend kind with no
	// matching adapter factory.
	ErrUnknownProvider ErrorCode = "unknown_provider"
	// ErrProviderCall marks a backend call that failed or returned content
	// that could not be parsed into a Decision.
	ErrProviderCall ErrorCode = "provider_call"
	// ErrNoProviderAvailable marks the terminal fallback failure: every
	// adapter in the pool failed to bind a session.
	ErrNoProviderAvailable ErrorCode = "no_provider_available"
	// ErrInternal covers faults with no more specific classification.
	ErrInternal ErrorCode = "internal"
)

// FilterError provides coded context for callers of the filter layer.
type FilterError struct {
	Code    ErrorCode
	Message string
	wrapped error
}

func (e *FilterError) Error() string {
	if e == nil {
		return ""
	}
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.wrapped)
	}
	return e.Message
}

func (e *FilterError) Unwrap() error { return e.wrapped }

// WrapError coerces err into a FilterError with the provided code. An error
// that already carries a code keeps it.
func WrapError(err error, code ErrorCode) *FilterError {
	if err == nil {
		return nil
	}
	var fe *FilterError
	if errors.As(err, &fe) {
		return fe
	}
	return &FilterError{Code: code, Message: err.Error(), wrapped: err}
}

// NewError builds a FilterError explicitly.
func NewError(code ErrorCode, message string, opts ...ErrorOption) *FilterError {
	e := &FilterError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ErrorOption mutates a FilterError during construction.
type ErrorOption func(*FilterError)

// WithWrapped attaches an underlying error.
func WithWrapped(err error) ErrorOption {
	return func(e *FilterError) { e.wrapped = err }
}

func classify(code ErrorCode) func(error) bool {
	return func(err error) bool {
		if err == nil {
			return false
		}
		var fe *FilterError
		if errors.As(err, &fe) {
			return fe.Code == code
		}
		return false
	}
}

// Helper predicates for common error handling patterns.
var (
	IsUnknownProvider     = classify(ErrUnknownProvider)
	IsProviderCall        = classify(ErrProviderCall)
	IsNoProviderAvailable = classify(ErrNoProviderAvailable)
)
