package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates locally detected, field-scoped form errors.
	// Validation errors never reach the network.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork indicates the backend could not be reached or answered with a failure.
	ErrNetwork = errors.New("request failed")

	// ErrInvalidTaxonomy indicates the static taxonomy failed its startup self-check.
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")

	// ErrRefreshSuperseded indicates a count refresh was replaced by a newer one
	// before it completed. Its results were not committed.
	ErrRefreshSuperseded = errors.New("refresh superseded")

	// Authentication Errors.

	// ErrNotAuthenticated indicates no session is cached.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrUnauthorized indicates the backend rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired indicates the session was cleared and the user must log in again.
	ErrSessionExpired = errors.New("session expired")
)

// FieldErrors maps a form field key to a human readable message.
// An empty map means the form is valid.
type FieldErrors map[string]string

// Keys returns the field keys in sorted order.
func (f FieldErrors) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError carries every violated form rule at once.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Keys() {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports ErrValidation so callers can match without a type assertion.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RequestErrorKind distinguishes failures surfaced from the backend.
type RequestErrorKind int

const (
	// RequestErrorTransport means the request never got a response.
	RequestErrorTransport RequestErrorKind = iota
	// RequestErrorServer means the backend answered with a failure.
	RequestErrorServer
	// RequestErrorUnauthorized means the backend rejected the session.
	RequestErrorUnauthorized
	// RequestErrorNotFound means the requested resource does not exist.
	RequestErrorNotFound
)

// RequestError is a structured network error. Message is suitable for display.
type RequestError struct {
	Kind       RequestErrorKind
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Operation, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Operation, msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is maps the error kind onto the domain sentinels.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return true
	case ErrUnauthorized:
		return e.Kind == RequestErrorUnauthorized
	case ErrNotFound:
		return e.Kind == RequestErrorNotFound
	}
	return false
}

// ErrorCategory is the presentation bucket of an error.
type ErrorCategory string

// Error categories.
const (
	CategoryNone          ErrorCategory = ""
	CategoryValidation    ErrorCategory = "validation"
	CategoryNetwork       ErrorCategory = "network"
	CategoryAuthorization ErrorCategory = "authorization"
	CategoryUnknown       ErrorCategory = "unknown"
)

// Classify buckets err so the UI can choose between "check your input",
// "something went wrong, retry" and a forced return to login.
func Classify(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrValidation):
		return CategoryValidation
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrSessionExpired),
		errors.Is(err, ErrNotAuthenticated):
		return CategoryAuthorization
	case errors.Is(err, ErrNetwork):
		return CategoryNetwork
	default:
		return CategoryUnknown
	}
}

// UserMessage returns display text for err according to its category.
func UserMessage(err error) string {
	switch Classify(err) {
	case CategoryNone:
		return ""
	case CategoryValidation:
		return "Please check the highlighted fields."
	case CategoryAuthorization:
		return "Your session has ended. Please log in again."
	case CategoryNetwork:
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Message != "" && reqErr.Kind == RequestErrorServer {
			return reqErr.Message
		}
		return "Something went wrong. Please try again."
	default:
		return err.Error()
	}
}
