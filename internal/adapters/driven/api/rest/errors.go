package rest

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// ErrRateLimited indicates the backend asked the client to slow down.
var ErrRateLimited = errors.New("rest: rate limited")

// newStatusError builds the request error for a failed response.
func newStatusError(op string, status int, message string) *domain.RequestError {
	if message == "" {
		message = http.StatusText(status)
	}
	kind := domain.RequestErrorServer
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = domain.RequestErrorUnauthorized
	case http.StatusNotFound:
		kind = domain.RequestErrorNotFound
	}
	var cause error
	if status == http.StatusTooManyRequests {
		cause = ErrRateLimited
	}
	return &domain.RequestError{
		Kind:       kind,
		Operation:  op,
		StatusCode: status,
		Message:    message,
		Err:        cause,
	}
}

// newTransportError builds the request error for a request that got no usable response.
func newTransportError(op string, err error) *domain.RequestError {
	return &domain.RequestError{
		Kind:      domain.RequestErrorTransport,
		Operation: op,
		Err:       err,
	}
}

// IsUnauthorized checks if the error indicates the session token was rejected.
func IsUnauthorized(err error) bool {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind == domain.RequestErrorUnauthorized
	}
	return false
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
