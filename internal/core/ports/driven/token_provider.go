package driven

import (
	"context"
)

// TokenProvider provides the session token for authenticated API calls.
type TokenProvider interface {
	// GetToken returns the cached session token.
	// Returns domain.ErrNotAuthenticated when no session exists and
	// domain.ErrSessionExpired when the session can no longer be used.
	GetToken(ctx context.Context) (string, error)
}
