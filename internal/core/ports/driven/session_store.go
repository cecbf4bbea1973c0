package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// SessionStore persists the cached session as a unit of four keys
// (see domain.SessionKeys).
type SessionStore interface {
	// Load returns the stored session. A missing session is the zero Session.
	Load(ctx context.Context) (domain.Session, error)

	// Save writes all session keys atomically.
	Save(ctx context.Context, session domain.Session) error

	// Touch updates only the last-active key of an existing session.
	// It is a no-op when no session is stored.
	Touch(ctx context.Context, at time.Time) error

	// Clear removes all session keys atomically.
	Clear(ctx context.Context) error
}
