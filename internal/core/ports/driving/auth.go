package driving

import (
	"context"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// AuthService manages registration, login and the cached session.
type AuthService interface {
	// Register starts a sign-up. Returns the backend message (e.g. "OTP sent").
	Register(ctx context.Context, reg domain.Registration) (string, error)

	// VerifyOTP completes a sign-up and starts a session.
	VerifyOTP(ctx context.Context, v domain.OTPVerification) (domain.Session, error)

	// ResendOTP requests a new OTP for email.
	ResendOTP(ctx context.Context, email string) error

	// Login starts a session.
	Login(ctx context.Context, email, pin string) (domain.Session, error)

	// Logout clears the session.
	Logout(ctx context.Context) error

	// Current returns the cached session.
	// Returns domain.ErrNotAuthenticated if there is none.
	Current(ctx context.Context) (domain.Session, error)
}
