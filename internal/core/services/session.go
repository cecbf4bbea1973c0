package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driven.TokenProvider = (*SessionManager)(nil)

// SessionManager owns the cached session. Every screen reads the session
// through it and every authenticated backend call obtains its token from it.
type SessionManager struct {
	store       driven.SessionStore
	idleTimeout time.Duration
	now         func() time.Time
}

// NewSessionManager creates a session manager over store.
// An idleTimeout of 0 disables idle expiry.
func NewSessionManager(store driven.SessionStore, idleTimeout time.Duration) *SessionManager {
	return &SessionManager{
		store:       store,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Start caches a new session. All session keys are written together
// before Start returns.
func (m *SessionManager) Start(ctx context.Context, result domain.LoginResult) (domain.Session, error) {
	if result.Token == "" {
		return domain.Session{}, fmt.Errorf("%w: empty session token", domain.ErrInvalidInput)
	}
	session := domain.Session{
		Token:          result.Token,
		UserID:         result.UserID,
		IsProfession:   result.IsProfession,
		LastActiveTime: m.now(),
	}
	if err := m.store.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	logger.Debug("session started for user %s (token %s)", session.UserID, logger.Mask(session.Token))
	return session, nil
}

// End clears every session key.
func (m *SessionManager) End(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Debug("session cleared")
	return nil
}

// Current returns the cached session.
// Returns domain.ErrNotAuthenticated when none is cached and
// domain.ErrSessionExpired after clearing a session that can no longer be used.
func (m *SessionManager) Current(ctx context.Context) (domain.Session, error) {
	session, err := m.store.Load(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if session.IsZero() {
		return domain.Session{}, domain.ErrNotAuthenticated
	}
	if reason := m.expiry(session); reason != "" {
		logger.Info("session expired: %s", reason)
		if err := m.End(ctx); err != nil {
			return domain.Session{}, err
		}
		return domain.Session{}, domain.ErrSessionExpired
	}
	return session, nil
}

// GetToken returns the session token and records the session as active.
// Only the last-active key is rewritten; the other keys change at login and logout.
func (m *SessionManager) GetToken(ctx context.Context) (string, error) {
	session, err := m.Current(ctx)
	if err != nil {
		return "", err
	}
	if err := m.store.Touch(ctx, m.now()); err != nil {
		return "", fmt.Errorf("touch session: %w", err)
	}
	return session.Token, nil
}

// SetProfession updates the cached professional flag after a profile is published.
func (m *SessionManager) SetProfession(ctx context.Context, isProfession bool) error {
	session, err := m.Current(ctx)
	if err != nil {
		return err
	}
	session.IsProfession = isProfession
	return m.store.Save(ctx, session)
}

// Guard escalates authorization failures. A rejected token clears the
// session and is reported as domain.ErrSessionExpired; any other error is
// returned unchanged.
func (m *SessionManager) Guard(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	logger.Warn("backend rejected session token: %v", err)
	if clearErr := m.End(ctx); clearErr != nil {
		return errors.Join(domain.ErrSessionExpired, clearErr)
	}
	return fmt.Errorf("%w: %w", domain.ErrSessionExpired, err)
}

// expiry returns why session can no longer be used, or "".
func (m *SessionManager) expiry(session domain.Session) string {
	now := m.now()
	if m.idleTimeout > 0 && !session.LastActiveTime.IsZero() &&
		now.Sub(session.LastActiveTime) > m.idleTimeout {
		return "idle timeout"
	}
	if exp, ok := tokenExpiry(session.Token); ok && now.After(exp) {
		return "token expired"
	}
	return ""
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
// The backend remains the authority; this only avoids sending a token that
// is known to be dead. Opaque tokens report no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
