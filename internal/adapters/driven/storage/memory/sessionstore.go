package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore for testing.
type SessionStore struct {
	mu      sync.RWMutex
	session domain.Session
	saves   int
	clears  int
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns the stored session.
func (s *SessionStore) Load(_ context.Context) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, nil
}

// Save replaces the stored session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.saves++
	return nil
}

// Touch updates the last-active time of a stored session.
func (s *SessionStore) Touch(_ context.Context, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Token == "" {
		return nil
	}
	s.session.LastActiveTime = at
	return nil
}

// Saves returns how many times Save was called.
func (s *SessionStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Clear removes the stored session.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	s.clears++
	return nil
}

// Clears returns how many times Clear was called.
func (s *SessionStore) Clears() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clears
}
