package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
)

// Ensure sessionStore implements the interface.
var _ driven.SessionStore = (*sessionStore)(nil)

// sessionStore keeps the session as rows of the session_kv table, one per
// session key. Values are strings; booleans are "true"/"false" and times
// are RFC 3339.
type sessionStore struct {
	db *sql.DB
}

// Load returns the stored session. Missing keys leave their field empty.
func (s *sessionStore) Load(ctx context.Context) (domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM session_kv")
	if err != nil {
		return domain.Session{}, fmt.Errorf("query session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 4)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Session{}, fmt.Errorf("scan session: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	session := domain.Session{
		Token:  values[domain.SessionKeyToken],
		UserID: values[domain.SessionKeyUserID],
	}
	if v, ok := values[domain.SessionKeyIsProfession]; ok {
		session.IsProfession, _ = strconv.ParseBool(v)
	}
	if v, ok := values[domain.SessionKeyLastActiveTime]; ok && v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return domain.Session{}, fmt.Errorf("parse %s: %w", domain.SessionKeyLastActiveTime, err)
		}
		session.LastActiveTime = t
	}
	return session, nil
}

// Save writes every session key in one transaction.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) error {
	lastActive := ""
	if !session.LastActiveTime.IsZero() {
		lastActive = session.LastActiveTime.UTC().Format(time.RFC3339Nano)
	}
	values := map[string]string{
		domain.SessionKeyToken:          session.Token,
		domain.SessionKeyUserID:         session.UserID,
		domain.SessionKeyIsProfession:   strconv.FormatBool(session.IsProfession),
		domain.SessionKeyLastActiveTime: lastActive,
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range domain.SessionKeys() {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session_kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, values[key])
			if err != nil {
				return fmt.Errorf("save %s: %w", key, err)
			}
		}
		return nil
	})
}

// Touch rewrites the last-active row while a token row exists.
func (s *sessionStore) Touch(ctx context.Context, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE session_kv SET value = ?, updated_at = CURRENT_TIMESTAMP
		WHERE key = ? AND EXISTS (SELECT 1 FROM session_kv WHERE key = ? AND value != '')
	`, at.UTC().Format(time.RFC3339Nano), domain.SessionKeyLastActiveTime, domain.SessionKeyToken)
	if err != nil {
		return fmt.Errorf("touch %s: %w", domain.SessionKeyLastActiveTime, err)
	}
	return nil
}

// Clear removes every session key in one transaction.
func (s *sessionStore) Clear(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range domain.SessionKeys() {
			if _, err := tx.ExecContext(ctx, "DELETE FROM session_kv WHERE key = ?", key); err != nil {
				return fmt.Errorf("clear %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *sessionStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
