package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

func newLoggedInSessions(t *testing.T) (*SessionManager, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()
	sessions := NewSessionManager(store, 0)
	_, err := sessions.Start(context.Background(), domain.LoginResult{Token: "tok", UserID: "u1"})
	require.NoError(t, err)
	return sessions, store
}

func TestProfileService_Get(t *testing.T) {
	sessions, _ := newLoggedInSessions(t)
	api := &mockAPI{user: &domain.User{ID: "u1", Name: "Ravi"}}
	svc := NewProfileService(api, sessions, nil)

	user, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)
}

func TestProfileService_Get_UnauthorizedClearsSession(t *testing.T) {
	sessions, store := newLoggedInSessions(t)
	api := &mockAPI{err: unauthorizedErr()}
	svc := NewProfileService(api, sessions, nil)

	_, err := svc.Get(context.Background())

	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, 1, store.Clears())
}

func TestProfileService_UpdateBasic(t *testing.T) {
	sessions, _ := newLoggedInSessions(t)
	api := &mockAPI{}
	svc := NewProfileService(api, sessions, nil)

	require.NoError(t, svc.UpdateBasic(context.Background(), domain.BasicProfileUpdate{Name: "Ravi P"}))
	assert.Equal(t, []string{"update_profile"}, api.Calls())
}

func TestProfileService_UpdateBasic_Invalid(t *testing.T) {
	sessions, _ := newLoggedInSessions(t)
	api := &mockAPI{}
	svc := NewProfileService(api, sessions, nil)

	err := svc.UpdateBasic(context.Background(), domain.BasicProfileUpdate{MobileNo: "12"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.UpdateBasic(context.Background(), domain.BasicProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, api.Calls())
}

func TestProfileService_UploadAvatar(t *testing.T) {
	sessions, _ := newLoggedInSessions(t)
	api := &mockAPI{}
	svc := NewProfileService(api, sessions, nil)

	require.NoError(t, svc.UploadAvatar(context.Background(), "me.png", strings.NewReader("png")))
	assert.Equal(t, "me.png", api.avatarName)

	assert.ErrorIs(t, svc.UploadAvatar(context.Background(), "", nil), domain.ErrInvalidInput)
}

func TestProfileService_AvatarURL_FreshTokenPerCall(t *testing.T) {
	sessions, _ := newLoggedInSessions(t)
	svc := NewProfileService(&mockAPI{}, sessions, nil)

	first, err := svc.AvatarURL(context.Background())
	require.NoError(t, err)
	second, err := svc.AvatarURL(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "http://api.test/users/u1/avatar?v="))
	assert.NotEqual(t, first, second)
}

func TestProfileService_AvatarURL_NotAuthenticated(t *testing.T) {
	svc := NewProfileService(&mockAPI{}, NewSessionManager(memory.NewSessionStore(), 0), nil)

	_, err := svc.AvatarURL(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
