package login

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/tuitest"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

func typeText(v *View, s string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func completed(t *testing.T, cmd tea.Cmd) messages.LoginCompleted {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if msg, ok := c().(messages.LoginCompleted); ok {
			return msg
		}
	}
	require.Fail(t, "no LoginCompleted message")
	return messages.LoginCompleted{}
}

func filledView(auth *tuitest.Auth) *View {
	v := NewView(nil, auth)
	v.Open("")
	typeText(v, "asha@example.com")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(v, "1234")
	return v
}

func TestView_OpenFocusesEmail(t *testing.T) {
	v := NewView(nil, &tuitest.Auth{})
	v.Open("Please log in to continue.")

	assert.Equal(t, fieldEmail, v.Focused())
	assert.Contains(t, v.View(), "Please log in to continue.")
}

func TestView_EnterMovesToPIN(t *testing.T) {
	v := NewView(nil, &tuitest.Auth{})
	v.Open("")

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, fieldPIN, v.Focused())
}

func TestView_TabCyclesFields(t *testing.T) {
	v := NewView(nil, &tuitest.Auth{})
	v.Open("")

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldPIN, v.Focused())

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldEmail, v.Focused())
}

func TestView_PINIsMasked(t *testing.T) {
	v := filledView(&tuitest.Auth{})

	view := v.View()
	assert.NotContains(t, view, "1234")
	assert.Contains(t, view, "asha@example.com")
}

func TestView_SubmitRequiresBothFields(t *testing.T) {
	auth := &tuitest.Auth{}
	v := NewView(nil, auth)
	v.Open("")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, auth.Logins)
	view := v.View()
	assert.Contains(t, view, "Email is required")
	assert.Contains(t, view, "PIN is required")
}

func TestView_SuccessfulLogin(t *testing.T) {
	auth := &tuitest.Auth{Session: domain.Session{Token: "tok", UserID: "u1"}}
	v := filledView(auth)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, v.Pending())

	msg := completed(t, cmd)
	require.NoError(t, msg.Err)
	assert.Equal(t, "u1", msg.Session.UserID)
	assert.Equal(t, []string{"asha@example.com"}, auth.Logins)

	v.Update(msg)
	assert.False(t, v.Pending())
	assert.Contains(t, v.View(), "Logged in")
}

func TestView_FailedLogin(t *testing.T) {
	auth := &tuitest.Auth{LoginErr: &domain.RequestError{
		Kind: domain.RequestErrorUnauthorized, Operation: "login", StatusCode: 401,
	}}
	v := filledView(auth)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(completed(t, cmd))

	assert.False(t, v.Pending())
	assert.Equal(t, fieldPIN, v.Focused())
	assert.Empty(t, v.fields[fieldPIN].Value())
	assert.Contains(t, v.View(), "Invalid email or PIN.")
	assert.Equal(t, status.StateError, v.statusbar.State())
}

func TestView_IgnoresKeysWhilePending(t *testing.T) {
	v := filledView(&tuitest.Auth{})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := NewView(nil, &tuitest.Auth{})
	v.Open("")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestLoginMessage(t *testing.T) {
	assert.Equal(t, "Invalid email or PIN.", loginMessage(domain.ErrUnauthorized))
	assert.Equal(t, "Something went wrong. Please try again.",
		loginMessage(&domain.RequestError{Kind: domain.RequestErrorTransport, Operation: "login"}))
}
