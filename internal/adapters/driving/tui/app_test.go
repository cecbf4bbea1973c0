package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/tuitest"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

type testPorts struct {
	ports      *Ports
	auth       *tuitest.Auth
	directory  *tuitest.Directory
	profession *tuitest.Profession
	settings   *tuitest.Settings
	changes    chan struct{}
}

func newTestPorts() *testPorts {
	tp := &testPorts{
		auth:       &tuitest.Auth{},
		directory:  tuitest.NewDirectory(),
		profession: &tuitest.Profession{},
		settings:   &tuitest.Settings{Settings: domain.DefaultAppSettings()},
		changes:    make(chan struct{}, 1),
	}
	tp.ports = &Ports{
		Auth:          tp.auth,
		Profession:    tp.profession,
		Directory:     tp.directory,
		Settings:      tp.settings,
		ConfigChanges: tp.changes,
	}
	return tp
}

func newTestApp(t *testing.T) (*App, *testPorts) {
	t.Helper()
	tp := newTestPorts()
	app, err := NewApp(tp.ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app, tp
}

// find runs cmd, flattening batches, and returns the first message of type T.
func find[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	require.NotNil(t, cmd)
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case T:
			return msg
		}
	}
	require.Failf(t, "message not found", "%T", zero)
	return zero
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts().ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil", nil, ErrInvalidPorts},
		{"no directory", &Ports{Auth: &tuitest.Auth{}, Profession: &tuitest.Profession{}}, ErrMissingDirectoryService},
		{"no auth", &Ports{Directory: tuitest.NewDirectory(), Profession: &tuitest.Profession{}}, ErrMissingAuthService},
		{"no profession", &Ports{Directory: tuitest.NewDirectory(), Auth: &tuitest.Auth{}}, ErrMissingProfessionService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(tt.ports)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, app)
		})
	}
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Init_LoadsSession(t *testing.T) {
	app, tp := newTestApp(t)
	tp.auth.Session = domain.Session{Token: "tok", UserID: "u1"}

	msg := find[messages.SessionLoaded](t, app.loadSession())
	app.Update(msg)

	assert.Equal(t, "u1", app.Session().UserID)
	assert.Contains(t, app.View(), "Log out")
}

func TestApp_Update_WindowSize(t *testing.T) {
	tp := newTestPorts()
	app, _ := NewApp(tp.ports)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Karigar")
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewLogin})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_BrowseRefreshesCountsOnEveryVisit(t *testing.T) {
	app, tp := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewDirectory})
	assert.Equal(t, messages.ViewDirectory, app.CurrentView())
	app.Update(find[messages.CountsLoaded](t, cmd))

	app.Update(messages.ViewChanged{View: messages.ViewMenu})
	_, cmd = app.Update(messages.ViewChanged{View: messages.ViewDirectory})
	find[messages.CountsLoaded](t, cmd)

	assert.Equal(t, 2, tp.directory.Refreshes)
	assert.Contains(t, app.View(), "Browse services")
}

func TestApp_ProfessionalsRequested(t *testing.T) {
	app, tp := newTestApp(t)
	tp.directory.Records["Plumber"] = []domain.ProfessionalRecord{{Name: "Ravi Kulkarni", ServiceName: "Plumber"}}

	_, cmd := app.Update(messages.ProfessionalsRequested{Service: "Plumber", Title: "Plumbers"})
	app.Update(find[messages.ProfessionalsLoaded](t, cmd))

	assert.Equal(t, messages.ViewProfessionals, app.CurrentView())
	assert.Contains(t, app.View(), "Ravi Kulkarni")

	// Esc goes back to browsing.
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(cmd())
	assert.Equal(t, messages.ViewDirectory, app.CurrentView())
}

func TestApp_LoginRequiredReturnsAfterLogin(t *testing.T) {
	app, tp := newTestApp(t)
	app.Update(messages.SessionLoaded{Session: domain.Session{Token: "old"}})
	tp.auth.Session = domain.Session{Token: "new", UserID: "u1"}

	app.Update(messages.LoginRequired{Return: messages.ViewProfession, Reason: "Your session has ended."})
	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.True(t, app.Session().IsZero(), "session cleared")
	assert.Contains(t, app.View(), "Your session has ended.")

	_, cmd := app.Update(messages.LoginCompleted{Session: tp.auth.Session})

	assert.Equal(t, messages.ViewProfession, app.CurrentView())
	assert.Equal(t, "u1", app.Session().UserID)
	find[messages.FormOpened](t, cmd)
}

func TestApp_LoginFromMenuReturnsToMenu(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewLogin})

	app.Update(messages.LoginCompleted{Session: domain.Session{Token: "tok"}})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_LoginFailureStaysOnLogin(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewLogin})

	app.Update(messages.LoginCompleted{Err: domain.ErrUnauthorized})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrUnauthorized)
	assert.True(t, app.Session().IsZero())
}

func TestApp_Logout(t *testing.T) {
	app, tp := newTestApp(t)
	tp.auth.Session = domain.Session{Token: "tok"}
	app.Update(messages.SessionLoaded{Session: tp.auth.Session})

	_, cmd := app.Update(messages.LogoutRequested{})
	app.Update(find[messages.LoggedOut](t, cmd))

	assert.True(t, tp.auth.LoggedOut)
	assert.True(t, app.Session().IsZero())
	assert.NoError(t, app.Err())
}

func TestApp_ProfessionSubmittedMarksProfessional(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.SessionLoaded{Session: domain.Session{Token: "tok"}})

	app.Update(messages.FormSubmitted{Editing: false})

	assert.True(t, app.Session().IsProfession)
}

func TestApp_ConfigReloadReconfiguresDirectory(t *testing.T) {
	app, tp := newTestApp(t)
	tp.settings.Settings.Directory.Concurrency = 2

	tp.changes <- struct{}{}
	msg := find[messages.ConfigReloaded](t, app.watchConfig())
	require.NoError(t, msg.Err)

	_, cmd := app.Update(msg)

	require.Len(t, tp.directory.Configured, 1)
	assert.Equal(t, 2, tp.directory.Configured[0].Concurrency)
	assert.NotNil(t, cmd, "watch is re-armed")
}

func TestApp_ConfigReloadError(t *testing.T) {
	app, tp := newTestApp(t)

	_, cmd := app.Update(messages.ConfigReloaded{Err: errors.New("bad toml")})

	assert.Empty(t, tp.directory.Configured)
	assert.NotNil(t, cmd)
}

func TestApp_WatchConfigStopsWithContext(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	app.WithContext(ctx)
	cmd := app.watchConfig()
	cancel()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestApp_WatchConfigDisabledWithoutChannel(t *testing.T) {
	tp := newTestPorts()
	tp.ports.ConfigChanges = nil
	app, err := NewApp(tp.ports)
	require.NoError(t, err)

	assert.Nil(t, app.watchConfig())
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "refresh")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_MenuNavigatesToBrowse(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewDirectory, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)
	err := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: err})

	assert.Equal(t, err, app.Err())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_SettingsSavedReconfiguresDirectory(t *testing.T) {
	app, tp := newTestApp(t)
	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})
	app.Update(find[messages.SettingsLoaded](t, cmd))
	assert.Contains(t, app.View(), "directory.concurrency")

	tp.settings.Settings.Directory.Concurrency = 8
	app.Update(messages.SettingsSaved{Key: "directory.concurrency"})

	require.Len(t, tp.directory.Configured, 1)
	assert.Equal(t, 8, tp.directory.Configured[0].Concurrency)
}

func TestApp_SettingsSaveFailureKeepsDirectory(t *testing.T) {
	app, tp := newTestApp(t)

	app.Update(messages.SettingsSaved{Key: "directory.concurrency", Err: errors.New("bad value")})

	assert.Empty(t, tp.directory.Configured)
}
