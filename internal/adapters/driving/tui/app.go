package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/views/directory"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/views/profession"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/views/professionals"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView          *menu.View
	directoryView     *directory.View
	professionalsView *professionals.View
	loginView         *login.View
	professionView    *profession.View
	settingsView      *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// returnTo is opened after a successful login.
	returnTo messages.ViewType

	// session is the cached login, zero when logged out.
	session domain.Session

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		keymap:            keymap.DefaultKeyMap(),
		help:              help.New(),
		menuView:          menu.NewView(s),
		directoryView:     directory.NewView(s, ports.Directory),
		professionalsView: professionals.NewView(s, ports.Directory),
		loginView:         login.NewView(s, ports.Auth),
		professionView:    profession.NewView(s, ports.Profession),
		settingsView:      settings.NewView(s, ports.Settings),
		currentView:       messages.ViewMenu,
		returnTo:          messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.directoryView.WithContext(ctx)
	a.professionalsView.WithContext(ctx)
	a.loginView.WithContext(ctx)
	a.professionView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("karigar"),
		a.loadSession(),
		a.watchConfig(),
	)
}

func (a *App) loadSession() tea.Cmd {
	ctx, auth := a.ctx, a.ports.Auth
	return func() tea.Msg {
		session, err := auth.Current(ctx)
		return messages.SessionLoaded{Session: session, Err: err}
	}
}

// watchConfig waits for the next config change and reloads the settings.
// It is re-armed after every reload.
func (a *App) watchConfig() tea.Cmd {
	changes, settings := a.ports.ConfigChanges, a.ports.Settings
	if changes == nil || settings == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
		}
		s, err := settings.Get()
		return messages.ConfigReloaded{Settings: s, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case spinner.TickMsg:
		// Each status bar ignores ticks of other spinners.
		var cmds []tea.Cmd
		a.directoryView, cmd = a.directoryView.Update(msg)
		cmds = append(cmds, cmd)
		a.professionalsView, cmd = a.professionalsView.Update(msg)
		cmds = append(cmds, cmd)
		a.loginView, cmd = a.loginView.Update(msg)
		cmds = append(cmds, cmd)
		a.professionView, cmd = a.professionView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.ProfessionalsRequested:
		a.currentView = messages.ViewProfessionals
		return a, a.professionalsView.Open(msg)

	case messages.CountsLoaded:
		a.directoryView, cmd = a.directoryView.Update(msg)
		return a, cmd

	case messages.ProfessionalsLoaded:
		a.professionalsView, cmd = a.professionalsView.Update(msg)
		return a, cmd

	case messages.SessionLoaded:
		if msg.Err == nil {
			a.setSession(msg.Session)
		}
		return a, nil

	case messages.LoginRequired:
		logger.Debug("login required, returning to %s", msg.Return)
		a.returnTo = msg.Return
		a.setSession(domain.Session{})
		a.currentView = messages.ViewLogin
		return a, a.loginView.Open(msg.Reason)

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.setSession(msg.Session)
		target := a.returnTo
		a.returnTo = messages.ViewMenu
		return a, tea.Batch(cmd, a.navigate(target))

	case messages.LogoutRequested:
		ctx, auth := a.ctx, a.ports.Auth
		return a, func() tea.Msg {
			return messages.LoggedOut{Err: auth.Logout(ctx)}
		}

	case messages.LoggedOut:
		a.setSession(domain.Session{})
		a.err = msg.Err
		return a, nil

	case messages.FormOpened:
		a.professionView, cmd = a.professionView.Update(msg)
		return a, cmd

	case messages.FormSubmitted:
		a.professionView, cmd = a.professionView.Update(msg)
		if msg.Err == nil && !msg.Editing && !a.session.IsZero() {
			a.session.IsProfession = true
			a.menuView.SetSession(a.session)
		}
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		if msg.Err == nil {
			a.applySettings()
		}
		return a, cmd

	case messages.ConfigReloaded:
		if msg.Err != nil {
			logger.Warn("config reload failed: %v", msg.Err)
		} else if msg.Settings != nil {
			a.ports.Directory.Configure(msg.Settings.Directory)
			logger.Info("config reloaded")
		}
		return a, a.watchConfig()

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDirectory:
		a.directoryView, cmd = a.directoryView.Update(msg)
	case messages.ViewProfessionals:
		a.professionalsView, cmd = a.professionalsView.Update(msg)
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewProfession:
		a.professionView, cmd = a.professionView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// navigate switches to view and starts whatever it loads on entry.
func (a *App) navigate(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewDirectory:
		// Counts are refreshed every time the browse screen is shown.
		return a.directoryView.Init()
	case messages.ViewLogin:
		return a.loginView.Open("")
	case messages.ViewProfession:
		return a.professionView.Open()
	case messages.ViewSettings:
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewProfessionals, messages.ViewHelp:
		// No initialisation needed
	}
	return nil
}

// applySettings pushes a saved change to the services that read settings
// once at startup.
func (a *App) applySettings() {
	if a.ports.Settings == nil {
		return
	}
	s, err := a.ports.Settings.Get()
	if err != nil {
		logger.Warn("reading settings: %v", err)
		return
	}
	a.ports.Directory.Configure(s.Directory)
}

func (a *App) setSession(session domain.Session) {
	a.session = session
	a.menuView.SetSession(session)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDirectory:
		return a.directoryView.View()
	case messages.ViewProfessionals:
		return a.professionalsView.View()
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewProfession:
		return a.professionView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the cached session.
func (a *App) Session() domain.Session {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.directoryView.SetDimensions(width, height)
	a.professionalsView.SetDimensions(width, height)
	a.loginView.SetDimensions(width, height)
	a.professionView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
