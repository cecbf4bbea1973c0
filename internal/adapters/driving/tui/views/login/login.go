// Package login provides the email and PIN login view.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

const (
	fieldEmail = iota
	fieldPIN
)

// View is the login form.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    []*input.Field
	focus     int
	statusbar *status.Bar
	auth      driving.AuthService
	ctx       context.Context

	reason  string
	pending bool
	width   int
}

// NewView creates a new login view.
func NewView(s *styles.Styles, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints([]key.Binding{km.NextField, km.Select, km.Back})

	return &View{
		styles: s,
		keymap: km,
		fields: []*input.Field{
			input.NewField(s, "Email", input.WithPlaceholder("you@example.com"), input.WithCharLimit(120)),
			input.NewField(s, "PIN", input.Masked(), input.WithCharLimit(12)),
		},
		statusbar: bar,
		auth:      auth,
		ctx:       context.Background(),
		width:     80,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open resets the form and shows reason above it.
func (v *View) Open(reason string) tea.Cmd {
	v.reason = reason
	v.pending = false
	for _, f := range v.fields {
		f.Reset()
	}
	v.statusbar.Clear()
	return v.focusField(fieldEmail)
}

func (v *View) focusField(i int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = i
	return v.fields[i].Focus()
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LoginCompleted:
		v.pending = false
		if msg.Err != nil {
			v.fields[fieldPIN].Reset()
			v.statusbar.Set(status.StateError, loginMessage(msg.Err))
			return v, v.focusField(fieldPIN)
		}
		v.statusbar.Set(status.StateSuccess, "Logged in")
		return v, nil

	case tea.KeyMsg:
		if v.pending {
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case key.Matches(msg, v.keymap.NextField), key.Matches(msg, v.keymap.PrevField):
			return v, v.focusField((v.focus + 1) % len(v.fields))
		case key.Matches(msg, v.keymap.Select):
			if v.focus == fieldEmail {
				return v, v.focusField(fieldPIN)
			}
			return v, v.submit()
		}
		var cmd tea.Cmd
		v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	email := strings.TrimSpace(v.fields[fieldEmail].Value())
	pin := v.fields[fieldPIN].Value()

	v.fields[fieldEmail].SetError("")
	v.fields[fieldPIN].SetError("")
	valid := true
	if email == "" {
		v.fields[fieldEmail].SetError("Email is required")
		valid = false
	}
	if pin == "" {
		v.fields[fieldPIN].SetError("PIN is required")
		valid = false
	}
	if !valid || v.auth == nil {
		return nil
	}

	v.pending = true
	v.statusbar.Set(status.StateLoading, "Logging in...")

	ctx, auth := v.ctx, v.auth
	return tea.Batch(v.statusbar.Init(), func() tea.Msg {
		session, err := auth.Login(ctx, email, pin)
		return messages.LoginCompleted{Session: session, Err: err}
	})
}

// loginMessage words a failed login. A rejected token during login means
// bad credentials rather than an ended session.
func loginMessage(err error) string {
	if domain.Classify(err) == domain.CategoryAuthorization {
		return "Invalid email or PIN."
	}
	return domain.UserMessage(err)
}

// View renders the login form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Log in"))
	b.WriteString("\n\n")
	if v.reason != "" {
		b.WriteString(v.styles.Warning.Render(v.reason))
		b.WriteString("\n\n")
	}

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	v.statusbar.SetWidth(v.width)
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	for _, f := range v.fields {
		f.SetWidth(width)
	}
	v.statusbar.SetWidth(width)
}

// Pending reports whether a login request is in flight.
func (v *View) Pending() bool {
	return v.pending
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focus
}
