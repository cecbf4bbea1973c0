// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// Action is what selecting a menu item does besides switching view.
type Action int

const (
	// ActionView switches to the item's view.
	ActionView Action = iota
	// ActionSession logs in or out depending on the session.
	ActionSession
	// ActionQuit exits the app.
	ActionQuit
)

// Item represents a single menu option.
type Item struct {
	Label  string
	View   messages.ViewType
	Action Action
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	session  domain.Session
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Browse services", View: messages.ViewDirectory},
			{Label: "My profession", View: messages.ViewProfession},
			{Label: "Log in", View: messages.ViewLogin, Action: ActionSession},
			{Label: "Settings", View: messages.ViewSettings},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Action: ActionQuit},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.choose(v.items[v.selected])

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	switch item.Action {
	case ActionQuit:
		return tea.Quit
	case ActionSession:
		if !v.session.IsZero() {
			return func() tea.Msg { return messages.LogoutRequested{} }
		}
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// SetSession records the cached session so the menu offers log in or log out.
func (v *View) SetSession(session domain.Session) {
	v.session = session
	for i := range v.items {
		if v.items[i].Action != ActionSession {
			continue
		}
		if session.IsZero() {
			v.items[i].Label = "Log in"
		} else {
			v.items[i].Label = "Log out"
		}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := v.styles.Title.Render("Karigar")
	b.WriteString(title)
	b.WriteString("\n\n")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(v.subtitle())
	b.WriteString(subtitle)
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

		if i == v.selected {
			cursor = "> "
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color("208")).
				Bold(true)
		}

		line := cursor + style.Render(item.Label)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[j/k] Navigate  [Enter] Select  [q] Quit")
	b.WriteString(footer)

	return b.String()
}

func (v *View) subtitle() string {
	switch {
	case v.session.IsZero():
		return "Find local professionals"
	case v.session.IsProfession:
		return "Logged in as a professional"
	default:
		return "Logged in"
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
