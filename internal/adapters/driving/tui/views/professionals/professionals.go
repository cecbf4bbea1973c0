// Package professionals provides the view listing the professionals of one service.
package professionals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// View lists professionals for the requested service.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ProfessionalList
	statusbar *status.Bar
	directory driving.DirectoryService
	ctx       context.Context

	request messages.ProfessionalsRequested
	err     error
	width   int
	height  int
}

// NewView creates a new professionals view.
func NewView(s *styles.Styles, directory driving.DirectoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints([]key.Binding{km.Up, km.Down, km.Refresh, km.Back})

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewProfessionalList(s),
		statusbar: bar,
		directory: directory,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open switches the view to req and starts loading its listing.
func (v *View) Open(req messages.ProfessionalsRequested) tea.Cmd {
	v.request = req
	v.list.SetRecords(nil)
	return v.load()
}

func (v *View) load() tea.Cmd {
	if v.directory == nil || v.request.Service == "" {
		return nil
	}
	v.err = nil
	v.statusbar.Set(status.StateLoading, "Loading professionals...")

	ctx, req, directory := v.ctx, v.request, v.directory
	return tea.Batch(v.statusbar.Init(), func() tea.Msg {
		records, err := directory.Professionals(ctx, req.Service, req.Category)
		return messages.ProfessionalsLoaded{Service: req.Service, Records: records, Err: err}
	})
}

// Update handles messages for the professionals view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProfessionalsLoaded:
		return v, v.handleLoaded(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDirectory}
			}
		case key.Matches(msg, v.keymap.Refresh):
			return v, v.load()
		}
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

func (v *View) handleLoaded(msg messages.ProfessionalsLoaded) tea.Cmd {
	// Stale listing from a previously opened service.
	if msg.Service != v.request.Service {
		return nil
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err))
		if domain.Classify(msg.Err) == domain.CategoryAuthorization {
			reason := domain.UserMessage(msg.Err)
			return func() tea.Msg {
				return messages.LoginRequired{Return: messages.ViewDirectory, Reason: reason}
			}
		}
		return nil
	}

	v.list.SetRecords(msg.Records)
	v.statusbar.Set(status.StateReady, fmt.Sprintf("%d professional(s)", len(msg.Records)))
	return nil
}

// View renders the listing.
func (v *View) View() string {
	var b strings.Builder

	title := v.request.Title
	if title == "" {
		title = v.request.Service
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.err == nil {
		b.WriteString(v.list.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	v.statusbar.SetWidth(v.width)
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-4)
	v.statusbar.SetWidth(width)
}

// Request returns the listing currently shown.
func (v *View) Request() messages.ProfessionalsRequested {
	return v.request
}

// Records returns the loaded professionals.
func (v *View) Records() []domain.ProfessionalRecord {
	return v.list.Records()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
