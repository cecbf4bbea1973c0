// Package directory provides the browse view: service categories with
// professional counts, a filter and expandable service rows.
package directory

import (
	"context"
	"errors"
	"fmt"
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

// row is one line of the browse list.
type row struct {
	category domain.ServiceCategory
	// service is set for service rows and zero for category rows.
	service domain.Option
}

func (r row) isService() bool {
	return r.service.Value != ""
}

// View represents the browse screen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	filter    *input.Field
	statusbar *status.Bar
	directory driving.DirectoryService
	ctx       context.Context

	counts    domain.Counts
	rows      []row
	selected  int
	filtering bool
	loading   bool

	width  int
	height int
}

// NewView creates a new browse view.
func NewView(s *styles.Styles, directory driving.DirectoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.DirectoryHelp())

	v := &View{
		styles:    s,
		keymap:    km,
		filter:    input.NewField(s, "Filter", input.WithPlaceholder("category or service"), input.WithCharLimit(40)),
		statusbar: bar,
		directory: directory,
		ctx:       context.Background(),
		counts:    domain.NewCounts(),
		width:     80,
		height:    24,
	}
	v.rebuild()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init refreshes the counts. It runs every time the view becomes visible.
func (v *View) Init() tea.Cmd {
	if v.directory == nil {
		return nil
	}
	return v.load(v.directory.OnActivate)
}

// Refresh re-fetches the counts on request.
func (v *View) Refresh() tea.Cmd {
	if v.directory == nil {
		return nil
	}
	return v.load(v.directory.RefreshCounts)
}

func (v *View) load(fetch func(context.Context) (domain.Counts, error)) tea.Cmd {
	v.loading = true
	v.statusbar.Set(status.StateLoading, "Counting professionals...")

	ctx := v.ctx
	return tea.Batch(v.statusbar.Init(), func() tea.Msg {
		counts, err := fetch(ctx)
		return messages.CountsLoaded{Counts: counts, Err: err}
	})
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CountsLoaded:
		v.handleCounts(msg)
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.handleFilterKey(msg)
		}
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

func (v *View) handleCounts(msg messages.CountsLoaded) {
	// A newer refresh is running and will report.
	if errors.Is(msg.Err, domain.ErrRefreshSuperseded) {
		return
	}
	v.loading = false

	if msg.Err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err))
		return
	}

	v.counts = msg.Counts
	if msg.Counts.Degraded() {
		v.statusbar.Set(status.StateDegraded,
			fmt.Sprintf("Counts unavailable for %d service(s)", len(msg.Counts.Failed)))
	} else {
		v.statusbar.Clear()
	}
	v.rebuild()
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filter.Reset()
		v.filter.Blur()
		v.filtering = false
		v.rebuild()
		return v, nil
	case tea.KeyEnter:
		v.filter.Blur()
		v.filtering = false
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.rebuild()
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keymap.Down):
		if v.selected < len(v.rows)-1 {
			v.selected++
		}
	case key.Matches(msg, v.keymap.Search):
		v.filtering = true
		return v, v.filter.Focus()
	case key.Matches(msg, v.keymap.Refresh):
		return v, v.Refresh()
	case key.Matches(msg, v.keymap.Select):
		return v, v.activate()
	case key.Matches(msg, v.keymap.Back):
		if v.filter.Value() != "" {
			v.filter.Reset()
			v.rebuild()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// activate opens the selected row: a service or the sentinel category
// lists professionals, any other category toggles its services.
func (v *View) activate() tea.Cmd {
	r, ok := v.selectedRow()
	if !ok {
		return nil
	}

	if r.isService() {
		req := messages.ProfessionalsRequested{
			Service:  r.service.Value,
			Category: r.category.Value,
			Title:    r.category.Label + " / " + r.service.Label,
		}
		return func() tea.Msg { return req }
	}

	if isSentinel(r.category) {
		req := messages.ProfessionalsRequested{
			Service: domain.SentinelService,
			Title:   r.category.Label,
		}
		return func() tea.Msg { return req }
	}

	v.directory.ToggleExpanded(r.category.Label)
	v.rebuild()
	v.selectCategory(r.category.Label)
	return nil
}

func isSentinel(c domain.ServiceCategory) bool {
	return domain.IsSentinelCategory(c.Label) || domain.IsSentinelCategory(c.Value)
}

// rebuild recomputes the visible rows from the filter and expansion state.
func (v *View) rebuild() {
	v.rows = v.rows[:0]
	if v.directory == nil {
		return
	}

	byLabel := make(map[string]domain.ServiceCategory)
	for _, c := range v.directory.Categories() {
		byLabel[c.Label] = c
	}

	for _, label := range v.directory.Search(v.filter.Value()) {
		c, ok := byLabel[label]
		if !ok {
			continue
		}
		v.rows = append(v.rows, row{category: c})
		if isSentinel(c) || !v.directory.IsExpanded(c.Label) {
			continue
		}
		for _, svc := range v.directory.Services(c.Value) {
			v.rows = append(v.rows, row{category: c, service: svc})
		}
		v.rows = append(v.rows, row{category: c, service: domain.SentinelOption()})
	}

	if v.selected >= len(v.rows) {
		v.selected = len(v.rows) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

func (v *View) selectCategory(label string) {
	for i, r := range v.rows {
		if !r.isService() && r.category.Label == label {
			v.selected = i
			return
		}
	}
}

func (v *View) selectedRow() (row, bool) {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return row{}, false
	}
	return v.rows[v.selected], true
}

// View renders the browse screen.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Browse services"))
	b.WriteString("\n\n")

	if v.filtering || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}

	if len(v.rows) == 0 {
		b.WriteString(v.styles.Muted.Render("No matching services."))
		b.WriteString("\n")
	}

	start, end := v.window()
	for i := start; i < end; i++ {
		b.WriteString(v.renderRow(i, v.rows[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	v.statusbar.SetWidth(v.width)
	b.WriteString(v.statusbar.View())
	return b.String()
}

// window returns the visible slice of rows around the selection.
func (v *View) window() (start, end int) {
	visible := v.height - 8
	if visible < 3 {
		visible = 3
	}
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end = start + visible
	if end > len(v.rows) {
		end = len(v.rows)
	}
	return start, end
}

func (v *View) renderRow(index int, r row) string {
	cursor := "  "
	style := v.styles.Normal
	if index == v.selected {
		cursor = "> "
		style = v.styles.Selected
	}

	if r.isService() {
		line := cursor + "    " + style.Render(r.service.Label)
		if r.service.Value == domain.SentinelService {
			return line
		}
		return line + "  " + v.styles.Count.Render(fmt.Sprintf("(%d)", v.counts.Services[r.service.Value]))
	}

	if isSentinel(r.category) {
		return cursor + style.Render("→ "+r.category.Label)
	}

	marker := "▸ "
	if v.directory.IsExpanded(r.category.Label) {
		marker = "▾ "
	}
	return cursor + style.Render(marker+r.category.Label) + "  " +
		v.styles.Count.Render(fmt.Sprintf("(%d)", v.counts.Categories[r.category.Label]))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Counts returns the counts last shown.
func (v *View) Counts() domain.Counts {
	return v.counts
}

// Loading reports whether a refresh is pending.
func (v *View) Loading() bool {
	return v.loading
}

// Filtering reports whether the filter has focus.
func (v *View) Filtering() bool {
	return v.filtering
}

// Selected returns the index of the selected row.
func (v *View) Selected() int {
	return v.selected
}

// RowCount returns the number of visible rows.
func (v *View) RowCount() int {
	return len(v.rows)
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}
