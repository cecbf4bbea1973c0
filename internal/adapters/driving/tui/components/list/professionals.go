// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// linesPerRecord is the height of one rendered professional.
const linesPerRecord = 3

// ProfessionalList displays professionals in a navigable list.
type ProfessionalList struct {
	records  []domain.ProfessionalRecord
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProfessionalList creates a new professional list component.
func NewProfessionalList(s *styles.Styles) *ProfessionalList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProfessionalList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *ProfessionalList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ProfessionalList) Update(msg tea.Msg) (*ProfessionalList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list.
func (r *ProfessionalList) View() string {
	if len(r.records) == 0 {
		return r.styles.Muted.Render("No professionals listed yet")
	}

	lines := make([]string, 0, len(r.records)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Professionals (%d)", len(r.records))), "")

	visibleCount := (r.height - 4) / linesPerRecord
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.records) {
		end = len(r.records)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRecord(i, &r.records[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *ProfessionalList) renderRecord(index int, rec *domain.ProfessionalRecord) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := truncate(rec.Name, r.width-24)
	service := rec.DisplayService()

	var title string
	if index == r.selected {
		title = r.styles.Selected.Render(indicator+name) + "  " + r.styles.Subtitle.Render(service)
	} else {
		title = r.styles.Normal.Render(indicator+name) + "  " + r.styles.Muted.Render(service)
	}

	location := joinNonEmpty(rec.City, rec.District, rec.State)
	detail := location
	if rec.Experience != "" {
		detail = joinNonEmpty(location, rec.Experience+" experience")
	}
	contact := rec.MobileNo
	if rec.AlternateMobileNo != "" {
		contact += " / " + rec.AlternateMobileNo
	}

	return title + "\n" +
		r.styles.Muted.Render("    "+truncate(detail, r.width-6)) + "\n" +
		r.styles.Normal.Render("    "+contact)
}

func truncate(s string, maxLen int) string {
	if maxLen < 10 {
		maxLen = 10
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// SetRecords replaces the list contents.
func (r *ProfessionalList) SetRecords(records []domain.ProfessionalRecord) {
	r.records = records
	r.selected = 0
}

// Records returns the current records.
func (r *ProfessionalList) Records() []domain.ProfessionalRecord {
	return r.records
}

// Selected returns the index of the selected record.
func (r *ProfessionalList) Selected() int {
	return r.selected
}

// SelectedRecord returns the currently selected record, or nil if none.
func (r *ProfessionalList) SelectedRecord() *domain.ProfessionalRecord {
	if len(r.records) == 0 || r.selected < 0 || r.selected >= len(r.records) {
		return nil
	}
	return &r.records[r.selected]
}

// MoveUp moves selection up.
func (r *ProfessionalList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ProfessionalList) MoveDown() {
	if r.selected < len(r.records)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ProfessionalList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of records.
func (r *ProfessionalList) Count() int {
	return len(r.records)
}
