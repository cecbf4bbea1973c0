// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and an inline error line.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	err       string
	width     int
}

// Option configures a Field.
type Option func(*Field)

// WithPlaceholder sets the placeholder text.
func WithPlaceholder(p string) Option {
	return func(f *Field) { f.textinput.Placeholder = p }
}

// WithCharLimit caps the input length.
func WithCharLimit(n int) Option {
	return func(f *Field) { f.textinput.CharLimit = n }
}

// Masked hides the typed characters, for PINs.
func Masked() Option {
	return func(f *Field) {
		f.textinput.EchoMode = textinput.EchoPassword
		f.textinput.EchoCharacter = '•'
	}
}

// NewField creates a blurred field.
func NewField(s *styles.Styles, label string, opts ...Option) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	f := &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     60,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Init initialises the field.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label, the input and any error below it.
func (f *Field) View() string {
	labelStyle := f.styles.Label
	if f.textinput.Focused() {
		labelStyle = f.styles.FocusedLabel
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		labelStyle.Render(f.label),
		f.styles.InputField.Render(f.textinput.View()),
	)
	if f.err == "" {
		return row
	}
	return row + "\n" + f.styles.FieldError.Render(f.err)
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// SetLabel replaces the field label.
func (f *Field) SetLabel(label string) {
	f.label = label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// SetError sets the inline error. Empty clears it.
func (f *Field) SetError(msg string) {
	f.err = msg
}

// Error returns the inline error.
func (f *Field) Error() string {
	return f.err
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the field.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Account for the label column and the border
	inputWidth := width - 26
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input and its error.
func (f *Field) Reset() {
	f.textinput.Reset()
	f.err = ""
}
