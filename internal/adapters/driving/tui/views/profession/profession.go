// Package profession provides the profession registration and edit form.
package profession

import (
	"context"
	"errors"
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

type fieldKind int

const (
	textKind fieldKind = iota
	pickKind
	checkKind
)

const (
	designationLabel = "Designation"
	customLabel      = "Your service"
)

// formField is one row of the form. Text rows own an input; picker and
// checkbox rows read their value from the form session.
type formField struct {
	key   string
	label string
	kind  fieldKind
	text  *input.Field
}

// View is the profession form.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	statusbar  *status.Bar
	profession driving.ProfessionService
	ctx        context.Context

	session    driving.ProfessionFormSession
	fields     []*formField
	focus      int
	errs       domain.FieldErrors
	submitting bool
	done       bool

	width  int
	height int
}

// NewView creates a new profession form view.
func NewView(s *styles.Styles, profession driving.ProfessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.FormHelp())

	return &View{
		styles:     s,
		keymap:     km,
		statusbar:  bar,
		profession: profession,
		ctx:        context.Background(),
		errs:       domain.FieldErrors{},
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open discards any form in progress and loads the current user's.
func (v *View) Open() tea.Cmd {
	v.session = nil
	v.fields = nil
	v.focus = 0
	v.errs = domain.FieldErrors{}
	v.submitting = false
	v.done = false
	if v.profession == nil {
		return nil
	}

	v.statusbar.Set(status.StateLoading, "Loading your profile...")
	ctx, profession := v.ctx, v.profession
	return tea.Batch(v.statusbar.Init(), func() tea.Msg {
		session, err := profession.Begin(ctx)
		return messages.FormOpened{Session: session, Err: err}
	})
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.FormOpened:
		return v, v.handleOpened(msg)

	case messages.FormSubmitted:
		return v, v.handleSubmitted(msg)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

func (v *View) handleOpened(msg messages.FormOpened) tea.Cmd {
	if msg.Err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err))
		if domain.Classify(msg.Err) == domain.CategoryAuthorization {
			return loginRequired("Log in to register as a professional.")
		}
		return nil
	}

	v.session = msg.Session
	v.build()
	if v.session.Editing() {
		v.statusbar.Set(status.StateReady, "Editing your profession")
	} else {
		v.statusbar.Clear()
	}
	return v.setFocus(0)
}

func (v *View) handleSubmitted(msg messages.FormSubmitted) tea.Cmd {
	v.submitting = false
	if msg.Err == nil {
		v.done = true
		v.setErrors(domain.FieldErrors{})
		if msg.Editing {
			v.statusbar.Set(status.StateSuccess, "Profession updated")
		} else {
			v.statusbar.Set(status.StateSuccess, "Profession submitted")
		}
		return nil
	}

	var verr *domain.ValidationError
	if errors.As(msg.Err, &verr) {
		v.setErrors(verr.Fields)
		v.focusFirstError()
	}
	v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err))
	if domain.Classify(msg.Err) == domain.CategoryAuthorization {
		return loginRequired(domain.UserMessage(msg.Err))
	}
	return nil
}

func loginRequired(reason string) tea.Cmd {
	return func() tea.Msg {
		return messages.LoginRequired{Return: messages.ViewProfession, Reason: reason}
	}
}

// build lays out the rows for the current session.
func (v *View) build() {
	text := func(k, label string, opts ...input.Option) *formField {
		f := input.NewField(v.styles, label, opts...)
		f.SetWidth(v.width)
		return &formField{key: k, label: label, kind: textKind, text: f}
	}
	pick := func(k, label string) *formField {
		return &formField{key: k, label: label, kind: pickKind}
	}

	v.fields = []*formField{
		text(domain.FieldName, "Full name"),
		text(domain.FieldEmail, "Email"),
		text(domain.FieldMobileNo, "Mobile", input.WithPlaceholder("10 digits"), input.WithCharLimit(10)),
		text(domain.FieldAlternateMobileNo, "Alternate mobile", input.WithPlaceholder("optional"), input.WithCharLimit(10)),
		pick(domain.FieldState, "State"),
		pick(domain.FieldDistrict, "District"),
		pick(domain.FieldCity, "City"),
		pick(domain.FieldServiceCategory, "Category"),
		pick(domain.FieldServiceName, "Service"),
		text(domain.FieldDesignation, designationLabel, input.WithPlaceholder("optional")),
		text(domain.FieldExperience, "Experience", input.WithPlaceholder("e.g. 5 years")),
		text(domain.FieldAbout, "About", input.WithPlaceholder("optional")),
	}
	if !v.session.Editing() {
		v.fields = append(v.fields, &formField{key: domain.FieldAgreed, label: "Agreement", kind: checkKind})
	}
	v.syncText()
}

// syncText copies the session's text values into the inputs. Picker
// changes can clear the designation, so this runs after every choice.
func (v *View) syncText() {
	form := v.session.Form()
	for _, f := range v.fields {
		if f.kind != textKind {
			continue
		}
		if want := textValue(form, f.key); f.text.Value() != want {
			f.text.SetValue(want)
		}
		if f.key == domain.FieldDesignation {
			if form.ServiceName == domain.SentinelService {
				f.text.SetLabel(customLabel)
			} else {
				f.text.SetLabel(designationLabel)
			}
		}
	}
}

func textValue(form domain.ProfessionForm, field string) string {
	switch field {
	case domain.FieldName:
		return form.Name
	case domain.FieldEmail:
		return form.Email
	case domain.FieldMobileNo:
		return form.MobileNo
	case domain.FieldAlternateMobileNo:
		return form.AlternateMobileNo
	case domain.FieldDesignation:
		return form.Designation
	case domain.FieldExperience:
		return form.Experience
	case domain.FieldAbout:
		return form.About
	}
	return ""
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	if v.session == nil || v.submitting || v.done {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keymap.Submit):
		return v, v.submit()
	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus(v.focus + 1)
	case key.Matches(msg, v.keymap.PrevField):
		return v, v.setFocus(v.focus - 1)
	case key.Matches(msg, v.keymap.Select):
		if v.focus == len(v.fields)-1 {
			return v, v.submit()
		}
		return v, v.setFocus(v.focus + 1)
	}

	f := v.fields[v.focus]
	switch f.kind {
	case pickKind:
		switch {
		case key.Matches(msg, v.keymap.NextOption):
			v.cycle(f, 1)
		case key.Matches(msg, v.keymap.PrevOption):
			v.cycle(f, -1)
		}
		return v, nil

	case checkKind:
		if key.Matches(msg, v.keymap.Toggle) {
			v.session.SetAgreed(!v.session.Form().Agreed)
			v.clearError(f.key)
		}
		return v, nil
	}

	var cmd tea.Cmd
	before := f.text.Value()
	f.text, cmd = f.text.Update(msg)
	if after := f.text.Value(); after != before {
		// Only text keys reach SetText, so it cannot fail here.
		_ = v.session.SetText(f.key, after)
		v.clearError(f.key)
	}
	return v, cmd
}

// setFocus moves focus to row i, clamped to the form.
func (v *View) setFocus(i int) tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(v.fields) {
		i = len(v.fields) - 1
	}

	if old := v.fields[v.focus]; old.kind == textKind {
		old.text.Blur()
	}
	v.focus = i
	if f := v.fields[i]; f.kind == textKind {
		return f.text.Focus()
	}
	return nil
}

// options returns the choices of a picker given the current ancestors.
func (v *View) options(field string) []domain.Option {
	form := v.session.Form()
	switch field {
	case domain.FieldState:
		return v.session.States()
	case domain.FieldDistrict:
		return v.session.OptionsForDistrict(form.State)
	case domain.FieldCity:
		return v.session.OptionsForCity(form.District)
	case domain.FieldServiceCategory:
		return v.session.Categories()
	case domain.FieldServiceName:
		return v.session.OptionsForServiceName(form.ServiceCategory)
	}
	return nil
}

func pickValue(form domain.ProfessionForm, field string) string {
	switch field {
	case domain.FieldState:
		return form.State
	case domain.FieldDistrict:
		return form.District
	case domain.FieldCity:
		return form.City
	case domain.FieldServiceCategory:
		return form.ServiceCategory
	case domain.FieldServiceName:
		return form.ServiceName
	}
	return ""
}

// cycle picks the next or previous choice of a picker, clearing its
// dependents through the session.
func (v *View) cycle(f *formField, delta int) {
	opts := v.options(f.key)
	if len(opts) == 0 {
		v.statusbar.Set(status.StateReady, "No choices for "+f.label+" yet")
		return
	}

	current := pickValue(v.session.Form(), f.key)
	idx := -1
	for i, o := range opts {
		if o.Value == current {
			idx = i
			break
		}
	}

	next := idx + delta
	switch {
	case idx < 0 && delta < 0, next < 0:
		next = len(opts) - 1
	case next >= len(opts):
		next = 0
	}
	value := opts[next].Value

	switch f.key {
	case domain.FieldState:
		v.session.OnStateChange(value)
	case domain.FieldDistrict:
		v.session.OnDistrictChange(value)
	case domain.FieldCity:
		v.session.OnCityChange(value)
	case domain.FieldServiceCategory:
		v.session.OnCategoryChange(value)
	case domain.FieldServiceName:
		v.session.OnServiceNameChange(value)
	}
	v.clearError(f.key)
	v.syncText()
}

func (v *View) submit() tea.Cmd {
	if v.profession == nil {
		return nil
	}
	v.submitting = true
	v.statusbar.Set(status.StateLoading, "Submitting...")

	ctx, profession, session := v.ctx, v.profession, v.session
	editing := session.Editing()
	return tea.Batch(v.statusbar.Init(), func() tea.Msg {
		err := profession.Submit(ctx, session)
		return messages.FormSubmitted{Editing: editing, Err: err}
	})
}

func (v *View) setErrors(errs domain.FieldErrors) {
	v.errs = domain.FieldErrors{}
	for k, msg := range errs {
		v.errs[k] = msg
	}
	for _, f := range v.fields {
		if f.kind == textKind {
			f.text.SetError(v.errs[f.key])
		}
	}
}

func (v *View) clearError(field string) {
	delete(v.errs, field)
	for _, f := range v.fields {
		if f.key == field && f.kind == textKind {
			f.text.SetError("")
		}
	}
}

func (v *View) focusFirstError() {
	for i, f := range v.fields {
		if _, ok := v.errs[f.key]; ok {
			v.setFocus(i)
			return
		}
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	title := "Register as a professional"
	if v.session != nil && v.session.Editing() {
		title = "Edit your profession"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.session != nil && !v.done {
		start, end := v.window()
		for i := start; i < end; i++ {
			b.WriteString(v.renderField(i, v.fields[i]))
			b.WriteString("\n")
		}
	}
	if v.done {
		b.WriteString(v.styles.Muted.Render("Press esc to return to the menu."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	v.statusbar.SetWidth(v.width)
	b.WriteString(v.statusbar.View())
	return b.String()
}

// window returns the rows that fit, keeping the focused row visible.
func (v *View) window() (start, end int) {
	visible := (v.height - 6) / 2
	if visible < 4 {
		visible = 4
	}
	if v.focus >= visible {
		start = v.focus - visible + 1
	}
	end = start + visible
	if end > len(v.fields) {
		end = len(v.fields)
	}
	return start, end
}

func (v *View) renderField(i int, f *formField) string {
	if f.kind == textKind {
		return f.text.View()
	}

	labelStyle := v.styles.Label
	if i == v.focus {
		labelStyle = v.styles.FocusedLabel
	}

	var value string
	if f.kind == checkKind {
		box := "[ ]"
		if v.session.Form().Agreed {
			box = "[x]"
		}
		value = box + " I agree to the terms of listing"
	} else {
		value = "‹ " + v.choiceLabel(f.key) + " ›"
	}

	line := labelStyle.Render(f.label) + v.styles.Normal.Render(value)
	if msg, ok := v.errs[f.key]; ok {
		line += "\n" + v.styles.FieldError.Render(msg)
	}
	return line
}

func (v *View) choiceLabel(field string) string {
	current := pickValue(v.session.Form(), field)
	if current == "" {
		return "select"
	}
	for _, o := range v.options(field) {
		if o.Value == current {
			return o.Label
		}
	}
	return current
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		if f.kind == textKind {
			f.text.SetWidth(width)
		}
	}
	v.statusbar.SetWidth(width)
}

// Session returns the open form session, or nil.
func (v *View) Session() driving.ProfessionFormSession {
	return v.session
}

// Focused returns the key of the focused row.
func (v *View) Focused() string {
	if v.focus < len(v.fields) {
		return v.fields[v.focus].key
	}
	return ""
}

// Errors returns the field errors shown.
func (v *View) Errors() domain.FieldErrors {
	return v.errs
}

// Done reports whether the form was submitted successfully.
func (v *View) Done() bool {
	return v.done
}
