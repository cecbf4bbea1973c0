// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDirectory is the browse screen: categories, counts and search.
	ViewDirectory
	// ViewProfessionals lists the professionals of one service.
	ViewProfessionals
	// ViewLogin is the email and PIN login form.
	ViewLogin
	// ViewProfession is the profession registration and edit form.
	ViewProfession
	// ViewSettings edits the configuration file.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDirectory:
		return "directory"
	case ViewProfessionals:
		return "professionals"
	case ViewLogin:
		return "login"
	case ViewProfession:
		return "profession"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CountsLoaded carries the result of a count refresh.
type CountsLoaded struct {
	Counts domain.Counts
	Err    error
}

// ProfessionalsRequested asks to open the professionals list of a service.
type ProfessionalsRequested struct {
	// Service is the service value queried.
	Service string
	// Category narrows sentinel-service matches.
	Category string
	// Title is shown above the list.
	Title string
}

// ProfessionalsLoaded carries a professionals listing.
type ProfessionalsLoaded struct {
	Service string
	Records []domain.ProfessionalRecord
	Err     error
}

// LoginRequired sends the user to the login view. Return is opened after
// a successful login.
type LoginRequired struct {
	Return ViewType
	Reason string
}

// LoginCompleted carries the outcome of a login attempt.
type LoginCompleted struct {
	Session domain.Session
	Err     error
}

// LogoutRequested asks to end the session.
type LogoutRequested struct{}

// LoggedOut signals the session was cleared.
type LoggedOut struct {
	Err error
}

// SessionLoaded carries the cached session, if any.
type SessionLoaded struct {
	Session domain.Session
	Err     error
}

// FormOpened carries a profession form session ready for editing.
type FormOpened struct {
	Session driving.ProfessionFormSession
	Err     error
}

// FormSubmitted carries the outcome of a profession submission.
type FormSubmitted struct {
	Editing bool
	Err     error
}

// ConfigReloaded signals the configuration file changed on disk.
type ConfigReloaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsLoaded carries the current settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved carries the outcome of changing one setting.
type SettingsSaved struct {
	Key string
	Err error
}
