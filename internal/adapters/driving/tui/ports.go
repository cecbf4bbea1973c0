// Package tui provides an interactive terminal user interface for karigar.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth logs users in and out.
	Auth driving.AuthService

	// Profile reads the current user's account.
	Profile driving.ProfileService

	// Profession opens and submits profession forms.
	Profession driving.ProfessionService

	// Directory provides categories, counts and professional listings.
	Directory driving.DirectoryService

	// Settings reads application settings after a config reload.
	Settings driving.SettingsService

	// ConfigChanges signals that the configuration file changed on disk.
	// Optional; a nil channel disables live reload.
	ConfigChanges <-chan struct{}
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	auth driving.AuthService,
	profession driving.ProfessionService,
	directory driving.DirectoryService,
) *Ports {
	return &Ports{
		Auth:       auth,
		Profession: profession,
		Directory:  directory,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Profession == nil {
		return ErrMissingProfessionService
	}
	return nil
}
