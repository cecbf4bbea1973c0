package driving

import (
	"context"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// ProfessionFormSession is the cascading selector behind the profession
// registration/edit screen. Ancestor changes clear their dependents in the
// same call.
type ProfessionFormSession interface {
	// Form returns a copy of the current selection state.
	Form() domain.ProfessionForm

	// Editing reports whether the session edits an existing profile.
	Editing() bool

	// Selection returns the service choice as a tagged variant.
	Selection() domain.ServiceSelection

	// States returns every state.
	States() []domain.Option

	// OptionsForDistrict returns the districts of state.
	OptionsForDistrict(state string) []domain.Option

	// OptionsForCity returns the cities of district.
	OptionsForCity(district string) []domain.Option

	// Categories returns every service category.
	Categories() []domain.Option

	// OptionsForServiceName returns the resolved services of category.
	OptionsForServiceName(category string) []domain.Option

	// OnStateChange sets the state and clears district and city.
	OnStateChange(state string)

	// OnDistrictChange sets the district and clears city.
	OnDistrictChange(district string)

	// OnCityChange sets the city.
	OnCityChange(city string)

	// OnCategoryChange sets the category and clears service name and designation.
	OnCategoryChange(category string)

	// OnServiceNameChange sets the service name and clears the designation
	// unless the sentinel was chosen.
	OnServiceNameChange(serviceName string)

	// SetText sets a free-text field by key (see domain.Field*).
	SetText(field, value string) error

	// SetAgreed records acceptance of the submission agreement.
	SetAgreed(agreed bool)

	// Validate returns every violated rule. Empty means valid.
	Validate() domain.FieldErrors
}

// ProfessionService opens and submits profession form sessions.
type ProfessionService interface {
	// Begin opens a form session for the current user: populated from the
	// existing profile when the user is already a professional, blank otherwise.
	Begin(ctx context.Context) (ProfessionFormSession, error)

	// NewSession opens a form session without contacting the backend.
	// A nil record starts a new registration.
	NewSession(existing *domain.ProfessionalRecord) ProfessionFormSession

	// Submit validates and sends the form. Validation failures are returned
	// as *domain.ValidationError and never reach the network.
	Submit(ctx context.Context, session ProfessionFormSession) error
}
