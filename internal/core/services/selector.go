package services

import (
	"fmt"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// Ensure FormSession implements the interface.
var _ driving.ProfessionFormSession = (*FormSession)(nil)

// FormSession is the cascading taxonomy selector of one registration or edit
// session. It is owned by a single screen and is not safe for concurrent use.
type FormSession struct {
	taxonomy *domain.Taxonomy
	form     domain.ProfessionForm
	editing  bool
}

// NewFormSession opens a session over taxonomy. A non-nil existing record
// switches the session to edit mode and pre-populates it.
func NewFormSession(taxonomy *domain.Taxonomy, existing *domain.ProfessionalRecord) *FormSession {
	s := &FormSession{taxonomy: taxonomy}
	if existing != nil {
		s.PopulateFromExisting(*existing)
	}
	return s
}

// Form returns a copy of the current selection state.
func (s *FormSession) Form() domain.ProfessionForm {
	return s.form
}

// Editing reports whether the session edits an existing profile.
func (s *FormSession) Editing() bool {
	return s.editing
}

// Selection returns the service choice as a tagged variant.
func (s *FormSession) Selection() domain.ServiceSelection {
	return domain.SelectionOf(s.form.ServiceName, s.form.Designation)
}

// States returns every state.
func (s *FormSession) States() []domain.Option {
	return s.taxonomy.States()
}

// OptionsForDistrict returns the districts owned by state.
func (s *FormSession) OptionsForDistrict(state string) []domain.Option {
	return s.taxonomy.Districts(state)
}

// OptionsForCity returns the cities of district, empty when none are enumerated.
func (s *FormSession) OptionsForCity(district string) []domain.Option {
	return s.taxonomy.Cities(district)
}

// Categories returns the selectable service categories.
// The sentinel category is a browse shortcut and is not offered here.
func (s *FormSession) Categories() []domain.Option {
	cats := s.taxonomy.Categories()
	out := make([]domain.Option, 0, len(cats))
	for _, c := range cats {
		if domain.IsSentinelCategory(c.Label) || domain.IsSentinelCategory(c.Value) {
			continue
		}
		out = append(out, domain.Option{Label: c.Label, Value: c.Value})
	}
	return out
}

// OptionsForServiceName returns the resolved services of category,
// always ending with exactly one sentinel entry.
func (s *FormSession) OptionsForServiceName(category string) []domain.Option {
	return s.taxonomy.Services(category)
}

// OnStateChange sets the state and clears district and city.
func (s *FormSession) OnStateChange(state string) {
	s.form.State = state
	s.form.District = ""
	s.form.City = ""
}

// OnDistrictChange sets the district and clears city.
func (s *FormSession) OnDistrictChange(district string) {
	s.form.District = district
	s.form.City = ""
}

// OnCityChange sets the city.
func (s *FormSession) OnCityChange(city string) {
	s.form.City = city
}

// OnCategoryChange sets the category and clears service name and designation.
func (s *FormSession) OnCategoryChange(category string) {
	s.form.ServiceCategory = category
	s.form.ServiceName = ""
	s.form.Designation = ""
}

// OnServiceNameChange sets the service name. Choosing a standard service
// clears the designation; choosing the sentinel keeps it as custom text.
func (s *FormSession) OnServiceNameChange(serviceName string) {
	s.form.ServiceName = serviceName
	if serviceName != domain.SentinelService {
		s.form.Designation = ""
	}
}

// SetText sets a free-text field.
func (s *FormSession) SetText(field, value string) error {
	switch field {
	case domain.FieldName:
		s.form.Name = value
	case domain.FieldEmail:
		s.form.Email = value
	case domain.FieldMobileNo:
		s.form.MobileNo = value
	case domain.FieldAlternateMobileNo:
		s.form.AlternateMobileNo = value
	case domain.FieldDesignation:
		s.form.Designation = value
	case domain.FieldExperience:
		s.form.Experience = value
	case domain.FieldAbout:
		s.form.About = value
	default:
		return fmt.Errorf("%w: %q is not a text field", domain.ErrInvalidInput, field)
	}
	return nil
}

// SetAgreed records acceptance of the submission agreement.
func (s *FormSession) SetAgreed(agreed bool) {
	s.form.Agreed = agreed
}

// Validate returns every violated rule.
func (s *FormSession) Validate() domain.FieldErrors {
	return ValidateProfessionForm(s.form, s.editing)
}

// PopulateFromExisting initialises an edit session from a stored record.
//
// A stored service name that is a standard member of the stored category is
// kept with its designation. Anything else is reclassified as a custom
// service: the name becomes the sentinel and the designation becomes the
// best available custom text.
func (s *FormSession) PopulateFromExisting(r domain.ProfessionalRecord) {
	s.editing = true
	s.form = domain.ProfessionForm{
		Name:              r.Name,
		Email:             r.Email,
		MobileNo:          r.MobileNo,
		AlternateMobileNo: r.AlternateMobileNo,
		State:             r.State,
		District:          r.District,
		City:              r.City,
		ServiceCategory:   r.ServiceCategory,
		Experience:        r.Experience,
		About:             r.About,
	}

	if s.taxonomy.IsStandardService(r.ServiceCategory, r.ServiceName) {
		s.form.ServiceName = r.ServiceName
		// A designation equal to the service name is the submission fallback,
		// not a sub-role the user typed.
		if r.Designation != r.ServiceName {
			s.form.Designation = r.Designation
		}
		return
	}

	s.form.ServiceName = domain.SentinelService
	switch {
	case r.Designation != "" && r.Designation != domain.SentinelService:
		s.form.Designation = r.Designation
	case r.ServiceName != domain.SentinelService:
		s.form.Designation = r.ServiceName
	default:
		s.form.Designation = ""
	}
}
