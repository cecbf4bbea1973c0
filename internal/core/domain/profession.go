package domain

// ProfessionForm is the selection state of a profession registration or edit session.
// Cascading fields must only be changed through the selector so dependents are
// cleared together with their ancestor.
type ProfessionForm struct {
	Name              string
	Email             string
	MobileNo          string
	AlternateMobileNo string

	State    string
	District string
	City     string

	ServiceCategory string
	ServiceName     string
	// Designation is empty, a sub-role of a standard service, or the
	// mandatory custom service text when ServiceName is the sentinel.
	Designation string

	Experience string
	About      string

	// Agreed records acceptance of the submission agreement.
	// Only required for new registrations.
	Agreed bool
}

// ServiceSelectionKind tags a ServiceSelection.
type ServiceSelectionKind int

const (
	// SelectionNone means no service has been chosen.
	SelectionNone ServiceSelectionKind = iota
	// SelectionStandard is a taxonomy service, optionally with a sub-role.
	SelectionStandard
	// SelectionCustom is free text entered under the sentinel.
	SelectionCustom
)

// ServiceSelection is the unambiguous form of the (serviceName, designation)
// pair. It is flattened back to the sentinel wire shape only at submission.
type ServiceSelection struct {
	Kind ServiceSelectionKind
	// Service is the taxonomy value for SelectionStandard.
	Service string
	// Role is the sub-role for SelectionStandard or the custom label for SelectionCustom.
	Role string
}

// StandardService builds a standard selection.
func StandardService(service, role string) ServiceSelection {
	return ServiceSelection{Kind: SelectionStandard, Service: service, Role: role}
}

// CustomService builds a custom selection.
func CustomService(label string) ServiceSelection {
	return ServiceSelection{Kind: SelectionCustom, Role: label}
}

// SelectionOf interprets a (serviceName, designation) pair.
func SelectionOf(serviceName, designation string) ServiceSelection {
	switch serviceName {
	case "":
		return ServiceSelection{}
	case SentinelService:
		return CustomService(designation)
	default:
		return StandardService(serviceName, designation)
	}
}

// Flatten returns the wire (serviceName, designation) pair.
func (s ServiceSelection) Flatten() (serviceName, designation string) {
	switch s.Kind {
	case SelectionStandard:
		return s.Service, s.Role
	case SelectionCustom:
		return SentinelService, s.Role
	default:
		return "", ""
	}
}

// Label returns the text shown for the selection.
func (s ServiceSelection) Label() string {
	switch s.Kind {
	case SelectionStandard:
		if s.Role != "" {
			return s.Role
		}
		return s.Service
	case SelectionCustom:
		return s.Role
	default:
		return ""
	}
}

// Resolution holds the submission-resolved service fields.
type Resolution struct {
	FinalServiceName string
	FinalDesignation string
}

// ResolveSubmission derives the submitted service fields from the pair alone.
// The designation falls back to the service name when empty.
func ResolveSubmission(serviceName, designation string) Resolution {
	r := Resolution{FinalServiceName: serviceName, FinalDesignation: designation}
	if r.FinalDesignation == "" {
		r.FinalDesignation = r.FinalServiceName
	}
	return r
}

// ProfessionalRecord is a professional profile as returned by the backend.
type ProfessionalRecord struct {
	ID                string `json:"_id,omitempty"`
	UserID            string `json:"userId,omitempty"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	MobileNo          string `json:"mobileNo"`
	AlternateMobileNo string `json:"alternateMobileNo,omitempty"`
	State             string `json:"state"`
	District          string `json:"district"`
	City              string `json:"city"`
	ServiceCategory   string `json:"serviceCategory"`
	ServiceName       string `json:"serviceName"`
	Designation       string `json:"designation"`
	Experience        string `json:"experience"`
	About             string `json:"about,omitempty"`
}

// DisplayService returns the most specific service text of the record.
func (r ProfessionalRecord) DisplayService() string {
	return SelectionOf(r.ServiceName, r.Designation).Label()
}

// ProfessionSubmission is the wire shape of a profession create/update.
type ProfessionSubmission struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	MobileNo          string `json:"mobileNo"`
	AlternateMobileNo string `json:"alternateMobileNo,omitempty"`
	State             string `json:"state"`
	District          string `json:"district"`
	City              string `json:"city"`
	ServiceCategory   string `json:"serviceCategory"`
	ServiceName       string `json:"serviceName"`
	Designation       string `json:"designation"`
	Experience        string `json:"experience"`
	About             string `json:"about,omitempty"`
}

// NewProfessionSubmission flattens a form into its wire shape.
func NewProfessionSubmission(f ProfessionForm) ProfessionSubmission {
	name, designation := SelectionOf(f.ServiceName, f.Designation).Flatten()
	res := ResolveSubmission(name, designation)
	return ProfessionSubmission{
		Name:              f.Name,
		Email:             f.Email,
		MobileNo:          f.MobileNo,
		AlternateMobileNo: f.AlternateMobileNo,
		State:             f.State,
		District:          f.District,
		City:              f.City,
		ServiceCategory:   f.ServiceCategory,
		ServiceName:       res.FinalServiceName,
		Designation:       res.FinalDesignation,
		Experience:        f.Experience,
		About:             f.About,
	}
}
