package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

var (
	emailPattern  = regexp.MustCompile(`\S+@\S+\.\S+`)
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
)

// Validation messages.
const (
	msgNameRequired        = "Name is required"
	msgEmailRequired       = "Email is required"
	msgEmailInvalid        = "Enter a valid email address"
	msgMobileRequired      = "Mobile number is required"
	msgMobileInvalid       = "Enter a valid 10-digit mobile number"
	msgStateRequired       = "Select a state"
	msgDistrictRequired    = "Select a district"
	msgCityRequired        = "Select a city"
	msgCategoryRequired    = "Select a service category"
	msgServiceRequired     = "Select a service"
	msgDesignationRequired = "Enter the service you provide"
	msgExperienceRequired  = "Experience is required"
	msgAgreementRequired   = "You must accept the terms to register"
)

// ValidateProfessionForm checks every rule independently so all violations
// are reported together. The agreement is only required for new registrations.
func ValidateProfessionForm(f domain.ProfessionForm, editing bool) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if blank(f.Name) {
		errs[domain.FieldName] = msgNameRequired
	}

	switch {
	case blank(f.Email):
		errs[domain.FieldEmail] = msgEmailRequired
	case !emailPattern.MatchString(f.Email):
		errs[domain.FieldEmail] = msgEmailInvalid
	}

	switch {
	case blank(f.MobileNo):
		errs[domain.FieldMobileNo] = msgMobileRequired
	case !mobilePattern.MatchString(f.MobileNo):
		errs[domain.FieldMobileNo] = msgMobileInvalid
	}

	if f.AlternateMobileNo != "" && !mobilePattern.MatchString(f.AlternateMobileNo) {
		errs[domain.FieldAlternateMobileNo] = msgMobileInvalid
	}

	if blank(f.State) {
		errs[domain.FieldState] = msgStateRequired
	}
	if blank(f.District) {
		errs[domain.FieldDistrict] = msgDistrictRequired
	}
	if blank(f.City) {
		errs[domain.FieldCity] = msgCityRequired
	}
	if blank(f.ServiceCategory) {
		errs[domain.FieldServiceCategory] = msgCategoryRequired
	}
	if blank(f.ServiceName) {
		errs[domain.FieldServiceName] = msgServiceRequired
	}
	if f.ServiceName == domain.SentinelService && blank(f.Designation) {
		errs[domain.FieldDesignation] = msgDesignationRequired
	}
	if blank(f.Experience) {
		errs[domain.FieldExperience] = msgExperienceRequired
	}
	if !editing && !f.Agreed {
		errs[domain.FieldAgreed] = msgAgreementRequired
	}

	return errs
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
