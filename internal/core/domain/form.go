package domain

// Form field keys, shared by validation results and text setters.
const (
	FieldName              = "name"
	FieldEmail             = "email"
	FieldMobileNo          = "mobileNo"
	FieldAlternateMobileNo = "alternateMobileNo"
	FieldState             = "state"
	FieldDistrict          = "district"
	FieldCity              = "city"
	FieldServiceCategory   = "serviceCategory"
	FieldServiceName       = "serviceName"
	FieldDesignation       = "designation"
	FieldExperience        = "experience"
	FieldAbout             = "about"
	FieldAgreed            = "agreed"
)

// TextFields lists the fields that take free text rather than a taxonomy choice.
func TextFields() []string {
	return []string{
		FieldName, FieldEmail, FieldMobileNo, FieldAlternateMobileNo,
		FieldDesignation, FieldExperience, FieldAbout,
	}
}
