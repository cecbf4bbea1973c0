package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSubmission(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		designation string
		want        Resolution
	}{
		{"custom service", SentinelService, "Custom Welder", Resolution{SentinelService, "Custom Welder"}},
		{"standard without role", "Plumber", "", Resolution{"Plumber", "Plumber"}},
		{"standard with role", "Plumber", "Senior Plumber", Resolution{"Plumber", "Senior Plumber"}},
		{"empty", "", "", Resolution{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSubmission(tt.serviceName, tt.designation)
			assert.Equal(t, tt.want, got)
			// Deterministic from the pair alone.
			assert.Equal(t, got, ResolveSubmission(tt.serviceName, tt.designation))
		})
	}
}

func TestSelectionOf(t *testing.T) {
	assert.Equal(t, ServiceSelection{}, SelectionOf("", "anything"))
	assert.Equal(t, CustomService("Window Cleaner"), SelectionOf(SentinelService, "Window Cleaner"))
	assert.Equal(t, StandardService("Plumber", "Senior Plumber"), SelectionOf("Plumber", "Senior Plumber"))
}

func TestServiceSelection_FlattenRoundTrip(t *testing.T) {
	for _, sel := range []ServiceSelection{
		CustomService("Window Cleaner"),
		StandardService("Plumber", ""),
		StandardService("Plumber", "Senior Plumber"),
	} {
		name, designation := sel.Flatten()
		assert.Equal(t, sel, SelectionOf(name, designation))
	}
}

func TestServiceSelection_Label(t *testing.T) {
	assert.Equal(t, "Window Cleaner", CustomService("Window Cleaner").Label())
	assert.Equal(t, "Plumber", StandardService("Plumber", "").Label())
	assert.Equal(t, "Senior Plumber", StandardService("Plumber", "Senior Plumber").Label())
	assert.Empty(t, ServiceSelection{}.Label())
}

func TestNewProfessionSubmission(t *testing.T) {
	form := ProfessionForm{
		Name:            "Asha",
		Email:           "asha@example.com",
		MobileNo:        "9876543210",
		State:           "Goa",
		District:        "North Goa",
		City:            "Panaji",
		ServiceCategory: "Household Services",
		ServiceName:     "Plumber",
		Experience:      "5",
		Agreed:          true,
	}

	sub := NewProfessionSubmission(form)

	assert.Equal(t, "Plumber", sub.ServiceName)
	assert.Equal(t, "Plumber", sub.Designation)
	assert.Equal(t, "North Goa", sub.District)

	form.ServiceName = SentinelService
	form.Designation = "Window Cleaner"
	sub = NewProfessionSubmission(form)

	assert.Equal(t, SentinelService, sub.ServiceName)
	assert.Equal(t, "Window Cleaner", sub.Designation)
}

func TestProfessionalRecord_DisplayService(t *testing.T) {
	assert.Equal(t, "Window Cleaner",
		ProfessionalRecord{ServiceName: SentinelService, Designation: "Window Cleaner"}.DisplayService())
	assert.Equal(t, "Plumber", ProfessionalRecord{ServiceName: "Plumber", Designation: "Plumber"}.DisplayService())
}
