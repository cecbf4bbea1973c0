package domain

// Counts holds the professional counts shown on the browse screen.
type Counts struct {
	// Services maps a service value to its professional count.
	Services map[string]int
	// Categories maps a category label to the sum of its services.
	// The sentinel category is always 0.
	Categories map[string]int
	// Failed lists the service values whose count could not be fetched.
	// Their entries in Services are 0.
	Failed []string
}

// NewCounts returns empty counts.
func NewCounts() Counts {
	return Counts{
		Services:   make(map[string]int),
		Categories: make(map[string]int),
	}
}

// Degraded reports whether any count fetch failed.
func (c Counts) Degraded() bool {
	return len(c.Failed) > 0
}

// ProfessionalQuery selects professionals by service.
type ProfessionalQuery struct {
	ServiceName     string `url:"serviceName"`
	ServiceCategory string `url:"serviceCategory,omitempty"`
}
