// Package tuitest provides in-memory driving port fakes for TUI tests.
package tuitest

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/karigar-cli/internal/core/services"
)

// Taxonomy returns a small taxonomy covering every selector level.
func Taxonomy() *domain.Taxonomy {
	tax, err := domain.NewTaxonomy(
		[]domain.Option{
			{Label: "Maharashtra", Value: "Maharashtra"},
			{Label: "Goa", Value: "Goa"},
		},
		[]domain.District{
			{Label: "Pune", Value: "Pune", State: "Maharashtra"},
			{Label: "Nashik", Value: "Nashik", State: "Maharashtra"},
			{Label: "North Goa", Value: "North Goa", State: "Goa"},
		},
		map[string][]domain.Option{
			"Pune":      {{Label: "Baramati", Value: "Baramati"}, {Label: "Haveli", Value: "Haveli"}},
			"North Goa": {{Label: "Panaji", Value: "Panaji"}},
		},
		[]domain.ServiceCategory{
			{Label: "Household Services", Value: "Household Services", Services: []domain.Option{
				{Label: "Plumber", Value: "Plumber"},
				{Label: "Electrician", Value: "Electrician"},
			}},
			{Label: "Beauty", Value: "Beauty", Services: []domain.Option{
				{Label: "Salon", Value: "Salon"},
			}},
			{Label: "Explore Others", Value: domain.SentinelService},
		},
	)
	if err != nil {
		panic(err)
	}
	return tax
}

// Ensure fakes implement the driving ports.
var (
	_ driving.DirectoryService  = (*Directory)(nil)
	_ driving.AuthService       = (*Auth)(nil)
	_ driving.ProfessionService = (*Profession)(nil)
	_ driving.SettingsService   = (*Settings)(nil)
)

// Directory is a DirectoryService backed by a taxonomy and canned results.
type Directory struct {
	mu       sync.Mutex
	taxonomy *domain.Taxonomy
	expanded map[string]bool

	CountsResult     domain.Counts
	CountsErr        error
	Records          map[string][]domain.ProfessionalRecord
	ProfessionalsErr error

	Refreshes   int
	Configured  []domain.DirectorySettings
	LastListing [2]string
}

// NewDirectory creates a directory fake over Taxonomy.
func NewDirectory() *Directory {
	return &Directory{
		taxonomy:     Taxonomy(),
		expanded:     make(map[string]bool),
		CountsResult: domain.NewCounts(),
		Records:      make(map[string][]domain.ProfessionalRecord),
	}
}

func (d *Directory) Categories() []domain.ServiceCategory {
	return d.taxonomy.Categories()
}

func (d *Directory) Services(category string) []domain.Option {
	var out []domain.Option
	for _, o := range d.taxonomy.Services(category) {
		if o.Value != domain.SentinelService {
			out = append(out, o)
		}
	}
	return out
}

func (d *Directory) RefreshCounts(_ context.Context) (domain.Counts, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Refreshes++
	return d.CountsResult, d.CountsErr
}

func (d *Directory) OnActivate(ctx context.Context) (domain.Counts, error) {
	return d.RefreshCounts(ctx)
}

func (d *Directory) Counts() domain.Counts {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.CountsResult
}

func (d *Directory) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, c := range d.taxonomy.Categories() {
		match := q == "" || strings.Contains(strings.ToLower(c.Label), q)
		for _, s := range c.Services {
			if strings.Contains(strings.ToLower(s.Label), q) {
				match = true
			}
		}
		if match {
			out = append(out, c.Label)
		}
	}
	return out
}

func (d *Directory) ToggleExpanded(category string) bool {
	if domain.IsSentinelCategory(category) {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expanded[category] = !d.expanded[category]
	return d.expanded[category]
}

func (d *Directory) IsExpanded(category string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.expanded[category]
}

func (d *Directory) Configure(settings domain.DirectorySettings) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Configured = append(d.Configured, settings)
}

func (d *Directory) Professionals(
	_ context.Context,
	serviceName, category string,
) ([]domain.ProfessionalRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.LastListing = [2]string{serviceName, category}
	if d.ProfessionalsErr != nil {
		return nil, d.ProfessionalsErr
	}
	return d.Records[serviceName], nil
}

// Auth is an AuthService with canned results.
type Auth struct {
	Session   domain.Session
	LoginErr  error
	LogoutErr error
	Logins    []string
	LoggedOut bool
}

func (a *Auth) Register(_ context.Context, _ domain.Registration) (string, error) {
	return "", nil
}

func (a *Auth) VerifyOTP(_ context.Context, _ domain.OTPVerification) (domain.Session, error) {
	return a.Session, nil
}

func (a *Auth) ResendOTP(_ context.Context, _ string) error {
	return nil
}

func (a *Auth) Login(_ context.Context, email, _ string) (domain.Session, error) {
	a.Logins = append(a.Logins, email)
	if a.LoginErr != nil {
		return domain.Session{}, a.LoginErr
	}
	return a.Session, nil
}

func (a *Auth) Logout(_ context.Context) error {
	a.LoggedOut = true
	a.Session = domain.Session{}
	return a.LogoutErr
}

func (a *Auth) Current(_ context.Context) (domain.Session, error) {
	if a.Session.IsZero() {
		return domain.Session{}, domain.ErrNotAuthenticated
	}
	return a.Session, nil
}

// Profession is a ProfessionService producing real form sessions.
type Profession struct {
	Existing  *domain.ProfessionalRecord
	BeginErr  error
	SubmitErr error
	Submitted []domain.ProfessionForm
}

func (p *Profession) Begin(_ context.Context) (driving.ProfessionFormSession, error) {
	if p.BeginErr != nil {
		return nil, p.BeginErr
	}
	return p.NewSession(p.Existing), nil
}

func (p *Profession) NewSession(existing *domain.ProfessionalRecord) driving.ProfessionFormSession {
	return services.NewFormSession(Taxonomy(), existing)
}

func (p *Profession) Submit(_ context.Context, session driving.ProfessionFormSession) error {
	if errs := session.Validate(); len(errs) > 0 {
		return &domain.ValidationError{Fields: errs}
	}
	if p.SubmitErr != nil {
		return p.SubmitErr
	}
	p.Submitted = append(p.Submitted, session.Form())
	return nil
}

// Settings is a SettingsService returning fixed settings.
type Settings struct {
	Settings domain.AppSettings
	Err      error
}

func (s *Settings) Get() (*domain.AppSettings, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := s.Settings
	return &out, nil
}

func (s *Settings) Save(settings *domain.AppSettings) error {
	s.Settings = *settings
	return nil
}

func (s *Settings) Set(_, _ string) error {
	return s.Err
}

func (s *Settings) Keys() []string {
	return []string{
		domain.SettingAPIBaseURL,
		domain.SettingAPITimeout,
		domain.SettingDirConcurrency,
		domain.SettingDirRequestsPerSec,
		domain.SettingDirCacheTTL,
		domain.SettingSessionIdleTimeout,
	}
}

func (s *Settings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
