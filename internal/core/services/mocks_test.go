package services

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// mockAPI is a scripted driven.MarketplaceAPI.
type mockAPI struct {
	mu sync.Mutex

	registerMsg string
	loginResult *domain.LoginResult
	user        *domain.User
	records     []domain.ProfessionalRecord
	err         error

	calls       []string
	submitted   []domain.ProfessionSubmission
	listQueries []domain.ProfessionalQuery
	avatarName  string
}

func (m *mockAPI) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.err
}

func (m *mockAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockAPI) Register(_ context.Context, _ domain.Registration) (string, error) {
	if err := m.record("register"); err != nil {
		return "", err
	}
	return m.registerMsg, nil
}

func (m *mockAPI) VerifyOTP(_ context.Context, _ domain.OTPVerification) (*domain.LoginResult, error) {
	if err := m.record("verify_otp"); err != nil {
		return nil, err
	}
	return m.loginResult, nil
}

func (m *mockAPI) ResendOTP(_ context.Context, _ string) error {
	return m.record("resend_otp")
}

func (m *mockAPI) Login(_ context.Context, _, _ string) (*domain.LoginResult, error) {
	if err := m.record("login"); err != nil {
		return nil, err
	}
	return m.loginResult, nil
}

func (m *mockAPI) GetProfile(_ context.Context) (*domain.User, error) {
	if err := m.record("get_profile"); err != nil {
		return nil, err
	}
	return m.user, nil
}

func (m *mockAPI) UpdateProfile(_ context.Context, _ domain.BasicProfileUpdate) error {
	return m.record("update_profile")
}

func (m *mockAPI) SubmitProfession(_ context.Context, sub domain.ProfessionSubmission) error {
	if err := m.record("submit_profession"); err != nil {
		return err
	}
	m.mu.Lock()
	m.submitted = append(m.submitted, sub)
	m.mu.Unlock()
	return nil
}

func (m *mockAPI) UpdateProfession(_ context.Context, sub domain.ProfessionSubmission) error {
	if err := m.record("update_profession"); err != nil {
		return err
	}
	m.mu.Lock()
	m.submitted = append(m.submitted, sub)
	m.mu.Unlock()
	return nil
}

func (m *mockAPI) ListProfessionals(_ context.Context, q domain.ProfessionalQuery) ([]domain.ProfessionalRecord, error) {
	if err := m.record("list_professionals"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.listQueries = append(m.listQueries, q)
	m.mu.Unlock()
	return m.records, nil
}

func (m *mockAPI) UploadAvatar(_ context.Context, filename string, _ io.Reader) error {
	if err := m.record("upload_avatar"); err != nil {
		return err
	}
	m.avatarName = filename
	return nil
}

func (m *mockAPI) AvatarURL(userID, cacheBust string) string {
	return "http://api.test/users/" + userID + "/avatar?v=" + cacheBust
}

// mockCounter returns scripted per-service counts or errors.
type mockCounter struct {
	mu     sync.Mutex
	counts map[string]int
	errs   map[string]error
	// block, when set, holds every call until the context ends.
	block bool
	calls  map[string]int
}

func newMockCounter(counts map[string]int) *mockCounter {
	return &mockCounter{
		counts: counts,
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (m *mockCounter) CountProfessionals(ctx context.Context, serviceName string) (int, error) {
	m.mu.Lock()
	m.calls[serviceName]++
	block := m.block
	err := m.errs[serviceName]
	n := m.counts[serviceName]
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (m *mockCounter) Calls(serviceName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[serviceName]
}

// mockMetrics records observations.
type mockMetrics struct {
	mu       sync.Mutex
	requests map[string]int
	failed   []string
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{requests: make(map[string]int)}
}

func (m *mockMetrics) ObserveRequest(operation string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[operation]++
}

func (m *mockMetrics) CountFetchFailed(serviceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, serviceName)
}

func (m *mockMetrics) Failed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.failed...)
}

func unauthorizedErr() error {
	return &domain.RequestError{
		Kind:       domain.RequestErrorUnauthorized,
		Operation:  "test",
		StatusCode: 401,
		Message:    "token expired",
	}
}

// householdTaxonomy is the browse fixture: a household category whose
// source list already contains the sentinel, a beauty category, and the
// sentinel category.
func householdTaxonomy(t *testing.T) *domain.Taxonomy {
	t.Helper()
	tax, err := domain.NewTaxonomy(
		[]domain.Option{
			{Label: "Maharashtra", Value: "Maharashtra"},
			{Label: "Goa", Value: "Goa"},
		},
		[]domain.District{
			{Label: "Pune", Value: "Pune", State: "Maharashtra"},
			{Label: "Nagpur", Value: "Nagpur", State: "Maharashtra"},
			{Label: "North Goa", Value: "North Goa", State: "Goa"},
		},
		map[string][]domain.Option{
			"Pune": {
				{Label: "Pune City", Value: "Pune City"},
				{Label: "Baramati", Value: "Baramati"},
			},
		},
		[]domain.ServiceCategory{
			{
				Label: "Household Services",
				Value: "Household Services",
				Services: []domain.Option{
					{Label: "Plumber", Value: "Plumber"},
					{Label: "Electrician", Value: "Electrician"},
					domain.SentinelOption(),
				},
			},
			{
				Label: "Beauty & Wellness",
				Value: "Beauty & Wellness",
				Services: []domain.Option{
					{Label: "Barber", Value: "Barber"},
					{Label: "Beautician", Value: "Beautician"},
				},
			},
			{
				Label: "Explore Others",
				Value: "Explore others",
				Services: []domain.Option{
					{Label: "Anything", Value: "Anything"},
				},
			},
		},
	)
	require.NoError(t, err)
	return tax
}
