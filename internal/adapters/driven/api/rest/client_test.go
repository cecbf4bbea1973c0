package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// staticTokens is a driven.TokenProvider returning a fixed token or error.
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) GetToken(_ context.Context) (string, error) {
	return s.token, s.err
}

// fakeBackend is an in-process marketplace backend.
type fakeBackend struct {
	mu          sync.Mutex
	lastAuth    string
	lastBody    map[string]any
	lastQuery   map[string]string
	avatarName  string
	avatarBytes string
	professions map[string][]domain.ProfessionalRecord
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func (b *fakeBackend) capture(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastAuth = r.Header.Get("Authorization")
	b.lastBody = nil
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&b.lastBody)
	}
}

func (b *fakeBackend) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			writeEnvelope(w, http.StatusUnauthorized, false, "Token expired", nil)
			return
		}
		next(w, r)
	}
}

func (b *fakeBackend) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		if b.lastBody["email"] == "taken@example.com" {
			writeEnvelope(w, http.StatusBadRequest, false, "Email already registered", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "OTP sent", nil)
	})
	r.Post("/api/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		writeEnvelope(w, http.StatusOK, true, "verified", map[string]any{
			"token": "good-token", "userId": "u1", "isProfession": false,
		})
	})
	r.Post("/api/auth/resend-otp", func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		writeEnvelope(w, http.StatusOK, true, "OTP resent", nil)
	})
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		if b.lastBody["pin"] != "1234" {
			writeEnvelope(w, http.StatusOK, false, "Invalid credentials", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "ok", map[string]any{
			"token": "good-token", "userId": "u1", "isProfession": true,
		})
	})

	r.Get("/api/users/me", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"_id": "u1", "name": "Ravi", "email": "ravi@example.com", "mobileNo": "9876543210",
			"isProfession": true,
			"profession": map[string]any{
				"serviceCategory": "Household Services", "serviceName": "Plumber", "designation": "Plumber",
			},
		})
	}))
	r.Patch("/api/users/me", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		writeEnvelope(w, http.StatusOK, true, "updated", nil)
	}))
	r.Post("/api/users/me/avatar", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		file, header, err := r.FormFile("avatar")
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, false, "avatar missing", nil)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		b.mu.Lock()
		b.avatarName = header.Filename
		b.avatarBytes = string(data)
		b.mu.Unlock()
		writeEnvelope(w, http.StatusOK, true, "uploaded", nil)
	}))

	r.Post("/api/professions", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		writeEnvelope(w, http.StatusCreated, true, "created", nil)
	}))
	r.Put("/api/professions/me", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		writeEnvelope(w, http.StatusOK, true, "updated", nil)
	}))
	r.Get("/api/professionals", func(w http.ResponseWriter, r *http.Request) {
		b.capture(r)
		b.mu.Lock()
		b.lastQuery = map[string]string{
			"serviceName":     r.URL.Query().Get("serviceName"),
			"serviceCategory": r.URL.Query().Get("serviceCategory"),
		}
		list := b.professions[r.URL.Query().Get("serviceName")]
		b.mu.Unlock()
		if r.URL.Query().Get("serviceName") == "Broken" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
			return
		}
		writeEnvelope(w, http.StatusOK, true, "", list)
	})

	return r
}

func newTestClient(t *testing.T, tokens staticTokens) (*Client, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{professions: map[string][]domain.ProfessionalRecord{
		"Plumber": {
			{ID: "p1", Name: "Asha", ServiceName: "Plumber"},
			{ID: "p2", Name: "Ravi", ServiceName: "Plumber"},
			{ID: "p3", Name: "Imran", ServiceName: "Plumber"},
		},
	}}
	server := httptest.NewServer(backend.router())
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:   server.URL + "/api/",
		RateLimit: &RateLimitConfig{},
	}, tokens)
	require.NoError(t, err)
	return client, backend
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "::not a url"}, staticTokens{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewClient(Config{BaseURL: "/relative"}, staticTokens{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_Register(t *testing.T) {
	client, backend := newTestClient(t, staticTokens{})

	msg, err := client.Register(context.Background(), domain.Registration{
		Name: "Ravi", Email: "ravi@example.com", MobileNo: "9876543210", Pin: "1234", ConfirmPin: "1234",
	})

	require.NoError(t, err)
	assert.Equal(t, "OTP sent", msg)
	assert.Equal(t, "1234", backend.lastBody["confirmPin"])
	assert.Empty(t, backend.lastAuth, "public calls carry no token")
}

func TestClient_Register_ServerRejection(t *testing.T) {
	client, _ := newTestClient(t, staticTokens{})

	_, err := client.Register(context.Background(), domain.Registration{Email: "taken@example.com"})

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, domain.RequestErrorServer, reqErr.Kind)
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	assert.Equal(t, "Email already registered", domain.UserMessage(err))
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_VerifyOTPAndLogin(t *testing.T) {
	client, backend := newTestClient(t, staticTokens{})
	ctx := context.Background()

	result, err := client.VerifyOTP(ctx, domain.OTPVerification{Email: "ravi@example.com", OTP: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "good-token", result.Token)
	assert.Equal(t, "123456", backend.lastBody["otp"])

	result, err = client.Login(ctx, "ravi@example.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, "u1", result.UserID)
	assert.True(t, result.IsProfession)

	_, err = client.Login(ctx, "ravi@example.com", "0000")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", domain.UserMessage(err))

	require.NoError(t, client.ResendOTP(ctx, "ravi@example.com"))
	assert.Equal(t, "ravi@example.com", backend.lastBody["email"])
}

func TestClient_GetProfile_SendsBearerToken(t *testing.T) {
	client, backend := newTestClient(t, staticTokens{token: "good-token"})

	user, err := client.GetProfile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer good-token", backend.lastAuth)
	assert.Equal(t, "u1", user.ID)
	require.NotNil(t, user.Profession)
	assert.Equal(t, "Plumber", user.Profession.ServiceName)
}

func TestClient_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, staticTokens{token: "stale-token"})

	_, err := client.GetProfile(context.Background())

	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, domain.CategoryAuthorization, domain.Classify(err))
}

func TestClient_NoSession(t *testing.T) {
	client, _ := newTestClient(t, staticTokens{err: domain.ErrNotAuthenticated})

	err := client.UpdateProfile(context.Background(), domain.BasicProfileUpdate{Name: "x"})

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.False(t, IsUnauthorized(err))
}

func TestClient_UpdateProfileAndProfessions(t *testing.T) {
	client, backend := newTestClient(t, staticTokens{token: "good-token"})
	ctx := context.Background()

	require.NoError(t, client.UpdateProfile(ctx, domain.BasicProfileUpdate{Name: "Ravi P"}))
	assert.Equal(t, "Ravi P", backend.lastBody["name"])
	assert.NotContains(t, backend.lastBody, "email")

	sub := domain.ProfessionSubmission{ServiceName: domain.SentinelService, Designation: "Custom Welder"}
	require.NoError(t, client.SubmitProfession(ctx, sub))
	assert.Equal(t, "Explore others", backend.lastBody["serviceName"])
	assert.Equal(t, "Custom Welder", backend.lastBody["designation"])

	require.NoError(t, client.UpdateProfession(ctx, sub))
}

func TestClient_ListAndCountProfessionals(t *testing.T) {
	client, backend := newTestClient(t, staticTokens{})
	ctx := context.Background()

	records, err := client.ListProfessionals(ctx, domain.ProfessionalQuery{
		ServiceName:     domain.SentinelService,
		ServiceCategory: "Household Services",
	})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, "Explore others", backend.lastQuery["serviceName"])
	assert.Equal(t, "Household Services", backend.lastQuery["serviceCategory"])

	n, err := client.CountProfessionals(ctx, "Plumber")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestClient_NonJSONError(t *testing.T) {
	client, _ := newTestClient(t, staticTokens{})

	_, err := client.CountProfessionals(context.Background(), "Broken")

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
	assert.Contains(t, reqErr.Message, "bad gateway")
}

func TestClient_UploadAvatar(t *testing.T) {
	client, backend := newTestClient(t, staticTokens{token: "good-token"})

	err := client.UploadAvatar(context.Background(), "me.png", strings.NewReader("PNGDATA"))

	require.NoError(t, err)
	assert.Equal(t, "me.png", backend.avatarName)
	assert.Equal(t, "PNGDATA", backend.avatarBytes)
}

func TestClient_TransportError(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, staticTokens{})
	require.NoError(t, err)

	_, err = client.Register(context.Background(), domain.Registration{})

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, domain.RequestErrorTransport, reqErr.Kind)
	assert.Equal(t, "Something went wrong. Please try again.", domain.UserMessage(err))
}

func TestClient_AvatarURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://api.example.com/api/"}, staticTokens{})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api/users/u1/avatar?v=abc", client.AvatarURL("u1", "abc"))
	assert.Equal(t, "https://api.example.com/api/users/u1/avatar", client.AvatarURL("u1", ""))
}
