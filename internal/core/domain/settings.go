package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Setting keys as written in the config file.
const (
	SettingAPIBaseURL         = "api.base_url"
	SettingAPITimeout         = "api.timeout_seconds"
	SettingDirConcurrency     = "directory.concurrency"
	SettingDirRequestsPerSec  = "directory.requests_per_second"
	SettingDirCacheTTL        = "directory.cache_ttl_seconds"
	SettingSessionIdleTimeout = "session.idle_timeout_minutes"
)

// APISettings holds backend connection configuration.
type APISettings struct {
	// BaseURL is the REST backend root, e.g. https://api.example.com/v1.
	BaseURL string

	// Timeout bounds every request.
	Timeout time.Duration
}

// DirectorySettings holds browse-screen count refresh configuration.
type DirectorySettings struct {
	// Concurrency bounds the number of in-flight count fetches.
	// 1 serialises the refresh.
	Concurrency int

	// RequestsPerSecond throttles count fetches. 0 disables throttling.
	RequestsPerSecond float64

	// CacheTTL is how long professional listings are reused.
	CacheTTL time.Duration
}

// SessionSettings holds local session policy.
type SessionSettings struct {
	// IdleTimeout expires a session that has not been used for this long.
	// 0 disables idle expiry.
	IdleTimeout time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// API holds backend settings.
	API APISettings

	// Directory holds browse-screen settings.
	Directory DirectorySettings

	// Session holds session settings.
	Session SessionSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL: "http://localhost:5000/api",
			Timeout: 30 * time.Second,
		},
		Directory: DirectorySettings{
			Concurrency:       8,
			RequestsPerSecond: 20,
			CacheTTL:          time.Minute,
		},
		Session: SessionSettings{
			IdleTimeout: 30 * 24 * time.Hour,
		},
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidInput, s.API.BaseURL)
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("%w: api timeout must be positive", ErrInvalidInput)
	}
	if s.Directory.Concurrency < 1 {
		return fmt.Errorf("%w: directory concurrency must be at least 1", ErrInvalidInput)
	}
	if s.Directory.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second must not be negative", ErrInvalidInput)
	}
	return nil
}

// Values returns every setting in its config-file form, keyed by setting key.
func (s AppSettings) Values() map[string]string {
	return map[string]string{
		SettingAPIBaseURL:         s.API.BaseURL,
		SettingAPITimeout:         strconv.Itoa(int(s.API.Timeout / time.Second)),
		SettingDirConcurrency:     strconv.Itoa(s.Directory.Concurrency),
		SettingDirRequestsPerSec:  strconv.FormatFloat(s.Directory.RequestsPerSecond, 'f', -1, 64),
		SettingDirCacheTTL:        strconv.Itoa(int(s.Directory.CacheTTL / time.Second)),
		SettingSessionIdleTimeout: strconv.Itoa(int(s.Session.IdleTimeout / time.Minute)),
	}
}
