package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIBaseURL         = domain.SettingAPIBaseURL
	keyAPITimeout         = domain.SettingAPITimeout
	keyDirConcurrency     = domain.SettingDirConcurrency
	keyDirRequestsPerSec  = domain.SettingDirRequestsPerSec
	keyDirCacheTTL        = domain.SettingDirCacheTTL
	keySessionIdleTimeout = domain.SettingSessionIdleTimeout
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or malformed
// values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL: s.getString(keyAPIBaseURL, defaults.API.BaseURL),
			Timeout: s.getDuration(keyAPITimeout, time.Second, defaults.API.Timeout),
		},
		Directory: domain.DirectorySettings{
			Concurrency:       s.getInt(keyDirConcurrency, defaults.Directory.Concurrency),
			RequestsPerSecond: s.getFloat(keyDirRequestsPerSec, defaults.Directory.RequestsPerSecond),
			CacheTTL:          s.getDuration(keyDirCacheTTL, time.Second, defaults.Directory.CacheTTL),
		},
		Session: domain.SessionSettings{
			IdleTimeout: s.getDuration(keySessionIdleTimeout, time.Minute, defaults.Session.IdleTimeout),
		},
	}
	if settings.API.Timeout == 0 {
		settings.API.Timeout = defaults.API.Timeout
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// Save API settings
	if err := s.configStore.Set(keyAPIBaseURL, strings.TrimRight(settings.API.BaseURL, "/")); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(keyAPITimeout, int64(settings.API.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save api timeout: %w", err)
	}

	// Save directory settings
	if err := s.configStore.Set(keyDirConcurrency, int64(settings.Directory.Concurrency)); err != nil {
		return fmt.Errorf("save directory concurrency: %w", err)
	}
	if err := s.configStore.Set(keyDirRequestsPerSec, settings.Directory.RequestsPerSecond); err != nil {
		return fmt.Errorf("save directory requests_per_second: %w", err)
	}
	if err := s.configStore.Set(keyDirCacheTTL, int64(settings.Directory.CacheTTL/time.Second)); err != nil {
		return fmt.Errorf("save directory cache_ttl: %w", err)
	}

	// Save session settings
	if err := s.configStore.Set(keySessionIdleTimeout, int64(settings.Session.IdleTimeout/time.Minute)); err != nil {
		return fmt.Errorf("save session idle_timeout: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyAPIBaseURL:
		settings.API.BaseURL = value
	case keyAPITimeout:
		n, err := parseNonNegativeInt(key, value)
		if err != nil {
			return err
		}
		settings.API.Timeout = time.Duration(n) * time.Second
	case keyDirConcurrency:
		n, err := parseNonNegativeInt(key, value)
		if err != nil {
			return err
		}
		settings.Directory.Concurrency = n
	case keyDirRequestsPerSec:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Directory.RequestsPerSecond = f
	case keyDirCacheTTL:
		n, err := parseNonNegativeInt(key, value)
		if err != nil {
			return err
		}
		settings.Directory.CacheTTL = time.Duration(n) * time.Second
	case keySessionIdleTimeout:
		n, err := parseNonNegativeInt(key, value)
		if err != nil {
			return err
		}
		settings.Session.IdleTimeout = time.Duration(n) * time.Minute
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	return []string{
		keyAPIBaseURL,
		keyAPITimeout,
		keyDirConcurrency,
		keyDirRequestsPerSec,
		keyDirCacheTTL,
		keySessionIdleTimeout,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch val.(type) {
	case float64, int64, int:
		return s.configStore.GetFloat(key)
	default:
		return defaultVal
	}
}

// getDuration reads an integer count of unit. An explicit 0 is kept so a
// feature can be switched off.
func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	n := s.configStore.GetInt(key)
	if n < 0 {
		return defaultVal
	}
	return time.Duration(n) * unit
}

func parseNonNegativeInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}
