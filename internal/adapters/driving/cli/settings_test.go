package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsShow(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[API]")
	assert.Contains(t, out, "Concurrency: 8")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsSet(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := run(t, "", "settings", "set", "directory.concurrency", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "Set directory.concurrency = 3")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, settings.Directory.Concurrency)
}

func TestSettingsSet_UnknownKey(t *testing.T) {
	newTestEnv(t)

	_, _, err := run(t, "", "settings", "set", "search.mode", "fast")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestSettingsSet_InvalidValue(t *testing.T) {
	newTestEnv(t)

	_, _, err := run(t, "", "settings", "set", "api.timeout_seconds", "soon")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set api.timeout_seconds")
}

func TestSettings_NotConfigured(t *testing.T) {
	SetServices(&Services{})

	_, _, err := run(t, "", "settings", "show")

	assert.EqualError(t, err, "settings service not configured")
}

func TestDurationOrOff(t *testing.T) {
	assert.Equal(t, "off", durationOrOff("0s", true))
	assert.Equal(t, "1m0s", durationOrOff("1m0s", false))
}
