package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

func TestServices_ListsCounts(t *testing.T) {
	env := newTestEnv(t)
	env.directory.CountsResult = domain.Counts{
		Services:   map[string]int{"Plumber": 2, "Electrician": 1, "Salon": 0},
		Categories: map[string]int{"Household Services": 3, "Beauty": 0, "Explore Others": 0},
	}

	out, _, err := run(t, "", "services")

	require.NoError(t, err)
	assert.Contains(t, out, "Household Services (3)")
	assert.Contains(t, out, "Plumber")
	assert.Contains(t, out, "Beauty (0)")
	assert.NotContains(t, out, "Warning")
	assert.Equal(t, 1, env.directory.Refreshes)
}

func TestServices_Query(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "", "services", "salon")

	require.NoError(t, err)
	assert.Contains(t, out, "Beauty")
	assert.NotContains(t, out, "Household Services")
}

func TestServices_NoMatch(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "", "services", "astronaut")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching services.")
}

func TestServices_DegradedWarning(t *testing.T) {
	env := newTestEnv(t)
	counts := domain.NewCounts()
	counts.Failed = []string{"Plumber", "Salon"}
	env.directory.CountsResult = counts

	out, _, err := run(t, "", "services")

	require.NoError(t, err)
	assert.Contains(t, out, "counts unavailable for 2 service(s)")
}

func TestServices_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.directory.CountsResult = domain.Counts{
		Services:   map[string]int{"Salon": 4},
		Categories: map[string]int{"Beauty": 4},
	}

	out, _, err := run(t, "", "services", "beauty", "--json")
	require.NoError(t, err)

	var rows []categoryRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Beauty", rows[0].Category)
	assert.Equal(t, 4, rows[0].Count)
	require.NotEmpty(t, rows[0].Services)
	assert.Equal(t, "Salon", rows[0].Services[0].Service)
}

func TestProfessionals_Lists(t *testing.T) {
	env := newTestEnv(t)
	env.directory.Records["Plumber"] = []domain.ProfessionalRecord{plumber("Ravi Jadhav")}

	out, _, err := run(t, "", "professionals", "Plumber", "--category", "Household Services")

	require.NoError(t, err)
	assert.Contains(t, out, "1 professional(s) for Plumber")
	assert.Contains(t, out, "Ravi Jadhav")
	assert.Contains(t, out, "Baramati, Pune, Maharashtra")
	assert.Equal(t, [2]string{"Plumber", "Household Services"}, env.directory.LastListing)
}

func TestProfessionals_Empty(t *testing.T) {
	newTestEnv(t)

	out, _, err := run(t, "", "professionals", "Electrician")

	require.NoError(t, err)
	assert.Contains(t, out, "No professionals found for Electrician.")
}

func TestProfessionals_Error(t *testing.T) {
	env := newTestEnv(t)
	env.directory.ProfessionalsErr = domain.ErrSessionExpired

	_, _, err := run(t, "", "professionals", "Plumber")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Contains(t, err.Error(), "karigar login")
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a, c", joinNonEmpty("a", "", "c"))
	assert.Equal(t, "", joinNonEmpty("", ""))
}
