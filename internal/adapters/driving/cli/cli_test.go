package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/tuitest"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/services"
)

// testEnv holds the fakes installed for one command run.
type testEnv struct {
	auth       *tuitest.Auth
	directory  *tuitest.Directory
	profession *tuitest.Profession
	settings   *services.SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		auth:       &tuitest.Auth{},
		directory:  tuitest.NewDirectory(),
		profession: &tuitest.Profession{},
		settings:   services.NewSettingsService(memory.NewConfigStore()),
	}
	SetServices(&Services{
		Auth:       env.auth,
		Profession: env.profession,
		Directory:  env.directory,
		Settings:   env.settings,
	})
	t.Cleanup(func() {
		SetServices(&Services{})
		directoryFlags.json = false
		directoryFlags.category = ""
		accountFlags.name = ""
		accountFlags.email = ""
		accountFlags.mobile = ""
		accountFlags.otp = ""
	})
	return env
}

// run executes the root command with args and stdin, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func plumber(name string) domain.ProfessionalRecord {
	return domain.ProfessionalRecord{
		Name:            name,
		MobileNo:        "9876543210",
		State:           "Maharashtra",
		District:        "Pune",
		City:            "Baramati",
		ServiceCategory: "Household Services",
		ServiceName:     "Plumber",
		Designation:     "Plumber",
		Experience:      "5 years",
	}
}
