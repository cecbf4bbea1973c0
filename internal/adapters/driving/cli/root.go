// Package cli provides the cobra command tree of the karigar binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services wired by the composition root.
var (
	authService       driving.AuthService
	profileService    driving.ProfileService
	professionService driving.ProfessionService
	directoryService  driving.DirectoryService
	settingsService   driving.SettingsService
)

// Options carries the global flags to the bootstrap function.
type Options struct {
	ConfigDir string
	DataDir   string
	Verbose   bool
}

// Services groups the driving ports the commands use.
type Services struct {
	Auth       driving.AuthService
	Profile    driving.ProfileService
	Profession driving.ProfessionService
	Directory  driving.DirectoryService
	Settings   driving.SettingsService
	TUI        *TUIConfig
}

// BootstrapFunc builds the services once flags are parsed. The returned
// cleanup runs after the command finishes.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	bootstrap BootstrapFunc
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "karigar",
	Short: "Find and list local service professionals",
	Long: `Karigar connects people with local service professionals such as
plumbers, electricians, beauticians and tutors.

Browse service categories with live professional counts, look up the
professionals offering a service, and register or edit your own profession.

Run 'karigar tui' for the interactive interface.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.karigar)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.karigar/data)")
}

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly. Used when no bootstrap is registered.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	authService = s.Auth
	profileService = s.Profile
	professionService = s.Profession
	directoryService = s.Directory
	settingsService = s.Settings
	if s.TUI != nil {
		SetTUIConfig(s.TUI)
	}
}

// SetVersion sets the version reported by 'karigar version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases whatever the bootstrap opened.
func Execute(ctx context.Context) error {
	defer Close()
	return rootCmd.ExecuteContext(ctx)
}

// Close runs the bootstrap cleanup, if any.
func Close() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}

	logger.Section("Bootstrap")
	services, done, err := bootstrap(commandContext(cmd), Options{
		ConfigDir: configDir,
		DataDir:   dataDir,
		Verbose:   verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// explain adds a next step to errors the user can act on.
func explain(action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return fmt.Errorf("%s: %w (run 'karigar login')", action, err)
	case errors.Is(err, domain.ErrSessionExpired):
		return fmt.Errorf("%s: %w (run 'karigar login' again)", action, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

// printFieldErrors lists validation failures one per line.
func printFieldErrors(cmd *cobra.Command, err error) {
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		return
	}
	for _, k := range vErr.Fields.Keys() {
		cmd.PrintErrf("  %s: %s\n", k, vErr.Fields[k])
	}
}
