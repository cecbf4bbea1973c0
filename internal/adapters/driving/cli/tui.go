package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Auth       driving.AuthService
	Profile    driving.ProfileService
	Profession driving.ProfessionService
	Directory  driving.DirectoryService
	Settings   driving.SettingsService

	// Watcher reloads the configuration file while the TUI runs. Optional.
	Watcher driven.ConfigWatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Karigar.

Browse service categories with live professional counts, open the
professionals of a service, log in, and register or edit your profession.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open / Expand
  /        - Filter services
  r        - Refresh
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// buildPorts assembles the TUI ports and starts the config watcher.
func buildPorts(ctx context.Context, config *TUIConfig) *tui.Ports {
	ports := &tui.Ports{}
	if config == nil {
		return ports
	}

	ports.Auth = config.Auth
	ports.Profile = config.Profile
	ports.Profession = config.Profession
	ports.Directory = config.Directory
	ports.Settings = config.Settings

	if config.Watcher != nil {
		changes, err := config.Watcher.Watch(ctx)
		if err != nil {
			// Live reload is optional; the TUI still works without it.
			logger.Warn("config watch unavailable: %v", err)
		} else {
			ports.ConfigChanges = changes
		}
	}
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	app, err := tui.NewApp(buildPorts(ctx, tuiConfig))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
