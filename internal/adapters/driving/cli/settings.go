package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the backend address, refresh throttling and session policy.

Settings are stored in ~/.karigar/config.toml (see --config-dir).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  api.base_url                   backend root URL
  api.timeout_seconds            request timeout
  directory.concurrency          parallel count fetches
  directory.requests_per_second  count fetch rate limit (0 = unlimited)
  directory.cache_ttl_seconds    professional listing cache (0 = off)
  session.idle_timeout_minutes   idle session expiry (0 = never)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Println()

	cmd.Println("[Directory]")
	cmd.Printf("  Concurrency: %d\n", settings.Directory.Concurrency)
	if settings.Directory.RequestsPerSecond > 0 {
		cmd.Printf("  Requests per second: %g\n", settings.Directory.RequestsPerSecond)
	} else {
		cmd.Println("  Requests per second: unlimited")
	}
	cmd.Printf("  Listing cache: %s\n", durationOrOff(settings.Directory.CacheTTL.String(), settings.Directory.CacheTTL == 0))
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Idle timeout: %s\n", durationOrOff(settings.Session.IdleTimeout.String(), settings.Session.IdleTimeout == 0))
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'karigar settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if !knownKey(key) {
		return fmt.Errorf("unknown setting %q (valid keys: %s)", key, strings.Join(settingsService.Keys(), ", "))
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func knownKey(key string) bool {
	for _, k := range settingsService.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func durationOrOff(d string, off bool) string {
	if off {
		return "off"
	}
	return d
}
