// Package driving defines the interfaces the CLI, TUI and MCP adapters use
// to drive the application:
//
//   - AuthService: sign-up, OTP verification, login and logout
//   - ProfileService: the account profile and avatar
//   - ProfessionService: profession registration and edit through a
//     ProfessionFormSession (the cascading taxonomy selector)
//   - DirectoryService: browse counts, search, expansion state and listings
//   - SettingsService: application settings
//
// Implementations live in internal/core/services.
package driving
