// Command karigar is the terminal client of the Karigar local-services marketplace.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driven/api/rest"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driven/metrics"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driven/taxonomy"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/karigar-cli/internal/core/services"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters and services once the global flags are known.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening local store: %w", err)
	}
	logger.Debug("data: %s", store.Path())

	sessions := services.NewSessionManager(store.SessionStore(), settings.Session.IdleTimeout)

	rateLimit := rest.RateLimitFor(settings.Directory.RequestsPerSecond, settings.Directory.Concurrency)
	client, err := rest.NewClient(rest.Config{
		BaseURL:   settings.API.BaseURL,
		Timeout:   settings.API.Timeout,
		RateLimit: &rateLimit,
	}, sessions)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("creating api client (check 'karigar settings set api.base_url'): %w", err)
	}
	logger.Debug("api: %s", settings.API.BaseURL)

	tax, err := taxonomy.NewSource().Load()
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("loading taxonomy: %w", err)
	}

	recorder := metrics.New()

	authService := services.NewAuthService(client, sessions, recorder)
	profileService := services.NewProfileService(client, sessions, recorder)
	professionService := services.NewProfessionService(client, tax, sessions, recorder)
	directoryService := services.NewDirectoryService(tax, client, client, sessions, recorder, settings.Directory)

	cleanup := func() {
		if logger.IsVerbose() {
			logger.Section("Metrics")
			lines, err := recorder.Summary()
			if err != nil {
				logger.Warn("%v", err)
			}
			for _, line := range lines {
				logger.Info("%s", line)
			}
		}
		if err := store.Close(); err != nil {
			logger.Warn("closing local store: %v", err)
		}
	}

	return &cli.Services{
		Auth:       authService,
		Profile:    profileService,
		Profession: professionService,
		Directory:  directoryService,
		Settings:   settingsService,
		TUI: &cli.TUIConfig{
			Auth:       authService,
			Profile:    profileService,
			Profession: professionService,
			Directory:  directoryService,
			Settings:   settingsService,
			Watcher:    configStore,
		},
	}, cleanup, nil
}
