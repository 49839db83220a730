package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/zmkgrid/internal/binding"
	"github.com/vk/zmkgrid/internal/config"
	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/vk/zmkgrid/internal/zmk"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings *config.Settings
	parser   *zmk.Parser
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. Settings are read through loader when the config names a
// settings file.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings := config.New()
	if appConfig.SettingsPath != "" {
		loaded, err := loader.Load(ctx, appConfig.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = loaded
		logger.Debug("Settings loaded.", "path", appConfig.SettingsPath, "symbols", len(settings.Symbols))
	}

	if appConfig.PublishURL != "" {
		settings.Merge(&config.Settings{Publish: &config.Publish{URL: appConfig.PublishURL}})
	}

	parser := zmk.New(
		zmk.WithSymbols(binding.DefaultSymbols().Merge(settings.Symbols)),
		zmk.WithMetadata(settings.KeymapMetadata()),
		zmk.WithLogger(logger),
	)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		settings: settings,
		parser:   parser,
	}, nil
}

// Settings returns the effective settings. This is primarily for testing.
func (a *App) Settings() *config.Settings {
	return a.settings
}
