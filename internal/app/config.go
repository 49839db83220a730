package app

import (
	"errors"
	"fmt"

	"github.com/vk/zmkgrid/internal/export"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	KeymapPaths  []string // .keymap/.dtsi files or directories
	SettingsPath string   // optional HCL settings file

	Format       export.Format
	ValidateOnly bool
	ListBindings bool

	ServePort  int
	PublishURL string
	Watch      bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.KeymapPaths) == 0 && !cfg.ListBindings && cfg.ServePort == 0 {
		return nil, errors.New("a keymap path is required unless listing bindings or serving")
	}
	if cfg.Watch && len(cfg.KeymapPaths) == 0 {
		return nil, errors.New("watch mode needs a keymap path")
	}
	if cfg.ServePort < 0 || cfg.ServePort > 65535 {
		return nil, fmt.Errorf("serve port %d is out of range", cfg.ServePort)
	}

	if cfg.Format == "" {
		cfg.Format = export.FormatJSON
	}
	format, err := export.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	return &cfg, nil
}
