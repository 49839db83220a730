package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/zmkgrid/internal/app"
	"github.com/vk/zmkgrid/internal/export"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("zmkgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
zmkgrid - Parse and validate ZMK keymaps for 42-key split keyboards.

Usage:
  zmkgrid [options] [KEYMAP_PATH...]

Arguments:
  KEYMAP_PATH
    Path to a .keymap file or a directory searched for .keymap and .dtsi files.

Options:
`)
		flagSet.PrintDefaults()
	}

	keymapFlag := flagSet.String("keymap", "", "Path to the keymap file or directory.")
	kFlag := flagSet.String("k", "", "Path to the keymap file or directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL settings file.")
	formatFlag := flagSet.String("format", string(export.FormatJSON), "Output format. Options: 'json', 'hcl' or 'grid'.")
	validateFlag := flagSet.Bool("validate", false, "Only validate the keymap and report problems.")
	listBindingsFlag := flagSet.Bool("list-bindings", false, "Print the supported binding syntaxes.")
	servePortFlag := flagSet.Int("serve-port", 0, "Port for the HTTP service. 0 is disabled.")
	publishFlag := flagSet.String("publish", "", "socket.io URL of a visualizer to publish parsed keymaps to.")
	watchFlag := flagSet.Bool("watch", false, "Re-parse and re-publish keymaps when they change.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *keymapFlag != "" {
		paths = append(paths, *keymapFlag)
	} else if *kFlag != "" {
		paths = append(paths, *kFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Keymap paths determined.", "paths", paths)

	if len(paths) == 0 && !*listBindingsFlag && *servePortFlag == 0 {
		slog.Debug("No keymap path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'json', 'hcl' or 'grid'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		KeymapPaths:  paths,
		SettingsPath: *configFlag,
		Format:       format,
		ValidateOnly: *validateFlag,
		ListBindings: *listBindingsFlag,
		ServePort:    *servePortFlag,
		PublishURL:   *publishFlag,
		Watch:        *watchFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
