package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/vk/zmkgrid/internal/export"
	"github.com/vk/zmkgrid/internal/fsutil"
	"github.com/vk/zmkgrid/internal/keymap"
	"github.com/vk/zmkgrid/internal/layout"
	"github.com/vk/zmkgrid/internal/publish"
)

// KeymapExtensions are the file extensions searched for in directories.
var KeymapExtensions = []string{".keymap", ".dtsi"}

// ErrValidationFailed is returned in validate-only mode when any file has
// findings.
var ErrValidationFailed = errors.New("keymap validation failed")

// discover expands the configured keymap paths into files.
func (a *App) discover(ctx context.Context) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ResolvePaths(a.config.KeymapPaths, KeymapExtensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no keymap files found in %v", a.config.KeymapPaths)
	}
	logger.Debug("Discovered keymap files.", "count", len(files))
	return files, nil
}

// validateAll prints the findings for every file and fails if any file has
// one.
func (a *App) validateAll(ctx context.Context, files []string) error {
	logger := ctxlog.FromContext(ctx)
	failed := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read keymap file: %w", err)
		}

		res := a.parser.Validate(string(content))
		if res.Valid {
			fmt.Fprintf(a.outW, "%s: OK\n", path)
			continue
		}

		failed++
		fmt.Fprintf(a.outW, "%s: %d problem(s)\n", path, len(res.Errors))
		for _, msg := range res.Errors {
			fmt.Fprintf(a.outW, "  - %s\n", msg)
		}
	}

	logger.Info("Validation finished.", "files", len(files), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) have problems", ErrValidationFailed, failed, len(files))
	}
	return nil
}

// processAll parses, writes and optionally publishes every file. A failing
// file does not stop the others; all failures are returned together.
func (a *App) processAll(ctx context.Context, files []string, pub *publish.Publisher) error {
	var errs []error
	for _, path := range files {
		if err := a.processFile(ctx, path, pub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) processFile(ctx context.Context, path string, pub *publish.Publisher) error {
	logger := ctxlog.FromContext(ctx).With("file", path)

	cfg, err := a.parseFile(ctx, path)
	if err != nil {
		logger.Error("Keymap could not be parsed.", "error", err)
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("Keymap parsed.", "layers", len(cfg.Layers))

	if err := export.Write(a.outW, a.config.Format, cfg); err != nil {
		return fmt.Errorf("%s: failed to write result: %w", path, err)
	}

	if pub != nil {
		if err := pub.Publish(ctx, cfg); err != nil {
			logger.Error("Keymap could not be published.", "error", err)
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// parseFile reads and parses one file. Validator findings are logged as
// warnings before parsing so a failed parse comes with context.
func (a *App) parseFile(ctx context.Context, path string) (*keymap.KeymapConfig, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap file: %w", err)
	}

	if res := a.parser.Validate(string(content)); !res.Valid {
		for _, msg := range res.Errors {
			logger.Warn("Validation finding.", "problem", msg)
		}
	}

	cfg, err := a.parser.ParseFile(path, string(content))
	var countErr *layout.CountError
	if errors.As(err, &countErr) {
		logger.Error("Layer binding count mismatch.", "layer", countErr.Layer, "bindings", countErr.Got, "range", countErr.Range.String())
	}
	return cfg, err
}
