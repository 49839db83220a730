package app

import (
	"context"
	"fmt"

	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/vk/zmkgrid/internal/publish"
	"github.com/vk/zmkgrid/internal/watch"
	"github.com/vk/zmkgrid/internal/zmk"
)

// Run executes the main application logic based on the App's configuration.
// With serving or watching enabled it blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ListBindings {
		for _, b := range zmk.GetSupportedBindings() {
			fmt.Fprintln(a.outW, b)
		}
	}

	if a.config.ServePort > 0 {
		srv, err := a.startServer(ctx, a.config.ServePort)
		if err != nil {
			return err
		}
		defer a.shutdownServer(ctx, srv)
	}

	if len(a.config.KeymapPaths) > 0 {
		if err := a.runKeymaps(ctx); err != nil {
			return err
		}
	}

	if a.config.ServePort > 0 && !a.config.Watch {
		a.logger.Info("Serving until interrupted.")
		<-ctx.Done()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runKeymaps(ctx context.Context) error {
	files, err := a.discover(ctx)
	if err != nil {
		return err
	}

	if a.config.ValidateOnly {
		return a.validateAll(ctx, files)
	}

	var pub *publish.Publisher
	if p := a.settings.PublishOrDefault(); p.URL != "" {
		pub, err = publish.Connect(ctx, publish.OptionsFromSettings(p))
		if err != nil {
			return fmt.Errorf("failed to connect publisher: %w", err)
		}
		defer pub.Close()
	}

	processErr := a.processAll(ctx, files, pub)
	if !a.config.Watch {
		return processErr
	}

	return a.watch(ctx, pub)
}

// watch re-processes keymap files as they change until ctx is cancelled.
// Failures are logged, not returned, so one bad save does not end the session.
func (a *App) watch(ctx context.Context, pub *publish.Publisher) error {
	w, err := watch.New(a.config.KeymapPaths, watch.WithExtensions(KeymapExtensions...))
	if err != nil {
		return err
	}
	return w.Run(ctx, func(ctx context.Context, path string) {
		_ = a.processFile(ctx, path, pub)
	})
}
