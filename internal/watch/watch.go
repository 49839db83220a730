// Package watch re-runs a callback when keymap files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/zmkgrid/internal/ctxlog"
)

// DefaultDebounce is how long a burst of events for one file is coalesced.
const DefaultDebounce = 150 * time.Millisecond

// ChangeFunc is called with the absolute path of a changed file.
type ChangeFunc func(ctx context.Context, path string)

// Watcher follows a set of files and directories. Files named directly are
// followed whatever their extension; files inside a watched directory only
// when they carry one of the configured extensions.
type Watcher struct {
	fsw        *fsnotify.Watcher
	files      map[string]struct{}
	dirs       map[string]struct{}
	extensions []string
	debounce   time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithExtensions limits directory watches to files with these extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = exts
	}
}

// New starts watching paths. Files are watched through their parent
// directory so editors that replace files on save are still seen.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:        fsw,
		files:      make(map[string]struct{}),
		dirs:       make(map[string]struct{}),
		extensions: []string{".keymap", ".dtsi"},
		debounce:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, path := range paths {
		if err := w.add(path); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	if !info.IsDir() {
		w.files[absPath] = struct{}{}
		return w.watchDir(filepath.Dir(absPath), false)
	}

	return filepath.WalkDir(absPath, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.watchDir(p, true)
		}
		return nil
	})
}

// watchDir registers dir with fsnotify. recursive marks directories whose
// matching files are all followed.
func (w *Watcher) watchDir(dir string, recursive bool) error {
	if recursive {
		w.dirs[dir] = struct{}{}
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	return nil
}

// watchCreatedDir follows a directory created inside a recursively watched
// one. A directory that cannot be watched is logged and skipped.
func (w *Watcher) watchCreatedDir(logger *slog.Logger, dir string) {
	if _, ok := w.dirs[filepath.Dir(dir)]; !ok {
		return
	}
	if err := w.add(dir); err != nil {
		logger.Warn("Cannot watch new directory.", "path", dir, "error", err)
		return
	}
	logger.Debug("Watching new directory.", "path", dir)
}

// relevant reports whether a change to path should trigger the callback.
func (w *Watcher) relevant(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	if _, ok := w.dirs[filepath.Dir(path)]; !ok {
		return false
	}
	for _, ext := range w.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run delivers changes to fn until ctx is cancelled, then closes the
// watcher. Calls to fn are sequential.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	logger := ctxlog.FromContext(ctx).With("component", "watcher")
	defer w.fsw.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	logger.Info("Watching for changes.", "files", len(w.files), "directories", len(w.dirs))
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Debug("Watcher stopped.")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("file watcher closed unexpectedly")
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.watchCreatedDir(logger, ev.Name)
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(ev.Name) {
				continue
			}
			logger.Debug("Change detected.", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("file watcher closed unexpectedly")
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			for _, p := range paths {
				if _, err := os.Stat(p); err != nil {
					logger.Debug("Changed file is gone, skipping.", "path", p)
					continue
				}
				fn(ctx, p)
			}
		}
	}
}
