// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when files below a directory change.
//
// Events are filtered with doublestar patterns and coalesced: the callback
// fires once per quiet period with every path that changed during it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// defaultIgnores exclude VCS metadata, Gradle and IDE state, build output
// (which gradlewire itself writes to) and editor swap files.
var defaultIgnores = []string{
	"**/.git/**",
	"**/.gradle/**",
	"**/.idea/**",
	"**/build/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

// ErrAlreadyStarted is returned by a second call to Run.
var ErrAlreadyStarted = errors.New("watch: Run called more than once")

// Watcher monitors a directory tree and fires a debounced callback when
// matching files change. Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	ignores  []string
	logger   *slog.Logger
	debounce time.Duration
	baseDir  string
	started  atomic.Bool
}

// New validates cfg and registers every non-ignored directory below
// BaseDir.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  append(DefaultIgnores(), cfg.Ignore...),
		logger:   cfg.Logger,
		debounce: cfg.Debounce,
		baseDir:  absBase,
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			w.logger.Warn("close watcher after init failure", "error", closeErr)
		}
		return nil, err
	}
	return w, nil
}

// BaseDir returns the absolute directory being watched.
func (w *Watcher) BaseDir() string { return w.baseDir }

// Run processes events until ctx ends. It returns nil on cancellation and an
// error when the watcher breaks. A callback still running when the next
// quiet period ends is not started twice; the pending paths are retried.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous run still in progress, retrying later")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.ClearScreen && w.cfg.Out != nil {
			fmt.Fprint(w.cfg.Out, "\033[2J\033[H")
		}
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("watch callback failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			rel = filepath.ToSlash(rel)
			if w.isIgnored(rel) {
				continue
			}

			// New directories are watched even when they do not match, so a
			// module created later is still seen.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name, rel)
			}
			if !w.matchesPatterns(rel) {
				continue
			}

			mu.Lock()
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.baseDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "error", walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk directory tree: %w", err)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path, rel string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.isIgnored(rel+"/") {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("add new directory", "path", path, "error", err)
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) matchesPatterns(rel string) bool {
	return len(w.cfg.Patterns) == 0 || matchAny(w.cfg.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if doublestar.MatchUnvalidated(pat, rel) {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}
