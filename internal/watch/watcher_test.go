// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gradlewire/gradlewire/internal/testutil"
)

var buildPatterns = BuildPatterns([]string{"build.gradle", "build.gradle.kts"}, []string{"gradle/*.versions.toml"})

func newTestWatcher(t *testing.T, cfg Config) *Watcher {
	t.Helper()
	if cfg.Debounce == 0 {
		cfg.Debounce = 50 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

func run(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	// Give the event loop time to start.
	time.Sleep(50 * time.Millisecond)
	return func() {
		stop()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Run() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Run() did not return after cancellation")
		}
	}
}

func TestWatcher_Debounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var (
		mu    sync.Mutex
		calls int
		seen  []string
	)
	done := make(chan struct{}, 1)

	w := newTestWatcher(t, Config{
		BaseDir:  dir,
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			seen = append(seen, changed...)
			done <- struct{}{}
			return nil
		},
	})
	stop := run(t, w)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		testutil.MustWriteFile(t, filepath.Join(dir, name), "x")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(200 * time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	for _, want := range []string{"a.txt", "b.txt", "c.txt"} {
		if !slices.Contains(seen, want) {
			t.Errorf("%s missing from %v", want, seen)
		}
	}
}

func TestWatcher_BuildPatternFiltering(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "app", "build.gradle"), "")
	fired := make(chan []string, 10)

	w := newTestWatcher(t, Config{
		BaseDir:  dir,
		Patterns: buildPatterns,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})
	stop := run(t, w)
	defer stop()

	testutil.MustWriteFile(t, filepath.Join(dir, "app", "Main.java"), "class Main {}")
	time.Sleep(200 * time.Millisecond)
	testutil.MustWriteFile(t, filepath.Join(dir, "app", "build.gradle"), "plugins { java }")

	select {
	case changed := <-fired:
		if slices.Contains(changed, "app/Main.java") {
			t.Errorf("source change triggered: %v", changed)
		}
		if !slices.Contains(changed, "app/build.gradle") {
			t.Errorf("changed = %v, want app/build.gradle", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for build file change")
	}
}

func TestWatcher_NewModuleDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fired := make(chan []string, 10)
	w := newTestWatcher(t, Config{
		BaseDir:  dir,
		Patterns: buildPatterns,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})
	stop := run(t, w)
	defer stop()

	if err := os.Mkdir(filepath.Join(dir, "billing"), 0o755); err != nil {
		t.Fatal(err)
	}
	// Let the new directory get registered before writing into it.
	time.Sleep(100 * time.Millisecond)
	testutil.MustWriteFile(t, filepath.Join(dir, "billing", "build.gradle.kts"), "")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-fired:
			if slices.Contains(changed, "billing/build.gradle.kts") {
				return
			}
		case <-deadline:
			t.Fatal("build file in new directory never reported")
		}
	}
}

func TestWatcher_DefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		ignored bool
	}{
		{".git/config", true},
		{".gradle/8.10/checksums", true},
		{"app/build/resources/main/logback.xml", true},
		{"build/generated/version-catalog/x/libs.versions.toml", true},
		{".idea/workspace.xml", true},
		{"build.gradle.swp", true},
		{"sub/.DS_Store", true},
		{"app/build.gradle", false},
		{"gradle/libs.versions.toml", false},
		{".gitignore", false},
	}

	for _, tt := range tests {
		if got := matchAny(DefaultIgnores(), tt.path); got != tt.ignored {
			t.Errorf("ignored(%q) = %v, want %v", tt.path, got, tt.ignored)
		}
	}
}

func TestWatcher_IgnoredBuildOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "build", "keep"), "")
	fired := make(chan []string, 10)
	w := newTestWatcher(t, Config{
		BaseDir: dir,
		OnChange: func(_ context.Context, changed []string) error {
			fired <- changed
			return nil
		},
	})
	stop := run(t, w)
	defer stop()

	testutil.MustWriteFile(t, filepath.Join(dir, "build", "out.txt"), "x")
	time.Sleep(200 * time.Millisecond)
	testutil.MustWriteFile(t, filepath.Join(dir, "settings.gradle.kts"), "x")

	select {
	case changed := <-fired:
		if slices.Contains(changed, "build/out.txt") {
			t.Errorf("build output triggered: %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}

func TestWatcher_ClearScreen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	done := make(chan struct{})
	w := newTestWatcher(t, Config{
		BaseDir:     dir,
		ClearScreen: true,
		Out:         &out,
		OnChange: func(context.Context, []string) error {
			close(done)
			return nil
		},
	})
	stop := run(t, w)

	testutil.MustWriteFile(t, filepath.Join(dir, "build.gradle"), "")
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
	stop()

	if !strings.Contains(out.String(), "\033[2J\033[H") {
		t.Errorf("missing clear sequence, got %q", out.String())
	}
}

func TestWatcher_CallbackErrorIsLogged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var (
		mu  sync.Mutex
		buf bytes.Buffer
	)
	done := make(chan struct{})
	w := newTestWatcher(t, Config{
		BaseDir: dir,
		Logger:  slog.New(slog.NewTextHandler(&lockedWriter{mu: &mu, w: &buf}, nil)),
		OnChange: func(context.Context, []string) error {
			defer close(done)
			return errors.New("plan failed")
		},
	})
	stop := run(t, w)

	testutil.MustWriteFile(t, filepath.Join(dir, "build.gradle"), "")
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
	time.Sleep(50 * time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(buf.String(), "plan failed") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestWatcher_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(Config{BaseDir: t.TempDir(), Patterns: []string{"[oops"}})
	if !errors.Is(err, ErrInvalidWatchConfig) {
		t.Errorf("New() error = %v, want ErrInvalidWatchConfig", err)
	}
}

func TestWatcher_DoubleRun(t *testing.T) {
	t.Parallel()

	w := newTestWatcher(t, Config{BaseDir: t.TempDir()})
	stop := run(t, w)
	defer stop()

	if err := w.Run(t.Context()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Run() error = %v, want ErrAlreadyStarted", err)
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
