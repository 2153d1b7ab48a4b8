// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/gradlewire/gradlewire/internal/testutil"
)

func newQuietScanner(root string, opts ...Option) *Scanner {
	return New(root, append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)...)
}

func relDirs(modules []*Module) []string {
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = m.RelDir()
	}
	return out
}

func TestScanner_TwoModules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		".gitignore":                         "build/\n",
		"modules/core/build.gradle":          "",
		"modules/web-api/build.gradle.kts":   "",
		"modules/web-api/build/build.gradle": "",
	})

	modules, diags, err := newQuietScanner(root).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
	if len(modules) != 2 {
		t.Fatalf("got %d modules %v, want 2", len(modules), relDirs(modules))
	}

	core, web := modules[0], modules[1]
	if !slices.Equal(core.PathSegments, []string{"modules", "core"}) || !slices.Equal(core.NameSegments, []string{"core"}) {
		t.Errorf("core = %+v", core)
	}
	if !slices.Equal(web.PathSegments, []string{"modules", "web-api"}) || !slices.Equal(web.NameSegments, []string{"web", "api"}) {
		t.Errorf("web-api = %+v", web)
	}
	if filepath.Base(web.BuildFile) != "build.gradle.kts" {
		t.Errorf("BuildFile = %q, want build.gradle.kts", web.BuildFile)
	}
	if !filepath.IsAbs(core.Dir) {
		t.Errorf("Dir = %q, want absolute", core.Dir)
	}
}

func TestScanner_IgnoredModule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		".gitignore":                        "ignored-module/\n",
		"ignored-module/build.gradle":       "",
		"ignored-module/inner/build.gradle": "",
		"kept/build.gradle":                 "",
	})

	modules, _, err := newQuietScanner(root).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got := relDirs(modules); !slices.Equal(got, []string{"kept"}) {
		t.Errorf("modules = %v, want [kept]", got)
	}
}

func TestScanner_SkipRules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"build.gradle":                   "",
		".hidden/build.gradle":           "",
		"src/build.gradle":               "",
		"tmp/build.gradle":               "",
		"temp/build.gradle":              "",
		"build/build.gradle":             "",
		"nested/src/main/build.gradle":   "",
		"outer/build.gradle":             "",
		"outer/inner/build.gradle":       "",
		"plain/deeper/app/build.gradle":  "",
		"plain/deeper/notes.txt":         "",
		"gradle-only/settings.gradle":    "",
		"ignored-build/build.gradle.kts": "",
		"ignored-build/.gitignore":       "build.gradle.kts\n",
		"module/build.gradle":            "",
		"modules/build.gradle":           "",
	})

	modules, _, err := newQuietScanner(root).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []string{"module", "modules", "outer", "plain/deeper/app"}
	if got := relDirs(modules); !slices.Equal(got, want) {
		t.Errorf("modules = %v, want %v", got, want)
	}
	for _, m := range modules {
		if m.RelDir() == "modules" && !slices.Equal(m.NameSegments, []string{"modules"}) {
			t.Errorf("single 'modules' segment = %v, want kept", m.NameSegments)
		}
	}
}

func TestScanner_NestedIgnoreScopedToSubtree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"a/.gitignore":             "generated/\n",
		"a/generated/build.gradle": "",
		"a/lib/build.gradle":       "",
		"b/generated/build.gradle": "",
	})

	modules, _, err := newQuietScanner(root).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := []string{"a/lib", "b/generated"}
	if got := relDirs(modules); !slices.Equal(got, want) {
		t.Errorf("modules = %v, want %v", got, want)
	}
}

func TestScanner_NegationReincludes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		".gitignore":                     "/experimental*\n!experimental-keep\n",
		"experimental-a/build.gradle":    "",
		"experimental-keep/build.gradle": "",
	})

	modules, _, err := newQuietScanner(root).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got := relDirs(modules); !slices.Equal(got, []string{"experimental-keep"}) {
		t.Errorf("modules = %v, want [experimental-keep]", got)
	}
}

func TestScanner_CustomOptions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"src/app/pom.gradle":    "",
		"tools/build.gradle":    "",
		"vendor/lib/pom.gradle": "",
	})

	s := newQuietScanner(root, WithBuildFiles("pom.gradle"), WithExcludedDirs("vendor"))
	modules, _, err := s.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got := relDirs(modules); !slices.Equal(got, []string{"src/app"}) {
		t.Errorf("modules = %v, want [src/app]", got)
	}
}

func TestScanner_SingleUse(t *testing.T) {
	t.Parallel()

	s := newQuietScanner(t.TempDir())
	for range s.Scan(context.Background()) {
	}
	for _, err := range s.Scan(context.Background()) {
		if !errors.Is(err, ErrScannerUsed) {
			t.Errorf("second Scan() error = %v, want ErrScannerUsed", err)
		}
		return
	}
	t.Error("second Scan() yielded nothing")
}

func TestScanner_EarlyStop(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"a/build.gradle": "",
		"b/build.gradle": "",
		"c/build.gradle": "",
	})

	var seen []string
	for m, err := range newQuietScanner(root).Scan(context.Background()) {
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		seen = append(seen, m.RelDir())
		if len(seen) == 2 {
			break
		}
	}
	if !slices.Equal(seen, []string{"a", "b"}) {
		t.Errorf("seen = %v, want [a b]", seen)
	}
}

func TestScanner_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"a/build.gradle": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newQuietScanner(root).Collect(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Collect() error = %v, want context.Canceled", err)
	}
}

func TestScanner_RootErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	testutil.MustWriteFile(t, file, "")

	for _, root := range []string{filepath.Join(dir, "missing"), file} {
		_, _, err := newQuietScanner(root).Collect(context.Background())
		if err == nil {
			t.Errorf("Collect(%s) error = nil, want error", root)
		}
	}
}

func TestScanner_UnreadableDirectoryDiagnostic(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root can read any directory")
	}

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"locked/app/build.gradle": "",
		"open/build.gradle":       "",
	})
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	modules, diags, err := newQuietScanner(root).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got := relDirs(modules); !slices.Equal(got, []string{"open"}) {
		t.Errorf("modules = %v, want [open]", got)
	}
	found := slices.ContainsFunc(diags, func(d Diagnostic) bool {
		return d.Code == CodeDirUnreadable && strings.HasSuffix(d.Path, "locked")
	})
	if !found {
		t.Errorf("diagnostics = %v, want dir_unreadable for locked", diags)
	}
}
