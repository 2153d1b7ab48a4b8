// SPDX-License-Identifier: MPL-2.0

package ignorerules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRewrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		base string
		want string
	}{
		{name: "root untouched", body: "build/", base: "", want: "build/"},
		{name: "anchored", body: "/out", base: "modules/core", want: "modules/core/out"},
		{name: "recursive", body: "**/gen", base: "modules", want: "modules/**/gen"},
		{name: "unanchored", body: "*.log", base: "modules", want: "modules/**/*.log"},
		{name: "unanchored dir", body: "cache/", base: "a/b", want: "a/b/**/cache/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewrite(tt.body, tt.base); got != tt.want {
				t.Errorf("rewrite(%q, %q) = %q, want %q", tt.body, tt.base, got, tt.want)
			}
		})
	}
}

func TestRuleSet_Merge_ParsesLines(t *testing.T) {
	t.Parallel()

	text := "# comment\n\n  build/  \n!keep/\n[\n!\n/\n/generated\n"
	rules := RuleSet{}.Merge(text, "").Rules()

	want := []Rule{
		{Pattern: "build/", Anchored: false},
		{Pattern: "keep/", Negated: true, Anchored: false},
		{Pattern: "/generated", Anchored: true},
	}
	if len(rules) != len(want) {
		t.Fatalf("Merge() produced %d rules %v, want %d", len(rules), rules, len(want))
	}
	for i, w := range want {
		got := rules[i]
		if got.Pattern != w.Pattern || got.Negated != w.Negated || got.Anchored != w.Anchored {
			t.Errorf("rule[%d] = %+v, want %+v", i, got, w)
		}
	}
	if rules[1].String() != "!keep/" {
		t.Errorf("String() = %q", rules[1].String())
	}
}

func TestRuleSet_IsIgnored(t *testing.T) {
	t.Parallel()

	rules := RuleSet{}.
		Merge("build/\nignored-module/\n*.log\n!important.log\n/out\n", "").
		Merge("/local\nnested/\n!keep.log\n", "modules/core")

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{path: "build", isDir: true, want: true},
		{path: "modules/core/build", isDir: true, want: true},
		{path: "build", isDir: false, want: false},
		{path: "ignored-module", isDir: true, want: true},
		{path: "ignored-module/build.gradle", isDir: false, want: true},
		{path: "x/debug.log", isDir: false, want: true},
		{path: "x/important.log", isDir: false, want: false},
		{path: "out", isDir: true, want: true},
		{path: "sub/out", isDir: true, want: false},
		{path: "modules/core/local", isDir: true, want: true},
		{path: "local", isDir: true, want: false},
		{path: "modules/core/a/b/nested", isDir: true, want: true},
		{path: "modules/other/nested", isDir: true, want: false},
		{path: "modules/core/keep.log", isDir: false, want: false},
		{path: "modules/other/keep.log", isDir: false, want: true},
		{path: "", isDir: true, want: false},
	}

	for _, tt := range tests {
		if got := rules.IsIgnored(tt.path, tt.isDir); got != tt.want {
			t.Errorf("IsIgnored(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
		}
	}
}

func TestRuleSet_MergeDoesNotMutateParent(t *testing.T) {
	t.Parallel()

	parent := RuleSet{}.Merge("a/\nb/\n", "")
	left := parent.Merge("left/\n", "x")
	right := parent.Merge("right/\n", "y")

	if parent.Len() != 2 {
		t.Errorf("parent.Len() = %d, want 2", parent.Len())
	}
	if left.IsIgnored("x/right", true) || left.IsIgnored("y/right", true) {
		t.Error("left set sees sibling rules")
	}
	if !right.IsIgnored("y/right", true) {
		t.Error("right set lost its own rule")
	}
	if got := left.Rules()[2].Pattern; got != "x/**/left/" {
		t.Errorf("left rule = %q", got)
	}
}

func TestRuleSet_ZeroValue(t *testing.T) {
	t.Parallel()

	var rules RuleSet
	if rules.IsIgnored("anything", true) {
		t.Error("zero RuleSet ignored a path")
	}
	if got := rules.Merge("# only comments\n", ""); got.Len() != 0 {
		t.Errorf("Merge() of comments produced %d rules", got.Len())
	}
}

func TestRuleSet_ReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(path, []byte("tmp-out/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := RuleSet{}.ReadFile(path, "pkg")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !rules.IsIgnored("pkg/deep/tmp-out", true) {
		t.Error("rule from file not applied")
	}

	if _, err := rules.ReadFile(filepath.Join(dir, "missing"), ""); err == nil {
		t.Error("ReadFile() on missing file returned nil error")
	}
}
