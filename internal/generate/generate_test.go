// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gradlewire/gradlewire/internal/testutil"
)

func TestWriteLogback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, created, err := WriteLogback(dir)
	if err != nil || !created {
		t.Fatalf("WriteLogback() = %v, %v; want created", created, err)
	}
	if path != filepath.Join(dir, "build", "resources", "main", "logback.xml") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`<root level="INFO">`, "ch.qos.logback.core.ConsoleAppender", "%-5level %logger{36} - %msg%n"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("logback.xml missing %q", want)
		}
	}

	testutil.MustWriteFile(t, path, "<configuration/>")
	if _, created, err := WriteLogback(dir); err != nil || created {
		t.Errorf("second WriteLogback() = %v, %v; want not created", created, err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "<configuration/>" {
		t.Errorf("existing logback.xml overwritten: %q", data)
	}
}

func TestScaffoldSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		files       map[string]string
		buildFile   string
		wantCreated bool
		wantDir     string
	}{
		{
			name:        "java package",
			files:       map[string]string{"build.gradle": ""},
			buildFile:   "build.gradle",
			wantCreated: true,
			wantDir:     "src/main/java/com/acme/core",
		},
		{
			name:        "kotlin package",
			files:       map[string]string{"build.gradle.kts": ""},
			buildFile:   "build.gradle.kts",
			wantCreated: true,
			wantDir:     "src/main/kotlin/com/acme/core",
		},
		{
			name:      "existing kotlin sources",
			files:     map[string]string{"build.gradle": "", "src/main/kotlin/a/b/Main.kt": ""},
			buildFile: "build.gradle",
			wantDir:   "src/main/java/com/acme/core",
		},
		{
			name:      "existing java sources",
			files:     map[string]string{"build.gradle": "", "src/main/java/Main.java": ""},
			buildFile: "build.gradle",
			wantDir:   "src/main/java/com/acme/core",
		},
		{
			name:        "resources only",
			files:       map[string]string{"build.gradle": "", "src/main/resources/app.properties": ""},
			buildFile:   "build.gradle",
			wantCreated: true,
			wantDir:     "src/main/java/com/acme/core",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.WriteTree(t, dir, tt.files)

			got, created, err := ScaffoldSources(dir, filepath.Join(dir, tt.buildFile), []string{"com", "acme", "core"})
			if err != nil {
				t.Fatalf("ScaffoldSources() error = %v", err)
			}
			if created != tt.wantCreated {
				t.Errorf("created = %v, want %v", created, tt.wantCreated)
			}
			if want := filepath.Join(dir, filepath.FromSlash(tt.wantDir)); got != want {
				t.Errorf("dir = %q, want %q", got, want)
			}
			_, statErr := os.Stat(got)
			if tt.wantCreated && statErr != nil {
				t.Errorf("directory not created: %v", statErr)
			}
		})
	}
}

func TestLanguageFor(t *testing.T) {
	t.Parallel()

	if LanguageFor("/x/build.gradle.kts") != LanguageKotlin || LanguageFor("/x/build.gradle") != LanguageJava {
		t.Error("LanguageFor() picked the wrong language")
	}
}
