// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RootProjectName = "shop"
	cfg.Group = "com.example"
	cfg.ModuleConfigurations = []ModuleConfigurations{{Project: ":app", Configurations: []string{"implementation"}}}
	cfg.Properties = []Property{{Name: "junitVersion", Value: `5."11"`}}

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := WriteFile(path, cfg, false); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := NewProvider().Load(t.Context(), LoadOptions{RootDir: dir})
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, GenerateCUE(cfg))
	}
	if got.RootProjectName != "shop" || got.Group != "com.example" {
		t.Errorf("names lost: %+v", got)
	}
	if !slices.Equal(got.Configurations, cfg.Configurations) {
		t.Errorf("Configurations = %v, want %v", got.Configurations, cfg.Configurations)
	}
	if !slices.Equal(got.Fallback, cfg.Fallback) {
		t.Errorf("Fallback = %v, want %v", got.Fallback, cfg.Fallback)
	}
	if got.PropertyMap()["junitVersion"] != `5."11"` {
		t.Errorf("Properties = %v", got.Properties)
	}
	if len(got.ModuleConfigurations) != 1 || got.ModuleConfigurations[0].Project != ":app" {
		t.Errorf("ModuleConfigurations = %v", got.ModuleConfigurations)
	}
}

func TestGenerateCUE_Layout(t *testing.T) {
	t.Parallel()

	out := GenerateCUE(DefaultConfig())
	for _, want := range []string{
		`build_files: ["build.gradle", "build.gradle.kts"]`,
		"configurations: [\n\t\"annotationProcessor\",",
		`{from: "api", to: "implementation"},`,
		"logback: true\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "root_project_name") {
		t.Error("empty root_project_name must be omitted")
	}
}

func TestWriteFile_NoOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", FileName)
	if err := WriteFile(path, DefaultConfig(), false); err != nil {
		t.Fatalf("first WriteFile() error = %v", err)
	}
	if err := WriteFile(path, DefaultConfig(), false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second WriteFile() error = %v, want ErrConfigExists", err)
	}
	if err := WriteFile(path, DefaultConfig(), true); err != nil {
		t.Errorf("forced WriteFile() error = %v", err)
	}
}
