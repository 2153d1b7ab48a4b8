// SPDX-License-Identifier: MPL-2.0

// Package generate writes the files a module needs before its first build:
// a console logback configuration and the main source package directory.
// Existing files and sources are never touched.
package generate

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LogbackPath is where the logback configuration is written, relative to
// the project directory.
const LogbackPath = "build/resources/main/logback.xml"

const (
	// LanguageJava selects src/main/java.
	LanguageJava Language = "java"
	// LanguageKotlin selects src/main/kotlin.
	LanguageKotlin Language = "kotlin"

	sourcePattern = "**/*.{java,kt}"
)

//go:embed logback.xml
var logbackXML []byte

// Language is a JVM source language directory name.
type Language string

// Logback returns the logback configuration content.
func Logback() []byte { return logbackXML }

// WriteLogback writes the logback configuration below projectDir unless one
// exists. It returns the file path and whether it was created.
func WriteLogback(projectDir string) (string, bool, error) {
	path := filepath.Join(projectDir, filepath.FromSlash(LogbackPath))
	created, err := writeIfAbsent(path, logbackXML)
	return path, created, err
}

// LanguageFor picks the source language from the build file name: Kotlin DSL
// build files get Kotlin sources.
func LanguageFor(buildFile string) Language {
	if strings.HasSuffix(buildFile, ".kts") {
		return LanguageKotlin
	}
	return LanguageJava
}

// HasSources reports whether src/main below projectDir holds any Java or
// Kotlin file.
func HasSources(projectDir string) (bool, error) {
	srcMain := filepath.Join(projectDir, "src", "main")
	info, err := os.Stat(srcMain)
	if errors.Is(err, fs.ErrNotExist) || err == nil && !info.IsDir() {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	matches, err := doublestar.Glob(os.DirFS(srcMain), sourcePattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return false, fmt.Errorf("search sources in %s: %w", srcMain, err)
	}
	return len(matches) > 0, nil
}

// ScaffoldSources creates src/main/<language>/<package dir> when the project
// has no sources yet. It returns the directory and whether it was created.
func ScaffoldSources(projectDir, buildFile string, packageSegments []string) (string, bool, error) {
	elems := append([]string{projectDir, "src", "main", string(LanguageFor(buildFile))}, packageSegments...)
	dir := filepath.Join(elems...)

	has, err := HasSources(projectDir)
	if err != nil || has {
		return dir, false, err
	}
	if _, err := os.Stat(dir); err == nil {
		return dir, false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, false, fmt.Errorf("create source directory: %w", err)
	}
	return dir, true, nil
}

func writeIfAbsent(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
