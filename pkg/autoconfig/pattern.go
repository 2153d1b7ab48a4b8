// SPDX-License-Identifier: MPL-2.0

package autoconfig

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// LiteralPattern matches one configuration name exactly.
	LiteralPattern PatternKind = iota
	// RegexPattern matches configuration names against a regular expression.
	RegexPattern
)

const regexDelimiter = "/"

type (
	// PatternKind tags the variant held by a Pattern.
	PatternKind int

	// Pattern is a configuration name matcher, either Literal(name) or
	// Regex(expr). The variant is fixed when the pattern is parsed.
	Pattern struct {
		kind PatternKind
		text string
		re   *regexp.Regexp
	}

	// InvalidPatternError is returned when a /regex/ name does not compile.
	InvalidPatternError struct {
		Text string
		Err  error
	}
)

// Error implements the error interface.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid configuration pattern %q: %v", e.Text, e.Err)
}

// Unwrap returns the compile error.
func (e *InvalidPatternError) Unwrap() error { return e.Err }

// Literal returns a pattern matching exactly name.
func Literal(name string) Pattern {
	return Pattern{kind: LiteralPattern, text: name}
}

// ParsePattern parses a configuration name. Text wrapped in slashes (and
// longer than two characters) is a regular expression that must match the
// whole configuration name; anything else is a literal.
func ParsePattern(text string) (Pattern, error) {
	if len(text) > 2 && strings.HasPrefix(text, regexDelimiter) && strings.HasSuffix(text, regexDelimiter) {
		expr := text[1 : len(text)-1]
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return Pattern{}, &InvalidPatternError{Text: text, Err: err}
		}
		return Pattern{kind: RegexPattern, text: text, re: re}, nil
	}
	return Literal(text), nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(text string) Pattern {
	p, err := ParsePattern(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Kind returns the variant.
func (p Pattern) Kind() PatternKind { return p.kind }

// String returns the text the pattern was parsed from.
func (p Pattern) String() string { return p.text }

// Matches reports whether name satisfies the pattern.
func (p Pattern) Matches(name string) bool {
	if p.kind == RegexPattern {
		return p.re.MatchString(name)
	}
	return p.text == name
}
