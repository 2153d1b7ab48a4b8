// SPDX-License-Identifier: MPL-2.0

package ignorerules

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	negationPrefix = "!"
	commentPrefix  = "#"
	anchorPrefix   = "/"
	recursivePart  = "**"
)

type (
	// Rule is a single parsed ignore line, already rewritten relative to the
	// scan root.
	Rule struct {
		// Pattern is the root-relative pattern without the negation prefix.
		Pattern string
		// Negated marks a "!" rule that re-includes previously ignored paths.
		Negated bool
		// Anchored reports whether the pattern is bound to a directory rather
		// than matching a name at any depth.
		Anchored bool

		compiled gitignore.Pattern
	}

	// RuleSet is an ordered, immutable list of rules. The zero value ignores
	// nothing.
	RuleSet struct {
		rules   []Rule
		matcher gitignore.Matcher
	}
)

// Merge parses ignoreFileText (the contents of a .gitignore located at
// baseDir, a forward-slash path relative to the scan root; "" for the root
// itself) and returns a new RuleSet holding the receiver's rules followed by
// the parsed ones. Blank lines, comments and malformed patterns are skipped.
func (s RuleSet) Merge(ignoreFileText, baseDir string) RuleSet {
	base := strings.Trim(filepath.ToSlash(baseDir), "/")

	var added []Rule
	sc := bufio.NewScanner(strings.NewReader(ignoreFileText))
	for sc.Scan() {
		if rule, ok := parseRule(sc.Text(), base); ok {
			added = append(added, rule)
		}
	}
	if len(added) == 0 {
		return s
	}

	rules := make([]Rule, 0, len(s.rules)+len(added))
	rules = append(rules, s.rules...)
	rules = append(rules, added...)

	patterns := make([]gitignore.Pattern, len(rules))
	for i, r := range rules {
		patterns[i] = r.compiled
	}
	return RuleSet{rules: rules, matcher: gitignore.NewMatcher(patterns)}
}

// ReadFile merges the ignore file at path, located at baseDir relative to the
// scan root. Read errors are returned with the unchanged receiver.
func (s RuleSet) ReadFile(path, baseDir string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read ignore file: %w", err)
	}
	return s.Merge(string(data), baseDir), nil
}

// IsIgnored reports whether rel, a path relative to the scan root, is excluded
// by the rule set. The last rule matching the path decides.
func (s RuleSet) IsIgnored(rel string, isDir bool) bool {
	if s.matcher == nil {
		return false
	}
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	if rel == "" || rel == "." {
		return false
	}
	return s.matcher.Match(strings.Split(rel, "/"), isDir)
}

// Rules returns a copy of the rules in evaluation order.
func (s RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s RuleSet) Len() int { return len(s.rules) }

// String renders the rule in .gitignore syntax.
func (r Rule) String() string {
	if r.Negated {
		return negationPrefix + r.Pattern
	}
	return r.Pattern
}

func parseRule(line, base string) (Rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return Rule{}, false
	}

	negated := strings.HasPrefix(line, negationPrefix)
	body := strings.TrimPrefix(line, negationPrefix)
	body = rewrite(body, base)
	if !valid(body) {
		return Rule{}, false
	}

	full := body
	if negated {
		full = negationPrefix + body
	}
	return Rule{
		Pattern:  body,
		Negated:  negated,
		Anchored: strings.Contains(strings.TrimSuffix(body, "/"), "/"),
		compiled: gitignore.ParsePattern(full, nil),
	}, true
}

// rewrite makes a pattern from a .gitignore at base relative to the root.
func rewrite(body, base string) string {
	if base == "" || body == "" {
		return body
	}
	switch {
	case strings.HasPrefix(body, anchorPrefix):
		return base + body
	case strings.HasPrefix(body, recursivePart):
		return base + "/" + body
	default:
		return base + "/" + recursivePart + "/" + body
	}
}

// valid rejects patterns the matcher cannot evaluate: empty bodies and
// segments that are not well-formed globs.
func valid(body string) bool {
	trimmed := strings.Trim(body, "/")
	if trimmed == "" {
		return false
	}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == recursivePart || seg == "" {
			continue
		}
		if _, err := filepath.Match(seg, ""); err != nil {
			return false
		}
	}
	return true
}
