// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"encoding/csv"
	"regexp"
	"strings"
	"unicode"
)

var nonAlphaNumericPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SplitOptions selects the boundaries Split breaks a string on.
type SplitOptions struct {
	// NonAlphaNumeric splits on every run of characters outside [a-zA-Z0-9].
	NonAlphaNumeric bool
	// CamelCase splits wherever the character class changes (upper, lower,
	// digit, other), keeping an uppercase letter with the lowercase run that
	// follows it ("HTTPRequest" -> "HTTP", "Request"; "web2Api" -> "web",
	// "2", "Api").
	CamelCase bool
	// Lowercase lowercases every resulting token.
	Lowercase bool
}

// Split breaks s into trimmed, non-blank tokens.
//
// Input containing a comma is first read as a single CSV record, so quoted
// values keep their embedded commas. The remaining boundaries are applied in
// the order non-alphanumeric, camel case, lowercase.
func Split(s string, opts SplitOptions) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	segments := []string{s}
	if strings.Contains(s, ",") {
		segments = splitRecord(s)
	}

	if opts.NonAlphaNumeric {
		segments = flatMap(segments, func(seg string) []string {
			return nonAlphaNumericPattern.Split(seg, -1)
		})
	}

	if opts.CamelCase {
		segments = flatMap(segments, splitCamelCase)
	}

	if opts.Lowercase {
		for i, seg := range segments {
			segments[i] = strings.ToLower(seg)
		}
	}

	return trimmed(segments)
}

// splitRecord reads s as one CSV record. Malformed quoting falls back to a
// plain comma split.
func splitRecord(s string) []string {
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return strings.Split(s, ",")
	}

	var fields []string
	for _, record := range records {
		fields = append(fields, record...)
	}
	return fields
}

func splitCamelCase(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return []string{s}
	}

	var tokens []string
	start := 0
	prevType := runeType(runes[0])
	for i := 1; i < len(runes); i++ {
		typ := runeType(runes[i])
		if typ == prevType {
			continue
		}
		if typ == lowerRune && prevType == upperRune {
			// An uppercase letter starts the word its lowercase tail belongs to.
			if i-1 != start {
				tokens = append(tokens, string(runes[start:i-1]))
				start = i - 1
			}
		} else {
			tokens = append(tokens, string(runes[start:i]))
			start = i
		}
		prevType = typ
	}
	return append(tokens, string(runes[start:]))
}

type runeClass int

const (
	otherRune runeClass = iota
	upperRune
	lowerRune
	digitRune
	letterRune
	spaceRune
	punctRune
)

func runeType(r rune) runeClass {
	switch {
	case unicode.IsUpper(r):
		return upperRune
	case unicode.IsLower(r):
		return lowerRune
	case unicode.IsDigit(r):
		return digitRune
	case unicode.IsLetter(r):
		return letterRune
	case unicode.IsSpace(r):
		return spaceRune
	case unicode.IsPunct(r):
		return punctRune
	default:
		return otherRune
	}
}

func flatMap(segments []string, fn func(string) []string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		out = append(out, fn(seg)...)
	}
	return out
}

func trimmed(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
