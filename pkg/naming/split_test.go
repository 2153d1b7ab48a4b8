// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"slices"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  SplitOptions
		want  []string
	}{
		{name: "blank", input: "   ", want: nil},
		{name: "empty", input: "", want: nil},
		{name: "trims only", input: "  Hello  ", want: []string{"Hello"}},
		{name: "lowercase keeps spaces", input: "  Hello World ", opts: SplitOptions{Lowercase: true}, want: []string{"hello world"}},
		{name: "comma list", input: "this   ,   is,a  ,test, wow", want: []string{"this", "is", "a", "test", "wow"}},
		{name: "quoted comma list", input: `"this   ","   is","a  ","test, wow"`, want: []string{"this", "is", "a", "test, wow"}},
		{name: "non alphanumeric", input: "Hello-World_2024", opts: SplitOptions{NonAlphaNumeric: true}, want: []string{"Hello", "World", "2024"}},
		{name: "non alphanumeric lowercase", input: "  Hello World ", opts: SplitOptions{NonAlphaNumeric: true, Lowercase: true}, want: []string{"hello", "world"}},
		{name: "camel case acronym", input: "HTTPRequestParser", opts: SplitOptions{CamelCase: true}, want: []string{"HTTP", "Request", "Parser"}},
		{name: "camel case lower start", input: "dirName", opts: SplitOptions{CamelCase: true}, want: []string{"dir", "Name"}},
		{name: "camel case digit boundaries", input: "web2Api", opts: SplitOptions{CamelCase: true}, want: []string{"web", "2", "Api"}},
		{name: "camel case trailing digits", input: "abc123", opts: SplitOptions{CamelCase: true}, want: []string{"abc", "123"}},
		{name: "camel case acronym before digits", input: "JSONSchema2Go", opts: SplitOptions{CamelCase: true}, want: []string{"JSON", "Schema", "2", "Go"}},
		{name: "camel case single capital", input: "ASFRules", opts: SplitOptions{CamelCase: true}, want: []string{"ASF", "Rules"}},
		{name: "all options", input: "Hello-JSONParser_2024", opts: SplitOptions{NonAlphaNumeric: true, CamelCase: true, Lowercase: true}, want: []string{"hello", "json", "parser", "2024"}},
		{name: "separators only", input: "--__--", opts: SplitOptions{NonAlphaNumeric: true}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Split(tt.input, tt.opts)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q, %+v) = %q, want %q", tt.input, tt.opts, got, tt.want)
			}
		})
	}
}

func TestSplit_NameTokensAreLowercaseAndNonBlank(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", " ", "a", "ABC", "someDirName", "__x__", "Web API", "JSONSchema2Go",
		"ümlautDir", "a,,b", `"q,uoted"`, "...", "MiXeD-CaSe_Name", "x1Y2z3",
	}
	for _, in := range inputs {
		for _, tok := range Split(in, nameSplit) {
			if strings.TrimSpace(tok) == "" {
				t.Errorf("Split(%q) produced blank token", in)
			}
			if tok != strings.ToLower(tok) {
				t.Errorf("Split(%q) produced non-lowercase token %q", in, tok)
			}
		}
	}
}
