// SPDX-License-Identifier: MPL-2.0

package autoconfig

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Well-known dependency configuration names.
const (
	ConfigurationAPI                = "api"
	ConfigurationImplementation     = "implementation"
	ConfigurationTestImplementation = "testImplementation"
)

// ErrFallbackCycle is returned when a fallback table links a name back to itself.
var ErrFallbackCycle = errors.New("fallback chain contains a cycle")

// FallbackChain maps a configuration name to the name tried next when the
// first one matches nothing. The zero value has no fallbacks.
type FallbackChain struct {
	next map[string]string
}

// DefaultFallbackChain returns api -> implementation -> testImplementation.
func DefaultFallbackChain() FallbackChain {
	return FallbackChain{next: map[string]string{
		ConfigurationAPI:            ConfigurationImplementation,
		ConfigurationImplementation: ConfigurationTestImplementation,
	}}
}

// NewFallbackChain builds a chain from a name -> next name table. Tables in
// which following fallbacks from any name revisits a name are rejected.
func NewFallbackChain(table map[string]string) (FallbackChain, error) {
	next := maps.Clone(table)
	for _, start := range slices.Sorted(maps.Keys(next)) {
		seen := map[string]bool{start: true}
		for cur, ok := next[start]; ok; cur, ok = next[cur] {
			if seen[cur] {
				return FallbackChain{}, fmt.Errorf("%w: %s -> %s", ErrFallbackCycle, start, cur)
			}
			seen[cur] = true
		}
	}
	return FallbackChain{next: next}, nil
}

// Next returns the fallback for name.
func (c FallbackChain) Next(name string) (string, bool) {
	next, ok := c.next[name]
	return next, ok
}

// Table returns a copy of the name -> next name table.
func (c FallbackChain) Table() map[string]string {
	return maps.Clone(c.next)
}
