// SPDX-License-Identifier: MPL-2.0

package autoconfig

// candidates returns the configuration patterns tried first for opts.
func candidates(opts Options) []Pattern {
	switch {
	case opts.Configurations != nil:
		return opts.Configurations
	case opts.StrictConfigurations:
		return nil
	case opts.Platform:
		return []Pattern{Literal(ConfigurationImplementation), Literal(ConfigurationTestImplementation)}
	default:
		return []Pattern{Literal(ConfigurationAPI)}
	}
}

// Resolve returns the configurations in available that a library with opts
// must be declared on, using the default fallback chain.
func Resolve(opts Options, available []string) []string {
	return resolve(opts, available, DefaultFallbackChain())
}

// resolve walks every candidate pattern in order. A pattern text already
// tried for this library is not matched again and counts as no match, so it
// moves on to its fallback. Strict options never fall back. The result holds
// each configuration once, in order of first match.
func resolve(opts Options, available []string, chain FallbackChain) []string {
	if !opts.Enabled {
		return nil
	}

	var matched []string
	added := make(map[string]bool)
	checked := make(map[string]bool)

	for _, candidate := range candidates(opts) {
		p := candidate
		walked := map[string]bool{p.String(): true}
		for {
			found := false
			if !checked[p.String()] {
				checked[p.String()] = true
				for _, name := range available {
					if !p.Matches(name) {
						continue
					}
					found = true
					if !added[name] {
						added[name] = true
						matched = append(matched, name)
					}
				}
			}
			if found || opts.StrictConfigurations {
				break
			}
			next, ok := chain.Next(p.String())
			if !ok || walked[next] {
				break
			}
			walked[next] = true
			p = Literal(next)
		}
	}
	return matched
}
