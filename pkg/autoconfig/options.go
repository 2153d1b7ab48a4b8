// SPDX-License-Identifier: MPL-2.0

package autoconfig

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Key is the per-library table holding auto-config directives in a catalog.
const Key = "autoConfigOptions"

// Options controls how one catalog library is attached to a module. Values
// are built once when the catalog is parsed and never modified afterwards.
type Options struct {
	// Enabled turns auto-configuration off for the library when false.
	Enabled bool
	// StrictConfigurations disables defaults and fallbacks: only the explicit
	// Configurations are considered.
	StrictConfigurations bool
	// Configurations lists explicit configuration name patterns. nil means
	// the list is absent; an empty non-nil slice targets nothing.
	Configurations []Pattern
	// Platform declares the library as an enforced platform (BOM).
	Platform bool
}

type rawOptions struct {
	Enabled              bool      `mapstructure:"enabled"`
	StrictConfigurations bool      `mapstructure:"strictConfigurations"`
	Configurations       *[]string `mapstructure:"configurations"`
	Platform             bool      `mapstructure:"platform"`
}

// DefaultOptions returns the options used for libraries without directives.
func DefaultOptions() Options {
	return Options{Enabled: true}
}

// ParseOptions decodes an autoConfigOptions table. Unknown keys, values of
// the wrong type and invalid /regex/ names are errors.
func ParseOptions(table map[string]any) (Options, error) {
	raw := rawOptions{Enabled: true}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
	})
	if err != nil {
		return Options{}, err
	}
	if err := dec.Decode(table); err != nil {
		return Options{}, fmt.Errorf("decode %s: %w", Key, err)
	}

	opts := Options{
		Enabled:              raw.Enabled,
		StrictConfigurations: raw.StrictConfigurations,
		Platform:             raw.Platform,
	}
	if raw.Configurations != nil {
		opts.Configurations = make([]Pattern, 0, len(*raw.Configurations))
		for _, text := range *raw.Configurations {
			p, err := ParsePattern(text)
			if err != nil {
				return Options{}, err
			}
			opts.Configurations = append(opts.Configurations, p)
		}
	}
	return opts, nil
}

// String renders the options for log output.
func (o Options) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "enabled=%t strict=%t platform=%t", o.Enabled, o.StrictConfigurations, o.Platform)
	if o.Configurations != nil {
		names := make([]string, len(o.Configurations))
		for i, p := range o.Configurations {
			names[i] = p.String()
		}
		fmt.Fprintf(&sb, " configurations=[%s]", strings.Join(names, ","))
	}
	return sb.String()
}
