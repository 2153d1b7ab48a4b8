// SPDX-License-Identifier: MPL-2.0

// Package autoconfig decides which dependency configurations of a module a
// catalog library is attached to, and with which notation.
//
// Each library carries Options (enabled, strict configuration matching, an
// optional list of literal or /regex/ configuration names, platform). The
// Resolver turns those options and the configurations a module actually
// exposes into a deduplicated set of configuration names:
//
//   - a disabled library resolves to nothing
//   - without explicit names the defaults are ["api"], or
//     ["implementation", "testImplementation"] for platforms; strict libraries
//     without explicit names resolve to nothing
//   - a name that matches nothing follows the FallbackChain
//     (api -> implementation -> testImplementation) unless strict
//
// ApplyAll applies a whole catalog to one module with platform libraries first,
// so BOM constraints exist before the libraries that rely on them are declared.
package autoconfig
