// SPDX-License-Identifier: MPL-2.0

// Package host is an in-memory stand-in for the Gradle settings and project
// model. Settings records included projects and registered catalogs; Project
// exposes dependency configurations and records the declarations made on
// them. RenderSettingsScript turns the recorded settings into a Kotlin DSL
// script.
package host
