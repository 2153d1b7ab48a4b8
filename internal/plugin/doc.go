// SPDX-License-Identifier: MPL-2.0

// Package plugin runs the settings phase of a gradlewire build: it loads the
// version catalogs, includes every module found below the root, and wires
// catalog libraries onto each module's configurations through the lifecycle
// bus.
package plugin
