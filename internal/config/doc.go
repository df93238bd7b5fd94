// SPDX-License-Identifier: EPL-2.0

// Package config loads, normalizes, and validates chanfix configuration.
//
// Configuration lives in TOML at ~/.config/chanfix/config.toml unless a path
// is given. Missing values fall back to Default, list values fall back to
// their defaults when empty, and paths have "~" expanded. `chanfix config init`
// writes the annotated sample embedded in this package.
package config
