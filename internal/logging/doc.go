// SPDX-License-Identifier: EPL-2.0

// Package logging builds the slog loggers used across chanfix.
//
// "console" output uses slog's text handler and "json" its JSON handler. Debug
// level adds source locations. Components take a *slog.Logger and treat nil as
// a discarding logger via OrNop.
package logging
