// Package logging provides the leveled logger used across the gallery.
//
// Levels, lowest first:
//   - DEBUG: classifier decisions, fallback reasons, render timings
//   - INFO: startup and shutdown progress
//   - WARN: recoverable problems (bad config values, undecodable files)
//   - ERROR: failures that need an operator
//   - FATAL: errors that terminate the process
//
// The level comes from DEBUG=true or LOG_LEVEL, and can be forced with SetLevel.
package logging
