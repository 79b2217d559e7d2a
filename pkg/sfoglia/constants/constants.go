// Package constants defines shared constants, types, and configuration values
// used throughout the sfoglia transition framework.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// BackgroundPathEnvVar is the environment variable name for custom background image path.
const BackgroundPathEnvVar = "BACKGROUND_PATH"

// WindowWidthEnvVar overrides the window width in development mode.
const WindowWidthEnvVar = "WINDOW_WIDTH"

// WindowHeightEnvVar overrides the window height in development mode.
const WindowHeightEnvVar = "WINDOW_HEIGHT"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Default transition timing values. Durations are in seconds to match the
// timeline clock; they can all be overridden per theme or per descriptor.
const (
	DefaultTransitionDuration = 0.8  // Cover wipe duration for a navigation
	DefaultEntranceDuration   = 1.2  // First-load entrance reveal duration
	DefaultScrollFraction     = 0.8  // Scroll reset finishes at this fraction of the cover
	DefaultFadeDuration       = 0.6  // fade descriptor duration
	DefaultClipDuration       = 0.9  // clip descriptor duration
	DefaultSplitDuration      = 0.7  // split descriptor duration
	DefaultStaggerDuration    = 0.5  // stagger descriptor duration
	DefaultFadeMagnitude      = 24.0 // fade translation distance in pixels
	DefaultSplitMagnitude     = 18.0 // split per-unit vertical offset in pixels
	DefaultStaggerDelay       = 0.08 // stagger per-child delay in seconds
)

// Per-unit stagger deltas for split reveals. Finer units stagger faster so a
// heading split into characters finishes in roughly the same window as one
// split into lines.
const (
	CharStaggerDelta = 0.02
	WordStaggerDelta = 0.05
	LineStaggerDelta = 0.09
)

// SafetyTimeoutBuffer is added to the animation duration when arming the
// transition safety timeout. If a cover or reveal timeline has not resolved
// by then, the transition store force-resets so navigation never deadlocks.
const SafetyTimeoutBuffer = 2 * time.Second

// DefaultFrameInterval is the animator tick interval when VSync pacing is
// unavailable (~60fps).
const DefaultFrameInterval = 16 * time.Millisecond
