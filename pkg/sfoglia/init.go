// Package sfoglia provides screen-transition orchestration for SDL2-based UI
// applications: an expanding cover wipe between screens, declarative per-element
// reveal animations, and a first-load entrance sequence.
//
// The package handles SDL initialization, theming, and font loading, and
// exposes the orchestration pieces (router guard, transition store, descriptor
// registry, timeline sequencer) both wired together through Init and as plain
// constructors for headless use and testing.
package sfoglia

import (
	"log/slog"
	"sync"

	"github.com/patsma/sfoglia/pkg/sfoglia/constants"
	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
)

// Options configures framework initialization.
type Options struct {
	WindowTitle    string                 // Window title displayed in windowed mode
	ShowBackground bool                   // Whether to render the theme background
	WindowOptions  internal.WindowOptions // SDL window flags (borderless, resizable, etc.)
	ThemePath      string                 // Path to a TOML theme file; empty uses the default theme
	LogPath        string                 // Full path for log file including filename (creates parent directories)
}

var (
	loadingOnce    sync.Once
	defaultLoading *LoadingStore

	defaultOverlay = NewOverlay()
)

// Loading returns the process-wide loading coordinator. Init marks its
// fonts-ready signal; the host marks view and scroll readiness (or uses the
// interceptor and a ScrollRegion, which mark them automatically).
func Loading() *LoadingStore {
	loadingOnce.Do(func() {
		defaultLoading = NewLoadingStore(nil)
	})
	return defaultLoading
}

// DefaultOverlay returns the process-wide cover overlay. RenderOverlay draws
// it; pass it to NewInterceptor as the Overlay collaborator.
func DefaultOverlay() *Overlay {
	return defaultOverlay
}

// Init initializes the SDL subsystems, theming, and fonts.
// Must be called before any rendering helpers.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	theme := internal.DefaultTheme()
	if options.ThemePath != "" {
		loaded, err := internal.LoadTheme(options.ThemePath)
		if err != nil {
			internal.GetInternalLogger().Warn("Failed to load theme; using defaults", "path", options.ThemePath, "error", err)
		}
		theme = loaded
	}
	internal.SetTheme(theme)

	internal.Init(options.WindowTitle, options.ShowBackground, options.WindowOptions, Loading().MarkFontsReady)
}

// Close releases all SDL resources and shuts down the framework.
// Must be called before program exit to prevent resource leaks.
func Close() {
	internal.SDLCleanup()
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// TransitionDuration returns the active theme's cover duration in seconds.
func TransitionDuration() float64 {
	return internal.GetTheme().TransitionDuration
}

// GetWindow returns the underlying SDL window wrapper for advanced use cases.
func GetWindow() *internal.Window {
	return internal.GetWindow()
}

// RenderOverlay draws the given overlay (or the default one when nil) on the
// active window. Call once per frame, after the screen content.
func RenderOverlay(ov *Overlay) {
	if ov == nil {
		ov = defaultOverlay
	}
	if !ov.Visible() {
		return
	}
	internal.RenderOverlay(internal.GetWindow(), ov.Coverage())
}
