package internal

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/patsma/sfoglia/pkg/sfoglia/constants"
	"github.com/veandco/go-sdl2/sdl"
)

// Theme defines the visual appearance and transition timing of the framework.
// Timing values are the runtime-configurable knobs the orchestrator reads on
// every transition attempt, so a theme swap takes effect on the next
// navigation without re-initialization.
type Theme struct {
	BackgroundColor     sdl.Color // Screen background color
	OverlayColor        sdl.Color // Cover overlay fill color
	TextColor           sdl.Color // Default text color
	FontPath            string    // Path to the primary UI font
	BackgroundImagePath string    // Path to the background image
	EmblemPath          string    // Optional SVG emblem centered on the cover overlay
	TransitionDuration  float64   // Cover wipe duration in seconds
	EntranceDuration    float64   // First-load entrance duration in seconds
	ScrollFraction      float64   // Fraction of the cover duration the scroll reset occupies
	DefaultEasing       string    // Easing for descriptors that set none; empty keeps the per-kind defaults
}

var currentTheme Theme

// SetTheme sets the active theme for the framework.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the currently active theme.
func GetTheme() Theme {
	return currentTheme
}

// DefaultTheme returns a dark theme with the stock transition timing.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor:    HexToColor(0x111111),
		OverlayColor:       HexToColor(0x1A1A1A),
		TextColor:          HexToColor(0xF5F5F5),
		TransitionDuration: constants.DefaultTransitionDuration,
		EntranceDuration:   constants.DefaultEntranceDuration,
		ScrollFraction:     constants.DefaultScrollFraction,
	}
}

// themeFile is the on-disk TOML shape. Colors are hex integers (0xRRGGBB).
// Zero-valued fields fall back to DefaultTheme values.
type themeFile struct {
	BackgroundColor    uint32  `toml:"background_color"`
	OverlayColor       uint32  `toml:"overlay_color"`
	TextColor          uint32  `toml:"text_color"`
	FontPath           string  `toml:"font_path"`
	BackgroundImage    string  `toml:"background_image"`
	EmblemPath         string  `toml:"emblem_path"`
	TransitionDuration float64 `toml:"transition_duration"`
	EntranceDuration   float64 `toml:"entrance_duration"`
	ScrollFraction     float64 `toml:"scroll_fraction"`
	DefaultEasing      string  `toml:"default_easing"`
}

// LoadTheme reads a theme TOML file, filling unset fields from DefaultTheme.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()

	data, err := os.ReadFile(path)
	if err != nil {
		return theme, fmt.Errorf("read theme: %w", err)
	}

	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return theme, fmt.Errorf("parse theme: %w", err)
	}

	if tf.BackgroundColor != 0 {
		theme.BackgroundColor = HexToColor(tf.BackgroundColor)
	}
	if tf.OverlayColor != 0 {
		theme.OverlayColor = HexToColor(tf.OverlayColor)
	}
	if tf.TextColor != 0 {
		theme.TextColor = HexToColor(tf.TextColor)
	}
	if tf.FontPath != "" {
		theme.FontPath = tf.FontPath
	}
	if tf.BackgroundImage != "" {
		theme.BackgroundImagePath = tf.BackgroundImage
	}
	if tf.EmblemPath != "" {
		theme.EmblemPath = tf.EmblemPath
	}
	if tf.TransitionDuration > 0 {
		theme.TransitionDuration = tf.TransitionDuration
	}
	if tf.EntranceDuration > 0 {
		theme.EntranceDuration = tf.EntranceDuration
	}
	if tf.ScrollFraction > 0 && tf.ScrollFraction <= 1 {
		theme.ScrollFraction = tf.ScrollFraction
	}
	if tf.DefaultEasing != "" {
		theme.DefaultEasing = tf.DefaultEasing
	}

	return theme, nil
}

// HexToColor converts a 0xRRGGBB integer to an opaque SDL color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}
