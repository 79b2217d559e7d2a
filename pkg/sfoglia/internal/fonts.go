package internal

import (
	"github.com/veandco/go-sdl2/ttf"
)

// DefaultFontSizes are the point sizes preloaded at init. Hosts that need
// other sizes can load their own fonts; these cover headings and body text.
var DefaultFontSizes = []int{16, 24, 32, 48}

var fonts = map[int]*ttf.Font{}

func initFonts(sizes []int) {
	theme := GetTheme()
	if theme.FontPath == "" {
		GetInternalLogger().Warn("No theme font configured; text rendering unavailable")
		return
	}

	for _, size := range sizes {
		font, err := ttf.OpenFont(theme.FontPath, size)
		if err != nil {
			GetInternalLogger().Error("Failed to load font", "path", theme.FontPath, "size", size, "error", err)
			continue
		}
		fonts[size] = font
	}
}

// GetFont returns a preloaded font at the given size, or nil if unavailable.
func GetFont(size int) *ttf.Font {
	return fonts[size]
}

func closeFonts() {
	for _, font := range fonts {
		font.Close()
	}
	fonts = map[int]*ttf.Font{}
}
