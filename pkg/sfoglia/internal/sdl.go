package internal

import (
	"os"

	"github.com/patsma/sfoglia/pkg/sfoglia/constants"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Init brings up the SDL subsystems, window, renderer, and fonts.
// onFontsReady fires once the theme fonts have loaded (or failed to load and
// fallen back), feeding the loading coordinator's fonts-ready signal.
func Init(title string, showBackground bool, winOpts WindowOptions, onFontsReady func()) {
	if err := sdl.Init(sdl.INIT_VIDEO | img.INIT_PNG | img.INIT_JPG | img.INIT_WEBP); err != nil {
		os.Exit(1)
	}

	if err := ttf.Init(); err != nil {
		os.Exit(1)
	}

	// Apply default window options if none specified
	if winOpts.IsZero() {
		if constants.IsDevMode() {
			winOpts = WindowOptions{Borderless: true, Resizable: true}
		} else {
			winOpts = WindowOptions{Resizable: true}
		}
	}

	window = initWindow(title, showBackground, winOpts)

	initFonts(DefaultFontSizes)

	if onFontsReady != nil {
		onFontsReady()
	}
}

// SDLCleanup releases all SDL resources. Must be called before program exit.
func SDLCleanup() {
	if window != nil {
		window.closeWindow()
		window = nil
	}
	destroyOverlayCache()
	closeFonts()
	ttf.Quit()
	img.Quit()
	sdl.Quit()
	CloseLogger()
}
