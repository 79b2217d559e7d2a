package internal

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"unsafe"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/sdl"
)

// coverageSteps quantizes overlay coverage so wipe frames hit the texture
// cache instead of re-rasterizing the circle on every frame.
const coverageSteps = 64

var (
	overlayCache  *maskCache
	emblemTexture *sdl.Texture
	emblemSize    int32
	emblemTried   bool
)

func overlayMaskCache() *maskCache {
	if overlayCache == nil {
		overlayCache = newMaskCache(coverageSteps)
	}
	return overlayCache
}

func destroyOverlayCache() {
	if overlayCache != nil {
		overlayCache.clear()
		overlayCache = nil
	}
	if emblemTexture != nil {
		emblemTexture.Destroy()
		emblemTexture = nil
	}
	emblemTried = false
}

// RenderOverlay draws the circular cover wipe at the given coverage (0 = no
// cover, 1 = full viewport), centered on the window. At full coverage the
// theme emblem, if any, is drawn on top.
func RenderOverlay(w *Window, coverage float64) {
	if w == nil || coverage <= 0 {
		return
	}
	if coverage > 1 {
		coverage = 1
	}

	step := int(math.Round(coverage * coverageSteps))
	if step == 0 {
		return
	}

	width, height := w.GetWidth(), w.GetHeight()

	texture := overlayMaskCache().get(width, height, step)
	if texture == nil {
		mask := rasterizeCover(int(width), int(height), float64(step)/coverageSteps, GetTheme().OverlayColor)
		var err error
		texture, err = textureFromRGBA(w.Renderer, mask)
		if err != nil {
			GetInternalLogger().Error("Failed to upload overlay texture", "error", err)
			return
		}
		overlayMaskCache().set(step, texture)
	}

	w.Renderer.Copy(texture, nil, &sdl.Rect{X: 0, Y: 0, W: width, H: height})

	if step == coverageSteps {
		renderEmblem(w)
	}
}

// rasterizeCover fills a circle whose radius spans coverage of the viewport
// half-diagonal, so coverage 1 fully covers the corners.
func rasterizeCover(width, height int, coverage float64, fill sdl.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	scanner := rasterx.NewScannerGV(width, height, dst, dst.Bounds())
	filler := rasterx.NewFiller(width, height, scanner)
	filler.SetColor(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: fill.A})

	cx := float64(width) / 2
	cy := float64(height) / 2
	radius := coverage * math.Hypot(cx, cy)

	rasterx.AddCircle(cx, cy, radius, filler)
	filler.Draw()

	return dst
}

// renderEmblem lazily rasterizes the theme's SVG emblem and draws it centered.
func renderEmblem(w *Window) {
	if emblemTexture == nil && !emblemTried {
		emblemTried = true

		path := GetTheme().EmblemPath
		if path == "" {
			return
		}

		size := int32(math.Min(float64(w.GetWidth()), float64(w.GetHeight())) / 4)
		rgba, err := rasterizeSVG(path, int(size))
		if err != nil {
			GetInternalLogger().Warn("Failed to rasterize overlay emblem", "path", path, "error", err)
			return
		}

		emblemTexture, err = textureFromRGBA(w.Renderer, rgba)
		if err != nil {
			GetInternalLogger().Error("Failed to upload emblem texture", "error", err)
			return
		}
		emblemSize = size
	}

	if emblemTexture == nil {
		return
	}

	w.Renderer.Copy(emblemTexture, nil, &sdl.Rect{
		X: (w.GetWidth() - emblemSize) / 2,
		Y: (w.GetHeight() - emblemSize) / 2,
		W: emblemSize,
		H: emblemSize,
	})
}

func rasterizeSVG(path string, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIcon(path, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, dst, dst.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return dst, nil
}

func textureFromRGBA(renderer *sdl.Renderer, src *image.RGBA) (*sdl.Texture, error) {
	bounds := src.Bounds()
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC, int32(bounds.Dx()), int32(bounds.Dy()))
	if err != nil {
		return nil, err
	}

	if err := texture.Update(nil, unsafe.Pointer(&src.Pix[0]), src.Stride); err != nil {
		texture.Destroy()
		return nil, err
	}

	if err := texture.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		texture.Destroy()
		return nil, err
	}

	return texture, nil
}
