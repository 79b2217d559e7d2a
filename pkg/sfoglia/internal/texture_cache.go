package internal

import "github.com/veandco/go-sdl2/sdl"

// maskCache holds the rasterized cover-mask textures, one slot per quantized
// coverage step. Slots are tied to the window size they were rasterized for;
// a resize invalidates the whole set, since a stretched mask would show a
// jagged circle edge.
type maskCache struct {
	width  int32
	height int32
	slots  []*sdl.Texture
}

func newMaskCache(steps int) *maskCache {
	return &maskCache{slots: make([]*sdl.Texture, steps+1)}
}

// get returns the cached texture for a step, or nil. A size mismatch drops
// every cached mask first.
func (c *maskCache) get(width, height int32, step int) *sdl.Texture {
	if width != c.width || height != c.height {
		c.clear()
		c.width = width
		c.height = height
		return nil
	}
	if step < 0 || step >= len(c.slots) {
		return nil
	}
	return c.slots[step]
}

func (c *maskCache) set(step int, texture *sdl.Texture) {
	if step < 0 || step >= len(c.slots) {
		texture.Destroy()
		return
	}
	if old := c.slots[step]; old != nil {
		old.Destroy()
	}
	c.slots[step] = texture
}

func (c *maskCache) clear() {
	for i, texture := range c.slots {
		if texture != nil {
			texture.Destroy()
			c.slots[i] = nil
		}
	}
}
