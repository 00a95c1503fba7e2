// Package texture holds mip-mapped ARGB textures, animated texture sets and
// the decoders used to load them.
package texture

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a texture or texture set name is not registered.
var ErrNotFound = errors.New("texture not found")

// ID indexes a texture in a Store.
type ID uint32

// MipMap is one level of a mip chain: ARGB pixels in row-major order.
type MipMap struct {
	Width, Height int
	Pixels        []uint32
}

// Texture is a mip chain. Levels[0] is the source image.
type Texture struct {
	Name   string
	Levels []MipMap
	// Key is the transparency colour, only meaningful when HasKey is set.
	Key    uint32
	HasKey bool
}

// Option configures a texture built by New.
type Option func(*Texture)

// WithKey marks pixels equal to key (ignoring alpha) as transparent.
func WithKey(key uint32) Option {
	return func(t *Texture) {
		t.Key = key & 0xFFFFFF
		t.HasKey = true
	}
}

// WithMagentaKey snaps near-magenta pixels to pure magenta and uses it as
// the transparency key.
func WithMagentaKey() Option {
	return func(t *Texture) {
		px := t.Levels[0].Pixels
		for i, p := range px {
			r, g, b := RGB(p)
			if IsMagentaKey(r, g, b) {
				px[i] = MagentaKey
			}
		}
		t.Key = MagentaKey
		t.HasKey = true
	}
}

// ARGB packs 8-bit channels into a pixel with a zero alpha byte.
func ARGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// RGB unpacks a pixel's colour channels.
func RGB(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// New builds a texture and its full mip chain from level-0 ARGB pixels.
// pixels is owned by the texture afterwards.
func New(name string, width, height int, pixels []uint32, opts ...Option) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture %q: invalid size %dx%d", name, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("texture %q: got %d pixels, want %d", name, len(pixels), width*height)
	}

	t := &Texture{
		Name:   name,
		Levels: []MipMap{{Width: width, Height: height, Pixels: pixels}},
	}
	// Options may rewrite level 0, so the chain is built after them.
	for _, opt := range opts {
		opt(t)
	}
	t.Levels = BuildMips(t.Levels[0])
	return t, nil
}

// Solid returns a w×h texture of a single colour.
func Solid(name string, w, h int, argb uint32) *Texture {
	px := make([]uint32, w*h)
	for i := range px {
		px[i] = argb
	}
	t, _ := New(name, w, h, px)
	return t
}

// Checker returns a w×h checkerboard alternating a and b every cell pixels.
func Checker(name string, w, h, cell int, a, b uint32) *Texture {
	if cell < 1 {
		cell = 1
	}
	px := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				px[y*w+x] = a
			} else {
				px[y*w+x] = b
			}
		}
	}
	t, _ := New(name, w, h, px)
	return t
}

// Level returns mip level i clamped to the chain.
func (t *Texture) Level(i int) *MipMap {
	if i < 0 {
		i = 0
	}
	if i >= len(t.Levels) {
		i = len(t.Levels) - 1
	}
	return &t.Levels[i]
}

// Pixels returns the level-0 pixel count.
func (t *Texture) Pixels() int {
	return t.Levels[0].Width * t.Levels[0].Height
}

// Keyed reports whether p is the transparency key.
func (t *Texture) Keyed(p uint32) bool {
	return t.HasKey && p&0xFFFFFF == t.Key
}
