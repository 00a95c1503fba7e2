// Package framebuffer provides the double-buffered ARGB output shared with
// the presenter and the renderer's internal colour/depth/normal target.
package framebuffer

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrFormatNotImplemented is returned for pixel formats other than ARGB8888.
var ErrFormatNotImplemented = errors.New("pixel format not implemented")

// Format names a pixel layout.
type Format string

// ARGB8888 packs a pixel as 0xAARRGGBB in a uint32.
const ARGB8888 Format = "argb8888"

// ParseFormat validates a configured pixel format name.
func ParseFormat(s string) (Format, error) {
	if f := Format(strings.ToLower(s)); f == ARGB8888 {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormatNotImplemented, s)
}

// Framebuffer is a double-buffered ARGB image. The renderer writes the
// front half without locking; the presenter reads the back half under the
// read lock, and Flip waits for it before swapping.
type Framebuffer struct {
	width  int
	height int
	halves [2][]uint32
	phase  atomic.Uint32
	mu     sync.RWMutex
}

// New allocates both halves.
func New(width, height int, format Format) (*Framebuffer, error) {
	if format != ARGB8888 {
		return nil, fmt.Errorf("creating framebuffer: %w: %q", ErrFormatNotImplemented, format)
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	return &Framebuffer{
		width:  width,
		height: height,
		halves: [2][]uint32{
			make([]uint32, width*height),
			make([]uint32, width*height),
		},
	}, nil
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Phase returns the index of the half the renderer writes.
func (fb *Framebuffer) Phase() int {
	return int(fb.phase.Load())
}

// Front returns the half the renderer writes this frame.
func (fb *Framebuffer) Front() []uint32 {
	return fb.halves[fb.phase.Load()]
}

// Flip swaps the halves. It waits for any Present in progress.
func (fb *Framebuffer) Flip() {
	fb.mu.Lock()
	fb.phase.Store(fb.phase.Load() ^ 1)
	fb.mu.Unlock()
}

// Present calls fn with the last finished frame. fn must not retain pixels.
func (fb *Framebuffer) Present(fn func(pixels []uint32, width, height int)) {
	fb.mu.RLock()
	defer fb.mu.RUnlock()
	fn(fb.halves[fb.phase.Load()^1], fb.width, fb.height)
}
