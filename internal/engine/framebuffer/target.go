package framebuffer

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Target is the renderer's internal image: colour, depth and packed
// normals. Tiles flush into disjoint rectangles of it concurrently.
type Target struct {
	Width, Height int
	Color         []uint32
	Depth         []float32
	Normal        []uint32
}

// NewTarget allocates a width×height target with depth at +Inf.
func NewTarget(width, height int) *Target {
	t := &Target{
		Width:  width,
		Height: height,
		Color:  make([]uint32, width*height),
		Depth:  make([]float32, width*height),
		Normal: make([]uint32, width*height),
	}
	t.ClearDepth()
	return t
}

// Clear fills the colour buffer with c.
func (t *Target) Clear(c uint32) {
	for i := range t.Color {
		t.Color[i] = c
	}
}

// ClearDepth resets depth to +Inf and normals to zero.
func (t *Target) ClearDepth() {
	vek32.Repeat_Into(t.Depth, float32(math.Inf(1)), len(t.Depth))
	clear(t.Normal)
}

// Flush copies a w×h block whose rows start every stride values in the
// source buffers to (x0, y0).
func (t *Target) Flush(x0, y0, w, h, stride int, color []uint32, depth []float32, normal []uint32) {
	for y := 0; y < h; y++ {
		dst := (y0+y)*t.Width + x0
		src := y * stride
		copy(t.Color[dst:dst+w], color[src:src+w])
		copy(t.Depth[dst:dst+w], depth[src:src+w])
		copy(t.Normal[dst:dst+w], normal[src:src+w])
	}
}
