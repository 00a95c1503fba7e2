package binner

import (
	"math"
	"sync/atomic"

	"github.com/viterin/vek/vek32"
)

// Tile is one screen rectangle [X0,X1)×[Y0,Y1) with its id list and
// scratch buffers. Buffers are Side×Side with row stride Side, even for
// tiles clipped by the screen edge.
type Tile struct {
	X0, Y0, X1, Y1 int
	Side           int

	ids []uint32
	n   atomic.Int64

	Color  []uint32
	Depth  []float32
	Normal []uint32
}

func newTile(x0, y0, x1, y1, side, capacity int) Tile {
	t := Tile{
		X0: x0, Y0: y0, X1: x1, Y1: y1,
		Side:   side,
		ids:    make([]uint32, max(capacity, 1)),
		Color:  make([]uint32, side*side),
		Depth:  make([]float32, side*side),
		Normal: make([]uint32, side*side),
	}
	t.ResetDepth()
	return t
}

// push appends id. It returns false when the list is full.
func (t *Tile) push(id uint32) bool {
	i := t.n.Add(1) - 1
	if i >= int64(len(t.ids)) {
		return false
	}
	t.ids[i] = id
	return true
}

// IDs returns the triangle ids recorded this frame.
func (t *Tile) IDs() []uint32 {
	return t.ids[:min(t.n.Load(), int64(len(t.ids)))]
}

// Count returns how many pushes were attempted this frame.
func (t *Tile) Count() int {
	return int(t.n.Load())
}

// drop empties the id list, growing it like Pool.Drop on overflow.
func (t *Tile) drop() (overflow int) {
	want := t.n.Load()
	t.n.Store(0)

	old := int64(len(t.ids))
	if want <= old {
		return 0
	}
	c := old
	for c < want {
		c *= 2
	}
	t.ids = make([]uint32, c)
	return int(want - old)
}

// Width returns the on-screen width of the tile.
func (t *Tile) Width() int { return t.X1 - t.X0 }

// Height returns the on-screen height of the tile.
func (t *Tile) Height() int { return t.Y1 - t.Y0 }

// ResetDepth fills the depth scratch with +Inf.
func (t *Tile) ResetDepth() {
	vek32.Repeat_Into(t.Depth, float32(math.Inf(1)), len(t.Depth))
}

// ResetColor fills the colour scratch with c and zeroes the normals.
func (t *Tile) ResetColor(c uint32) {
	for i := range t.Color {
		t.Color[i] = c
	}
	clear(t.Normal)
}
