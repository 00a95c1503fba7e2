package binner

import (
	"github.com/Faultbox/tilerast/internal/engine/lanes"
	"github.com/Faultbox/tilerast/internal/engine/parallel"
)

// tileBatch is the number of tiles a worker claims at once.
const tileBatch = 1

// Overflow reports what the previous frame could not store.
type Overflow struct {
	Pool int
	Bins int
}

// Binner owns the triangle pool and the tile grid.
type Binner struct {
	Width, Height int
	Side          int
	Cols, Rows    int

	pool    *Pool
	tiles   []Tile
	counter parallel.Counter
}

// New creates the grid for a width×height image with square tiles of the
// given side. poolCap and binCap are the initial capacities.
func New(width, height, side, poolCap, binCap int) *Binner {
	b := &Binner{
		Width:  width,
		Height: height,
		Side:   side,
		Cols:   (width + side - 1) / side,
		Rows:   (height + side - 1) / side,
		pool:   NewPool(poolCap),
	}
	b.tiles = make([]Tile, 0, b.Cols*b.Rows)
	for ty := 0; ty < b.Rows; ty++ {
		for tx := 0; tx < b.Cols; tx++ {
			x0, y0 := tx*side, ty*side
			b.tiles = append(b.tiles, newTile(x0, y0, min(x0+side, width), min(y0+side, height), side, binCap))
		}
	}
	return b
}

// Pool returns the frame's triangle pool.
func (b *Binner) Pool() *Pool { return b.pool }

// Tiles returns the grid in row-major order.
func (b *Binner) Tiles() []Tile { return b.tiles }

// Tile returns the tile at grid position (tx, ty).
func (b *Binner) Tile(tx, ty int) *Tile {
	return &b.tiles[ty*b.Cols+tx]
}

// TileRange returns the inclusive grid rectangle covering bounds
// (minX, minY, maxX, maxY in pixels), clamped to the grid.
func (b *Binner) TileRange(bounds [4]float32) (x0, y0, x1, y1 int) {
	w, h := float32(b.Width-1), float32(b.Height-1)
	q := lanes.Quad{
		lanes.Clamp(bounds[0], 0, w),
		lanes.Clamp(bounds[1], 0, h),
		lanes.Clamp(bounds[2], 0, w),
		lanes.Clamp(bounds[3], 0, h),
	}
	t := q.DivS(float32(b.Side)).Trunc()
	x0 = lanes.Clamp(int(t[0]), 0, b.Cols-1)
	y0 = lanes.Clamp(int(t[1]), 0, b.Rows-1)
	x1 = lanes.Clamp(int(t[2]), 0, b.Cols-1)
	y1 = lanes.Clamp(int(t[3]), 0, b.Rows-1)
	return x0, y0, x1, y1
}

// Push stores e in the pool and records it in every tile its bounds touch.
// It returns false when the pool is full, in which case no tile records it.
// Individual full tiles drop their record silently.
func (b *Binner) Push(e *Entry) bool {
	id, ok := b.pool.Push(e)
	if !ok {
		return false
	}
	x0, y0, x1, y1 := b.TileRange(e.Pre.Bounds)
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			b.Tile(tx, ty).push(id)
		}
	}
	return true
}

// ResetCounter rearms tile iteration for the next ForEachTile.
func (b *Binner) ResetCounter() {
	b.counter.Reset(len(b.tiles))
}

// ForEachTile hands tiles out to the calling workers via the shared
// counter. For each claimed tile, f runs once per recorded triangle and
// then post runs once. Every worker of the phase calls it; it returns when
// no tiles are left to claim.
func (b *Binner) ForEachTile(f func(e *Entry, t *Tile), post func(t *Tile)) {
	b.counter.Each(tileBatch, func(i int) {
		t := &b.tiles[i]
		for _, id := range t.IDs() {
			f(b.pool.At(id), t)
		}
		post(t)
	})
}

// DropAll empties the pool and every id list, growing whatever overflowed.
// It must not run concurrently with Push.
func (b *Binner) DropAll() Overflow {
	var o Overflow
	o.Pool = b.pool.Drop()
	for i := range b.tiles {
		o.Bins += b.tiles[i].drop()
	}
	return o
}

// ResetDepth clears every tile's depth scratch to +Inf.
func (b *Binner) ResetDepth() {
	for i := range b.tiles {
		b.tiles[i].ResetDepth()
	}
}
