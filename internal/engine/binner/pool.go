// Package binner sorts projected triangles into screen tiles. Triangles go
// into a frame-wide pool and every tile they touch records the pool id.
package binner

import (
	"sync/atomic"

	"github.com/Faultbox/tilerast/internal/engine/geometry"
)

// Entry is a pooled triangle.
type Entry struct {
	Tri geometry.SingleFullTriangle
	Pre geometry.PreCalcd
}

// Pool is an append-only triangle buffer shared by all producers of a
// frame. Slots are reserved with an atomic add; capacity only changes in
// Drop, which must not run concurrently with Push.
type Pool struct {
	items []Entry
	n     atomic.Int64
}

// NewPool allocates a pool of the given capacity.
func NewPool(capacity int) *Pool {
	return &Pool{items: make([]Entry, max(capacity, 1))}
}

// Push stores e and returns its id. ok is false when the pool is full; the
// reservation still counts so Drop can size the next frame.
func (p *Pool) Push(e *Entry) (id uint32, ok bool) {
	i := p.n.Add(1) - 1
	if i >= int64(len(p.items)) {
		return 0, false
	}
	p.items[i] = *e
	return uint32(i), true
}

// Len returns the number of stored triangles.
func (p *Pool) Len() int {
	return int(min(p.n.Load(), int64(len(p.items))))
}

// Cap returns the current capacity.
func (p *Pool) Cap() int {
	return len(p.items)
}

// At returns the entry with the given id. The id must come from Push in
// the current frame.
func (p *Pool) At(id uint32) *Entry {
	return &p.items[id]
}

// Drop empties the pool. When the last frame overflowed, capacity doubles
// until every attempted push would have fit. It returns the overflow count.
func (p *Pool) Drop() (overflow int) {
	want := p.n.Load()
	p.n.Store(0)

	old := int64(len(p.items))
	if want <= old {
		return 0
	}
	c := old
	for c < want {
		c *= 2
	}
	p.items = make([]Entry, c)
	return int(want - old)
}
