// Package parallel holds the two cooperative constructs render workers
// share: a wait-free batch counter and a reusable step barrier.
package parallel

import "sync/atomic"

// Counter hands out indices in [0, length) in batches. Claims are
// wait-free; every index is handed out exactly once between resets.
type Counter struct {
	next   atomic.Int64
	length atomic.Int64
}

// Reset sets the range to [0, length). It must not race with Claim.
func (c *Counter) Reset(length int) {
	c.length.Store(int64(length))
	c.next.Store(0)
}

// Len returns the current length.
func (c *Counter) Len() int {
	return int(c.length.Load())
}

// Claim reserves up to batch indices and returns them as [lo, hi).
// ok is false once the range is exhausted.
func (c *Counter) Claim(batch int) (lo, hi int, ok bool) {
	n := c.length.Load()
	start := c.next.Add(int64(batch)) - int64(batch)
	if start >= n {
		return 0, 0, false
	}
	return int(start), int(min(start+int64(batch), n)), true
}

// Each claims batches until the range is exhausted and calls fn for every
// claimed index.
func (c *Counter) Each(batch int, fn func(i int)) {
	for {
		lo, hi, ok := c.Claim(batch)
		if !ok {
			return
		}
		for i := lo; i < hi; i++ {
			fn(i)
		}
	}
}
