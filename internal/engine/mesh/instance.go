package mesh

import (
	"sync"

	"github.com/Faultbox/tilerast/pkg/math"
)

// Instance places a mesh in the world.
type Instance struct {
	Pos              math.Vec3
	Yaw, Pitch, Roll float32
	Mesh             int
	Visible          bool
	// WorldSpace skips the instance rotation: vertices are already in world space.
	WorldSpace bool
	// ViewModel skips the camera transform: the instance is camera-relative.
	ViewModel bool
}

// Rotation returns the instance orientation.
func (in *Instance) Rotation() math.Rotation {
	return math.RotationFromEuler(in.Yaw, in.Pitch, in.Roll)
}

// Handle addresses an instance slot.
type Handle struct {
	Bucket int
	Index  int
}

// Instances stores instances in per-bucket slices. Removed slots go on a
// per-bucket free list and are reused by later adds.
type Instances struct {
	mu      sync.RWMutex
	buckets [][]Instance
	live    [][]bool
	free    [][]int
}

// NewInstances creates a store with n empty buckets.
func NewInstances(n int) *Instances {
	return &Instances{
		buckets: make([][]Instance, n),
		live:    make([][]bool, n),
		free:    make([][]int, n),
	}
}

func (s *Instances) grow(bucket int) {
	for len(s.buckets) <= bucket {
		s.buckets = append(s.buckets, nil)
		s.live = append(s.live, nil)
		s.free = append(s.free, nil)
	}
}

// Add stores in in bucket, reusing a free slot when there is one.
func (s *Instances) Add(bucket int, in Instance) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grow(bucket)
	if f := s.free[bucket]; len(f) > 0 {
		i := f[len(f)-1]
		s.free[bucket] = f[:len(f)-1]
		s.buckets[bucket][i] = in
		s.live[bucket][i] = true
		return Handle{bucket, i}
	}

	s.buckets[bucket] = append(s.buckets[bucket], in)
	s.live[bucket] = append(s.live[bucket], true)
	return Handle{bucket, len(s.buckets[bucket]) - 1}
}

// Remove frees h. Removing a free slot is a no-op.
func (s *Instances) Remove(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid(h) {
		return
	}
	s.live[h.Bucket][h.Index] = false
	s.buckets[h.Bucket][h.Index] = Instance{}
	s.free[h.Bucket] = append(s.free[h.Bucket], h.Index)
}

// Update applies fn to the instance at h under the write lock.
func (s *Instances) Update(h Handle, fn func(*Instance)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid(h) {
		return false
	}
	fn(&s.buckets[h.Bucket][h.Index])
	return true
}

func (s *Instances) valid(h Handle) bool {
	return h.Bucket >= 0 && h.Bucket < len(s.buckets) &&
		h.Index >= 0 && h.Index < len(s.buckets[h.Bucket]) &&
		s.live[h.Bucket][h.Index]
}

// RLock locks the store for reading for the duration of a frame.
func (s *Instances) RLock() { s.mu.RLock() }

// RUnlock releases a frame read lock.
func (s *Instances) RUnlock() { s.mu.RUnlock() }

// At returns the instance at h. The caller must hold the read lock.
func (s *Instances) At(h Handle) *Instance {
	return &s.buckets[h.Bucket][h.Index]
}

// Snapshot appends the handles of all live, visible instances to dst in
// bucket order.
func (s *Instances) Snapshot(dst []Handle) []Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for b, bucket := range s.buckets {
		for i := range bucket {
			if s.live[b][i] && bucket[i].Visible {
				dst = append(dst, Handle{b, i})
			}
		}
	}
	return dst
}

// Len returns the number of live instances.
func (s *Instances) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for b := range s.live {
		for _, ok := range s.live[b] {
			if ok {
				n++
			}
		}
	}
	return n
}
