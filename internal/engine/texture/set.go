package texture

// Set is an animated texture: an ordered list of texture ids, each shown
// for its number of frames before the set moves on cyclically.
type Set struct {
	Name  string
	IDs   []ID
	Ticks []uint32

	tick uint32
	cur  int
}

// NewSet builds a set. Missing or zero tick counts mean one frame.
func NewSet(name string, ids []ID, ticks []uint32) *Set {
	t := make([]uint32, len(ids))
	for i := range t {
		t[i] = 1
		if i < len(ticks) && ticks[i] > 0 {
			t[i] = ticks[i]
		}
	}
	return &Set{Name: name, IDs: ids, Ticks: t}
}

// Tick advances the set by one frame.
func (s *Set) Tick() {
	if len(s.IDs) == 0 {
		return
	}
	s.tick++
	if s.tick >= s.Ticks[s.cur] {
		s.tick = 0
		s.cur = (s.cur + 1) % len(s.IDs)
	}
}

// Current returns the texture id shown this frame.
func (s *Set) Current() ID {
	if len(s.IDs) == 0 {
		return 0
	}
	return s.IDs[s.cur]
}
