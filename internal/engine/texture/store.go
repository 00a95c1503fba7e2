package texture

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/logger"
)

// DefaultFallback names the texture substituted for missing ones.
const DefaultFallback = "arbre.png"

// Store owns every texture and texture set. Writers take the write lock
// between frames; the renderer holds the read lock for a whole frame and
// then uses At and SetAt without further locking.
type Store struct {
	mu       sync.RWMutex
	textures []*Texture
	byName   map[string]ID
	sets     []*Set
	setNames map[string]int
	fallback string
}

// NewStore creates an empty store that substitutes fallback for missing
// names. An empty fallback means DefaultFallback.
func NewStore(fallback string) *Store {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Store{
		byName:   make(map[string]ID),
		setNames: make(map[string]int),
		fallback: fallback,
	}
}

// Add registers t, replacing a texture of the same name in place.
func (s *Store) Add(t *Texture) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byName[t.Name]; ok {
		s.textures[id] = t
		return id
	}
	id := ID(len(s.textures))
	s.textures = append(s.textures, t)
	s.byName[t.Name] = id
	return id
}

// AddARGB registers pre-formed level-0 ARGB pixels.
func (s *Store) AddARGB(name string, w, h int, pixels []uint32, opts ...Option) (ID, error) {
	t, err := New(name, w, h, pixels, opts...)
	if err != nil {
		return 0, err
	}
	return s.Add(t), nil
}

// Find returns the id registered under name.
func (s *Store) Find(name string) (ID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return id, nil
}

// Lookup returns the id for name, or the fallback texture's id when name
// is not registered. The second result is false when the fallback was used.
func (s *Store) Lookup(name string) (ID, bool) {
	if id, err := s.Find(name); err == nil {
		return id, true
	}

	logger.Warn("texture missing, using fallback",
		zap.String("kind", "texture"),
		zap.String("name", name),
		zap.String("fallback", s.fallback),
	)
	id, err := s.Find(s.fallback)
	if err != nil {
		return 0, false
	}
	return id, false
}

// RLock locks the store for reading for the duration of a frame.
func (s *Store) RLock() { s.mu.RLock() }

// RUnlock releases a frame read lock.
func (s *Store) RUnlock() { s.mu.RUnlock() }

// At returns texture id. Out-of-range ids resolve to the fallback, or nil
// when none is registered. The caller must hold the read lock.
func (s *Store) At(id ID) *Texture {
	if int(id) < len(s.textures) {
		return s.textures[id]
	}
	if fb, ok := s.byName[s.fallback]; ok {
		return s.textures[fb]
	}
	return nil
}

// Len returns the number of registered textures.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.textures)
}

// AddSet registers an animated set and returns its index.
func (s *Store) AddSet(set *Set) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.setNames[set.Name]; ok {
		s.sets[i] = set
		return i
	}
	i := len(s.sets)
	s.sets = append(s.sets, set)
	s.setNames[set.Name] = i
	return i
}

// FindSet returns the index of the named set.
func (s *Store) FindSet(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.setNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: set %s", ErrNotFound, name)
	}
	return i, nil
}

// Current resolves set i to the texture shown this frame. Unknown sets
// resolve to id 0. The caller must hold the read lock.
func (s *Store) Current(i uint32) ID {
	if int(i) >= len(s.sets) {
		return 0
	}
	return s.sets[i].Current()
}

// TickSets advances every set by one frame.
func (s *Store) TickSets() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range s.sets {
		set.Tick()
	}
}
