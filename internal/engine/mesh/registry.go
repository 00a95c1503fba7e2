package mesh

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/logger"
)

// DefaultFallback names the mesh substituted for missing ones.
const DefaultFallback = "arbre"

// Registry owns meshes by name and index. Writers take the write lock
// between frames; the renderer holds the read lock for a whole frame.
type Registry struct {
	mu       sync.RWMutex
	meshes   []*Mesh
	byName   map[string]int
	fallback string
}

// NewRegistry creates an empty registry. An empty fallback means
// DefaultFallback.
func NewRegistry(fallback string) *Registry {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Registry{byName: make(map[string]int), fallback: fallback}
}

// Add registers m, replacing a mesh of the same name in place.
func (r *Registry) Add(m *Mesh) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.byName[m.Name]; ok {
		r.meshes[i] = m
		return i
	}
	i := len(r.meshes)
	r.meshes = append(r.meshes, m)
	r.byName[m.Name] = i
	return i
}

// Find returns the index registered under name.
func (r *Registry) Find(name string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return i, nil
}

// Lookup returns the index for name, falling back to the fallback mesh.
// The second result is false when the fallback was used.
func (r *Registry) Lookup(name string) (int, bool) {
	if i, err := r.Find(name); err == nil {
		return i, true
	}

	logger.Warn("mesh missing, using fallback",
		zap.String("kind", "mesh"),
		zap.String("name", name),
		zap.String("fallback", r.fallback),
	)
	i, err := r.Find(r.fallback)
	if err != nil {
		return 0, false
	}
	return i, false
}

// RLock locks the registry for reading for the duration of a frame.
func (r *Registry) RLock() { r.mu.RLock() }

// RUnlock releases a frame read lock.
func (r *Registry) RUnlock() { r.mu.RUnlock() }

// At returns mesh i, or nil when out of range. The caller must hold the
// read lock.
func (r *Registry) At(i int) *Mesh {
	if i < 0 || i >= len(r.meshes) {
		return nil
	}
	return r.meshes[i]
}

// Len returns the number of registered meshes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.meshes)
}
