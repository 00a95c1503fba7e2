// Package assets handles asset file lookup and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/logger"
)

// ErrNotFound is returned when no search root holds the file.
var ErrNotFound = errors.New("asset not found")

// Manager loads files from an ordered list of search roots.
type Manager struct {
	roots []root
	cache *Cache
	mu    sync.RWMutex
}

type root struct {
	name string
	fsys fs.FS
}

// NewManager creates a manager searching the given directories.
func NewManager(dirs ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, d := range dirs {
		m.AddPath(d)
	}
	return m
}

// AddPath adds a directory to the search list.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddPath(dir string) {
	m.AddFS(dir, os.DirFS(dir))
}

// AddFS adds a file system to the search list under a display name.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, root{name: name, fsys: fsys})
	m.mu.Unlock()
	logger.Debug("asset root added", zap.String("root", name))
}

// Load returns the contents of name. Names are slash-separated and
// relative to a root; absolute paths are read from disk directly.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	if filepath.IsAbs(name) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		m.cache.Set(name, data)
		return data, nil
	}

	rel := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if !fs.ValidPath(rel) {
		return nil, fmt.Errorf("invalid asset path %q", name)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i].fsys, rel)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", rel, m.roots[i].name, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	data, ok := c.data[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	return int(c.hits.Load()), int(c.misses.Load())
}
