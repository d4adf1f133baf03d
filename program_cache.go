package userfields

import "sync"

// MapProgramCache is a ProgramCache backed by a map. It is safe for
// concurrent use and never evicts.
type MapProgramCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

// NewMapProgramCache constructs an empty cache.
func NewMapProgramCache() *MapProgramCache {
	return &MapProgramCache{programs: make(map[string]any)}
}

// Get implements ProgramCache.
func (c *MapProgramCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	program, ok := c.programs[key]
	return program, ok
}

// Set implements ProgramCache.
func (c *MapProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.programs == nil {
		c.programs = make(map[string]any)
	}
	c.programs[key] = value
}

// Len reports how many programs are cached.
func (c *MapProgramCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.programs)
}
