package provider

import (
	"sync"

	pkgconfig "github.com/smykla-labs/crashlink/pkg/config"
)

// Cache holds the last validated configuration. Values are cloned on the
// way in and out so no holder can mutate what another one sees.
type Cache struct {
	mu     sync.RWMutex
	config *pkgconfig.Config
}

// NewCache creates a new Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns a copy of the cached configuration, or nil.
func (c *Cache) Get() *pkgconfig.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.config.Clone()
}

// Set stores a copy of cfg.
func (c *Cache) Set(cfg *pkgconfig.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config = cfg.Clone()
}

// Clear drops the cached configuration.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config = nil
}

// Has reports whether a configuration is cached.
func (c *Cache) Has() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.config != nil
}
