// Package inplace is the broken alternative to a snapshot swap: one shared
// container that is cleared and refilled in place on every update. Each
// individual operation is safe, but a reader that reads several keys can
// see a mix of two generations, or a key that is momentarily missing.
package inplace

import (
	"runtime"
	"sync"
)

type Config struct {
	m sync.Map
}

// Publish clears the container and re-inserts values one key at a time in
// the order given by keys, yielding between inserts.
func (c *Config) Publish(keys []string, values map[string]string) {
	c.m.Clear()
	for _, k := range keys {
		c.m.Store(k, values[k])
		runtime.Gosched()
	}
}

// Get reads a single key.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}
