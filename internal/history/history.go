// Package history keeps a bounded set of recently published snapshots keyed
// by version.
package history

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// History is safe for concurrent use.
type History[V any] struct {
	lru *freelru.SyncedLRU[uint64, V]
}

// New creates a history holding at most capacity entries.
func New[V any](capacity uint32) (*History[V], error) {
	lru, err := freelru.NewSynced[uint64, V](capacity, hashVersion)
	if err != nil {
		return nil, err
	}
	return &History[V]{lru: lru}, nil
}

func hashVersion(v uint64) uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return uint32(xxhash.Sum64(b[:]))
}

// Add records value under version, evicting the least recently used entry
// when full.
func (h *History[V]) Add(version uint64, value V) {
	h.lru.Add(version, value)
}

// Get returns the value recorded for version.
func (h *History[V]) Get(version uint64) (V, bool) {
	return h.lru.Get(version)
}

// Len returns the number of entries held.
func (h *History[V]) Len() int {
	return h.lru.Len()
}
