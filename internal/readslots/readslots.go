// Package readslots pins snapshot versions for the duration of a read so
// the store knows which retired versions are still in use.
package readslots

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
)

var (
	ErrTooManyReaders  = errors.New("too many concurrent readers (increase maxReaders)")
	ErrReservedVersion = errors.New("version 0 is reserved for empty slots")
)

// ReaderSlots provides fixed-size slot-based reader tracking for bounded concurrency.
// Each slot stores a snapshot version directly, giving O(1) register/unregister
// with no allocation on the slot array itself.
type ReaderSlots struct {
	slots   []atomic.Uint64 // Fixed-size array of versions (0 = empty slot)
	maxSize int             // Maximum number of concurrent readers
	active  atomic.Int32    // Count of active readers
}

// New creates a fixed-size slot array for reader tracking
func New(maxReaders int) *ReaderSlots {
	maxReaders = max(maxReaders, 1)
	return &ReaderSlots{
		slots:   make([]atomic.Uint64, maxReaders),
		maxSize: maxReaders,
	}
}

// Register finds an empty slot and atomically assigns it to the reader.
// Returns an unregister function to free the slot when done. Version 0 is
// reserved for empty slots.
func (rs *ReaderSlots) Register(version uint64) (func(), error) {
	if version == 0 {
		return nil, ErrReservedVersion
	}
	for i := 0; i < rs.maxSize; i++ {
		// Try to claim this slot atomically (0 = empty)
		if rs.slots[i].CompareAndSwap(0, version) {
			rs.active.Add(1)

			var once sync.Once
			return func() {
				once.Do(func() {
					rs.slots[i].Store(0)
					rs.active.Add(-1)
				})
			}, nil
		}
	}
	return nil, ErrTooManyReaders
}

// Min returns the lowest pinned version, or math.MaxUint64 when no reader
// is registered. The slot array is scanned on every call so that a
// concurrent Register is never hidden behind a stale cached minimum.
func (rs *ReaderSlots) Min() uint64 {
	if rs.active.Load() == 0 {
		return math.MaxUint64 // Fast path: no readers
	}
	minVersion := uint64(math.MaxUint64)
	for i := 0; i < rs.maxSize; i++ {
		if v := rs.slots[i].Load(); v != 0 && v < minVersion {
			minVersion = v
		}
	}
	return minVersion
}

// Active returns the number of registered readers
func (rs *ReaderSlots) Active() int {
	return int(rs.active.Load())
}

// Cap returns the number of slots
func (rs *ReaderSlots) Cap() int {
	return rs.maxSize
}
