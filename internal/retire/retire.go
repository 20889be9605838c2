// Package retire tracks snapshot versions that have been replaced but may
// still be pinned by a reader.
package retire

import (
	"sync"

	"github.com/eapache/queue"
)

// Queue is a FIFO of retired versions. Versions are pushed in increasing
// order by the single producer, so the front is always the oldest.
type Queue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func New() *Queue {
	return &Queue{q: queue.New()}
}

// Push records version as retired.
func (r *Queue) Push(version uint64) {
	r.mu.Lock()
	r.q.Add(version)
	r.mu.Unlock()
}

// ReleaseBelow pops every retired version strictly lower than minPinned and
// calls fn for each one, oldest first. Returns the number released.
func (r *Queue) ReleaseBelow(minPinned uint64, fn func(version uint64)) int {
	r.mu.Lock()
	var released []uint64
	for r.q.Length() > 0 {
		v := r.q.Peek().(uint64)
		if v >= minPinned {
			break
		}
		r.q.Remove()
		released = append(released, v)
	}
	r.mu.Unlock()

	// fn runs outside the lock so a slow hook never stalls Push
	if fn != nil {
		for _, v := range released {
			fn(v)
		}
	}
	return len(released)
}

// Len returns the number of retired versions still pending release.
func (r *Queue) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Length()
}
