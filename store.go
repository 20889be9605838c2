package snapswap

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"snapswap/internal/history"
	"snapswap/internal/readslots"
	"snapswap/internal/retire"
)

// generation pairs a published snapshot with the version it was installed
// under. A generation is never modified after it is stored.
type generation struct {
	snap    *Snapshot
	version uint64
}

// Store holds the current Snapshot. One producer calls Replace; any number
// of readers call Get, Current or View concurrently. Readers never take a
// lock: the pointer swap in Replace is the only synchronization.
type Store struct {
	current atomic.Pointer[generation]

	readers *readslots.ReaderSlots
	retired *retire.Queue
	history *history.History[*Snapshot] // nil when disabled
	logger  Logger
	onRel   func(uint64)

	replacements atomic.Uint64
	released     atomic.Uint64
	closed       atomic.Bool

	// Background releaser
	interval time.Duration
	releaseC chan struct{} // Reader-triggered release (buffered, size 1)
	stopC    chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Stats is a point-in-time view of store counters.
type Stats struct {
	Version      uint64 // Version of the current snapshot
	Replacements uint64 // Replace calls since New
	Retired      int    // Replaced versions not yet released
	Released     uint64 // Replaced versions no reader pins any more
	Pinned       int    // Readers currently inside View
}

// New creates a Store with initial installed as version 1. initial must not
// be nil.
func New(initial *Snapshot, options ...Option) *Store {
	if initial == nil {
		panic("snapswap: nil initial snapshot")
	}

	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}

	s := &Store{
		readers:  readslots.New(opts.maxReaders),
		retired:  retire.New(),
		logger:   opts.logger,
		onRel:    opts.onRelease,
		interval: opts.releaseInterval,
		releaseC: make(chan struct{}, 1),
		stopC:    make(chan struct{}),
	}
	if s.interval <= 0 {
		s.interval = DefaultOptions().releaseInterval
	}

	if opts.history > 0 {
		h, err := history.New[*Snapshot](opts.history)
		if err != nil {
			// freelru only rejects a zero capacity, which is excluded above
			panic(fmt.Sprintf("snapswap: history: %v", err))
		}
		s.history = h
	}

	s.install(&generation{snap: initial, version: 1})

	s.wg.Add(1)
	go s.backgroundReleaser()

	return s
}

func (s *Store) install(g *generation) *generation {
	if s.history != nil {
		s.history.Add(g.version, g.snap)
	}
	return s.current.Swap(g)
}

// Replace installs next as the current snapshot with a single atomic
// pointer swap. Readers that already hold the previous snapshot keep a
// valid, unchanged reference. Replace must only be called by one goroutine
// at a time. Panics if next is nil.
func (s *Store) Replace(next *Snapshot) {
	if next == nil {
		panic("snapswap: Replace with nil snapshot")
	}

	// Single producer: the load and swap below cannot interleave with another Replace.
	prev := s.current.Load()
	s.install(&generation{snap: next, version: prev.version + 1})

	s.replacements.Add(1)
	s.retired.Push(prev.version)
}

// Get returns the snapshot current at the moment of the call. Read every
// field needed from the one returned value; calling Get again between field
// reads may observe a newer snapshot.
func (s *Store) Get() *Snapshot {
	return s.current.Load().snap
}

// Current returns the current snapshot together with its version, both
// taken from the same load.
func (s *Store) Current() (*Snapshot, uint64) {
	g := s.current.Load()
	return g.snap, g.version
}

// Version returns the version of the current snapshot.
func (s *Store) Version() uint64 {
	return s.current.Load().version
}

// At returns the snapshot published under version if it is still in the
// history. Always false when history is disabled.
func (s *Store) At(version uint64) (*Snapshot, bool) {
	if s.history == nil {
		return nil, false
	}
	return s.history.Get(version)
}

// View runs fn with the current snapshot pinned. The pinned version is not
// reported as released until fn returns.
func (s *Store) View(fn func(*Snapshot) error) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	for {
		g := s.current.Load()
		unregister, err := s.readers.Register(g.version)
		if err != nil {
			s.logger.Warn("view rejected", "version", g.version, "error", err)
			return err
		}

		// Publish the pin, then confirm g is still current. If a Replace
		// slipped in between, the releaser may already have scanned past
		// this slot, so retry against the newer generation.
		if s.current.Load() != g {
			unregister()
			continue
		}

		defer s.signalRelease()
		defer unregister()
		return fn(g.snap)
	}
}

// Stats returns the store counters.
func (s *Store) Stats() Stats {
	return Stats{
		Version:      s.Version(),
		Replacements: s.replacements.Load(),
		Retired:      s.retired.Len(),
		Released:     s.released.Load(),
		Pinned:       s.readers.Active(),
	}
}

// Close stops the background releaser after a final release pass. Get,
// Current and Replace keep working after Close; View returns ErrStoreClosed.
func (s *Store) Close() error {
	s.stopOnce.Do(func() {
		s.closed.Store(true)
		close(s.stopC)
		s.wg.Wait()
		s.release()

		st := s.Stats()
		s.logger.Info("snapshot store closed",
			"version", st.Version,
			"replacements", st.Replacements,
			"released", st.Released,
			"retired", st.Retired)
	})
	return nil
}

func (s *Store) signalRelease() {
	select {
	case s.releaseC <- struct{}{}:
	default:
		// A release is already pending
	}
}

// backgroundReleaser periodically releases retired versions when safe
func (s *Store) backgroundReleaser() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.release()
		case <-s.releaseC:
			// Reader-triggered release - recalculate minimum
			s.release()
		case <-s.stopC:
			return
		}
	}
}

func (s *Store) release() {
	s.releaseBelow(s.releaseBound())
}

// releaseBound returns the version below which retired versions are safe to
// release. The current version is read before the reader slots: a View that
// pins after the slot scan validated a generation at least that new, so it
// can never fall under the bound.
func (s *Store) releaseBound() uint64 {
	limit := s.current.Load().version
	return min(limit, s.readers.Min())
}

func (s *Store) releaseBelow(bound uint64) {
	s.retired.ReleaseBelow(bound, func(version uint64) {
		s.released.Add(1)
		if s.onRel != nil {
			s.onRel(version)
		}
	})
}
