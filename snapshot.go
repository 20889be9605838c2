package snapswap

import (
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is an immutable set of named configuration values. All fields
// are copied in at construction and never written again, so a *Snapshot
// may be shared freely between goroutines.
type Snapshot struct {
	fields   map[string]string
	keys     []string // sorted
	checksum uint64
}

// NewSnapshot builds a Snapshot from a private copy of fields.
func NewSnapshot(fields map[string]string) *Snapshot {
	s := &Snapshot{
		fields: maps.Clone(fields),
		keys:   slices.Sorted(maps.Keys(fields)),
	}
	if s.fields == nil {
		s.fields = map[string]string{}
	}
	s.checksum = s.sum()
	return s
}

// sum hashes key/value pairs in key order, NUL separated
func (s *Snapshot) sum() uint64 {
	d := xxhash.New()
	for _, k := range s.keys {
		_, _ = d.WriteString(k)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(s.fields[k])
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// Get returns the value stored under key.
func (s *Snapshot) Get(key string) (string, bool) {
	v, ok := s.fields[key]
	return v, ok
}

// Value returns the value stored under key, or "" when absent.
func (s *Snapshot) Value(key string) string {
	return s.fields[key]
}

// Keys returns the snapshot's keys in sorted order.
func (s *Snapshot) Keys() []string {
	return slices.Clone(s.keys)
}

func (s *Snapshot) Len() int {
	return len(s.keys)
}

// Fields returns a copy of the snapshot's contents.
func (s *Snapshot) Fields() map[string]string {
	return maps.Clone(s.fields)
}

// Checksum returns the xxhash-64 of the snapshot contents taken at construction.
func (s *Snapshot) Checksum() uint64 {
	return s.checksum
}

// Verify recomputes the checksum and reports ErrSnapshotCorrupt if the
// contents no longer match what was hashed at construction.
func (s *Snapshot) Verify() error {
	if s.sum() != s.checksum {
		return ErrSnapshotCorrupt
	}
	return nil
}

// Equal reports whether both snapshots hold the same fields.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || s.checksum != other.checksum {
		return false
	}
	return maps.Equal(s.fields, other.fields)
}
