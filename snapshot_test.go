package snapswap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCopiesInput(t *testing.T) {
	t.Parallel()

	src := map[string]string{"key-1": "t0", "key-2": "t0"}
	s := NewSnapshot(src)

	// Mutating the source after construction must not leak into the snapshot
	src["key-1"] = "changed"
	delete(src, "key-2")

	assert.Equal(t, "t0", s.Value("key-1"))
	v, ok := s.Get("key-2")
	assert.True(t, ok)
	assert.Equal(t, "t0", v)
	assert.Equal(t, 2, s.Len())
	require.NoError(t, s.Verify())
}

func TestSnapshotAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	s := NewSnapshot(map[string]string{"b": "2", "a": "1", "c": "3"})

	keys := s.Keys()
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	keys[0] = "z"
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())

	fields := s.Fields()
	fields["a"] = "mutated"
	assert.Equal(t, "1", s.Value("a"))
	require.NoError(t, s.Verify())
}

func TestSnapshotMissingKey(t *testing.T) {
	t.Parallel()

	s := NewSnapshot(nil)
	_, ok := s.Get("key-1")
	assert.False(t, ok)
	assert.Equal(t, "", s.Value("key-1"))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
	require.NoError(t, s.Verify())
}

func TestSnapshotChecksumAndEqual(t *testing.T) {
	t.Parallel()

	a1 := NewSnapshot(map[string]string{"key-1": "t0", "key-2": "t0"})
	a2 := NewSnapshot(map[string]string{"key-2": "t0", "key-1": "t0"})
	b := NewSnapshot(map[string]string{"key-1": "t1", "key-2": "t1"})

	// Checksum is order independent and content sensitive
	assert.Equal(t, a1.Checksum(), a2.Checksum())
	assert.NotEqual(t, a1.Checksum(), b.Checksum())

	assert.True(t, a1.Equal(a2))
	assert.True(t, a1.Equal(a1))
	assert.False(t, a1.Equal(b))
	assert.False(t, a1.Equal(nil))

	// Key/value boundaries are part of the hash
	c := NewSnapshot(map[string]string{"ab": "c"})
	d := NewSnapshot(map[string]string{"a": "bc"})
	assert.NotEqual(t, c.Checksum(), d.Checksum())
}

func TestSnapshotVerifyDetectsMutation(t *testing.T) {
	t.Parallel()

	s := NewSnapshot(map[string]string{"key-1": "t0"})
	require.NoError(t, s.Verify())

	// Only reachable from inside the package
	s.fields["key-1"] = "t1"
	assert.ErrorIs(t, s.Verify(), ErrSnapshotCorrupt)
}
