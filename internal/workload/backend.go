package workload

import (
	"fmt"

	"snapswap"
	"snapswap/internal/inplace"
)

// Backend is a shared configuration that one producer publishes to and
// many consumers read from.
type Backend interface {
	// Publish makes values the current configuration.
	Publish(values map[string]string)
	// Load reads keys as one logical read. A key that is absent yields
	// ErrKeyMissing.
	Load(keys []string) ([]string, error)
}

// SwapBackend publishes through a snapswap.Store.
type SwapBackend struct {
	store *snapswap.Store
}

func NewSwapBackend(store *snapswap.Store) *SwapBackend {
	return &SwapBackend{store: store}
}

func (b *SwapBackend) Publish(values map[string]string) {
	b.store.Replace(snapswap.NewSnapshot(values))
}

func (b *SwapBackend) Load(keys []string) ([]string, error) {
	// One Get; every field below is read from the same snapshot.
	return readFields(b.store.Get(), keys)
}

// PinnedBackend is a SwapBackend whose reads go through Store.View, so
// each read pins its version until the fields have been copied out.
type PinnedBackend struct {
	SwapBackend
}

func NewPinnedBackend(store *snapswap.Store) *PinnedBackend {
	return &PinnedBackend{SwapBackend{store: store}}
}

func (b *PinnedBackend) Load(keys []string) ([]string, error) {
	var out []string
	err := b.store.View(func(snap *snapswap.Snapshot) error {
		var err error
		out, err = readFields(snap, keys)
		return err
	})
	return out, err
}

func readFields(snap *snapswap.Snapshot, keys []string) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		v, ok := snap.Get(k)
		if !ok {
			return out, fmt.Errorf("%w: %s", ErrKeyMissing, k)
		}
		out[i] = v
	}
	return out, nil
}

// InPlaceBackend mutates one shared container in place. It exists to show
// torn reads and must not be used for real configuration.
type InPlaceBackend struct {
	cfg  inplace.Config
	keys []string
}

// NewInPlaceBackend creates the backend with initial already published.
func NewInPlaceBackend(keys []string, initial map[string]string) *InPlaceBackend {
	b := &InPlaceBackend{keys: keys}
	b.Publish(initial)
	return b
}

func (b *InPlaceBackend) Publish(values map[string]string) {
	b.cfg.Publish(b.keys, values)
}

func (b *InPlaceBackend) Load(keys []string) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		v, ok := b.cfg.Get(k)
		if !ok {
			return out, fmt.Errorf("%w: %s", ErrKeyMissing, k)
		}
		out[i] = v
	}
	return out, nil
}
