package inplace

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var keys = []string{"key-1", "key-2", "key-3"}

func values(v string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		m[k] = v
	}
	return m
}

func TestPublishGet(t *testing.T) {
	t.Parallel()

	var c Config
	c.Publish(keys, values("t0"))
	for _, k := range keys {
		v, ok := c.Get(k)
		assert.True(t, ok)
		assert.Equal(t, "t0", v)
	}

	c.Publish(keys[:1], values("t1"))
	v, ok := c.Get("key-1")
	assert.True(t, ok)
	assert.Equal(t, "t1", v)
	_, ok = c.Get("key-2")
	assert.False(t, ok, "publish clears keys it does not re-insert")
}

func TestInPlaceUpdateTearsReads(t *testing.T) {
	t.Parallel()

	// Negative control: clearing and refilling one shared container must
	// eventually let a reader see fields from two generations, or a
	// missing field, when reading the keys one at a time.

	var c Config
	c.Publish(keys, values("t0"))

	var torn atomic.Bool
	var wg sync.WaitGroup
	deadline := time.Now().Add(10 * time.Second)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; !torn.Load() && time.Now().Before(deadline); i++ {
			c.Publish(keys, values(strconv.Itoa(i)))
		}
	}()

	wg.Add(5)
	for range 5 {
		go func() {
			defer wg.Done()
			for !torn.Load() && time.Now().Before(deadline) {
				v1, ok1 := c.Get("key-1")
				v2, ok2 := c.Get("key-2")
				v3, ok3 := c.Get("key-3")
				if !ok1 || !ok2 || !ok3 || v1 != v2 || v2 != v3 {
					torn.Store(true)
				}
			}
		}()
	}

	wg.Wait()
	assert.True(t, torn.Load(), "expected at least one torn read")
}
