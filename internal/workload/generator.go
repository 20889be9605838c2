package workload

import (
	"strconv"
	"time"
)

// Generator builds configuration values where every key maps to the same
// value, derived from one timestamp and a sequence number.
type Generator struct {
	keys []string
	now  func() time.Time
	seq  uint64
}

func NewGenerator(keys []string) *Generator {
	return &Generator{keys: keys, now: time.Now}
}

// Next returns a fresh set of values. Successive calls never repeat a value
// even when the clock does not advance. Not safe for concurrent use.
func (g *Generator) Next() map[string]string {
	g.seq++
	v := g.now().Format(time.RFC3339Nano) + "#" + strconv.FormatUint(g.seq, 10)

	values := make(map[string]string, len(g.keys))
	for _, k := range g.keys {
		values[k] = v
	}
	return values
}
