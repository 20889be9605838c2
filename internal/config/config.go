// Package config loads the snapswap command configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"snapswap/internal/workload"
)

// Backends accepted by workload.backend
const (
	BackendSwap    = "swap"
	BackendPinned  = "pinned"
	BackendInPlace = "inplace"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Workload Workload `toml:"workload"`
	Store    Store    `toml:"store"`
	Log      Log      `toml:"log"`
}

type Workload struct {
	Backend            string   `toml:"backend"`
	Consumers          int      `toml:"consumers"`
	ConsumerIterations int      `toml:"consumer_iterations"`
	ProducerIterations int      `toml:"producer_iterations"`
	ConsumerPace       Duration `toml:"consumer_pace"`
	ProducerPace       Duration `toml:"producer_pace"`
	Keys               []string `toml:"keys"`
}

type Store struct {
	MaxReaders      int      `toml:"max_readers"`
	History         uint32   `toml:"history"`
	ReleaseInterval Duration `toml:"release_interval"`
}

type Log struct {
	Backend string `toml:"backend"` // zap or logrus
	Level   string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "10ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Default() Config {
	w := workload.DefaultConfig()
	return Config{
		Workload: Workload{
			Backend:            BackendSwap,
			Consumers:          w.Consumers,
			ConsumerIterations: w.ConsumerIterations,
			ProducerIterations: w.ProducerIterations,
			ConsumerPace:       Duration{w.ConsumerPace},
			ProducerPace:       Duration{w.ProducerPace},
			Keys:               w.Keys,
		},
		Store: Store{
			MaxReaders:      128,
			ReleaseInterval: Duration{100 * time.Millisecond},
		},
		Log: Log{
			Backend: "zap",
			Level:   "info",
		},
	}
}

// Load decodes path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Workload.Backend {
	case BackendSwap, BackendPinned, BackendInPlace:
	default:
		return fmt.Errorf("%w: unknown workload backend %q", ErrInvalid, c.Workload.Backend)
	}
	switch c.Log.Backend {
	case "zap", "logrus":
	default:
		return fmt.Errorf("%w: unknown log backend %q", ErrInvalid, c.Log.Backend)
	}
	if c.Store.MaxReaders < 1 {
		return fmt.Errorf("%w: store.max_readers must be at least 1", ErrInvalid)
	}
	if err := c.WorkloadConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// WorkloadConfig converts the [workload] table into a workload.Config.
func (c Config) WorkloadConfig() workload.Config {
	return workload.Config{
		Consumers:          c.Workload.Consumers,
		ConsumerIterations: c.Workload.ConsumerIterations,
		ProducerIterations: c.Workload.ProducerIterations,
		ConsumerPace:       c.Workload.ConsumerPace.Duration,
		ProducerPace:       c.Workload.ProducerPace.Duration,
		Keys:               c.Workload.Keys,
	}
}
