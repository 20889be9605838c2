// Package workload drives one producer and a pool of consumers against a
// shared configuration and checks that every consumer read is consistent.
package workload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"snapswap"
)

// Config sizes a run. Iteration counts and pacing are harness parameters,
// not correctness requirements.
type Config struct {
	Consumers          int
	ConsumerIterations int
	ProducerIterations int
	ConsumerPace       time.Duration
	ProducerPace       time.Duration
	Keys               []string
}

// DefaultConfig returns five consumers and one producer, each looping
// 10000 times with a 10ms pause, over key-1, key-2 and key-3.
func DefaultConfig() Config {
	return Config{
		Consumers:          5,
		ConsumerIterations: 10000,
		ProducerIterations: 10000,
		ConsumerPace:       10 * time.Millisecond,
		ProducerPace:       10 * time.Millisecond,
		Keys:               []string{"key-1", "key-2", "key-3"},
	}
}

func (c Config) Validate() error {
	switch {
	case c.Consumers < 1:
		return fmt.Errorf("%w: consumers must be at least 1", ErrInvalidConfig)
	case c.ConsumerIterations < 0 || c.ProducerIterations < 0:
		return fmt.Errorf("%w: iterations cannot be negative", ErrInvalidConfig)
	case c.ConsumerPace < 0 || c.ProducerPace < 0:
		return fmt.Errorf("%w: pace cannot be negative", ErrInvalidConfig)
	case len(c.Keys) == 0:
		return fmt.Errorf("%w: at least one key is required", ErrInvalidConfig)
	}
	return nil
}

// Report summarises a finished run.
type Report struct {
	RunID      string
	Reads      uint64
	Publishes  uint64
	Interrupts uint64
	Elapsed    time.Duration
}

type run struct {
	id      string
	backend Backend
	cfg     Config
	pacer   *Pacer
	logger  snapswap.Logger

	reads      atomic.Uint64
	publishes  atomic.Uint64
	interrupts atomic.Uint64

	failOnce sync.Once
	failErr  error
	cancel   context.CancelFunc
}

// Run starts the producer and cfg.Consumers consumers, waits for all of
// them and returns the first failure. A consistency violation is returned
// as a *ViolationError and stops every other participant. pacer and
// logger may be nil.
func Run(ctx context.Context, backend Backend, cfg Config, pacer *Pacer, logger snapswap.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if pacer == nil {
		pacer = NewPacer()
	}
	if logger == nil {
		logger = snapswap.DiscardLogger{}
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	r := &run{
		id:      uuid.New().String(),
		backend: backend,
		cfg:     cfg,
		pacer:   pacer,
		logger:  logger,
		cancel:  cancel,
	}

	logger.Info("workload started",
		"run", r.id,
		"consumers", cfg.Consumers,
		"consumer_iterations", cfg.ConsumerIterations,
		"producer_iterations", cfg.ProducerIterations)

	start := time.Now()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		r.produce(ctx)
	}()

	wg.Add(cfg.Consumers)
	for i := range cfg.Consumers {
		go func(name string) {
			defer wg.Done()
			if err := r.consume(ctx, name); err != nil {
				r.fail(err)
			}
		}(fmt.Sprintf("consumer-%d", i))
	}

	wg.Wait()

	report := Report{
		RunID:      r.id,
		Reads:      r.reads.Load(),
		Publishes:  r.publishes.Load(),
		Interrupts: r.interrupts.Load(),
		Elapsed:    time.Since(start),
	}

	if r.failErr != nil {
		logger.Error("workload failed", "run", r.id, "error", r.failErr)
		return report, r.failErr
	}
	if err := parent.Err(); err != nil {
		logger.Warn("workload cancelled", "run", r.id, "error", err)
		return report, err
	}

	logger.Info("workload finished",
		"run", r.id,
		"reads", report.Reads,
		"publishes", report.Publishes,
		"interrupts", report.Interrupts,
		"elapsed", report.Elapsed)
	return report, nil
}

func (r *run) fail(err error) {
	r.failOnce.Do(func() {
		r.failErr = err
		r.cancel()
	})
}

func (r *run) produce(ctx context.Context) {
	gen := NewGenerator(r.cfg.Keys)
	for i := 0; i < r.cfg.ProducerIterations; i++ {
		if ctx.Err() != nil {
			return
		}
		r.backend.Publish(gen.Next())
		r.publishes.Add(1)

		if !r.pause(ctx, "producer", r.cfg.ProducerPace) {
			return
		}
	}
}

func (r *run) consume(ctx context.Context, name string) error {
	for i := 0; i < r.cfg.ConsumerIterations; i++ {
		if ctx.Err() != nil {
			return nil
		}

		values, err := r.backend.Load(r.cfg.Keys)
		r.reads.Add(1)
		if err != nil {
			if errors.Is(err, ErrKeyMissing) {
				return &ViolationError{
					Consumer:  name,
					Iteration: i,
					Keys:      r.cfg.Keys,
					Values:    values,
					Missing:   missingKey(r.cfg.Keys, values),
				}
			}
			return fmt.Errorf("%s: load: %w", name, err)
		}
		if !allEqual(values) {
			return &ViolationError{
				Consumer:  name,
				Iteration: i,
				Keys:      r.cfg.Keys,
				Values:    values,
			}
		}

		if !r.pause(ctx, name, r.cfg.ConsumerPace) {
			return nil
		}
	}
	return nil
}

// pause sleeps between iterations. An interrupted sleep is logged and the
// loop carries on; false means ctx is done.
func (r *run) pause(ctx context.Context, who string, d time.Duration) bool {
	err := r.pacer.Sleep(ctx, d)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrInterrupted):
		r.interrupts.Add(1)
		r.logger.Warn("pacing interrupted", "run", r.id, "worker", who)
		return true
	default:
		return false
	}
}

func allEqual(values []string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// missingKey returns the first key whose slot was not filled by Load.
func missingKey(keys, values []string) string {
	for i, k := range keys {
		if i >= len(values) || values[i] == "" {
			return k
		}
	}
	return ""
}
