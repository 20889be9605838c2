package workload

import (
	"context"
	"sync"
	"time"
)

// Pacer spaces out loop iterations. Interrupt wakes every goroutine
// currently sleeping; the sleeper sees ErrInterrupted.
type Pacer struct {
	mu   sync.Mutex
	wake chan struct{}
}

func NewPacer() *Pacer {
	return &Pacer{wake: make(chan struct{})}
}

// Interrupt ends all in-progress sleeps early.
func (p *Pacer) Interrupt() {
	p.mu.Lock()
	close(p.wake)
	p.wake = make(chan struct{})
	p.mu.Unlock()
}

// Sleep waits for d. Returns nil when d elapses, ErrInterrupted when
// Interrupt is called first, or ctx.Err() when ctx is done.
func (p *Pacer) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	wake := p.wake
	p.mu.Unlock()

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-wake:
		return ErrInterrupted
	case <-ctx.Done():
		return ctx.Err()
	}
}
