package snapswap

import "time"

// Options configures Store behavior.
type Options struct {
	maxReaders      int           // Reader slots available to View.
	history         uint32        // Recently published snapshots kept for At. 0 disables history.
	releaseInterval time.Duration // Period of the background releaser.
	logger          Logger
	onRelease       func(version uint64)
}

// DefaultOptions returns safe default configuration.
//
// goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		maxReaders:      128,
		releaseInterval: 100 * time.Millisecond,
		logger:          DiscardLogger{},
	}
}

// Option configures store options using the functional options pattern.
type Option func(*Options)

// WithMaxReaders sets how many View calls may pin a snapshot at once.
//
//goland:noinspection GoUnusedExportedFunction
func WithMaxReaders(n int) Option {
	return func(opts *Options) {
		opts.maxReaders = n
	}
}

// WithHistory keeps the n most recently published snapshots reachable
// through At. Retained snapshots are not reclaimed until evicted.
//
//goland:noinspection GoUnusedExportedFunction
func WithHistory(n uint32) Option {
	return func(opts *Options) {
		opts.history = n
	}
}

// WithReleaseInterval sets how often retired snapshots are checked for
// release when no reader signals it first.
//
//goland:noinspection GoUnusedExportedFunction
func WithReleaseInterval(d time.Duration) Option {
	return func(opts *Options) {
		opts.releaseInterval = d
	}
}

// WithLogger sets the logger. See pkg logger for zap and logrus adapters.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		if l != nil {
			opts.logger = l
		}
	}
}

// WithOnRelease registers a hook called from the releaser goroutine each
// time a retired version is no longer pinned by any reader.
//
//goland:noinspection GoUnusedExportedFunction
func WithOnRelease(fn func(version uint64)) Option {
	return func(opts *Options) {
		opts.onRelease = fn
	}
}
