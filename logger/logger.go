// Package logger adapts zap and logrus loggers to snapswap.Logger.
//
// The store and the workload driver log key/value pairs: the store reports
// "snapshot store closed" at Info with its version and release counters and
// "view rejected" at Warn when every reader slot is taken; the driver reports
// run start and finish, interrupted pacing waits and torn reads.
//
// Wiring a store to zap:
//
//	z, _ := zap.NewProduction()
//	defer z.Sync()
//
//	store := snapswap.New(
//	    snapswap.NewSnapshot(map[string]string{"key-1": "t0"}),
//	    snapswap.WithLogger(logger.NewZap(z)),
//	)
//	defer store.Close()
//
// With logrus, pass logger.NewLogrus(logrus.New()) instead.
package logger
