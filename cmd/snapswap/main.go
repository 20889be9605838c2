// Command snapswap runs one configuration producer against a pool of
// consumers and exits non-zero if any consumer observes a torn read.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"snapswap"
	"snapswap/internal/config"
	"snapswap/internal/threadid"
	"snapswap/internal/workload"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Keep main on one OS thread so the completion line names it.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	cfg, err := parseConfig(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "snapswap: %v\n", err)
		return 2
	}

	log, flush, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "snapswap: %v\n", err)
		return 2
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pacer := workload.NewPacer()
	interruptOnHangup(ctx, pacer)

	backend, closeBackend := newBackend(cfg, log)
	defer closeBackend()

	_, err = workload.Run(ctx, backend, cfg.WorkloadConfig(), pacer, log)
	if err != nil {
		var violation *workload.ViolationError
		if errors.As(err, &violation) {
			log.Error("torn read detected", "consumer", violation.Consumer, "iteration", violation.Iteration)
		}
		return 1
	}

	fmt.Fprintf(stdout, "[main] all workers have finished (tid %d)\n", threadid.Get())
	return 0
}

func newBackend(cfg config.Config, log snapswap.Logger) (workload.Backend, func()) {
	keys := cfg.Workload.Keys
	initial := workload.NewGenerator(keys).Next()

	if cfg.Workload.Backend == config.BackendInPlace {
		return workload.NewInPlaceBackend(keys, initial), func() {}
	}

	store := snapswap.New(snapswap.NewSnapshot(initial),
		snapswap.WithMaxReaders(cfg.Store.MaxReaders),
		snapswap.WithHistory(cfg.Store.History),
		snapswap.WithReleaseInterval(cfg.Store.ReleaseInterval.Duration),
		snapswap.WithLogger(log),
	)
	closeFn := func() { _ = store.Close() }
	if cfg.Workload.Backend == config.BackendPinned {
		return workload.NewPinnedBackend(store), closeFn
	}
	return workload.NewSwapBackend(store), closeFn
}

// interruptOnHangup cuts pacing sleeps short on SIGHUP. Workers log it and
// carry on.
func interruptOnHangup(ctx context.Context, pacer *workload.Pacer) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-hup:
				pacer.Interrupt()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func parseConfig(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("snapswap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		path               = fs.String("config", "", "path to a TOML config file")
		backend            = fs.String("backend", "", "swap, pinned or inplace")
		consumers          = fs.Int("consumers", 0, "number of consumer workers")
		consumerIterations = fs.Int("iterations", 0, "reads per consumer")
		producerIterations = fs.Int("producer-iterations", 0, "replacements made by the producer")
		consumerPace       = fs.Duration("consumer-pace", 0, "pause between consumer reads")
		producerPace       = fs.Duration("producer-pace", 0, "pause between replacements")
		keys               = fs.String("keys", "", "comma separated configuration keys")
		logBackend         = fs.String("log", "", "zap or logrus")
		logLevel           = fs.String("level", "", "log level")
	)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			return config.Config{}, err
		}
	}

	// Explicit flags win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Workload.Backend = *backend
		case "consumers":
			cfg.Workload.Consumers = *consumers
		case "iterations":
			cfg.Workload.ConsumerIterations = *consumerIterations
		case "producer-iterations":
			cfg.Workload.ProducerIterations = *producerIterations
		case "consumer-pace":
			cfg.Workload.ConsumerPace = config.Duration{Duration: *consumerPace}
		case "producer-pace":
			cfg.Workload.ProducerPace = config.Duration{Duration: *producerPace}
		case "keys":
			cfg.Workload.Keys = strings.Split(*keys, ",")
		case "log":
			cfg.Log.Backend = *logBackend
		case "level":
			cfg.Log.Level = *logLevel
		}
	})

	return cfg, cfg.Validate()
}
