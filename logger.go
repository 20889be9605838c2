package snapswap

// Logger receives the store's few log lines: one Info when Close finishes,
// with the final version and release counters, and one Warn each time View
// turns a reader away because every reader slot is busy. Arguments are
// alternating key/value pairs, so *slog.Logger satisfies it as is; adapters
// for zap and logrus live in package logger.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

// DiscardLogger drops everything. Store uses it unless WithLogger is given.
type DiscardLogger struct{}

func (d DiscardLogger) Error(string, ...any) {}

func (d DiscardLogger) Warn(string, ...any) {}

func (d DiscardLogger) Info(string, ...any) {}
