package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"snapswap"
	"snapswap/internal/config"
	"snapswap/logger"
)

// newLogger builds the configured logger writing to w. The returned
// function flushes it.
func newLogger(cfg config.Log, w io.Writer) (snapswap.Logger, func(), error) {
	switch cfg.Backend {
	case "logrus":
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(lvl)
		return logger.NewLogrus(l), func() {}, nil

	default:
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		ecfg := zap.NewProductionEncoderConfig()
		ecfg.EncodeTime = func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(t.Format("2006-01-02T15:04:05.000"))
		}
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(ecfg), zapcore.Lock(zapcore.AddSync(w)), lvl)
		z := zap.New(core)
		return logger.NewZap(z), func() { _ = z.Sync() }, nil
	}
}
