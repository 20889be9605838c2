package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZap(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZap(zap.New(core))

	l.Info("snapshot store closed", "version", uint64(3))
	l.Warn("view rejected", "error", "full")
	l.Error("workload failed")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "snapshot store closed", entries[0].Message)
	assert.Equal(t, uint64(3), entries[0].ContextMap()["version"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestLogrus(t *testing.T) {
	t.Parallel()

	base, hook := logrustest.NewNullLogger()
	l := NewLogrus(base)

	l.Info("workload started", "run", "abc", "consumers", 5)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "workload started", entry.Message)
	assert.Equal(t, "abc", entry.Data["run"])
	assert.Equal(t, 5, entry.Data["consumers"])

	l.Warn("pacing interrupted")
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	l.Error("workload failed")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Len(t, hook.AllEntries(), 3)
}

func TestArgsToFieldsSkipsMalformedPairs(t *testing.T) {
	t.Parallel()

	fields := argsToFields([]any{"a", 1, 2, "b", "dangling"})
	assert.Equal(t, logrus.Fields{"a": 1}, fields)
}
