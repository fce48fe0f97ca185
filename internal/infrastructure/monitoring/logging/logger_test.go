package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &zapLogger{z: zap.New(core)}, logs
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := NewLogger(Config{Level: "debug", Format: format})
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, l)
	}
}

func TestZapLogger_FieldConversion(t *testing.T) {
	l, logs := newObservedLogger()

	l.Info("computed",
		String("tribunal", "TJSP"),
		Int("effective_days", 30),
		Int64("elapsed_ns", 1200),
		Bool("doubling", true),
		Duration("took", time.Millisecond),
		Err(errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "computed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "TJSP", fields["tribunal"])
	assert.Equal(t, int64(30), fields["effective_days"])
	assert.Equal(t, true, fields["doubling"])
	assert.Equal(t, "boom", fields["error"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	l, logs := newObservedLogger()

	child := l.With(String("request_id", "abc")).Named("engine")
	child.Warn("skipped day")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "engine", entries[0].LoggerName)
	assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
}

func TestZapLogger_SetLevelAtRuntime(t *testing.T) {
	lvl := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core, logs := observer.New(lvl)
	var l Logger = &zapLogger{z: zap.New(core), lvl: &lvl}

	l.Debug("hidden")
	assert.Equal(t, 0, logs.Len())

	setter, ok := l.(LevelSetter)
	require.True(t, ok)
	setter.SetLevel("debug")

	l.Debug("visible")
	// Children created before the change pick it up too.
	l.Named("child").Debug("also visible")
	assert.Equal(t, 2, logs.Len())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	// Must not panic, including chained calls.
	l.With(String("k", "v")).Named("x").Info("ignored")
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l, logs := newObservedLogger()
	SetDefault(l)
	Default().Info("hello")
	assert.Equal(t, 1, logs.Len())

	// nil is ignored
	SetDefault(nil)
	assert.Equal(t, l, Default())
}

func TestTimeField(t *testing.T) {
	f := Time("due_date", time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-03-09", f.Value)
}
