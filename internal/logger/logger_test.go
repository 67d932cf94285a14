package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLoggerCaptures(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %d", 1)
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	assert.Len(t, l.Messages, 4)
	assert.Equal(t, "debug 1", l.Messages[0].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("fatal"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestNoopDiscards(t *testing.T) {
	l := Noop()
	// Should not panic or produce output
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("hello %s", "world")

	assert.Len(t, buf.Messages, 1)
	assert.Equal(t, "hello world", buf.Messages[0].Message)
}
