package spatialgo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggerProgressThrottled(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	progress := l.Progress(context.Background(), "filter", time.Hour)
	progress(10, 100)
	progress(20, 100)
	progress(30, 100)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "msg=progress"))
	assert.Contains(t, out, "op=filter")
	assert.Contains(t, out, "done=10")
}

func TestLoggerLogFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.LogFilter(context.Background(), 5, 2, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "filter completed")

	buf.Reset()
	l.LogFilter(context.Background(), 5, 2, 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLoggerLogWeightsDegenerate(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.LogWeights(context.Background(), 4, 2, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "degenerate=2")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf).WithOp("cluster").WithPoints(12)

	l.Info("hello")
	assert.Contains(t, buf.String(), "op=cluster")
	assert.Contains(t, buf.String(), "points=12")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
