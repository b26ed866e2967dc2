package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		out := make([]int, 1000)
		err := For(context.Background(), len(out), Options{Workers: workers, Grain: 7}, func(lo, hi int) error {
			for i := lo; i < hi; i++ {
				out[i] += i
			}
			return nil
		})
		require.NoError(t, err)
		for i, v := range out {
			assert.Equal(t, i, v)
		}
	}
}

func TestForEmpty(t *testing.T) {
	called := false
	err := For(context.Background(), 0, Options{}, func(lo, hi int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestForError(t *testing.T) {
	boom := errors.New("boom")
	err := For(context.Background(), 100, Options{Workers: 4, Grain: 10}, func(lo, hi int) error {
		if lo == 50 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestForCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	err := For(ctx, 100, Options{Workers: 4, Grain: 10}, func(lo, hi int) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestForProgress(t *testing.T) {
	var last atomic.Int64
	err := For(context.Background(), 64, Options{Workers: 2, Grain: 16, OnProgress: func(done, total int) {
		assert.Equal(t, 64, total)
		for {
			cur := last.Load()
			if int64(done) <= cur || last.CompareAndSwap(cur, int64(done)) {
				return
			}
		}
	}}, func(lo, hi int) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, int64(64), last.Load())
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, 3, Workers(3))
	assert.Positive(t, Workers(0))
}
