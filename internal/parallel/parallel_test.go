package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4}

	var counter int64
	seen := make([]bool, 100)
	err := For(context.Background(), len(seen), func(_ context.Context, i int) error {
		atomic.AddInt64(&counter, 1)
		seen[i] = true
		return nil
	}, cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(100), counter)
	for i, ok := range seen {
		assert.True(t, ok, "missing index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	err := For(context.Background(), 5, func(_ context.Context, i int) error {
		order = append(order, i)
		return nil
	}, cfg)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_SequentialStopsOnError(t *testing.T) {
	boom := errors.New("boom")

	calls := 0
	err := For(context.Background(), 5, func(_ context.Context, i int) error {
		calls++
		if i == 2 {
			return boom
		}
		return nil
	}, Config{})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestFor_ParallelError(t *testing.T) {
	boom := errors.New("boom")

	err := For(context.Background(), 50, func(ctx context.Context, i int) error {
		if i == 7 {
			return boom
		}
		return nil
	}, Config{Enabled: true, NumWorkers: 3})

	assert.ErrorIs(t, err, boom)
}

func TestFor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	err := For(ctx, 10, func(context.Context, int) error {
		atomic.AddInt64(&calls, 1)
		return nil
	}, Config{Enabled: true, NumWorkers: 2})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.NumWorkers)
}
