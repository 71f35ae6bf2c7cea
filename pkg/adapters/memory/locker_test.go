package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_MutualExclusion(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "train", time.Minute)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			assert.NoError(t, unlock(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Zero(t, l.active(), "released keys are garbage collected")
}

func TestLocker_ContextCancel(t *testing.T) {
	l := NewLocker()
	unlock, err := l.Lock(context.Background(), "train", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "train", 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(context.Background()))
	require.NoError(t, unlock(context.Background()), "unlocking twice is a no-op")
	assert.Zero(t, l.active())
}

func TestLocker_IndependentKeys(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		unlock, err := l.Lock(ctx, fmt.Sprintf("key-%d", i), 0)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
	}
	assert.Zero(t, l.active())

	a, err := l.Lock(ctx, "a", 0)
	require.NoError(t, err)
	b, err := l.Lock(ctx, "b", 0)
	require.NoError(t, err, "distinct keys do not block each other")
	assert.Equal(t, 2, l.active())
	require.NoError(t, a(ctx))
	require.NoError(t, b(ctx))
}
