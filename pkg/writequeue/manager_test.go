package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SerializesPerUser(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	var inFlight, maxInFlight atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Execute(context.Background(), 1, func() error {
				n := inFlight.Add(1)
				for {
					cur := maxInFlight.Load()
					if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inFlight.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load())
	assert.Equal(t, 1, m.QueueCount())
}

func TestManager_ReturnsError(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	boom := errors.New("boom")
	assert.ErrorIs(t, m.Execute(context.Background(), 2, func() error { return boom }), boom)
	assert.Error(t, m.Execute(context.Background(), 2, func() error { panic("x") }))
}

func TestManager_Closed(t *testing.T) {
	m := New(nil, nil)
	require.NoError(t, m.Shutdown(context.Background()))

	assert.ErrorIs(t, m.Execute(context.Background(), 1, func() error { return nil }), ErrWriteQueueClosed)
}

func TestManager_Timeout(t *testing.T) {
	m := New(&Config{WriteTimeout: 20 * time.Millisecond}, nil)
	release := make(chan struct{})
	defer func() {
		close(release)
		m.Shutdown(context.Background())
	}()

	err := m.Execute(context.Background(), 3, func() error { <-release; return nil })
	assert.ErrorIs(t, err, ErrWriteTimeout)
}
