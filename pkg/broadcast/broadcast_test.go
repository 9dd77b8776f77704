package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/broadcast"
)

func TestBroadcaster_Publish(t *testing.T) {
	t.Run("delivers to every subscriber", func(t *testing.T) {
		b := broadcast.New[int](4)
		defer b.Close()

		ctx := context.Background()
		first := b.Subscribe(ctx)
		second := b.Subscribe(ctx)

		assert.Equal(t, 2, b.Publish(7))
		assert.Equal(t, 7, <-first)
		assert.Equal(t, 7, <-second)
	})

	t.Run("drops updates for full buffers", func(t *testing.T) {
		b := broadcast.New[string](1)
		defer b.Close()

		ch := b.Subscribe(context.Background())
		assert.Equal(t, 1, b.Publish("a"))
		assert.Equal(t, 0, b.Publish("b"))
		assert.Equal(t, "a", <-ch)
		assert.Equal(t, 1, b.Len(), "slow subscriber stays subscribed")
	})

	t.Run("no subscribers", func(t *testing.T) {
		b := broadcast.New[int](0)
		defer b.Close()
		assert.Equal(t, 0, b.Publish(1))
	})
}

func TestBroadcaster_Subscribe(t *testing.T) {
	t.Run("context cancellation closes the channel", func(t *testing.T) {
		b := broadcast.New[int](1)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		ch := b.Subscribe(ctx)
		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel was not closed")
		}
		assert.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 10*time.Millisecond)
	})

	t.Run("subscribe after close returns closed channel", func(t *testing.T) {
		b := broadcast.New[int](1)
		b.Close()

		_, ok := <-b.Subscribe(context.Background())
		assert.False(t, ok)
		assert.Equal(t, 0, b.Publish(1))
	})
}

func TestBroadcaster_Close(t *testing.T) {
	b := broadcast.New[int](1)
	ch := b.Subscribe(context.Background())

	b.Close()
	b.Close()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestBroadcaster_Concurrent(t *testing.T) {
	b := broadcast.New[int](128)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channels := make([]<-chan int, 4)
	for i := range channels {
		channels[i] = b.Subscribe(ctx)
	}

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 16 {
				b.Publish(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	for _, ch := range channels {
		require.Len(t, ch, 64)
	}
}
