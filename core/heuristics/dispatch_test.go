package heuristics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherOrder(t *testing.T) {
	d := NewDispatcher()
	for i := 0; i < 100; i++ {
		require.NoError(t, d.Send(fmt.Sprintf("msg-%d", i)))
	}
	msgs := drain(d)
	require.Len(t, msgs, 100)
	for i, msg := range msgs {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), msg)
	}
}

func TestDispatcherConcurrentSenders(t *testing.T) {
	d := NewDispatcher()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.TrySend(fmt.Sprintf("%d-%d", i, j), true)
			}
		}(i)
	}
	wg.Wait()
	assert.Len(t, drain(d), 500)
}

func TestDispatcherTrySend(t *testing.T) {
	d := NewDispatcher()
	d.TrySend("skipped", false)
	d.TrySend("saved", true)
	assert.Equal(t, []string{"saved"}, drain(d))

	// 已经停止的dispatcher上发送不会panic
	d.TrySend("late", true)
	assert.ErrorIs(t, d.Send("late"), ErrDispatcherClosed)

	var nilDispatcher *Dispatcher
	assert.NotPanics(t, func() { nilDispatcher.TrySend("nothing", true) })
}

func TestDispatcherClose(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, d.Send("dropped"))
	d.Close()
	d.Close()

	for range d.C() {
	}
	assert.ErrorIs(t, d.Send("after close"), ErrDispatcherClosed)
	assert.NotPanics(t, func() { d.TrySend("after close", true) })
}
