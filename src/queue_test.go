package sparrow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Scenario 3 (spec.md §8): capacity-2 queue. Posting m1, m2, m3
// returns true, true, false. A consumer pending afterward receives
// m1 then m2, in order.
func Test_scenario_queueFullDrop(t *testing.T) {
	k := newTestKernel(t)
	q, err := k.QueueCreate(2)
	require.NoError(t, err)

	assert.True(t, k.QueuePost(q, "m1"))
	assert.True(t, k.QueuePost(q, "m2"))
	assert.False(t, k.QueuePost(q, "m3"))

	assert.Equal(t, "m1", k.QueuePend(q))
	assert.Equal(t, "m2", k.QueuePend(q))
}

// Messages are delivered in strict FIFO order under a sequence of
// posts until full followed by pends until empty, for any capacity.
func Test_queue_fifoOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(rt, "capacity")

		k := NewKernel(testConfig())
		k.Log().SetOutput(discardWriter{})
		q, err := k.QueueCreate(capacity)
		require.NoError(t, err)

		for i := 0; i < capacity; i++ {
			assert.True(rt, k.QueuePost(q, i))
		}
		assert.False(rt, k.QueuePost(q, "overflow"))

		for i := 0; i < capacity; i++ {
			assert.Equal(rt, i, k.QueuePend(q))
		}
		assert.Equal(rt, 0, q.Len())
	})
}

// queue.count == 0 whenever queue.pending is non-empty (spec.md §3
// invariant 7): a consumer that blocks on an empty queue must see
// count still at 0.
func Test_queuePend_blocksOnEmpty_countStaysZero(t *testing.T) {
	k := newTestKernel(t)
	q, err := k.QueueCreate(1)
	require.NoError(t, err)

	received := make(chan any, 1)
	_, err = k.NewTask(func() {
		received <- k.QueuePend(q)
		select {}
	}, 1)
	require.NoError(t, err)

	go k.Run()

	assert.Eventually(t, func() bool { return q.Waiters() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, q.Len())

	// The test goroutine is not a task, so it posts from simulated ISR
	// context; the consumer is dispatched at ExitISR.
	k.EnterISR()
	assert.True(t, k.QueuePost(q, "hello"))
	k.ExitISR()

	select {
	case msg := <-received:
		assert.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("consumer never received posted message")
	}
}
