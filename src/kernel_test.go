package sparrow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxTasks = 8
	cfg.MaxSemaphores = 4
	cfg.MaxQueues = 4
	cfg.LowestPriority = 10
	return cfg
}

func newTestKernel(t *testing.T) *Kernel {
	t.Helper()
	k := NewKernel(testConfig())
	k.Log().SetOutput(testWriter{t})
	return k
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func tickISR(k *Kernel) {
	k.EnterISR()
	k.Tick()
	k.ExitISR()
}

// Scenario 1 (spec.md §8): three tasks, strict priority. A(1) runs,
// delays 5; B(2) runs, delays 5; idle runs; after 5 ticks both are
// ready again, in priority order, and A runs first.
func Test_scenario_strictPriorityOrdering(t *testing.T) {
	k := newTestKernel(t)

	var order []string
	var mu orderedLog
	mu.log = &order

	a, err := k.NewTask(func() {
		mu.append("A")
		require.NoError(t, k.DelayTask(5))
		mu.append("A-woken")
		select {}
	}, 1)
	require.NoError(t, err)

	b, err := k.NewTask(func() {
		mu.append("B")
		require.NoError(t, k.DelayTask(5))
		select {}
	}, 2)
	require.NoError(t, err)

	go k.Run()

	assert.Eventually(t, func() bool { return mu.contains("B") }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"A", "B"}, mu.snapshot())

	assert.Eventually(t, func() bool { return k.Stats().DelayedCount == 2 }, time.Second, time.Millisecond)
	assert.True(t, k.IsReady(k.idle.id))

	for i := 0; i < 5; i++ {
		tickISR(k)
	}

	// Both A and B expire on the same tick, but strict-priority
	// scheduling only ever dispatches the ready head: A (priority 1)
	// runs again immediately, B (priority 2) goes back to ready and
	// waits for A to yield (spec.md §8 scenario 1).
	assert.Eventually(t, func() bool { return mu.contains("A-woken") }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"A", "B", "A-woken"}, mu.snapshot())

	assert.True(t, k.IsReady(a.id))
	assert.True(t, k.IsReady(b.id))
	assert.Equal(t, a.id, k.Current().id)
}

// Priorities are unique; a second NewTask at a priority already in
// use must fail without mutating any list (spec.md §3).
func Test_newTask_duplicatePriorityRejected(t *testing.T) {
	k := newTestKernel(t)
	_, err := k.NewTask(func() { select {} }, 5)
	require.NoError(t, err)

	_, err = k.NewTask(func() { select {} }, 5)
	require.Error(t, err)

	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, ErrInvalidArgument, kerr.Code)
}

func Test_newTask_rejectsLowestPriority(t *testing.T) {
	k := newTestKernel(t)
	_, err := k.NewTask(func() {}, k.cfg.LowestPriority)
	require.Error(t, err)
}

func Test_newTask_poolExhaustion(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTasks = 2 // idle plus exactly one real task
	k := NewKernel(cfg)
	k.Log().SetOutput(testWriter{t})

	_, err := k.NewTask(func() { select {} }, 1)
	require.NoError(t, err)

	_, err = k.NewTask(func() { select {} }, 2)
	require.Error(t, err)
	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, ErrPoolExhausted, kerr.Code)
}

// orderedLog is a tiny race-free append-only log for assertions.
type orderedLog struct {
	log *[]string
	mu  sync.Mutex
}

func (o *orderedLog) append(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.log = append(*o.log, s)
}

func (o *orderedLog) contains(s string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, v := range *o.log {
		if v == s {
			return true
		}
	}
	return false
}

func (o *orderedLog) snapshot() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(*o.log))
	copy(out, *o.log)
	return out
}
