package sparrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// The ready list stays strictly ascending by priority (spec.md §3
// invariant 1) regardless of insertion order.
func Test_readyList_staysOrderedByPriority(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := NewKernel(testConfig())
		k.Log().SetOutput(discardWriter{})

		n := rapid.IntRange(0, 6).Draw(rt, "n")
		used := map[int]bool{k.idle.priority: true}
		var created []*TCB
		for i := 0; i < n; i++ {
			var p int
			for {
				p = rapid.IntRange(1, k.cfg.LowestPriority-1).Draw(rt, "priority")
				if !used[p] {
					break
				}
			}
			used[p] = true
			tk, err := k.NewTask(func() { select {} }, p)
			if err != nil {
				continue
			}
			created = append(created, tk)
		}

		var prev = -1
		count := 0
		for cur := k.readyHead; cur != nil; cur = cur.next {
			assert.True(rt, cur.priority > prev, "ready list must be strictly ascending")
			prev = cur.priority
			count++
		}
		assert.Equal(rt, len(created)+1, count) // +1 for idle
	})
}

// The delayed list's delta encoding always sums to each task's
// original absolute delay (spec.md §3 invariant 4, §9 design note).
func Test_delayedList_deltaSumMatchesAbsoluteDelay(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := NewKernel(testConfig())
		k.Log().SetOutput(discardWriter{})

		delays := rapid.SliceOfN(rapid.IntRange(1, 50), 1, 6).Draw(rt, "delays")

		tasks := make([]*TCB, 0, len(delays))
		for i, d := range delays {
			tk, err := k.NewTask(func() { select {} }, i+1)
			if err != nil {
				continue
			}
			k.removeReady(tk)
			k.insertDelayed(tk, d)
			tasks = append(tasks, tk)
		}

		for i, tk := range tasks {
			sum := 0
			for cur := k.delayedHead; ; cur = cur.next {
				sum += cur.delayTicks
				if cur == tk {
					break
				}
			}
			assert.Equal(rt, delays[i], sum, "prefix sum of deltas must equal original absolute delay")
		}
	})
}

// removeHead on an empty or single-element pendingList never panics
// and leaves head/tail nil (spec.md §9 open question 3).
func Test_pendingList_removeHeadGuardsSmallLists(t *testing.T) {
	var p pendingList
	assert.Nil(t, p.removeHead())
	assert.True(t, p.empty())

	solo := &TCB{id: 1}
	p.insert(solo)
	got := p.removeHead()
	assert.Same(t, solo, got)
	assert.True(t, p.empty())
	assert.Nil(t, p.head)
	assert.Nil(t, p.tail)
}
