package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	Self-delay (spec.md §4.5).
 *
 *---------------------------------------------------------------*/

import "fmt"

// DelayTask removes the calling task from the ready list for count
// ticks. Tasks only delay themselves; count must be >= 1.
func (k *Kernel) DelayTask(count int) error {
	if count < 1 {
		return newInvalidArgument("DelayTask", fmt.Sprintf("count must be >= 1, got %d", count))
	}

	prev := k.cs.enter()

	self := k.current
	if self == k.idle {
		k.cs.exit(prev)
		k.assert(false, "DelayTask", "the idle task is never delayed")
		return nil
	}

	k.removeReady(self)
	k.insertDelayed(self, count)

	switched := k.scheduleLocked()
	k.cs.exit(prev)
	if switched {
		self.park()
	}
	return nil
}
