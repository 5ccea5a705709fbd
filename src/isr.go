package sparrow

import "time"

/*------------------------------------------------------------------
 *
 * Purpose:	ISR nesting tracker and the tick ISR body (spec.md §4.8).
 *
 * Description:	EnterISR/ExitISR must bracket every simulated
 *		interrupt handler, after whatever architecture-specific
 *		context save the handler needs (out of scope here, per
 *		spec.md §1). Only the outermost ExitISR — the one that
 *		brings nesting back to zero — may cause a reschedule;
 *		this is what lets a tick ISR be preempted by a higher
 *		priority ISR (spec.md §8 scenario 6) without either one
 *		switching tasks until both have finished.
 *
 *---------------------------------------------------------------*/

// EnterISR marks entry into interrupt-handler context.
func (k *Kernel) EnterISR() {
	prev := k.cs.enter()
	k.isrNesting++
	k.cs.exit(prev)
}

// ExitISR marks exit from interrupt-handler context. If this brings
// nesting back to zero, it may cause a reschedule. The calling
// goroutine is the simulated interrupt, never a task, so it never
// parks — see dispatch.go for why that's the one place this port
// can't force an immediate preemption of a free-running task.
func (k *Kernel) ExitISR() {
	prev := k.cs.enter()
	k.isrNesting--
	k.assert(k.isrNesting >= 0, "ExitISR", "nesting must never go negative")
	if k.isrNesting == 0 {
		k.scheduleLocked()
	}
	k.cs.exit(prev)
}

// Tick is the tick ISR's body: advance the tick counter, decrement
// the delayed list's head, and move every task whose delta reached
// zero onto the ready list, in expiry order (spec.md §4.5, §4.8).
// Call this between EnterISR and ExitISR, driven by whatever
// goroutine simulates the periodic timer interrupt (see
// cmd/sparrow-sim's TickSource implementations).
func (k *Kernel) Tick() {
	prev := k.cs.enter()
	k.ticks++
	for _, t := range k.tickDelayed() {
		k.insertReady(t)
	}
	k.log.tick(time.Now())
	k.cs.exit(prev)
}
