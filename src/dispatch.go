package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	The one architecture-specific primitive spec.md §1
 *		deliberately keeps out of the core: dispatch_to.
 *
 * Description:	On real hardware, dispatch_to saves the caller's
 *		registers and instruction pointer on its own stack,
 *		stores the updated stack pointer in the old TCB, swaps to
 *		the new TCB's stack, and restores its registers — or, from
 *		ISR context, just swaps stacks (spec.md §4.3). Go doesn't
 *		expose raw register/stack access, so this port's default
 *		Dispatcher realizes the "restore the new task" half of
 *		that contract with a per-task "baton" channel: each task
 *		already runs inside its own goroutine (started once, at
 *		NewTask time, parked until first dispatched), and only the
 *		goroutine holding the baton is logically "running".
 *
 *		The "save the old task" half — parking the previously
 *		running task's own goroutine — can only be done by that
 *		goroutine itself, so Kernel.scheduleLocked does not do it;
 *		every task-context call site parks itself, synchronously,
 *		right after releasing the critical section (see sem.go,
 *		queue.go, delay.go, kernel.go's NewTask). A call made from
 *		ISR context has no "calling task's goroutine" to park (the
 *		caller is whatever goroutine is driving the simulated
 *		interrupt): the preempted task's goroutine keeps running
 *		free until its own next trip through a kernel call, at
 *		which point it blocks until rescheduled. This is the one
 *		acknowledged gap between this port and true
 *		instruction-level preemption, and it is exactly the gap
 *		spec.md §1 assigns to an external, opaque collaborator.
 *
 *---------------------------------------------------------------*/

// Dispatcher performs the "resume the new task" half of a context
// switch. Callers never invoke this directly; Kernel.scheduleLocked
// does, always while holding the critical section.
type Dispatcher interface {
	DispatchTo(old, next *TCB)
}

// GoroutineDispatcher is the default Dispatcher: cooperative baton
// hand-off over per-task channels, described above.
type GoroutineDispatcher struct{}

func (GoroutineDispatcher) DispatchTo(old, next *TCB) {
	next.resume()
}

// resume wakes t's goroutine if it is parked; idempotent if t is
// already runnable (the channel has capacity one).
func (t *TCB) resume() {
	select {
	case t.baton <- struct{}{}:
	default:
	}
}

// park blocks the calling goroutine until resume is called for t.
func (t *TCB) park() {
	<-t.baton
}
