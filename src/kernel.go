package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	The kernel's global state, packaged as a single owning
 *		structure per spec.md §9's design note, plus task
 *		creation, startup and the scheduler entry point.
 *
 *---------------------------------------------------------------*/

import "fmt"

// Kernel owns every piece of process-wide state spec.md §3 lists:
// the critical section, the static pools, the ready/delayed lists,
// the current-task pointer, and the counters. Exactly one Kernel is
// created per process, by NewKernel, mirroring spec.md §4.4's
// initialize() contract (disable interrupts, create the idle task,
// install a dummy current-task so the first schedule() unconditionally
// dispatches).
type Kernel struct {
	cs criticalSection

	cfg Config
	log *diagLogger

	tasks *taskPool
	sems  *semPool
	qs    *queuePool

	readyHead, readyTail     *TCB
	delayedHead, delayedTail *TCB

	current *TCB
	idle    *TCB

	dispatcher Dispatcher

	contextSwitches uint64
	idleCount       uint64
	ticks           uint64
	isrNesting      int
	started         bool
}

// dummyTCB is current_task's initial value: it differs in id from
// every real task (including idle, id 0) so the very first
// scheduleLocked call is guaranteed to see a mismatch and dispatch.
var dummyTCB = &TCB{id: -1}

// NewKernel is spec.md §4.4's initialize(): it must be called exactly
// once, before Run, and before any call that creates a task.
func NewKernel(cfg Config) *Kernel {
	k := &Kernel{
		cfg:        cfg,
		log:        newDiagLogger(),
		tasks:      newTaskPool(cfg.MaxTasks),
		sems:       newSemPool(cfg.MaxSemaphores),
		qs:         newQueuePool(cfg.MaxQueues),
		dispatcher: GoroutineDispatcher{},
		current:    dummyTCB,
	}

	prev := k.cs.enter()
	defer k.cs.exit(prev)

	idle, ok := k.tasks.alloc(nil, cfg.LowestPriority)
	if !ok {
		panic("sparrow: task pool too small to hold the idle task")
	}
	idle.entry = func() { k.idleLoop(idle) }
	k.idle = idle
	k.insertReady(idle)
	k.startTaskGoroutine(idle)

	return k
}

// SetLogger swaps the diagnostic sink, e.g. a test installing a
// buffer, or a deployment redirecting to a daily-rotated trace file.
func (k *Kernel) SetLogger(l *diagLogger) { k.log = l }

// Log exposes the kernel's diagnostic channel for callers (the demo
// command, tests) that want to enable daily trace rotation.
func (k *Kernel) Log() *diagLogger { return k.log }

// SetDispatcher overrides the default goroutine-baton Dispatcher; the
// architecture-dependent seam spec.md §1 calls out as external.
func (k *Kernel) SetDispatcher(d Dispatcher) { k.dispatcher = d }

func (k *Kernel) assert(cond bool, op, msg string) {
	if cond {
		return
	}
	k.log.errorf("invariant breach in %s: %s", op, msg)
	panic(fmt.Sprintf("sparrow: invariant breach in %s: %s", op, msg))
}

// priorityTaken reports whether priority is already held by an
// allocated task; priorities are unique across all tasks (spec.md §3).
func (k *Kernel) priorityTaken(priority int) bool {
	for i := 0; i < k.tasks.used; i++ {
		if k.tasks.slots[i].priority == priority {
			return true
		}
	}
	return false
}

// NewTask allocates a TCB, starts its goroutine parked, and inserts it
// into the ready list (spec.md §4.4). If the kernel has already been
// started, a successful creation may immediately preempt the caller.
func (k *Kernel) NewTask(entry func(), priority int) (*TCB, error) {
	if entry == nil {
		return nil, newInvalidArgument("NewTask", "entry must not be nil")
	}
	if priority < 1 || priority >= k.cfg.LowestPriority {
		return nil, newInvalidArgument("NewTask", fmt.Sprintf("priority must be in [1, %d)", k.cfg.LowestPriority))
	}

	prev := k.cs.enter()

	if k.priorityTaken(priority) {
		k.cs.exit(prev)
		return nil, newInvalidArgument("NewTask", fmt.Sprintf("priority %d already in use", priority))
	}

	t, ok := k.tasks.alloc(entry, priority)
	if !ok {
		k.log.errorf("NewTask: task pool exhausted (capacity %d)", k.cfg.MaxTasks)
		k.cs.exit(prev)
		return nil, newPoolExhausted("NewTask", "task", k.cfg.MaxTasks)
	}

	k.insertReady(t)
	k.startTaskGoroutine(t)

	creator := k.current
	switched := false
	if k.started {
		switched = k.scheduleLocked()
	}
	k.cs.exit(prev)
	if switched && creator != dummyTCB {
		creator.park()
	}
	return t, nil
}

func (k *Kernel) startTaskGoroutine(t *TCB) {
	if t.started {
		return
	}
	t.started = true
	go func() {
		t.park()
		t.entry()
	}()
}

// Run is spec.md §4.4's run(): it enables interrupts, marks the
// kernel started, performs the first schedule, and never returns. The
// calling goroutine is not a task, so it never parks.
func (k *Kernel) Run() {
	k.cs.enter()
	k.started = true
	k.scheduleLocked()
	k.cs.exit(true)
	select {} // run() never returns; see spec.md §7.
}

// scheduleLocked is spec.md §4.3's schedule(): it assumes the critical
// section is already held. It reports whether a switch happened; it
// never blocks. A task-context caller that switched away from itself
// is responsible for parking its own goroutine after releasing the
// critical section (see dispatch.go).
func (k *Kernel) scheduleLocked() (switched bool) {
	head := k.readyHead
	k.assert(head != nil, "scheduleLocked", "ready list must never be empty")

	if head.id == k.current.id {
		return false
	}
	old := k.current
	k.contextSwitches++
	k.current = head

	var dispatchOld *TCB
	if old != dummyTCB {
		dispatchOld = old
	}
	k.dispatcher.DispatchTo(dispatchOld, head)
	return true
}

// Stats is a read-only snapshot of the kernel's counters, a standard
// amenity spec.md's data model already tracks but never exposes.
type Stats struct {
	ContextSwitches uint64
	IdleCount       uint64
	Ticks           uint64
	ISRNesting      int
	ReadyCount      int
	DelayedCount    int
}

func (k *Kernel) Stats() Stats {
	prev := k.cs.enter()
	defer k.cs.exit(prev)

	ready, delayed := 0, 0
	for t := k.readyHead; t != nil; t = t.next {
		ready++
	}
	for t := k.delayedHead; t != nil; t = t.next {
		delayed++
	}
	return Stats{
		ContextSwitches: k.contextSwitches,
		IdleCount:       k.idleCount,
		Ticks:           k.ticks,
		ISRNesting:      k.isrNesting,
		ReadyCount:      ready,
		DelayedCount:    delayed,
	}
}

// Current returns the task the scheduler currently considers running.
func (k *Kernel) Current() *TCB {
	prev := k.cs.enter()
	defer k.cs.exit(prev)
	return k.current
}

// IsReady reports whether id is currently on the ready list.
func (k *Kernel) IsReady(id TaskID) bool {
	prev := k.cs.enter()
	defer k.cs.exit(prev)
	for t := k.readyHead; t != nil; t = t.next {
		if t.id == id {
			return true
		}
	}
	return false
}

// TaskPriority reports the fixed priority a task was created with.
// Priorities never change after NewTask, so this needs no locking
// beyond a consistent read of the TCB field.
func (k *Kernel) TaskPriority(id TaskID) (int, error) {
	prev := k.cs.enter()
	defer k.cs.exit(prev)
	for i := 0; i < k.tasks.used; i++ {
		if k.tasks.slots[i].id == id {
			return k.tasks.slots[i].priority, nil
		}
	}
	return 0, newInvalidArgument("TaskPriority", fmt.Sprintf("no such task id %d", id))
}

// idleLoop is spec.md §4.4's idle task: forever increment a counter,
// briefly under the critical section so the value observed by other
// code (e.g. a CPU-utilization sample) is never torn by a tick ISR.
// Checking k.current after each increment is this port's cooperative
// yield point for the one task that never calls a blocking primitive
// (see dispatch.go's note on the limits of goroutine-based dispatch).
func (k *Kernel) idleLoop(self *TCB) {
	for {
		prev := k.cs.enter()
		k.idleCount++
		yieldNow := k.current.id != self.id
		k.cs.exit(prev)

		if yieldNow {
			self.park()
		}
	}
}
