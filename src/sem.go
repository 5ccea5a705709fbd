package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	Counting semaphore (spec.md §4.6).
 *
 * Description:	value = initial + posts - pends at all times (invariant
 *		6 in spec.md §3). Per spec.md §9's design note, this port
 *		keeps that external invariant but decides "was anyone
 *		waiting" by inspecting the pending list rather than by
 *		trusting value's sign, removing the subtle coupling the
 *		original source relies on without changing observable
 *		behavior.
 *
 *---------------------------------------------------------------*/

import "fmt"

// Semaphore is a counting semaphore with priority-ordered blocking.
type Semaphore struct {
	k       *Kernel
	value   int
	pending pendingList
}

type semPool struct {
	slots []Semaphore
	used  int
}

func newSemPool(capacity int) *semPool {
	return &semPool{slots: make([]Semaphore, capacity)}
}

// SemCreate allocates a semaphore with the given non-negative initial
// value (spec.md §4.6).
func (k *Kernel) SemCreate(initial int) (*Semaphore, error) {
	if initial < 0 {
		return nil, newInvalidArgument("SemCreate", "initial value must be >= 0")
	}

	prev := k.cs.enter()
	defer k.cs.exit(prev)

	if k.sems.used >= len(k.sems.slots) {
		k.log.errorf("SemCreate: semaphore pool exhausted (capacity %d)", len(k.sems.slots))
		return nil, newPoolExhausted("SemCreate", "semaphore", len(k.sems.slots))
	}
	s := &k.sems.slots[k.sems.used]
	k.sems.used++
	s.k = k
	s.value = initial
	return s, nil
}

// SemPend blocks the calling task until s has a unit to give, or
// returns immediately if one is already available (spec.md §4.6).
// Tasks only; never call this from ISR context.
func (k *Kernel) SemPend(s *Semaphore) {
	prev := k.cs.enter()

	old := s.value
	s.value--

	if old <= 0 {
		self := k.current
		k.removeReady(self)
		k.assert(!self.onList(), "SemPend", "a TCB must leave its current list before joining another")
		s.pending.insert(self)
		switched := k.scheduleLocked()
		k.cs.exit(prev)
		if switched {
			self.park()
		}
		return
	}

	k.cs.exit(prev)
}

// SemPost wakes the highest-priority waiter, if any, and otherwise
// just bumps the count. Valid from task, handler, or ISR context.
func (k *Kernel) SemPost(s *Semaphore) {
	prev := k.cs.enter()

	old := s.value
	s.value++

	if !s.pending.empty() {
		k.assert(old < 0, "SemPost", "a waiter implies a negative value")
		woken := s.pending.removeHead()
		k.insertReady(woken)
	}

	self := k.current
	switched := false
	if k.isrNesting == 0 {
		switched = k.scheduleLocked()
	}
	k.cs.exit(prev)
	if switched && self != dummyTCB {
		self.park()
	}
}

// Value reports the semaphore's current signed count (invariant 6 of
// spec.md §3), locked through the owning kernel's critical section
// since SemPend/SemPost mutate value from other goroutines.
func (s *Semaphore) Value() int {
	prev := s.k.cs.enter()
	defer s.k.cs.exit(prev)
	return s.value
}

// Waiters reports how many tasks are blocked on s.
func (s *Semaphore) Waiters() int {
	prev := s.k.cs.enter()
	defer s.k.cs.exit(prev)
	return s.pending.len()
}

func (s *Semaphore) String() string {
	prev := s.k.cs.enter()
	defer s.k.cs.exit(prev)
	return fmt.Sprintf("Semaphore{value=%d, waiters=%d}", s.value, s.pending.len())
}
