package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	Delayed list: delta-encoded doubly linked list of
 *		sleeping tasks (spec.md §4.2, invariant 4 in §3).
 *
 * Description:	Each TCB on this list stores, not its absolute
 *		remaining delay, but the delta relative to the entry
 *		ahead of it; the head's delta is therefore its own
 *		absolute remaining time, and the true remaining time of
 *		any other entry is the prefix sum up to and including it.
 *		This lets a tick decrement a single integer (the head's)
 *		to advance every sleeper at once.
 *
 *		The insertion loop below tests cur != nil *before*
 *		dereferencing cur.delayTicks, unlike the defect spec.md
 *		§9 open question 2 calls out in the original source.
 *
 *---------------------------------------------------------------*/

// insertDelayed links t into the delayed list with absolute delay D.
func (k *Kernel) insertDelayed(t *TCB, D int) {
	k.assert(!t.onList(), "insertDelayed", "a TCB must leave its current list before joining another")
	t.membership = onDelayedList

	remaining := D
	var prev *TCB
	cur := k.delayedHead
	for cur != nil && cur.delayTicks <= remaining {
		remaining -= cur.delayTicks
		prev = cur
		cur = cur.next
	}

	t.delayTicks = remaining
	t.prev = prev
	t.next = cur

	if prev != nil {
		prev.next = t
	} else {
		k.delayedHead = t
	}

	if cur != nil {
		cur.delayTicks -= remaining
		cur.prev = t
	} else {
		k.delayedTail = t
	}
}

// tickDelayed decrements the delayed list's head by one tick and
// returns every task whose delta reached zero, in head-to-tail
// (i.e. original priority-independent FIFO-of-expiry) order. The
// caller is responsible for moving each into the ready list.
func (k *Kernel) tickDelayed() []*TCB {
	if k.delayedHead == nil {
		return nil
	}
	k.delayedHead.delayTicks--

	var expired []*TCB
	for k.delayedHead != nil && k.delayedHead.delayTicks <= 0 {
		head := k.delayedHead
		k.delayedHead = head.next
		if k.delayedHead != nil {
			k.delayedHead.prev = nil
		} else {
			k.delayedTail = nil
		}
		head.prev, head.next = nil, nil
		head.membership = onNoList
		expired = append(expired, head)
	}
	return expired
}
