package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	Ready list: ascending-priority doubly linked list of
 *		every task eligible to run (spec.md §4.2).
 *
 * Description:	insertReady walks from the head until it finds the
 *		first node with a strictly higher priority number and
 *		links the new task before it (lower number runs first).
 *		removeReady unlinks without searching since the task's
 *		own links are already known. Both assume the caller
 *		already holds the critical section.
 *
 *---------------------------------------------------------------*/

func (k *Kernel) insertReady(t *TCB) {
	k.assert(!t.onList(), "insertReady", "a TCB must leave its current list before joining another")
	t.membership = onReadyList
	if k.readyHead == nil {
		t.prev, t.next = nil, nil
		k.readyHead, k.readyTail = t, t
		return
	}
	cur := k.readyHead
	for cur != nil && cur.priority <= t.priority {
		cur = cur.next
	}
	if cur == nil {
		// append at tail
		t.prev = k.readyTail
		t.next = nil
		k.readyTail.next = t
		k.readyTail = t
		return
	}
	t.next = cur
	t.prev = cur.prev
	if cur.prev != nil {
		cur.prev.next = t
	} else {
		k.readyHead = t
	}
	cur.prev = t
}

func (k *Kernel) removeReady(t *TCB) {
	if t == k.idle {
		k.assert(false, "removeReady", "the idle task can never leave the ready list")
		return
	}
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		k.readyHead = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		k.readyTail = t.prev
	}
	t.prev, t.next = nil, nil
	t.membership = onNoList
}
