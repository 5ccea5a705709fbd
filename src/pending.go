package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	Priority-ordered pending list shared by semaphores and
 *		queues (spec.md §4.2, invariant 5 in §3).
 *
 * Description:	insert walks until it finds a node with higher
 *		numeric priority (lower urgency) than t and splices
 *		before it, else appends at the tail. removeHead
 *		always pops the head — the highest-priority waiter —
 *		and, unlike the original source's removePendSem /
 *		removePendQ (spec.md §9 open question 3), does not
 *		unconditionally dereference the new head: it guards the
 *		single-element case explicitly.
 *
 *---------------------------------------------------------------*/

type pendingList struct {
	head, tail *TCB
}

func (p *pendingList) insert(t *TCB) {
	t.membership = onPendingList
	if p.head == nil {
		t.prev, t.next = nil, nil
		p.head, p.tail = t, t
		return
	}
	cur := p.head
	for cur != nil && cur.priority <= t.priority {
		cur = cur.next
	}
	if cur == nil {
		t.prev = p.tail
		t.next = nil
		p.tail.next = t
		p.tail = t
		return
	}
	t.next = cur
	t.prev = cur.prev
	if cur.prev != nil {
		cur.prev.next = t
	} else {
		p.head = t
	}
	cur.prev = t
}

// removeHead pops and returns the highest-priority waiter, or nil if
// the list is empty.
func (p *pendingList) removeHead() *TCB {
	head := p.head
	if head == nil {
		return nil
	}
	p.head = head.next
	if p.head != nil {
		p.head.prev = nil
	} else {
		p.tail = nil
	}
	head.prev, head.next = nil, nil
	head.membership = onNoList
	return head
}

func (p *pendingList) empty() bool { return p.head == nil }

func (p *pendingList) len() int {
	n := 0
	for cur := p.head; cur != nil; cur = cur.next {
		n++
	}
	return n
}
