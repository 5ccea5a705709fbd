package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:	Critical-section primitive (spec.md §4.1).
 *
 * Description:	On the original target a critical section is "disable
 *		CPU interrupts globally"; enter_mutex returns the prior
 *		enable state, exit_mutex restores it conditionally so
 *		nesting works whether the kernel was entered from task
 *		context (interrupts on) or ISR context (already off).
 *
 *		Every public kernel entry point in this package calls
 *		enter once and exit once around its body, except
 *		QueuePend, which on blocking exits before parking and
 *		enters again after it is woken; the
 *		list, scheduler, semaphore and queue helpers assume the
 *		section is already held and never re-enter it. A real
 *		sync.Mutex backs the section so concurrent goroutines
 *		(tasks and simulated ISRs both run as goroutines in this
 *		port) actually serialize, which a single-CPU interrupt
 *		flag gets for free but a multi-goroutine Go process does
 *		not.
 *
 *---------------------------------------------------------------*/

import "sync"

type criticalSection struct {
	mu      sync.Mutex
	enabled bool
}

// enter seizes the section and returns the interrupt-enable state
// that was in effect beforehand.
func (c *criticalSection) enter() bool {
	c.mu.Lock()
	prev := c.enabled
	c.enabled = false
	return prev
}

// exit restores the interrupt-enable state and releases the section.
func (c *criticalSection) exit(prev bool) {
	if prev {
		c.enabled = true
	}
	c.mu.Unlock()
}
