package main

/*------------------------------------------------------------------
 *
 * Purpose:	Stand-in interrupt controller: delivers a simulated IRQ
 *		line on SIGUSR1 and meters idle time with a nanosecond
 *		sleep, grounded in the teacher's own os/signal shutdown
 *		handling (direwolf.go catches SIGINT/SIGTERM) extended
 *		here with golang.org/x/sys/unix for a sleep resolution
 *		finer than time.Sleep offers. SIGUSR1 is received through
 *		os/signal only; it is never masked.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sparrowkernel/sparrow/src"
	"golang.org/x/sys/unix"
)

// InterruptController delivers one simulated external IRQ per SIGUSR1
// received, bracketed by EnterISR/ExitISR, and calls Handler to decide
// what that interrupt does (post a semaphore, push a queue message).
type InterruptController struct {
	Handler func(k *sparrow.Kernel)
}

func (ic InterruptController) Run(ctx context.Context, k *sparrow.Kernel) {
	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, syscall.SIGUSR1)
	defer signal.Stop(sigs)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigs:
			k.EnterISR()
			if ic.Handler != nil {
				ic.Handler(k)
			}
			k.ExitISR()
		}
	}
}

// idleNanosleep yields the calling OS thread for d nanoseconds using
// unix.Nanosleep directly, for idle-loop metering finer than the
// runtime's own timer granularity.
func idleNanosleep(d int64) {
	ts := unix.Timespec{Sec: d / 1e9, Nsec: d % 1e9}
	_ = unix.Nanosleep(&ts, nil)
}
