package main

/*------------------------------------------------------------------
 *
 * Purpose:	TickSource is the pluggable periodic-interrupt simulator
 *		spec.md §1 assumes exists but leaves entirely external
 *		("tick source configuration... out of scope").
 *
 * Description:	Every implementation's job is the same: call
 *		kernel.EnterISR, kernel.Tick, kernel.ExitISR once per
 *		period, from whatever goroutine is standing in for a
 *		hardware timer. Run must block until ctx is cancelled.
 *
 *---------------------------------------------------------------*/

import (
	"context"

	"github.com/sparrowkernel/sparrow/src"
)

// TickSource drives a Kernel's tick ISR from some periodic event.
type TickSource interface {
	Run(ctx context.Context, k *sparrow.Kernel)
}
