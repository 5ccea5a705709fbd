package main

/*------------------------------------------------------------------
 *
 * Purpose:	Fallback TickSource: a plain time.Ticker, for hosts with
 *		no GPIO chip or audio device attached.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"time"

	"github.com/sparrowkernel/sparrow/src"
)

type SoftTick struct {
	Period time.Duration
}

func (s SoftTick) Run(ctx context.Context, k *sparrow.Kernel) {
	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.EnterISR()
			k.Tick()
			k.ExitISR()
		}
	}
}
