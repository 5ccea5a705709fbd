package main

/*------------------------------------------------------------------
 *
 * Purpose:	GPIO-edge TickSource: a real external interrupt line
 *		stands in for a hardware timer (spec.md §1's "tick
 *		source configuration").
 *
 * Description:	Watches chip/line for rising edges via go-gpiocdev's
 *		event-driven line-request API and drives one tick per
 *		edge. Falls back to SoftTick if the chip can't be opened
 *		(no hardware present, permission denied, wrong board) so
 *		the demo still runs on a laptop.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"time"

	"github.com/sparrowkernel/sparrow/src"
	"github.com/warthog618/go-gpiocdev"
)

type GPIOTick struct {
	Chip   string
	Line   int
	Period time.Duration // fallback period if the chip can't be opened
}

func (g GPIOTick) Run(ctx context.Context, k *sparrow.Kernel) {
	events := make(chan struct{}, 1)

	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type == gpiocdev.LineEventRisingEdge {
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}

	line, err := gpiocdev.RequestLine(g.Chip, g.Line,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithEventHandler(handler))
	if err != nil {
		k.Log().Errorf("gpiotick: %s line %d unavailable (%v), falling back to software ticker", g.Chip, g.Line, err)
		SoftTick{Period: g.Period}.Run(ctx, k)
		return
	}
	defer line.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-events:
			k.EnterISR()
			k.Tick()
			k.ExitISR()
		}
	}
}
