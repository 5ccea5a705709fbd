package main

/*------------------------------------------------------------------
 *
 * Purpose:	Demo/reference driver for the sparrow kernel core: wires
 *		a TickSource, an optional keyboard ISR, and a handful of
 *		sample tasks together, the way the teacher's
 *		cmd/direwolf/main.go wires its modem/TNC pieces around a
 *		shared config struct.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/sparrowkernel/sparrow/src"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "Path to a YAML kernel config file (defaults built in if omitted)")
		tickSrc    = pflag.StringP("tick-source", "t", "soft", "Tick source: soft, gpio, or audio")
		gpioChip   = pflag.String("gpio-chip", "gpiochip0", "GPIO chip device for --tick-source=gpio")
		gpioLine   = pflag.Int("gpio-line", 17, "GPIO line offset for --tick-source=gpio")
		tickPeriod = pflag.Duration("tick-period", 10*time.Millisecond, "Software/fallback tick period")
		noKeyISR   = pflag.Bool("no-key-isr", false, "Disable the keyboard interrupt simulation")
		traceDir   = pflag.String("trace-dir", "", "Directory for a daily-rotated diagnostic trace file")
		help       = pflag.Bool("help", false, "Display help text")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sparrow-sim [options]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		return
	}

	cfg := sparrow.DefaultConfig()
	if *configPath != "" {
		loaded, err := sparrow.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sparrow-sim: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	k := sparrow.NewKernel(cfg)
	if *traceDir != "" {
		if err := k.Log().EnableDailyTrace(*traceDir, "sparrow-%Y-%m-%d.log"); err != nil {
			k.Log().Errorf("main: trace rotation disabled: %v", err)
		}
	}

	wakeup, err := k.SemCreate(0)
	if err != nil {
		k.Log().Errorf("main: %v", err)
		os.Exit(1)
	}
	events, err := k.QueueCreate(8)
	if err != nil {
		k.Log().Errorf("main: %v", err)
		os.Exit(1)
	}

	spawnDemoTasks(k, wakeup, events)

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	var ts TickSource
	switch *tickSrc {
	case "gpio":
		ts = GPIOTick{Chip: *gpioChip, Line: *gpioLine, Period: *tickPeriod}
	case "audio":
		ts = AudioTick{SampleRate: 44100, BufferFrames: 441} // 10ms/tick at 44.1kHz
	default:
		ts = SoftTick{Period: *tickPeriod}
	}
	go ts.Run(ctx, k)

	if !*noKeyISR {
		go KeyISR{OnKey: func(k *sparrow.Kernel, b byte) {
			k.QueuePost(events, b)
			k.SemPost(wakeup)
		}}.Run(ctx, k)
	}

	go InterruptController{Handler: func(k *sparrow.Kernel) {
		k.SemPost(wakeup)
	}}.Run(ctx, k)

	go k.Run()
	statusLoop(ctx, k)
}

// spawnDemoTasks creates a small, illustrative task set: a
// high-priority consumer that waits on wakeup and drains events, and a
// low-priority periodic reporter that sleeps between status prints.
func spawnDemoTasks(k *sparrow.Kernel, wakeup *sparrow.Semaphore, events *sparrow.Queue) {
	_, err := k.NewTask(func() {
		for {
			k.SemPend(wakeup)
			for events.Len() > 0 {
				msg := k.QueuePend(events)
				k.Log().Infof("consumer: event %v", msg)
			}
		}
	}, 1)
	if err != nil {
		k.Log().Errorf("main: consumer task: %v", err)
	}

	_, err = k.NewTask(func() {
		for {
			if err := k.DelayTask(100); err != nil {
				k.Log().Errorf("reporter: %v", err)
				return
			}
			stats := k.Stats()
			k.Log().Infof("reporter: ticks=%d switches=%d idle=%d ready=%d delayed=%d",
				stats.Ticks, stats.ContextSwitches, stats.IdleCount, stats.ReadyCount, stats.DelayedCount)
		}
	}, 20)
	if err != nil {
		k.Log().Errorf("main: reporter task: %v", err)
	}
}

// statusLoop blocks until ctx is cancelled, metering its own idle time
// through unix.Nanosleep rather than a coarser time.Sleep.
func statusLoop(ctx context.Context, k *sparrow.Kernel) {
	for {
		select {
		case <-ctx.Done():
			k.Log().Infof("main: shutting down")
			return
		default:
			idleNanosleep(50 * int64(time.Millisecond))
		}
	}
}
