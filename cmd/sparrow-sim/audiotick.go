package main

/*------------------------------------------------------------------
 *
 * Purpose:	Audio-callback TickSource: a PortAudio input stream's
 *		realtime callback is driven by the sound driver under a
 *		hard deadline, the same texture as a hardware timer
 *		interrupt, grounded in the teacher's own use of portaudio
 *		as its primary low-latency realtime source.
 *
 * Description:	One tick is emitted every BufferFrames samples, at the
 *		stream's sample rate, giving a tick period of
 *		BufferFrames/SampleRate seconds independent of the host
 *		OS's timer granularity.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/sparrowkernel/sparrow/src"
)

type AudioTick struct {
	SampleRate   float64
	BufferFrames int
}

func (a AudioTick) Run(ctx context.Context, k *sparrow.Kernel) {
	if err := portaudio.Initialize(); err != nil {
		k.Log().Errorf("audiotick: portaudio init failed (%v), falling back to software ticker", err)
		SoftTick{Period: softPeriod(a.SampleRate, a.BufferFrames)}.Run(ctx, k)
		return
	}
	defer portaudio.Terminate()

	callback := func(input []int16) {
		k.EnterISR()
		k.Tick()
		k.ExitISR()
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, a.SampleRate, a.BufferFrames, callback)
	if err != nil {
		k.Log().Errorf("audiotick: no input device (%v), falling back to software ticker", err)
		SoftTick{Period: softPeriod(a.SampleRate, a.BufferFrames)}.Run(ctx, k)
		return
	}

	if err := stream.Start(); err != nil {
		k.Log().Errorf("audiotick: stream start failed (%v), falling back to software ticker", err)
		SoftTick{Period: softPeriod(a.SampleRate, a.BufferFrames)}.Run(ctx, k)
		return
	}
	defer stream.Stop()
	defer stream.Close()

	<-ctx.Done()
}

func softPeriod(sampleRate float64, bufferFrames int) time.Duration {
	return time.Duration(float64(bufferFrames) / sampleRate * float64(time.Second))
}
