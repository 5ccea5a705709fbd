package main

/*------------------------------------------------------------------
 *
 * Purpose:	Keyboard-controller interrupt simulation — spec.md §1's
 *		"keyboard I/O... the core only exposes hook functions
 *		that ISRs must call" made concrete.
 *
 * Description:	Puts the controlling terminal into raw mode (the same
 *		term.Open(name, term.RawMode) call the teacher uses for
 *		its serial ports) so every keystroke arrives one byte at
 *		a time instead of line-buffered, then treats each byte as
 *		an edge-triggered interrupt: EnterISR, post whatever the
 *		key is wired to, ExitISR.
 *
 *---------------------------------------------------------------*/

import (
	"context"

	"github.com/pkg/term"
	"github.com/sparrowkernel/sparrow/src"
)

// KeyISR reads raw keystrokes from ttyPath and posts byte to OnKey for
// each one, bracketed by EnterISR/ExitISR.
type KeyISR struct {
	TTYPath string
	OnKey   func(k *sparrow.Kernel, b byte)
}

func (ki KeyISR) Run(ctx context.Context, k *sparrow.Kernel) {
	path := ki.TTYPath
	if path == "" {
		path = "/dev/tty"
	}
	tty, err := term.Open(path, term.RawMode)
	if err != nil {
		k.Log().Errorf("keyisr: %s unavailable (%v), keyboard ISR disabled", path, err)
		<-ctx.Done()
		return
	}
	defer tty.Restore()
	defer tty.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 1)
		for {
			n, err := tty.Read(buf)
			if err != nil || n == 0 {
				return
			}
			k.EnterISR()
			if ki.OnKey != nil {
				ki.OnKey(k, buf[0])
			}
			k.ExitISR()
		}
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
}
