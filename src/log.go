package sparrow

/*------------------------------------------------------------------
 *
 * Purpose:     Diagnostic channel for the kernel.
 *
 * Description: spec.md §7 routes every non-fatal, non-queue-full
 *		error condition through a "diagnostic channel (console
 *		string)" and continues execution. This is that channel,
 *		built on charmbracelet/log instead of hand-rolled
 *		colorized printf like the teacher's textcolor.go, and
 *		optionally mirrored to a daily-rotated trace file named
 *		with an strftime pattern, the same daily_names feature
 *		teacher's log.go implements for received-packet logs.
 *
 *---------------------------------------------------------------*/

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

type diagLogger struct {
	mu      sync.Mutex
	l       *log.Logger
	pattern *strftime.Strftime
	dir     string
	cur     string
	file    *os.File
}

func newDiagLogger() *diagLogger {
	return &diagLogger{l: log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "sparrow",
		ReportTimestamp: true,
	})}
}

// SetOutput redirects diagnostics to an arbitrary writer (tests use
// this to capture output instead of polluting stderr).
func (d *diagLogger) SetOutput(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.l.SetOutput(w)
}

// EnableDailyTrace rotates a trace file daily under dir, named per
// pattern (an strftime layout, e.g. "sparrow-%Y-%m-%d.log").
func (d *diagLogger) EnableDailyTrace(dir, pattern string) error {
	p, err := strftime.New(pattern)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dir = dir
	d.pattern = p
	return d.rotateLocked(time.Now())
}

func (d *diagLogger) rotateLocked(now time.Time) error {
	if d.pattern == nil {
		return nil
	}
	name := d.pattern.FormatString(now)
	if name == d.cur {
		return nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(d.dir+string(os.PathSeparator)+name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if d.file != nil {
		d.file.Close()
	}
	d.file = f
	d.cur = name
	d.l.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

func (d *diagLogger) tick(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.rotateLocked(now)
}

func (d *diagLogger) debugf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.l.Debugf(format, args...)
}

func (d *diagLogger) infof(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.l.Infof(format, args...)
}

func (d *diagLogger) errorf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.l.Errorf(format, args...)
}

// Debugf, Infof and Errorf expose the same diagnostic channel to
// callers outside this package (the demo command's TickSources and
// ISR drivers), so a GPIO chip failing to open or a key-ISR wiring
// mistake shows up on the same console/trace-file path as a kernel
// invariant breach.
func (d *diagLogger) Debugf(format string, args ...any) { d.debugf(format, args...) }
func (d *diagLogger) Infof(format string, args ...any)  { d.infof(format, args...) }
func (d *diagLogger) Errorf(format string, args ...any) { d.errorf(format, args...) }
