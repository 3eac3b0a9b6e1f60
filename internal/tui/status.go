package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// StatusWriter renders a single spinning status line in place. Doctor uses it
// while toolchain version probes run, before the report prints; the line is
// cleared on Stop so the report starts on a clean row.
type StatusWriter struct {
	w io.Writer

	mu      sync.Mutex
	phase   string
	since   time.Time
	stopped bool

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewStatusWriter starts the spinner goroutine. Callers must Stop it before
// writing anything else to w.
func NewStatusWriter(w io.Writer) *StatusWriter {
	sw := &StatusWriter{
		w:     w,
		since: time.Now(),
		quit:  make(chan struct{}),
	}
	sw.wg.Add(1)
	go sw.spin()
	return sw
}

// Update swaps the phase text and restarts the elapsed counter.
func (sw *StatusWriter) Update(phase string) {
	sw.mu.Lock()
	sw.phase = phase
	sw.since = time.Now()
	sw.mu.Unlock()
}

// Stop halts the spinner and clears the line. Safe to call more than once.
func (sw *StatusWriter) Stop() {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return
	}
	sw.stopped = true
	sw.mu.Unlock()

	close(sw.quit)
	sw.wg.Wait()
	fmt.Fprint(sw.w, "\r\033[K")
}

func (sw *StatusWriter) spin() {
	defer sw.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-sw.quit:
			return
		case <-ticker.C:
			sw.mu.Lock()
			phase := sw.phase
			since := sw.since
			sw.mu.Unlock()

			spinner := spinnerFrames[frame%len(spinnerFrames)]
			fmt.Fprintf(sw.w, "\r\033[K%s %s (%s)", spinner, phase, formatElapsed(time.Since(since)))
		}
	}
}

// formatElapsed keeps the elapsed suffix short: millisecond detail only while
// a phase is young, whole seconds after that.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
