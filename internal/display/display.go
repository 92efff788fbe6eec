// Package display renders a transient terminal status line while the
// assistant waits on the model. The line redraws in place once a second and
// is cleared before any real output is printed.
package display

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Display manages the terminal status line.
type Display struct {
	mu       sync.Mutex
	writer   io.Writer
	label    string
	start    time.Time
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup // ensures the update goroutine exits before Stop returns
	active   bool
	lastLine string
}

// New creates a Display writing to the given writer.
func New(w io.Writer) *Display {
	return &Display{writer: w}
}

// Start begins drawing the status line with the given label. Calling Start
// on an active display only replaces the label.
func (d *Display) Start(label string) {
	d.mu.Lock()
	if d.active {
		d.label = label
		d.mu.Unlock()
		return
	}
	d.active = true
	d.label = label
	d.start = time.Now()
	d.ticker = time.NewTicker(time.Second)
	d.done = make(chan struct{})
	d.wg.Add(1)
	d.mu.Unlock()

	d.render()
	go d.updateLoop()
}

// Stop halts the update loop and clears the status line. The display can be
// started again afterwards. Blocks until the update goroutine has exited.
func (d *Display) Stop() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.active = false
	d.lastLine = ""
	d.mu.Unlock()

	d.ticker.Stop()
	close(d.done)
	d.wg.Wait()
	d.clearLine()
}

// updateLoop periodically renders the status line.
func (d *Display) updateLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.ticker.C:
			d.render()
		case <-d.done:
			return
		}
	}
}

// render draws the current status line.
func (d *Display) render() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	label := d.label
	start := d.start
	lastLine := d.lastLine
	d.mu.Unlock()

	line := formatLine(label, time.Since(start))

	// Only update if changed (reduces flicker)
	if line == lastLine {
		return
	}

	d.mu.Lock()
	d.lastLine = line
	d.mu.Unlock()

	// Move to start of line, clear it, write new content
	fmt.Fprintf(d.writer, "\r\033[K%s", line)
}

// formatLine creates the status line string.
func formatLine(label string, elapsed time.Duration) string {
	return fmt.Sprintf("%s │ ⏱ %s", label, formatDuration(elapsed))
}

// clearLine clears the status line.
func (d *Display) clearLine() {
	fmt.Fprintf(d.writer, "\r\033[K")
}

// PrintAbove prints a message above the status line.
func (d *Display) PrintAbove(format string, args ...interface{}) {
	d.clearLine()
	fmt.Fprintf(d.writer, format+"\n", args...)
	d.render()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
