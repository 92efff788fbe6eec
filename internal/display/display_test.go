package display

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer against the update goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "zero duration",
			duration: 0,
			expected: "00:00",
		},
		{
			name:     "seconds only",
			duration: 7 * time.Second,
			expected: "00:07",
		},
		{
			name:     "minutes and seconds",
			duration: 2*time.Minute + 5*time.Second,
			expected: "02:05",
		},
		{
			name:     "one hour",
			duration: 1 * time.Hour,
			expected: "01:00:00",
		},
		{
			name:     "hours minutes seconds",
			duration: 3*time.Hour + 12*time.Minute + 9*time.Second,
			expected: "03:12:09",
		},
		{
			name:     "rounds to nearest second",
			duration: 9*time.Second + 600*time.Millisecond,
			expected: "00:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatDuration(tt.duration)
			if result != tt.expected {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, result, tt.expected)
			}
		})
	}
}

func TestFormatLine(t *testing.T) {
	got := formatLine("🤖 Thinking", 1*time.Minute+30*time.Second)
	want := "🤖 Thinking │ ⏱ 01:30"
	if got != want {
		t.Errorf("formatLine() = %q, want %q", got, want)
	}
}

func TestStartStop(t *testing.T) {
	buf := &syncBuffer{}
	d := New(buf)

	d.Start("Waiting")
	d.Stop()

	out := buf.String()
	if !strings.Contains(out, "Waiting │ ⏱ 00:00") {
		t.Errorf("output missing status line: %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[K") {
		t.Errorf("output does not end with a cleared line: %q", out)
	}
}

func TestStartIsRestartable(t *testing.T) {
	buf := &syncBuffer{}
	d := New(buf)

	d.Start("First")
	d.Stop()
	d.Start("Second")
	d.Stop()

	out := buf.String()
	if !strings.Contains(out, "First") || !strings.Contains(out, "Second") {
		t.Errorf("output missing one of the runs: %q", out)
	}
}

func TestStartWhileActiveReplacesLabel(t *testing.T) {
	buf := &syncBuffer{}
	d := New(buf)

	d.Start("First")
	d.Start("Second")

	d.mu.Lock()
	label := d.label
	d.mu.Unlock()
	if label != "Second" {
		t.Errorf("label = %q, want %q", label, "Second")
	}

	d.Stop()
	d.mu.Lock()
	active := d.active
	d.mu.Unlock()
	if active {
		t.Error("display still active after Stop")
	}
}

func TestStopWithoutStart(t *testing.T) {
	d := New(&syncBuffer{})
	d.Stop() // must not panic or block
}

func TestPrintAbove(t *testing.T) {
	buf := &syncBuffer{}
	d := New(buf)

	d.PrintAbove("plan saved to %s", "bakery.json")

	if !strings.Contains(buf.String(), "plan saved to bakery.json\n") {
		t.Errorf("message not printed: %q", buf.String())
	}
}
