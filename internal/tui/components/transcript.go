// Package components provides reusable TUI widgets.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultTranscriptMaxLines = 2000

// Transcript is a scrollable conversation log. It wraps bubbles/viewport
// with auto-scroll tracking, a ring buffer capping stored lines, and a
// 1-column scrollbar gutter on the right.
//
// New lines keep the view pinned to the bottom until the user scrolls up;
// scrolling back to the bottom re-enables following.
type Transcript struct {
	viewport   viewport.Model
	autoScroll bool     // true = jump to bottom on new content
	lines      []string // stored display lines (ring buffer)
	maxLines   int      // ring buffer capacity
	width      int      // total width including the scrollbar column
	height     int
}

// NewTranscript creates a transcript view with the given dimensions.
// maxLines caps the retained lines (0 uses the default of 2000). The width
// includes 1 column reserved for the scrollbar.
func NewTranscript(width, height, maxLines int) Transcript {
	if maxLines <= 0 {
		maxLines = defaultTranscriptMaxLines
	}

	vp := viewport.New(contentWidth(width), height)
	vp.SetContent("")

	return Transcript{
		viewport:   vp,
		autoScroll: true,
		lines:      make([]string, 0, 64),
		maxLines:   maxLines,
		width:      width,
		height:     height,
	}
}

func contentWidth(total int) int {
	w := total - 1
	if w < 0 {
		return 0
	}
	return w
}

// SetSize updates the transcript dimensions. Width includes the scrollbar
// column. Callers re-wrap their content and call Replace after a resize.
func (t *Transcript) SetSize(width, height int) {
	if t.width == width && t.height == height {
		return
	}

	t.width = width
	t.height = height
	t.viewport.Width = contentWidth(width)
	t.viewport.Height = height

	t.reload()
}

// Append adds display lines to the end of the transcript, dropping the
// oldest lines once the ring buffer is full.
func (t *Transcript) Append(lines ...string) {
	t.lines = append(t.lines, lines...)
	if len(t.lines) > t.maxLines {
		t.lines = t.lines[len(t.lines)-t.maxLines:]
	}
	t.reload()
}

// Replace swaps the entire transcript content, applying the ring buffer cap.
func (t *Transcript) Replace(lines []string) {
	if len(lines) > t.maxLines {
		lines = lines[len(lines)-t.maxLines:]
	}
	t.lines = make([]string, len(lines))
	copy(t.lines, lines)
	t.reload()
}

// reload pushes stored lines into the viewport and restores the scroll
// position: bottom when following, clamped offset otherwise.
func (t *Transcript) reload() {
	t.viewport.SetContent(strings.Join(t.lines, "\n"))
	if t.autoScroll {
		t.viewport.GotoBottom()
	} else {
		t.viewport.SetYOffset(t.viewport.YOffset)
	}
}

// Update handles scroll keys and mouse wheel events. Scrolling up pauses
// auto-scroll; reaching the bottom again re-enables it.
func (t Transcript) Update(msg tea.Msg) (Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "pgup", "ctrl+u":
			t.autoScroll = false
		case "down", "j", "pgdown", "ctrl+d":
			if t.viewport.AtBottom() {
				t.autoScroll = true
			}
		case "home", "g":
			t.viewport.GotoTop()
			t.autoScroll = false
		case "end", "G":
			t.viewport.GotoBottom()
			t.autoScroll = true
		}
	case tea.MouseMsg:
		t.autoScroll = t.viewport.AtBottom()
	}

	return t, cmd
}

// View renders the transcript with the scrollbar gutter on the right.
func (t Transcript) View() string {
	contentLines := strings.Split(t.viewport.View(), "\n")
	gutter := t.renderScrollbar()

	cw := contentWidth(t.width)
	var b strings.Builder
	for i := 0; i < t.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}

		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		b.WriteString(line)

		// Pad to the content width so the gutter column aligns. lipgloss
		// measures printable width, ignoring ANSI styling.
		if pad := cw - lipgloss.Width(line); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(gutter[i])
	}

	return b.String()
}

// renderScrollbar builds the per-row gutter: a blank column while the
// content fits, otherwise a track with a proportional thumb.
func (t Transcript) renderScrollbar() []string {
	rows := make([]string, t.height)

	if len(t.lines) <= t.height {
		for i := range rows {
			rows[i] = " "
		}
		return rows
	}

	const (
		track = "│"
		thumb = "█"
	)

	// Thumb size tracks the visible fraction, minimum 1 row.
	thumbSize := t.height * t.height / len(t.lines)
	if thumbSize < 1 {
		thumbSize = 1
	}

	thumbTop := 0
	if maxOffset := len(t.lines) - t.height; maxOffset > 0 {
		thumbTop = t.viewport.YOffset * (t.height - thumbSize) / maxOffset
	}
	if thumbTop < 0 {
		thumbTop = 0
	}
	if thumbTop > t.height-thumbSize {
		thumbTop = t.height - thumbSize
	}

	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = thumb
		} else {
			rows[i] = track
		}
	}

	return rows
}

// AtBottom reports whether the view is scrolled to the bottom.
func (t Transcript) AtBottom() bool {
	return t.viewport.AtBottom()
}

// AutoScroll reports whether the view is following new content.
func (t Transcript) AutoScroll() bool {
	return t.autoScroll
}

// ContentWidth returns the width available for text, excluding the
// scrollbar column.
func (t Transcript) ContentWidth() int {
	return contentWidth(t.width)
}

// LineCount returns the number of stored display lines.
func (t Transcript) LineCount() int {
	return len(t.lines)
}
