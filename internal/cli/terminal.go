package cli

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFAF")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AF87")).Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	toolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFAF"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF5F5F")).Bold(true)
)

// markdownRenderer formats assistant replies on terminals. A nil renderer
// means replies print as plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	markdownRenderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
}

// renderMarkdown renders markdown content for terminal display. The raw
// content comes back unchanged when rendering is unavailable or fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// isStdoutTTY reports whether stdout is a terminal. Markdown rendering and
// the status line stay off for piped output.
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
