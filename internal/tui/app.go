// Package tui implements the full-screen chat interface for scoping a
// project idea into a Kanban plan.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/scopa/internal/agent"
	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/config"
	"github.com/pablasso/scopa/internal/logging"
	"github.com/pablasso/scopa/internal/tui/components"
	"github.com/pablasso/scopa/internal/tui/styles"
)

// Minimum terminal dimensions for a usable layout.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// entryKind classifies a transcript entry for styling.
type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryTool
	entryToolResult
	entryError
	entryInfo
)

// entry is one unwrapped transcript item. Entries are re-wrapped to the
// current width whenever the terminal resizes.
type entry struct {
	kind entryKind
	tool string // tool name for entryToolResult
	text string
}

// eventMsg carries one session event into the Update loop.
type eventMsg agent.Event

// turnDoneMsg reports that a session turn finished.
type turnDoneMsg struct {
	decision agent.Decision
	err      error
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	session *agent.Session

	// msgs carries session events and the turn outcome, in order. The
	// channel is unbuffered so the turn goroutine stays in lockstep with
	// the Update loop.
	msgs chan tea.Msg

	transcript components.Transcript
	input      textarea.Model
	spinner    spinner.Model

	entries []entry

	waiting    bool // a turn is in flight
	done       bool // the session ended with a saved plan
	quitting   bool
	err        error // fatal turn error, reported after the program exits
	cancelTurn context.CancelFunc

	width  int
	height int
}

// Run starts the chat TUI. It owns the whole program lifecycle: config,
// logging, client and session construction, then the Bubble Tea loop.
func Run() error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return err
	}

	log := openLogger(cfg)
	defer log.Close()

	client := ai.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL)
	session := agent.NewSession(client, cfg, log)

	p := tea.NewProgram(initialModel(session), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}

	// A turn error ends the program; surface it after the alt screen closes.
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// openLogger builds the file logger, preferring log.file from the config
// and falling back to logs/scopa.log under the nearest .scopa directory.
// Logging failures degrade to a no-op logger.
func openLogger(cfg *config.Config) *logging.Logger {
	path := cfg.Log.File
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if dir, ok := config.FindDir(wd); ok {
				path = logging.DefaultPath(dir)
			}
		}
	}

	log, err := logging.New(path, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return logging.Nop()
	}
	return log
}

func initialModel(session *agent.Session) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	ta := textarea.New()
	ta.Placeholder = "Describe your project idea..."
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.BlurredStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	m := Model{
		session:    session,
		msgs:       make(chan tea.Msg),
		transcript: components.NewTranscript(80, 20, 0),
		input:      ta,
		spinner:    s,
	}

	m.appendEntry(entry{kind: entryAssistant, text: "Hello! I'm your Project Scoping Assistant. Let's define your idea."})
	m.appendEntry(entry{kind: entryInfo, text: "Type 'exit' or press ctrl+c to quit."})

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.nextSessionMsg())
}

// nextSessionMsg waits for the next message from the turn goroutine. The
// command re-arms itself from Update so exactly one reader exists at a time.
func (m Model) nextSessionMsg() tea.Cmd {
	ch := m.msgs
	return func() tea.Msg {
		return <-ch
	}
}

// startTurn runs one session turn in the background. Events and the final
// outcome all flow through m.msgs, preserving their order.
func (m *Model) startTurn(input string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTurn = cancel

	session, ch := m.session, m.msgs
	return func() tea.Msg {
		decision, err := session.Turn(ctx, input, func(e agent.Event) {
			ch <- eventMsg(e)
		})
		ch <- turnDoneMsg{decision: decision, err: err}
		return nil
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		newModel, cmd, handled := m.handleKeyPress(msg)
		if handled {
			return newModel, cmd
		}
		m = newModel
		if !m.waiting && !m.done {
			var inputCmd tea.Cmd
			m.input, inputCmd = m.input.Update(msg)
			return m, inputCmd
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.appendEvent(agent.Event(msg))
		return m, m.nextSessionMsg()

	case turnDoneMsg:
		m.waiting = false
		m.cancelTurn = nil
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		if msg.decision == agent.RunToolsAndEnd {
			m.done = true
			m.input.Blur()
			m.appendEntry(entry{kind: entryInfo, text: "Session complete. Press enter to exit."})
		}
		return m, m.nextSessionMsg()
	}

	return m, nil
}

// handleKeyPress processes global key bindings.
// Returns the updated model, an optional command, and whether the key was
// fully handled (true = don't pass to the textarea).
func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.cancelTurn != nil {
			m.cancelTurn()
		}
		m.quitting = true
		return m, tea.Quit, true

	case "enter":
		if m.done {
			m.quitting = true
			return m, tea.Quit, true
		}
		if m.waiting {
			return m, nil, true
		}

		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil, true
		}
		if strings.EqualFold(text, "exit") {
			m.quitting = true
			return m, tea.Quit, true
		}

		m.input.Reset()
		m.appendEntry(entry{kind: entryUser, text: text})
		m.waiting = true
		return m, tea.Batch(m.spinner.Tick, m.startTurn(text)), true

	case "shift+enter", "ctrl+j":
		if !m.waiting && !m.done {
			m.input.InsertString("\n")
		}
		return m, nil, true

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd, true
	}

	return m, nil, false
}

// appendEvent maps a session event onto transcript entries.
func (m *Model) appendEvent(ev agent.Event) {
	switch ev.Kind {
	case agent.EventAssistantText:
		m.appendEntry(entry{kind: entryAssistant, text: ev.Text})
	case agent.EventToolCall:
		m.appendEntry(entry{kind: entryTool, text: ev.Tool})
	case agent.EventToolResult:
		if ev.Err {
			m.appendEntry(entry{kind: entryError, text: ev.Text})
			return
		}
		m.appendEntry(entry{kind: entryToolResult, tool: ev.Tool, text: ev.Text})
	}
}

// appendEntry stores an entry and streams its wrapped lines into the
// transcript view.
func (m *Model) appendEntry(e entry) {
	m.entries = append(m.entries, e)
	m.transcript.Append(wrapEntry(e, m.transcript.ContentWidth())...)
}

// rewrapTranscript rebuilds all display lines at the current width.
func (m *Model) rewrapTranscript() {
	var lines []string
	for _, e := range m.entries {
		lines = append(lines, wrapEntry(e, m.transcript.ContentWidth())...)
	}
	m.transcript.Replace(lines)
}

// wrapEntry renders one entry as styled display lines wrapped to width,
// followed by a blank spacer line.
func wrapEntry(e entry, width int) []string {
	var s string
	switch e.kind {
	case entryUser:
		s = styles.UserStyle.Render("👤 You:") + " " + e.text
	case entryAssistant:
		s = styles.AssistantStyle.Render("🤖 AI:") + " " + e.text
	case entryTool:
		s = styles.ToolStyle.Render(fmt.Sprintf("--- 🛠️ Calling %s ---", e.text))
	case entryToolResult:
		if e.tool == agent.GeneratePlanToolName {
			s = styles.SuccessStyle.Render("✅ Project Plan Generated:") + "\n" + e.text
		} else {
			s = styles.SuccessStyle.Render("✅ " + e.text)
		}
	case entryError:
		s = styles.ErrorStyle.Render("⚠️ " + e.text)
	case entryInfo:
		s = styles.SubtleStyle.Render(e.text)
	}

	if width > 0 {
		s = lipgloss.NewStyle().Width(width).Render(s)
	}

	return append(strings.Split(s, "\n"), "")
}

// updateLayout recalculates component sizes after a resize.
func (m *Model) updateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	// Height: total - title(2) - input box(5) - help bar(1) - separators(2).
	transcriptHeight := m.height - 10
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	m.transcript.SetSize(m.width, transcriptHeight)
	// Input box border (2) + padding (2).
	m.input.SetWidth(m.width - 4)

	m.rewrapTranscript()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.quitting {
		return ""
	}
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return m.renderTerminalTooSmall()
	}

	var b strings.Builder

	title := styles.TitleStyle.Render("Scopa - Project Scoping")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n")

	b.WriteString(m.transcript.View())
	b.WriteString("\n")

	b.WriteString(m.renderInput())
	b.WriteString("\n")

	b.WriteString(m.renderHelp())

	return b.String()
}

// renderInput returns the input area: the textarea while idle, a spinner
// while a turn runs, and a completion note once the session ends.
func (m Model) renderInput() string {
	if m.waiting {
		return m.spinner.View() + styles.SubtleStyle.Render(" Thinking...")
	}
	if m.done {
		return styles.SuccessStyle.Render("Plan saved. The session has ended.")
	}

	inputStyle := styles.InputStyle.Width(m.width - 2)
	return inputStyle.Render(m.input.View())
}

// renderHelp returns the bottom help bar.
func (m Model) renderHelp() string {
	items := []string{"enter send", "pgup/pgdn scroll", "ctrl+c quit"}
	if m.done {
		items = []string{"enter exit", "pgup/pgdn scroll", "ctrl+c quit"}
	}
	return styles.StatusBarStyle.Render(strings.Join(items, " • "))
}

// renderTerminalTooSmall shows a centered warning with the current and
// required dimensions.
func (m Model) renderTerminalTooSmall() string {
	warning := fmt.Sprintf(
		"Terminal too small\n\nMinimum: %dx%d\nCurrent: %dx%d",
		MinTerminalWidth, MinTerminalHeight, m.width, m.height,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		styles.ErrorStyle.Render(warning))
}
