package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/pablasso/scopa/internal/agent"
	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/config"
	"github.com/pablasso/scopa/internal/display"
)

const thinkingLabel = "🤖 Thinking"

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Refine a project idea into a Kanban plan",
	Long:  `Starts an interactive conversation with the scoping assistant. Refine your idea, ask for the plan, and save it when you're happy. Type 'exit' to leave.`,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Close()

	client := ai.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL)
	session := agent.NewSession(client, cfg, log)

	input := newInputReader(cfg)
	defer input.Close()

	fmt.Println(assistantStyle.Render("🤖 Hello! I'm your Project Scoping Assistant. Let's define your idea."))
	fmt.Println(subtleStyle.Render("   Type 'exit' to end the conversation."))

	status := newStatus()
	defer status.Stop()

	for {
		line, err := input.Read(promptStyle.Render("👤 You: "))
		if err != nil {
			// Ctrl+C and Ctrl+D both leave the conversation
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\n👋 Goodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			fmt.Println("👋 Goodbye!")
			return nil
		}

		status.Start(thinkingLabel)
		decision, err := session.Turn(cmd.Context(), line, func(e agent.Event) {
			emitEvent(status, e)
		})
		status.Stop()
		if err != nil {
			return err
		}

		if decision == agent.RunToolsAndEnd {
			fmt.Println("👋 Goodbye!")
			return nil
		}
	}
}

// newStatus creates the waiting indicator. Off-terminal output gets a
// discard-backed display so piped runs stay free of control sequences.
func newStatus() *display.Display {
	if !isStdoutTTY() {
		return display.New(io.Discard)
	}
	return display.New(os.Stdout)
}

// emitEvent prints one session event. On a terminal the event goes above the
// running status line, keeping the elapsed timer ticking across the turn.
func emitEvent(status *display.Display, e agent.Event) {
	text := strings.TrimRight(formatEvent(e), "\n")
	if isStdoutTTY() {
		status.PrintAbove("%s", text)
		return
	}
	fmt.Println(text)
}

// formatEvent renders one session event for the terminal.
func formatEvent(e agent.Event) string {
	switch e.Kind {
	case agent.EventAssistantText:
		if isStdoutTTY() {
			return assistantStyle.Render("🤖 AI:") + " " + renderMarkdown(e.Text)
		}
		return "🤖 AI: " + e.Text
	case agent.EventToolCall:
		return toolStyle.Render(fmt.Sprintf("\n--- 🛠️ Calling %s ---", e.Tool))
	case agent.EventToolResult:
		switch {
		case e.Err:
			return errorStyle.Render("⚠️ " + e.Text)
		case e.Tool == agent.GeneratePlanToolName:
			return "✅ Project Plan Generated:\n" + e.Text
		default:
			return "✅ " + e.Text
		}
	}
	return ""
}

// inputReader wraps liner with persistent input history.
type inputReader struct {
	line        *liner.State
	historyFile string
}

// newInputReader creates the REPL input reader. History lives in the global
// config directory unless chat.history_file points elsewhere.
func newInputReader(cfg *config.Config) *inputReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := cfg.Chat.HistoryFile
	if historyFile == "" {
		if dir := config.GlobalDir(); dir != "" {
			historyFile = filepath.Join(dir, "chat_history")
		}
	}

	r := &inputReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *inputReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// Read reads one line with history navigation. Non-empty input is added to
// the in-memory history.
func (r *inputReader) Read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *inputReader) saveHistory() {
	if r.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Close saves history and restores the terminal state.
func (r *inputReader) Close() {
	r.saveHistory()
	r.line.Close()
}
