// Package styles defines shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors

	// TitleStyle for the header bar
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// UserStyle for user messages in the transcript
	UserStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// AssistantStyle for assistant replies in the transcript
	AssistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// ToolStyle for tool call banners in the transcript
	ToolStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	// SpinnerStyle for the thinking spinner
	SpinnerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// StatusBarStyle for the bottom help bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// InputStyle for the message input box
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
