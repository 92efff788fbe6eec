// Package config provides TOML configuration loading for scopa.
// Settings merge in precedence order: defaults, then the global config at
// ~/.config/scopa/config.toml, then the nearest .scopa/config.toml found
// walking up from the working directory, then environment overrides.
package config

import "fmt"

const (
	// DirName is the per-project directory scopa keeps its files in.
	DirName = ".scopa"

	// FileName is the config file name inside DirName and the global dir.
	FileName = "config.toml"

	// EnvAPIKey overrides gemini.api_key when set.
	EnvAPIKey = "GEMINI_API_KEY"
)

// Termination modes for the chat router.
const (
	// TerminationToolName ends the session when the model requests a
	// save_plan call, before looking at the call's outcome.
	TerminationToolName = "tool-name"

	// TerminationResultText ends the session when an executed save_plan
	// result reports success.
	TerminationResultText = "result-text"
)

// Config aggregates all scopa settings.
type Config struct {
	Gemini GeminiConfig `toml:"gemini"`
	Chat   ChatConfig   `toml:"chat"`
	Serve  ServeConfig  `toml:"serve"`
	Log    LogConfig    `toml:"log"`
}

// GeminiConfig holds credentials and model selection for the Gemini API.
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	PlanModel string `toml:"plan_model"`
	BaseURL   string `toml:"base_url"`
}

// ChatConfig holds conversation loop settings.
type ChatConfig struct {
	Termination string `toml:"termination"`
	HistoryFile string `toml:"history_file"`
}

// ServeConfig holds HTTP stub settings.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds file logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:     "gemini-2.5-flash",
			PlanModel: "gemini-1.5-flash",
			BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
		},
		Chat: ChatConfig{
			Termination: TerminationToolName,
		},
		Serve: ServeConfig{
			Addr: ":8000",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks settings that have a closed set of accepted values.
func (c *Config) Validate() error {
	switch c.Chat.Termination {
	case TerminationToolName, TerminationResultText:
		return nil
	default:
		return fmt.Errorf("invalid chat.termination %q (want %q or %q)",
			c.Chat.Termination, TerminationToolName, TerminationResultText)
	}
}
