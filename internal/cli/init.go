package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pablasso/scopa/internal/config"
)

// starterConfig seeds .scopa/config.toml. Every key is commented out, so
// the built-in defaults stay in effect until the user opts in.
const starterConfig = `# scopa configuration

[gemini]
# api_key = ""                      # or set GEMINI_API_KEY
# model = "gemini-2.5-flash"        # chat model
# plan_model = "gemini-1.5-flash"   # structured plan generation model
# base_url = "https://generativelanguage.googleapis.com/v1beta"

[chat]
# termination = "tool-name"         # "tool-name" or "result-text"
# history_file = ""                 # REPL input history location

[serve]
# addr = ":8000"

[log]
# level = "info"                    # debug, info, warn, or error
# file = ""                         # defaults to .scopa/logs/scopa.log
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize scopa in the current directory",
	Long:  "Creates a .scopa/ folder with a starter config file and a logs directory.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if isInitialized() {
		return fmt.Errorf("scopa is already initialized in this directory")
	}

	dirs := []string{
		config.DirName,
		filepath.Join(config.DirName, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(config.DirName, config.FileName)
	if err := os.WriteFile(configPath, []byte(starterConfig), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	fmt.Println("Initialized scopa in", config.DirName)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set your Gemini API key: export GEMINI_API_KEY=<key>")
	fmt.Println("  2. Run: scopa chat")
	return nil
}

// isInitialized checks for a .scopa directory in the current directory.
func isInitialized() bool {
	info, err := os.Stat(config.DirName)
	return err == nil && info.IsDir()
}
