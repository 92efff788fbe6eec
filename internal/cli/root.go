package cli

import (
	"github.com/spf13/cobra"

	"github.com/pablasso/scopa/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "scopa",
	Short:   "Conversational project scoping assistant",
	Long:    `Scopa turns a rough project idea into a structured Kanban plan. Chat with the assistant to refine the idea, generate the plan, and save it as JSON.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(deinitCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
