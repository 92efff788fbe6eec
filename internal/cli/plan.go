package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/config"
	"github.com/pablasso/scopa/internal/plan"
)

var planOutput string

var planCmd = &cobra.Command{
	Use:   "plan [idea]",
	Short: "Generate a project plan from an idea",
	Long:  `Generates a Kanban plan from a one-line project idea, skipping the refinement conversation. The idea can be passed as an argument or typed at the prompt.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "Write the plan JSON to this file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	idea, err := readIdea(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(idea) == "" {
		fmt.Println("No input received. Exiting.")
		return nil
	}

	cfg, err := config.NewLoader().Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Close()

	client := ai.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL)

	status := newStatus()
	status.Start("🛠️ Generating plan")
	p, err := client.GeneratePlan(cmd.Context(), cfg.Gemini.PlanModel, idea)
	status.Stop()
	if err != nil {
		return err
	}

	fmt.Print(formatPlan(p))

	if planOutput != "" {
		path := plan.NormalizeFilename(planOutput)
		if err := p.Save(path); err != nil {
			return err
		}
		fmt.Printf("\nPlan saved to %s\n", path)
	}
	return nil
}

// readIdea takes the idea from the argument list or prompts for one line.
func readIdea(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	fmt.Print("What is your project idea? ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

// formatPlan renders a plan for the one-shot command.
func formatPlan(p *plan.Plan) string {
	var b strings.Builder
	b.WriteString("\n--- ✅ Success! Here is your project plan: ---\n")
	fmt.Fprintf(&b, "\nTitle: %s\n", p.Title)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	b.WriteString("\nInitial Tasks (To-Do):\n")
	for _, task := range p.Tasks {
		fmt.Fprintf(&b, "  - (%d) %s: %s\n", task.ID, task.Title, task.Description)
	}
	b.WriteString("\n-------------------------------------------------\n")
	return b.String()
}
