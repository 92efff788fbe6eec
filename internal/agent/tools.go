package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/plan"
)

// Tool names as declared to the model.
const (
	GeneratePlanToolName = "generate_project_plan"
	AddTaskToolName      = "add_task"
	SavePlanToolName     = "save_plan"
)

// SaveSuccessPhrase appears in every successful save_plan result. The
// result-text termination mode matches on it.
const SaveSuccessPhrase = "saved successfully"

// PlanHolder is the slice of session state the tools operate on.
type PlanHolder interface {
	CurrentPlan() *plan.Plan
	SetPlan(*plan.Plan)
}

// PlanGenerator produces a validated plan from a free-text idea.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, model, idea string) (*plan.Plan, error)
}

// stringArg reads a string argument from a tool call's args map.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// GeneratePlanTool turns the refined idea into a structured Kanban plan.
type GeneratePlanTool struct {
	generator PlanGenerator
	model     string
	state     PlanHolder
}

// NewGeneratePlanTool creates the plan generation tool. model selects the
// Gemini model used for the single-shot structured call.
func NewGeneratePlanTool(generator PlanGenerator, model string, state PlanHolder) *GeneratePlanTool {
	return &GeneratePlanTool{generator: generator, model: model, state: state}
}

func (t *GeneratePlanTool) Name() string { return GeneratePlanToolName }

func (t *GeneratePlanTool) Description() string {
	return "Takes the user's final, refined project idea, generates a structured Kanban plan, and returns it as a JSON string for review."
}

func (t *GeneratePlanTool) Parameters() *ai.Schema {
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"idea": {
				Type:        ai.TypeString,
				Description: "The final, summarized project idea.",
			},
		},
		Required: []string{"idea"},
	}
}

// Execute generates the plan and stores it in the session. A generation or
// validation failure is returned as an error: it aborts the turn rather than
// flowing back to the model.
func (t *GeneratePlanTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	p, err := t.generator.GeneratePlan(ctx, t.model, stringArg(args, "idea"))
	if err != nil {
		return Result{}, err
	}

	data, err := p.JSON()
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal plan: %w", err)
	}

	t.state.SetPlan(p)
	return Result{Text: string(data)}, nil
}

// AddTaskTool appends one task to the current plan.
type AddTaskTool struct {
	state PlanHolder
}

// NewAddTaskTool creates the add_task tool.
func NewAddTaskTool(state PlanHolder) *AddTaskTool {
	return &AddTaskTool{state: state}
}

func (t *AddTaskTool) Name() string { return AddTaskToolName }

func (t *AddTaskTool) Description() string {
	return "Adds a single task to the current project plan. Requires a plan to have been generated first."
}

func (t *AddTaskTool) Parameters() *ai.Schema {
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"title": {
				Type:        ai.TypeString,
				Description: "A short, clear title for the task.",
			},
			"description": {
				Type:        ai.TypeString,
				Description: "A brief description of what needs to be done.",
			},
		},
		Required: []string{"title"},
	}
}

// Execute appends the task. Missing preconditions come back as in-band error
// results so the model can tell the user what to do instead.
func (t *AddTaskTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	p := t.state.CurrentPlan()
	if p == nil {
		return Result{Text: "No plan exists yet. Generate a project plan before adding tasks.", IsError: true}, nil
	}

	title := stringArg(args, "title")
	if strings.TrimSpace(title) == "" {
		return Result{Text: "Task title must not be empty.", IsError: true}, nil
	}

	task := p.AddTask(title, stringArg(args, "description"))
	return Result{Text: fmt.Sprintf("Added task %d: %s", task.ID, task.Title)}, nil
}

// SavePlanTool writes a serialized plan to disk.
type SavePlanTool struct {
	state PlanHolder
}

// NewSavePlanTool creates the save_plan tool.
func NewSavePlanTool(state PlanHolder) *SavePlanTool {
	return &SavePlanTool{state: state}
}

func (t *SavePlanTool) Name() string { return SavePlanToolName }

func (t *SavePlanTool) Description() string {
	return "Saves the project plan to a JSON file and finishes the session. Call it when the user asks to save."
}

func (t *SavePlanTool) Parameters() *ai.Schema {
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"filename": {
				Type:        ai.TypeString,
				Description: "Target file name; '.json' is appended when missing.",
			},
			"plan_json": {
				Type:        ai.TypeString,
				Description: "The serialized plan to write. Leave empty to save the current plan.",
			},
		},
		Required: []string{"filename"},
	}
}

// Execute writes the plan. I/O failures are reported in-band, never as Go
// errors: the conversation survives a failed write.
func (t *SavePlanTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	filename := stringArg(args, "filename")
	if strings.TrimSpace(filename) == "" {
		return Result{Text: "A filename is required to save the plan.", IsError: true}, nil
	}
	path := plan.NormalizeFilename(filename)

	data := []byte(stringArg(args, "plan_json"))
	if strings.TrimSpace(string(data)) == "" {
		p := t.state.CurrentPlan()
		if p == nil {
			return Result{Text: "No plan to save. Generate a project plan first.", IsError: true}, nil
		}
		var err error
		data, err = p.JSON()
		if err != nil {
			return Result{Text: fmt.Sprintf("Failed to serialize the current plan: %v", err), IsError: true}, nil
		}
	}

	if err := plan.WriteDocument(path, data); err != nil {
		return Result{Text: fmt.Sprintf("Failed to save plan to %s: %v", path, err), IsError: true}, nil
	}
	// Keep the wording in sync with SaveSuccessPhrase
	return Result{Text: fmt.Sprintf("Plan saved successfully to %s", path)}, nil
}
