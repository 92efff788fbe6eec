package agent

import (
	"testing"

	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/config"
)

// callContent builds a model content entry requesting the named tools.
func callContent(names ...string) *ai.Content {
	content := &ai.Content{Role: ai.RoleModel}
	for _, name := range names {
		content.Parts = append(content.Parts, ai.Part{
			FunctionCall: &ai.FunctionCall{Name: name, Args: map[string]any{}},
		})
	}
	return content
}

func TestRouterRoute(t *testing.T) {
	tests := []struct {
		name        string
		termination string
		content     *ai.Content
		want        Decision
	}{
		{
			name:        "text only continues chat",
			termination: config.TerminationToolName,
			content:     &ai.Content{Role: ai.RoleModel, Parts: []ai.Part{{Text: "Tell me more."}}},
			want:        ContinueChat,
		},
		{
			name:        "generate call loops",
			termination: config.TerminationToolName,
			content:     callContent(GeneratePlanToolName),
			want:        RunToolsAndLoop,
		},
		{
			name:        "add_task call loops",
			termination: config.TerminationToolName,
			content:     callContent(AddTaskToolName),
			want:        RunToolsAndLoop,
		},
		{
			name:        "save call ends in tool-name mode",
			termination: config.TerminationToolName,
			content:     callContent(SavePlanToolName),
			want:        RunToolsAndEnd,
		},
		{
			name:        "save among other calls ends in tool-name mode",
			termination: config.TerminationToolName,
			content:     callContent(GeneratePlanToolName, SavePlanToolName),
			want:        RunToolsAndEnd,
		},
		{
			name:        "save call only loops in result-text mode",
			termination: config.TerminationResultText,
			content:     callContent(SavePlanToolName),
			want:        RunToolsAndLoop,
		},
		{
			name:        "text only continues chat in result-text mode",
			termination: config.TerminationResultText,
			content:     &ai.Content{Role: ai.RoleModel, Parts: []ai.Part{{Text: "Sounds good."}}},
			want:        ContinueChat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(tt.termination)
			if got := router.Route(tt.content); got != tt.want {
				t.Errorf("Route() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRouterFinalize(t *testing.T) {
	saveOK := Execution{
		Call:   ai.FunctionCall{Name: SavePlanToolName},
		Result: Result{Text: "Plan saved successfully to bakery.json"},
	}
	saveFailed := Execution{
		Call:   ai.FunctionCall{Name: SavePlanToolName},
		Result: Result{Text: "Failed to save plan to bakery.json: permission denied", IsError: true},
	}
	addOK := Execution{
		Call:   ai.FunctionCall{Name: AddTaskToolName},
		Result: Result{Text: "Added task 6: Write docs"},
	}

	tests := []struct {
		name        string
		termination string
		decision    Decision
		execs       []Execution
		want        Decision
	}{
		{
			name:        "successful save ends in result-text mode",
			termination: config.TerminationResultText,
			decision:    RunToolsAndLoop,
			execs:       []Execution{saveOK},
			want:        RunToolsAndEnd,
		},
		{
			name:        "failed save keeps looping in result-text mode",
			termination: config.TerminationResultText,
			decision:    RunToolsAndLoop,
			execs:       []Execution{saveFailed},
			want:        RunToolsAndLoop,
		},
		{
			name:        "non-save results keep looping in result-text mode",
			termination: config.TerminationResultText,
			decision:    RunToolsAndLoop,
			execs:       []Execution{addOK},
			want:        RunToolsAndLoop,
		},
		{
			name:        "tool-name mode never upgrades on results",
			termination: config.TerminationToolName,
			decision:    RunToolsAndLoop,
			execs:       []Execution{saveOK},
			want:        RunToolsAndLoop,
		},
		{
			name:        "end decision passes through",
			termination: config.TerminationToolName,
			decision:    RunToolsAndEnd,
			execs:       []Execution{saveOK},
			want:        RunToolsAndEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(tt.termination)
			if got := router.Finalize(tt.decision, tt.execs); got != tt.want {
				t.Errorf("Finalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRouter_UnknownModeFallsBack(t *testing.T) {
	router := NewRouter("whenever")
	// Falls back to tool-name termination
	if got := router.Route(callContent(SavePlanToolName)); got != RunToolsAndEnd {
		t.Errorf("Route() = %v, want %v", got, RunToolsAndEnd)
	}
}

func TestDecisionString(t *testing.T) {
	tests := []struct {
		decision Decision
		want     string
	}{
		{ContinueChat, "continue-chat"},
		{RunToolsAndLoop, "run-tools-and-loop"},
		{RunToolsAndEnd, "run-tools-and-end"},
		{Decision(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.decision.String(); got != tt.want {
			t.Errorf("Decision(%d).String() = %q, want %q", tt.decision, got, tt.want)
		}
	}
}
