package agent

import (
	"strings"

	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/config"
)

// Decision is the router's verdict for one model output.
type Decision int

const (
	// ContinueChat yields control back to the user for the next input.
	ContinueChat Decision = iota

	// RunToolsAndLoop executes the requested tools, appends their results,
	// and re-invokes the model without new user input.
	RunToolsAndLoop

	// RunToolsAndEnd executes the requested tools, reports their results,
	// and ends the session.
	RunToolsAndEnd
)

func (d Decision) String() string {
	switch d {
	case ContinueChat:
		return "continue-chat"
	case RunToolsAndLoop:
		return "run-tools-and-loop"
	case RunToolsAndEnd:
		return "run-tools-and-end"
	default:
		return "unknown"
	}
}

// Router decides, per model output, whether the turn continues chatting,
// loops through tools, or ends the session. The termination rule is
// configurable: "tool-name" ends as soon as the model requests save_plan,
// "result-text" ends only once an executed save reports success.
type Router struct {
	termination string
}

// NewRouter creates a router for the given termination mode. An unknown
// mode falls back to tool-name, the default.
func NewRouter(termination string) *Router {
	if termination != config.TerminationResultText {
		termination = config.TerminationToolName
	}
	return &Router{termination: termination}
}

// Route evaluates the model's latest output before any tool runs.
func (r *Router) Route(content *ai.Content) Decision {
	calls := content.FunctionCalls()
	if len(calls) == 0 {
		return ContinueChat
	}
	if r.termination == config.TerminationToolName {
		for _, call := range calls {
			if call.Name == SavePlanToolName {
				return RunToolsAndEnd
			}
		}
	}
	return RunToolsAndLoop
}

// Finalize re-evaluates a decision after the batch executed. Only the
// result-text mode can upgrade a loop decision to an end decision here.
func (r *Router) Finalize(d Decision, execs []Execution) Decision {
	if d != RunToolsAndLoop || r.termination != config.TerminationResultText {
		return d
	}
	for _, exec := range execs {
		if exec.Call.Name != SavePlanToolName || exec.Result.IsError {
			continue
		}
		if strings.Contains(exec.Result.Text, SaveSuccessPhrase) {
			return RunToolsAndEnd
		}
	}
	return d
}
