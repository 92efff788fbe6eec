package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pablasso/scopa/internal/ai"
	"github.com/pablasso/scopa/internal/config"
	"github.com/pablasso/scopa/internal/logging"
	"github.com/pablasso/scopa/internal/plan"
)

// maxToolRounds bounds the in-turn model/tool loop so a model that keeps
// requesting tools cannot spin forever.
const maxToolRounds = 8

// chatSystemPrompt steers the refinement conversation.
const chatSystemPrompt = `You are a helpful AI project assistant. Your goal is to have a conversation
with the user to refine their project idea. Ask clarifying questions to
understand the core features and goals.

Once the user is happy with the idea and says something like "that's
perfect, generate the plan" or "create the project plan", call the
'generate_project_plan' tool with the final, summarized idea.

After a plan exists, call 'add_task' when the user wants one more task on
the board. When the user asks to save, call 'save_plan' with the filename
they chose; saving the plan completes the session.`

// EventKind tags a session event.
type EventKind int

const (
	// EventAssistantText is a natural-language reply from the model.
	EventAssistantText EventKind = iota

	// EventToolCall announces a tool about to run.
	EventToolCall

	// EventToolResult carries the outcome of an executed tool.
	EventToolResult
)

// Event is a notification emitted synchronously while a turn runs. The
// callback runs on the turn's goroutine; it must not block.
type Event struct {
	Kind EventKind
	Tool string // tool name for tool events
	Text string // assistant reply or tool result text
	Err  bool   // tool result reported an in-band error
}

// EmitFunc receives events during a turn. A nil EmitFunc discards them.
type EmitFunc func(Event)

// ModelClient is the slice of the Gemini client the session depends on.
type ModelClient interface {
	Generate(ctx context.Context, req *ai.GenerateRequest) (*ai.Content, error)
	PlanGenerator
}

// Session owns one conversation: its history, its current plan, its tools,
// and its router. All state is explicit; nothing lives at package level.
// A session is not safe for concurrent use.
type Session struct {
	id      string
	client  ModelClient
	model   string
	tools   *Registry
	router  *Router
	history []ai.Content
	plan    *plan.Plan
	log     *logging.Logger
}

// NewSession builds a session with the full tool set registered.
func NewSession(client ModelClient, cfg *config.Config, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}

	s := &Session{
		id:     uuid.New().String(),
		client: client,
		model:  cfg.Gemini.Model,
		router: NewRouter(cfg.Chat.Termination),
		log:    log,
	}

	s.tools = NewRegistry()
	s.tools.Register(NewGeneratePlanTool(client, cfg.Gemini.PlanModel, s))
	s.tools.Register(NewAddTaskTool(s))
	s.tools.Register(NewSavePlanTool(s))

	log.Info("session started", "session_id", s.id, "model", s.model)
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// CurrentPlan returns the plan generated in this session, or nil.
func (s *Session) CurrentPlan() *plan.Plan { return s.plan }

// SetPlan replaces the session's plan.
func (s *Session) SetPlan(p *plan.Plan) { s.plan = p }

// History returns a copy of the conversation history.
func (s *Session) History() []ai.Content {
	history := make([]ai.Content, len(s.history))
	copy(history, s.history)
	return history
}

// Turn runs one full conversational turn: append the user input, invoke the
// model, and keep executing requested tools until the router yields a
// terminal decision. Events stream to emit as they happen. The returned
// decision is ContinueChat or RunToolsAndEnd; RunToolsAndEnd means the
// session is over and the caller should stop reading input.
func (s *Session) Turn(ctx context.Context, input string, emit EmitFunc) (Decision, error) {
	if emit == nil {
		emit = func(Event) {}
	}

	s.history = append(s.history, ai.UserText(input))

	for round := 0; round < maxToolRounds; round++ {
		content, err := s.client.Generate(ctx, &ai.GenerateRequest{
			Model:    s.model,
			System:   chatSystemPrompt,
			Contents: s.history,
			Tools:    s.tools.Declarations(),
		})
		if err != nil {
			s.log.Error("model call failed", "session_id", s.id, "error", err)
			return ContinueChat, err
		}
		s.history = append(s.history, *content)

		if text := content.Text(); text != "" {
			emit(Event{Kind: EventAssistantText, Text: text})
		}

		decision := s.router.Route(content)
		s.log.Debug("turn routed", "session_id", s.id, "round", round, "decision", decision.String())
		if decision == ContinueChat {
			return ContinueChat, nil
		}

		execs, err := s.execute(ctx, content.FunctionCalls(), emit)
		if err != nil {
			return ContinueChat, err
		}

		responses := make([]ai.FunctionResponse, len(execs))
		for i, exec := range execs {
			responses[i] = toFunctionResponse(exec)
		}
		s.history = append(s.history, ai.FunctionResponses(responses))

		if decision = s.router.Finalize(decision, execs); decision == RunToolsAndEnd {
			s.log.Info("session complete", "session_id", s.id)
			return RunToolsAndEnd, nil
		}
	}

	return ContinueChat, fmt.Errorf("tool loop exceeded %d rounds without a decision", maxToolRounds)
}

// execute runs every requested call in request order. An unknown tool name
// becomes an in-band error result; a tool returning a Go error aborts the
// whole batch.
func (s *Session) execute(ctx context.Context, calls []ai.FunctionCall, emit EmitFunc) ([]Execution, error) {
	execs := make([]Execution, 0, len(calls))
	for _, call := range calls {
		emit(Event{Kind: EventToolCall, Tool: call.Name})
		s.log.Info("tool call", "session_id", s.id, "tool", call.Name)

		tool, ok := s.tools.Get(call.Name)
		if !ok {
			result := Result{Text: "tool not found: " + call.Name, IsError: true}
			emit(Event{Kind: EventToolResult, Tool: call.Name, Text: result.Text, Err: true})
			execs = append(execs, Execution{Call: call, Result: result})
			continue
		}

		result, err := tool.Execute(ctx, call.Args)
		if err != nil {
			s.log.Error("tool failed", "session_id", s.id, "tool", call.Name, "error", err)
			return nil, err
		}

		emit(Event{Kind: EventToolResult, Tool: call.Name, Text: result.Text, Err: result.IsError})
		execs = append(execs, Execution{Call: call, Result: result})
	}
	return execs, nil
}

// toFunctionResponse shapes a tool outcome for the model. Errors travel
// under an "error" key so the model can react to them.
func toFunctionResponse(exec Execution) ai.FunctionResponse {
	key := "result"
	if exec.Result.IsError {
		key = "error"
	}
	return ai.FunctionResponse{
		Name:     exec.Call.Name,
		Response: map[string]any{key: exec.Result.Text},
	}
}
