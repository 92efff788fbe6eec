package agent

import (
	"context"

	"github.com/pablasso/scopa/internal/ai"
)

// Tool is one callable function exposed to the model.
type Tool interface {
	Name() string
	Description() string
	Parameters() *ai.Schema
	// Execute runs the tool. A returned error is fatal and aborts the turn;
	// recoverable failures are reported in-band via Result.IsError so the
	// conversation can continue.
	Execute(ctx context.Context, args map[string]any) (Result, error)
}

// Result is the outcome of one tool execution.
type Result struct {
	Text    string // shown to the user and returned to the model
	IsError bool   // precondition or I/O failure reported in-band
}

// Execution pairs a requested call with its result.
type Execution struct {
	Call   ai.FunctionCall
	Result Result
}

// Registry holds the tools a session can dispatch to. Registration order is
// preserved so declarations reach the model in a stable order.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool. Re-registering a name replaces the tool and keeps
// its original position.
func (r *Registry) Register(tool Tool) {
	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Declarations builds the function declarations sent with every chat call.
func (r *Registry) Declarations() []ai.Tool {
	if len(r.order) == 0 {
		return nil
	}
	decls := make([]ai.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		decls = append(decls, ai.FunctionDeclaration{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return []ai.Tool{{FunctionDeclarations: decls}}
}
