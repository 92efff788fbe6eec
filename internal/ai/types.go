package ai

// Conversation roles. The Gemini API uses "model" where other providers say
// "assistant"; tool results travel back in a "user" content entry.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Schema type names accepted by the Gemini API (OpenAPI subset).
const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeInteger = "INTEGER"
)

// Content is one entry in a conversation: a role plus an ordered list of
// parts. History is a []Content appended to on every turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a single piece of a content entry. Exactly one field is set.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// FunctionResponse carries a tool result back to the model.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Tool declares a group of callable functions to the model.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations"`
}

// FunctionDeclaration describes one callable function.
type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Schema is the OpenAPI-style parameter/response schema subset Gemini
// understands.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// GenerationConfig tunes a single generateContent call. ResponseMIMEType
// "application/json" plus a ResponseSchema switches the model into
// structured-output mode.
type GenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema  `json:"responseSchema,omitempty"`
}

// UserText builds a user content entry holding a single text part.
func UserText(text string) Content {
	return Content{Role: RoleUser, Parts: []Part{{Text: text}}}
}

// ModelText builds a model content entry holding a single text part.
func ModelText(text string) Content {
	return Content{Role: RoleModel, Parts: []Part{{Text: text}}}
}

// FunctionResponses builds the user content entry that returns executed tool
// results to the model, preserving their order.
func FunctionResponses(responses []FunctionResponse) Content {
	parts := make([]Part, len(responses))
	for i := range responses {
		parts[i] = Part{FunctionResponse: &responses[i]}
	}
	return Content{Role: RoleUser, Parts: parts}
}

// Text concatenates the text parts of a content entry.
func (c Content) Text() string {
	var out string
	for _, part := range c.Parts {
		out += part.Text
	}
	return out
}

// FunctionCalls returns the tool invocations requested by a content entry,
// in the order the model listed them.
func (c Content) FunctionCalls() []FunctionCall {
	var calls []FunctionCall
	for _, part := range c.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, *part.FunctionCall)
		}
	}
	return calls
}
