package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pablasso/scopa/internal/plan"
)

// ErrBlankIdea indicates an empty or whitespace-only project idea.
var ErrBlankIdea = errors.New("project idea is blank")

// planSystemPrompt steers the single-shot plan generation call.
const planSystemPrompt = `You are an expert project manager AI. Your job is to take a user's idea
and create a clear, structured project plan with multiple initial tasks
that can be used on a Kanban board. These can be 5-15 or even more steps
if needed accordingly.

IMPORTANT: For every task you create, the 'status' field MUST be the
exact string 'To-Do'. Task ids are integers starting from 1 with no gaps.`

// planResponseSchema constrains structured output to the plan shape.
var planResponseSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"project_title": {
			Type:        TypeString,
			Description: "The official title of the project.",
		},
		"project_description": {
			Type:        TypeString,
			Description: "A 1-2 sentence summary of the project.",
		},
		"tasks": {
			Type:        TypeArray,
			Description: "Initial tasks for the To-Do column.",
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"id": {
						Type:        TypeInteger,
						Description: "Unique ID for the task, starting from 1.",
					},
					"title": {
						Type:        TypeString,
						Description: "A short, clear title for the task.",
					},
					"description": {
						Type:        TypeString,
						Description: "A brief description of what needs to be done.",
					},
					"status": {
						Type: TypeString,
						Enum: []string{plan.StatusToDo},
					},
				},
				Required: []string{"id", "title", "description", "status"},
			},
		},
	},
	Required: []string{"project_title", "project_description", "tasks"},
}

// GeneratePlan turns a free-text idea into a validated plan with one
// structured-output model call. A plan that fails validation is an error for
// the caller; there is no retry or local recovery.
func (c *Client) GeneratePlan(ctx context.Context, model, idea string) (*plan.Plan, error) {
	if strings.TrimSpace(idea) == "" {
		return nil, ErrBlankIdea
	}

	req := &GenerateRequest{
		Model:    model,
		System:   planSystemPrompt,
		Contents: []Content{UserText(idea)},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   planResponseSchema,
		},
	}

	content, err := c.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	// Structured output is usually clean JSON, but the model can still wrap
	// it in markdown fences or surrounding prose.
	jsonData, err := extractJSON([]byte(content.Text()))
	if err != nil {
		return nil, fmt.Errorf("failed to extract JSON from model response: %w", err)
	}

	var p plan.Plan
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	return &p, nil
}
