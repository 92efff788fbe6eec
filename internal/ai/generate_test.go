package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pablasso/scopa/internal/plan"
)

// planServer returns a mock Gemini endpoint whose single candidate holds the
// given text.
func planServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Error("structured output not requested")
		}
		if req.GenerationConfig != nil && req.GenerationConfig.ResponseSchema == nil {
			t.Error("response schema missing")
		}

		resp := geminiResponse{
			Candidates: []geminiCandidate{
				{Content: Content{Role: RoleModel, Parts: []Part{{Text: text}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

const validPlanJSON = `{
  "project_title": "Bakery Website",
  "project_description": "A site for a small bakery.",
  "tasks": [
    {"id": 1, "title": "Choose a domain", "description": "Pick and register it", "status": "To-Do"},
    {"id": 2, "title": "Design the homepage", "description": "Sketch the layout", "status": "To-Do"},
    {"id": 3, "title": "Add a menu page", "description": "List the products", "status": "To-Do"},
    {"id": 4, "title": "Set up hosting", "description": "Deploy the site", "status": "To-Do"},
    {"id": 5, "title": "Announce the launch", "description": "Post on social media", "status": "To-Do"}
  ]
}`

func TestGeneratePlan(t *testing.T) {
	server := planServer(t, validPlanJSON)
	defer server.Close()

	client := NewClient("test-key", server.URL)
	p, err := client.GeneratePlan(context.Background(), "gemini-1.5-flash", "a bakery website")
	if err != nil {
		t.Fatalf("GeneratePlan() unexpected error: %v", err)
	}

	if p.Title != "Bakery Website" {
		t.Errorf("Title = %q, want %q", p.Title, "Bakery Website")
	}
	if len(p.Tasks) != 5 {
		t.Fatalf("got %d tasks, want 5", len(p.Tasks))
	}
	for i, task := range p.Tasks {
		if task.ID != i+1 {
			t.Errorf("task %d has id %d, want %d", i, task.ID, i+1)
		}
		if task.Status != plan.StatusToDo {
			t.Errorf("task %d status = %q, want %q", i, task.Status, plan.StatusToDo)
		}
	}
}

func TestGeneratePlan_FencedOutput(t *testing.T) {
	server := planServer(t, "```json\n"+validPlanJSON+"\n```")
	defer server.Close()

	client := NewClient("test-key", server.URL)
	p, err := client.GeneratePlan(context.Background(), "gemini-1.5-flash", "a bakery website")
	if err != nil {
		t.Fatalf("GeneratePlan() unexpected error: %v", err)
	}
	if len(p.Tasks) != 5 {
		t.Errorf("got %d tasks, want 5", len(p.Tasks))
	}
}

func TestGeneratePlan_BlankIdea(t *testing.T) {
	// Must fail before any request is sent
	client := NewClient("test-key", "http://localhost:0")

	for _, idea := range []string{"", "   ", "\n\t"} {
		if _, err := client.GeneratePlan(context.Background(), "gemini-1.5-flash", idea); !errors.Is(err, ErrBlankIdea) {
			t.Errorf("GeneratePlan(%q) error = %v, want ErrBlankIdea", idea, err)
		}
	}
}

func TestGeneratePlan_InvalidShapePropagates(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "wrong status",
			payload: `{"project_title":"x","project_description":"y","tasks":[{"id":1,"title":"a","description":"b","status":"Done"}]}`,
			wantErr: "invalid plan",
		},
		{
			name:    "id gap",
			payload: `{"project_title":"x","project_description":"y","tasks":[{"id":1,"title":"a","description":"b","status":"To-Do"},{"id":3,"title":"c","description":"d","status":"To-Do"}]}`,
			wantErr: "invalid plan",
		},
		{
			name:    "no tasks",
			payload: `{"project_title":"x","project_description":"y","tasks":[]}`,
			wantErr: "invalid plan",
		},
		{
			name:    "not JSON at all",
			payload: `the model refused`,
			wantErr: "failed to extract JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := planServer(t, tt.payload)
			defer server.Close()

			client := NewClient("test-key", server.URL)
			_, err := client.GeneratePlan(context.Background(), "gemini-1.5-flash", "an idea")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
