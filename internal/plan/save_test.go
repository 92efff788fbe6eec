package plan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare name gets suffix", input: "my-plan", want: "my-plan.json"},
		{name: "existing suffix not doubled", input: "my-plan.json", want: "my-plan.json"},
		{name: "other extension gets suffix appended", input: "my-plan.txt", want: "my-plan.txt.json"},
		{name: "path with directories", input: "plans/my-plan", want: "plans/my-plan.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteDocument(t *testing.T) {
	t.Run("writes file contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.json")

		if err := WriteDocument(path, []byte(`{"project_title":"x"}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read written file: %v", err)
		}
		if string(data) != `{"project_title":"x"}` {
			t.Errorf("file contents = %q, want %q", string(data), `{"project_title":"x"}`)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.json")
		if err := os.WriteFile(path, []byte("old contents"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := WriteDocument(path, []byte("new contents")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "new contents" {
			t.Errorf("file contents = %q, want %q", string(data), "new contents")
		}
	})

	t.Run("missing directory returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no-such-dir", "plan.json")

		err := WriteDocument(path, []byte("{}"))
		if err == nil {
			t.Fatal("expected error for missing directory, got nil")
		}
	})
}

func TestPlanSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bakery.json")
	plan := Plan{
		Title:       "Bakery Website",
		Description: "A site for a small bakery",
		Tasks: []Task{
			{ID: 1, Title: "Choose a domain name", Description: "Pick and register the domain", Status: StatusToDo},
		},
	}

	if err := plan.Save(path); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved plan: %v", err)
	}

	var restored Plan
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("saved plan is not valid JSON: %v", err)
	}
	if restored.Title != plan.Title {
		t.Errorf("Title mismatch: got %q, want %q", restored.Title, plan.Title)
	}
	if len(restored.Tasks) != 1 {
		t.Fatalf("saved plan has %d tasks, want 1", len(restored.Tasks))
	}
	if restored.Tasks[0] != plan.Tasks[0] {
		t.Errorf("Tasks[0] mismatch: got %+v, want %+v", restored.Tasks[0], plan.Tasks[0])
	}
}
