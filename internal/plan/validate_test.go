package plan

import "testing"

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		wantErr string
	}{
		{
			name: "valid plan passes",
			plan: Plan{
				Title:       "Bakery Website",
				Description: "A site for a small bakery",
				Tasks: []Task{
					{ID: 1, Title: "Task 1", Description: "Do something", Status: StatusToDo},
					{ID: 2, Title: "Task 2", Description: "Do more", Status: StatusToDo},
				},
			},
			wantErr: "",
		},
		{
			name: "empty tasks returns error",
			plan: Plan{
				Title: "Bakery Website",
				Tasks: []Task{},
			},
			wantErr: "plan has no tasks",
		},
		{
			name: "nil tasks returns error",
			plan: Plan{
				Title: "Bakery Website",
				Tasks: nil,
			},
			wantErr: "plan has no tasks",
		},
		{
			name: "task without title returns error",
			plan: Plan{
				Title: "Bakery Website",
				Tasks: []Task{
					{ID: 1, Title: "", Description: "Do something", Status: StatusToDo},
				},
			},
			wantErr: "task 1 missing title",
		},
		{
			name: "ids not starting at 1 returns error",
			plan: Plan{
				Title: "Bakery Website",
				Tasks: []Task{
					{ID: 2, Title: "Task", Status: StatusToDo},
				},
			},
			wantErr: "task 1 has id 2, want 1",
		},
		{
			name: "gap in ids returns error",
			plan: Plan{
				Title: "Bakery Website",
				Tasks: []Task{
					{ID: 1, Title: "Task 1", Status: StatusToDo},
					{ID: 3, Title: "Task 3", Status: StatusToDo},
				},
			},
			wantErr: "task 2 has id 3, want 2",
		},
		{
			name: "duplicate ids returns error",
			plan: Plan{
				Title: "Bakery Website",
				Tasks: []Task{
					{ID: 1, Title: "Task 1", Status: StatusToDo},
					{ID: 1, Title: "Task 1 again", Status: StatusToDo},
				},
			},
			wantErr: "task 2 has id 1, want 2",
		},
		{
			name: "wrong status returns error",
			plan: Plan{
				Title: "Bakery Website",
				Tasks: []Task{
					{ID: 1, Title: "Task 1", Status: "Done"},
				},
			},
			wantErr: `task 1 (Task 1) has status "Done", want "To-Do"`,
		},
		{
			name: "empty plan title is allowed",
			plan: Plan{
				Title: "",
				Tasks: []Task{
					{ID: 1, Title: "Task 1", Status: StatusToDo},
				},
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}
