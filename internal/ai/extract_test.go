package ai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    string
		wantErr bool
	}{
		{
			name:    "clean JSON",
			input:   []byte(`{"project_title":"test","tasks":[]}`),
			want:    `{"project_title":"test","tasks":[]}`,
			wantErr: false,
		},
		{
			name:    "JSON with leading text",
			input:   []byte(`Here is the plan: {"project_title":"test","tasks":[]}`),
			want:    `{"project_title":"test","tasks":[]}`,
			wantErr: false,
		},
		{
			name:    "JSON with trailing text",
			input:   []byte(`{"project_title":"test","tasks":[]} Hope this helps!`),
			want:    `{"project_title":"test","tasks":[]}`,
			wantErr: false,
		},
		{
			name:    "JSON with leading and trailing text",
			input:   []byte(`Here you go: {"project_title":"test","tasks":[]} Let me know.`),
			want:    `{"project_title":"test","tasks":[]}`,
			wantErr: false,
		},
		{
			name:    "markdown-wrapped JSON",
			input:   []byte("```json\n" + `{"project_title":"test","tasks":[]}` + "\n```"),
			want:    `{"project_title":"test","tasks":[]}`,
			wantErr: false,
		},
		{
			name:    "bare fence wrapper",
			input:   []byte("```\n" + `{"project_title":"test","tasks":[]}` + "\n```"),
			want:    `{"project_title":"test","tasks":[]}`,
			wantErr: false,
		},
		{
			name:    "nested JSON object",
			input:   []byte(`{"project_title":"test","tasks":[{"id":1,"title":"Task 1","description":"Do something","status":"To-Do"}]}`),
			want:    `{"project_title":"test","tasks":[{"id":1,"title":"Task 1","description":"Do something","status":"To-Do"}]}`,
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			input:   []byte(`{"project_title":"test"`),
			wantErr: true,
		},
		{
			name:    "no JSON",
			input:   []byte(`This is just plain text with no JSON`),
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   []byte{},
			wantErr: true,
		},
		{
			name:    "only braces without valid JSON",
			input:   []byte(`{invalid json content}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("extractJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("extractJSON() = %s, want %s", string(got), tt.want)
			}
		})
	}
}
