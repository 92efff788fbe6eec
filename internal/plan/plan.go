package plan

import "encoding/json"

// StatusToDo is the only status a task can hold in the current scope. Every
// task the generator or AddTask produces carries it verbatim.
const StatusToDo = "To-Do"

// Plan is the structured project plan built from a free-form idea.
type Plan struct {
	Title       string `json:"project_title"`
	Description string `json:"project_description"`
	Tasks       []Task `json:"tasks"`
}

// AddTask appends a new to-do task and returns it. The task id is always
// len(tasks)+1, so ids stay contiguous as long as tasks are only ever
// appended. The receiver is mutated in place; the session owns the only
// pointer to a live plan.
func (p *Plan) AddTask(title, description string) Task {
	task := Task{
		ID:          len(p.Tasks) + 1,
		Title:       title,
		Description: description,
		Status:      StatusToDo,
	}
	p.Tasks = append(p.Tasks, task)
	return task
}

// JSON returns the plan serialized with two-space indentation, the form
// shown to the user and written by the save tool.
func (p *Plan) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
