package plan

import (
	"errors"
	"fmt"
)

// Validate checks that a plan decoded from model output holds the shape the
// rest of the app relies on: at least one task, titles present, ids
// contiguous from 1, and every status set to To-Do.
func (p *Plan) Validate() error {
	if len(p.Tasks) == 0 {
		return errors.New("plan has no tasks")
	}
	for i, task := range p.Tasks {
		if task.Title == "" {
			return fmt.Errorf("task %d missing title", i+1)
		}
		if task.ID != i+1 {
			return fmt.Errorf("task %d has id %d, want %d", i+1, task.ID, i+1)
		}
		if task.Status != StatusToDo {
			return fmt.Errorf("task %d (%s) has status %q, want %q", i+1, task.Title, task.Status, StatusToDo)
		}
	}
	return nil
}
