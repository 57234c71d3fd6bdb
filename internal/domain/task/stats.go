package task

import "time"

// Stats are counts derived from a task collection. They are never stored.
type Stats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// ComputeStats counts tasks by status and overdue state at now.
func ComputeStats(tasks []Task, now time.Time) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			st.Todo++
		case StatusInProgress:
			st.InProgress++
		case StatusCompleted:
			st.Completed++
		}
		if t.Overdue(now) {
			st.Overdue++
		}
	}
	return st
}
