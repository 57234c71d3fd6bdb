package user

import (
	"math"

	"github.com/rpggio/taskpad/internal/domain/task"
)

// MemberLoad is a member's share of the task collection.
type MemberLoad struct {
	Member    Member `json:"member"`
	Assigned  int    `json:"assigned"`
	Completed int    `json:"completed"`
}

// TeamStats summarizes the directory against the task collection.
type TeamStats struct {
	TotalUsers      int          `json:"totalUsers"`
	TotalTasks      int          `json:"totalTasks"`
	TotalCompleted  int          `json:"totalCompleted"`
	AvgTasksPerUser int          `json:"avgTasksPerUser"`
	Members         []MemberLoad `json:"members"`
}

// ComputeTeamStats counts per-member load from task assignees.
func ComputeTeamStats(members []Member, tasks []task.Task) TeamStats {
	st := TeamStats{
		TotalUsers: len(members),
		TotalTasks: len(tasks),
		Members:    make([]MemberLoad, 0, len(members)),
	}
	if len(members) > 0 {
		st.AvgTasksPerUser = int(math.Round(float64(len(tasks)) / float64(len(members))))
	}

	index := make(map[string]int, len(members))
	for i, m := range members {
		index[m.ID] = i
		st.Members = append(st.Members, MemberLoad{Member: m})
	}
	for _, t := range tasks {
		done := t.Status == task.StatusCompleted
		if done {
			st.TotalCompleted++
		}
		for _, id := range t.Assignees {
			i, ok := index[id]
			if !ok {
				continue
			}
			st.Members[i].Assigned++
			if done {
				st.Members[i].Completed++
			}
		}
	}
	return st
}
