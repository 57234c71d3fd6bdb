package report

import (
	"sort"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
)

// MonthLayout labels completion trend buckets.
const MonthLayout = "Jan 2006"

// MonthCount is the number of tasks completed in one calendar month.
type MonthCount struct {
	Month     string `json:"month"`
	Completed int    `json:"completed"`
}

// TimelineData backs the timeline view.
type TimelineData struct {
	Total      int          `json:"total"`
	Completed  int          `json:"completed"`
	InProgress int          `json:"inProgress"`
	Upcoming   int          `json:"upcoming"`
	High       int          `json:"high"`
	Medium     int          `json:"medium"`
	Low        int          `json:"low"`
	Trend      []MonthCount `json:"trend"`
}

// Timeline counts tasks by status and priority and buckets completed tasks
// by the month of their last update, oldest first.
func Timeline(tasks []task.Task) TimelineData {
	d := TimelineData{Total: len(tasks), Trend: []MonthCount{}}
	months := make(map[time.Time]int)
	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			d.Completed++
			u := t.UpdatedAt.UTC()
			months[time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)]++
		case task.StatusInProgress:
			d.InProgress++
		case task.StatusTodo:
			d.Upcoming++
		}
		switch t.Priority {
		case task.PriorityHigh:
			d.High++
		case task.PriorityMedium:
			d.Medium++
		case task.PriorityLow:
			d.Low++
		}
	}

	keys := make([]time.Time, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	for _, k := range keys {
		d.Trend = append(d.Trend, MonthCount{Month: k.Format(MonthLayout), Completed: months[k]})
	}
	return d
}
