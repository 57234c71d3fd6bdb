// Package report turns a task collection into dashboard metrics, timeline
// series and the narrative insights report.
package report

import (
	"math"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
)

// Metrics are the aggregates the report and dashboards are built from.
type Metrics struct {
	task.Stats
	High           int `json:"high"`
	Medium         int `json:"medium"`
	Low            int `json:"low"`
	CompletionRate int `json:"completionRate"`
}

// Summarize aggregates tasks at now. CompletionRate is 0 for an empty set.
func Summarize(tasks []task.Task, now time.Time) Metrics {
	m := Metrics{Stats: task.ComputeStats(tasks, now)}
	for _, t := range tasks {
		switch t.Priority {
		case task.PriorityHigh:
			m.High++
		case task.PriorityMedium:
			m.Medium++
		case task.PriorityLow:
			m.Low++
		}
	}
	if rate, ok := Percent(m.Completed, m.Total); ok {
		m.CompletionRate = rate
	}
	return m
}

// Percent returns round(count/total*100). ok is false when total is zero
// and no percentage exists.
func Percent(count, total int) (pct int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(count) / float64(total) * 100)), true
}
