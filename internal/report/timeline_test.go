package report

import (
	"testing"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestTimeline(t *testing.T) {
	tasks := []task.Task{
		{Status: task.StatusCompleted, Priority: task.PriorityHigh, UpdatedAt: time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)},
		{Status: task.StatusCompleted, Priority: task.PriorityLow, UpdatedAt: time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC)},
		{Status: task.StatusCompleted, Priority: task.PriorityLow, UpdatedAt: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{Status: task.StatusInProgress, Priority: task.PriorityMedium},
		{Status: task.StatusTodo, Priority: task.PriorityMedium},
	}

	d := Timeline(tasks)
	require.Equal(t, 5, d.Total)
	require.Equal(t, 3, d.Completed)
	require.Equal(t, 1, d.InProgress)
	require.Equal(t, 1, d.Upcoming)
	require.Equal(t, 1, d.High)
	require.Equal(t, 2, d.Medium)
	require.Equal(t, 2, d.Low)
	require.Equal(t, []MonthCount{{Month: "Dec 2023", Completed: 1}, {Month: "Feb 2024", Completed: 2}}, d.Trend)
}

func TestTimeline_Empty(t *testing.T) {
	d := Timeline(nil)
	require.Zero(t, d.Total)
	require.Empty(t, d.Trend)
	require.NotNil(t, d.Trend)
}

func TestSummarize(t *testing.T) {
	m := Summarize(nil, now)
	require.Equal(t, Metrics{}, m)

	m = Summarize([]task.Task{
		{Status: task.StatusCompleted, Priority: task.PriorityHigh},
		{Status: task.StatusTodo, Priority: task.PriorityHigh},
		{Status: task.StatusTodo, Priority: task.PriorityLow},
	}, now)
	require.Equal(t, 3, m.Total)
	require.Equal(t, 33, m.CompletionRate)
	require.Equal(t, 2, m.High)
	require.Equal(t, 1, m.Low)
}
