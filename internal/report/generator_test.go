package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	status   task.Status
	priority task.Priority
	overdue  bool
}

func build(fixtures ...fixture) []task.Task {
	past := "2024-03-01"
	tasks := make([]task.Task, 0, len(fixtures))
	for i, s := range fixtures {
		t := task.Task{
			ID:          fmt.Sprintf("t%d", i),
			Title:       "Routine chore",
			Description: "Nothing special about this item",
			Status:      s.status,
			Priority:    s.priority,
			CreatedAt:   now.Add(-48 * time.Hour),
			UpdatedAt:   now.Add(-48 * time.Hour),
		}
		if s.overdue {
			t.DueDate = &past
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func repeat(n int, s fixture) []fixture {
	out := make([]fixture, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestGenerate_EmptyCollection(t *testing.T) {
	out := Generate(nil, task.DateRange{}, now)

	require.Contains(t, out, "- **Total Tasks**: 0")
	require.Contains(t, out, "- **Completed Tasks**: 0\n")
	require.Contains(t, out, "- **High Priority**: 0 tasks\n")
	require.NotContains(t, out, "NaN")
	require.NotContains(t, out, "(0%)")
	require.Contains(t, out, "### ✅ No Overdue Tasks")
	require.NotContains(t, out, "Overdue Tasks Alert")
	require.Contains(t, out, "Analysis Period: for all time")
	require.Contains(t, out, "Report Generated: Friday, March 15, 2024")
}

func TestGenerate_OverdueAlertIffOverdue(t *testing.T) {
	with := Generate(build(fixture{task.StatusTodo, task.PriorityMedium, true}), task.DateRange{}, now)
	require.Contains(t, with, "### ⚠️ Overdue Tasks Alert")
	require.Contains(t, with, "There are currently **1 overdue tasks**")
	require.NotContains(t, with, "No Overdue Tasks")

	without := Generate(build(fixture{task.StatusTodo, task.PriorityMedium, false}), task.DateRange{}, now)
	require.NotContains(t, without, "Overdue Tasks Alert")
	require.Contains(t, without, "### ✅ No Overdue Tasks")

	completed := Generate(build(fixture{task.StatusCompleted, task.PriorityMedium, true}), task.DateRange{}, now)
	require.NotContains(t, completed, "Overdue Tasks Alert")
}

func TestGenerate_CompletionBands(t *testing.T) {
	done := fixture{task.StatusCompleted, task.PriorityMedium, false}
	open := fixture{task.StatusTodo, task.PriorityMedium, false}

	cases := []struct {
		completed int
		want      string
	}{
		{8, "✅ **Excellent Performance**"},
		{6, "✓ **Good Performance**"},
		{4, "⚠️ **Moderate Performance**"},
		{3, "⚠️ **Attention Required**"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			fixtures := append(repeat(tc.completed, done), repeat(10-tc.completed, open)...)
			out := Generate(build(fixtures...), task.DateRange{}, now)
			require.Contains(t, out, tc.want)
			require.Contains(t, out, fmt.Sprintf("### Completion Rate: %d%%", tc.completed*10))
			require.Equal(t, 1, strings.Count(out, "Performance** -")+strings.Count(out, "Required** -"))
		})
	}
}

func TestGenerate_Workload(t *testing.T) {
	busy := Generate(build(
		fixture{task.StatusInProgress, task.PriorityLow, false},
		fixture{task.StatusInProgress, task.PriorityLow, false},
		fixture{task.StatusTodo, task.PriorityLow, false},
	), task.DateRange{}, now)
	require.Contains(t, busy, "- Current focus is primarily on in-progress tasks")

	even := Generate(build(
		fixture{task.StatusInProgress, task.PriorityLow, false},
		fixture{task.StatusTodo, task.PriorityLow, false},
	), task.DateRange{}, now)
	require.Contains(t, even, "- Higher number of pending tasks")
}

func TestGenerate_PriorityAnalysis(t *testing.T) {
	high := Generate(build(
		fixture{task.StatusTodo, task.PriorityHigh, false},
		fixture{task.StatusTodo, task.PriorityHigh, false},
		fixture{task.StatusTodo, task.PriorityLow, false},
	), task.DateRange{}, now)
	require.Contains(t, high, "### High Priority Focus")
	require.Contains(t, high, "high-priority tasks (67%). This indicates:")
	require.Contains(t, high, "- **High Priority**: 2 tasks (67%)")

	balanced := Generate(build(
		fixture{task.StatusTodo, task.PriorityHigh, false},
		fixture{task.StatusTodo, task.PriorityLow, false},
	), task.DateRange{}, now)
	require.Contains(t, balanced, "### Balanced Priority Distribution")
}

func TestGenerate_Recommendations(t *testing.T) {
	// 12 high, 11 in progress, 4 overdue, 1 completed of 16.
	fixtures := append(repeat(11, fixture{task.StatusInProgress, task.PriorityHigh, false}),
		fixture{task.StatusCompleted, task.PriorityHigh, false})
	fixtures = append(fixtures, repeat(4, fixture{task.StatusTodo, task.PriorityLow, true})...)
	out := Generate(build(fixtures...), task.DateRange{}, now)

	require.Contains(t, out, "1. **Improve Completion Rate**")
	require.Contains(t, out, "2. **Address Overdue Tasks**")
	require.Contains(t, out, "3. **Reduce Work-in-Progress**")
	require.Contains(t, out, "4. **High Priority Management**")
	require.Contains(t, out, "5. **Maintain Momentum**")
	require.Contains(t, out, "6. **Regular Reviews**")
	require.Contains(t, out, "Performance metrics indicate significant opportunities")
}

func TestGenerate_RecommendationsRenumber(t *testing.T) {
	out := Generate(build(repeat(4, fixture{task.StatusCompleted, task.PriorityMedium, false})...), task.DateRange{}, now)

	require.NotContains(t, out, "Improve Completion Rate")
	require.NotContains(t, out, "Address Overdue Tasks")
	require.NotContains(t, out, "Reduce Work-in-Progress")
	require.NotContains(t, out, "High Priority Management")
	require.Contains(t, out, "1. **Maintain Momentum**")
	require.Contains(t, out, "2. **Regular Reviews**")
	require.Contains(t, out, "demonstrates strong execution and organization")
}

func TestGenerate_ConclusionMiddleBand(t *testing.T) {
	// 75% complete but one overdue.
	fixtures := append(repeat(3, fixture{task.StatusCompleted, task.PriorityMedium, false}),
		fixture{task.StatusTodo, task.PriorityMedium, true})
	out := Generate(build(fixtures...), task.DateRange{}, now)
	require.Contains(t, out, "Overall performance shows positive trends")
}

func TestGenerate_FiltersByCreatedAt(t *testing.T) {
	tasks := build(fixture{task.StatusTodo, task.PriorityMedium, false}, fixture{task.StatusTodo, task.PriorityMedium, false})
	tasks[1].CreatedAt = time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)

	r, err := task.ParseDateRange("2024-01-01", "2024-03-31")
	require.NoError(t, err)
	out := Generate(tasks, r, now)
	require.Contains(t, out, "- **Total Tasks**: 1")
	require.Contains(t, out, "Analysis Period: from 1/1/2024 to 3/31/2024")
}

func TestGenerate_Reclassification(t *testing.T) {
	tasks := build(fixture{task.StatusTodo, task.PriorityLow, false}, fixture{task.StatusTodo, task.PriorityHigh, false})
	tasks[0].Description = "Urgent fix for the checkout page"

	out := Generate(tasks, task.DateRange{}, now)
	require.Contains(t, out, "### Reclassification Candidates")
	require.Contains(t, out, "rates **1 task** above")

	tasks[0].Priority = task.PriorityHigh
	require.NotContains(t, Generate(tasks, task.DateRange{}, now), "Reclassification Candidates")
}

func TestGenerate_Deterministic(t *testing.T) {
	tasks := build(fixture{task.StatusTodo, task.PriorityHigh, true}, fixture{task.StatusCompleted, task.PriorityLow, false})
	require.Equal(t, Generate(tasks, task.DateRange{}, now), Generate(tasks, task.DateRange{}, now))
}

func TestDescribeRange(t *testing.T) {
	both, _ := task.ParseDateRange("2024-01-05", "2024-02-10")
	from, _ := task.ParseDateRange("2024-01-05", "")
	until, _ := task.ParseDateRange("", "2024-02-10")

	require.Equal(t, "from 1/5/2024 to 2/10/2024", DescribeRange(both))
	require.Equal(t, "from 1/5/2024 onwards", DescribeRange(from))
	require.Equal(t, "until 2/10/2024", DescribeRange(until))
	require.Equal(t, "for all time", DescribeRange(task.DateRange{}))
}

func TestPercent(t *testing.T) {
	_, ok := Percent(3, 0)
	require.False(t, ok)

	p, ok := Percent(1, 3)
	require.True(t, ok)
	require.Equal(t, 33, p)

	p, _ = Percent(2, 3)
	require.Equal(t, 67, p)
}
