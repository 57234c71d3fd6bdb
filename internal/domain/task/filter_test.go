package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestDateRange_Contains(t *testing.T) {
	r, err := ParseDateRange("2024-05-01", "2024-05-10")
	require.NoError(t, err)

	require.False(t, r.Contains(at("2024-04-30T23:59:59Z")))
	require.True(t, r.Contains(at("2024-05-01T00:00:00Z")))
	require.True(t, r.Contains(at("2024-05-10T18:30:00Z")), "end day is inclusive")
	require.False(t, r.Contains(at("2024-05-11T00:00:00Z")))
}

func TestDateRange_OpenEnded(t *testing.T) {
	from, err := ParseDateRange("2024-05-01", "")
	require.NoError(t, err)
	require.True(t, from.Contains(at("2030-01-01T00:00:00Z")))
	require.False(t, from.Contains(at("2024-04-01T00:00:00Z")))

	until, err := ParseDateRange("", "2024-05-01")
	require.NoError(t, err)
	require.True(t, until.Contains(at("2000-01-01T00:00:00Z")))
	require.False(t, until.Contains(at("2024-05-02T00:00:00Z")))

	all, err := ParseDateRange("", "")
	require.NoError(t, err)
	require.True(t, all.IsZero())
	require.True(t, all.Contains(time.Time{}))
}

func TestParseDateRange_Invalid(t *testing.T) {
	_, err := ParseDateRange("05/01/2024", "")
	var dateErr *DateError
	require.ErrorAs(t, err, &dateErr)
	require.Equal(t, "05/01/2024", dateErr.Value)
}

func TestFilter_Match(t *testing.T) {
	tk := Task{
		Title:       "Fix login bug",
		Description: "Mobile users are locked out",
		Priority:    PriorityHigh,
		Status:      StatusTodo,
		Tags:        []string{"Bug", "mobile"},
		CreatedAt:   at("2024-05-03T10:00:00Z"),
	}

	require.True(t, Filter{}.Match(tk))
	require.True(t, Filter{Status: StatusTodo, Priority: PriorityHigh}.Match(tk))
	require.False(t, Filter{Status: StatusCompleted}.Match(tk))
	require.True(t, Filter{Tags: []string{"bug", "MOBILE"}}.Match(tk))
	require.False(t, Filter{Tags: []string{"bug", "desktop"}}.Match(tk))
	require.True(t, Filter{Search: "LOCKED"}.Match(tk))

	r, err := ParseDateRange("2024-05-04", "")
	require.NoError(t, err)
	require.False(t, Filter{Created: r}.Match(tk))
}

func TestTask_Overdue(t *testing.T) {
	now := at("2024-05-10T12:00:00Z")
	due := "2024-05-10"
	tk := Task{Status: StatusTodo, DueDate: &due}
	require.True(t, tk.Overdue(now), "a calendar due date resolves to UTC midnight")

	later := "2024-05-11"
	tk.DueDate = &later
	require.False(t, tk.Overdue(now))

	tk.DueDate = &due
	tk.Status = StatusCompleted
	require.False(t, tk.Overdue(now))

	tk.Status = StatusInProgress
	tk.DueDate = nil
	require.False(t, tk.Overdue(now))
}

func TestPatch_Empty(t *testing.T) {
	require.True(t, Patch{}.Empty())
	title := "x"
	require.False(t, Patch{Title: &title}.Empty())
}
