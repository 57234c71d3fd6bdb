package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
)

// TaskLine renders a one-line task summary.
func TaskLine(t task.Task, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s  [%s]", StatusIcon(t.Status), Dim(shortID(t.ID)), Bold(t.Title), PriorityBadge(t.Priority))
	if t.DueDate != nil {
		due := "due " + *t.DueDate
		if t.Overdue(now) {
			due = BoldRed(due + " overdue")
		} else {
			due = Dim(due)
		}
		b.WriteString("  " + due)
	}
	if len(t.Tags) > 0 {
		b.WriteString("  " + Cyan("#"+strings.Join(t.Tags, " #")))
	}
	return b.String()
}

// TaskDetail writes every field of t.
func TaskDetail(w io.Writer, t task.Task, now time.Time) {
	fmt.Fprintf(w, "%s %s\n", BoldWhite(t.Title), Dim(t.ID))
	fmt.Fprintf(w, "  Status:   %s\n", StatusLabel(t.Status))
	fmt.Fprintf(w, "  Priority: %s\n", PriorityBadge(t.Priority))
	if t.DueDate != nil {
		overdue := ""
		if t.Overdue(now) {
			overdue = " " + BoldRed("(overdue)")
		}
		fmt.Fprintf(w, "  Due:      %s%s\n", *t.DueDate, overdue)
	}
	if t.EstimatedTime != nil {
		fmt.Fprintf(w, "  Estimate: %s\n", *t.EstimatedTime)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	if len(t.Assignees) > 0 {
		fmt.Fprintf(w, "  Assigned: %s\n", strings.Join(t.Assignees, ", "))
	}
	fmt.Fprintf(w, "  Created:  %s\n", t.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "  Updated:  %s\n", t.UpdatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "\n%s\n", t.Description)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
