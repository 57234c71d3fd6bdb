package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/report"
	"github.com/rpggio/taskpad/internal/ui"
	"github.com/spf13/cobra"
)

var boardColumns = []struct {
	status task.Status
	title  string
}{
	{task.StatusTodo, "To Do"},
	{task.StatusInProgress, "In Progress"},
	{task.StatusCompleted, "Completed"},
}

// printBoard groups tasks by status, one section per column.
func printBoard(w io.Writer, tasks []task.Task, now time.Time) {
	for i, col := range boardColumns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		var rows []task.Task
		for _, t := range tasks {
			if t.Status == col.status {
				rows = append(rows, t)
			}
		}
		fmt.Fprintf(w, "%s %s\n", ui.BoldWhite(col.title), ui.Dim(fmt.Sprintf("(%d)", len(rows))))
		for _, t := range rows {
			fmt.Fprintf(w, "  %s\n", ui.TaskLine(t, now))
		}
	}
}

func (c *cli) statsCmd() *cobra.Command {
	var flagStart, flagEnd string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts and completion rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := task.ParseDateRange(flagStart, flagEnd)
			if err != nil {
				return err
			}
			m := c.app.Metrics(cmd.Context(), r)
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), m)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("Tasks"), ui.Dim(report.DescribeRange(r)))
			fmt.Fprintf(w, "  Total:        %s\n", ui.Bold(m.Total))
			fmt.Fprintf(w, "  To do:        %d\n", m.Todo)
			fmt.Fprintf(w, "  In progress:  %d\n", m.InProgress)
			fmt.Fprintf(w, "  Completed:    %d\n", m.Completed)
			overdue := fmt.Sprint(m.Overdue)
			if m.Overdue > 0 {
				overdue = ui.BoldRed(overdue)
			}
			fmt.Fprintf(w, "  Overdue:      %s\n", overdue)
			fmt.Fprintf(w, "  Priority:     %s %d  %s %d  %s %d\n",
				ui.PriorityBadge(task.PriorityHigh), m.High,
				ui.PriorityBadge(task.PriorityMedium), m.Medium,
				ui.PriorityBadge(task.PriorityLow), m.Low)
			if _, ok := report.Percent(m.Completed, m.Total); ok {
				fmt.Fprintf(w, "  Completion:   %d%%\n", m.CompletionRate)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagStart, "start", "", "Created on or after, YYYY-MM-DD")
	cmd.Flags().StringVar(&flagEnd, "end", "", "Created on or before, YYYY-MM-DD")

	return cmd
}

func (c *cli) timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show progress and monthly completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := c.app.Timeline(cmd.Context())
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), d)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", ui.BoldCyan("Progress"))
			fmt.Fprintf(w, "  %s %d completed  %s %d in progress  %s %d upcoming  (of %d)\n",
				ui.StatusIcon(task.StatusCompleted), d.Completed,
				ui.StatusIcon(task.StatusInProgress), d.InProgress,
				ui.StatusIcon(task.StatusTodo), d.Upcoming, d.Total)
			fmt.Fprintf(w, "  high %d  medium %d  low %d\n", d.High, d.Medium, d.Low)

			fmt.Fprintf(w, "\n%s\n", ui.BoldCyan("Completed per month"))
			if len(d.Trend) == 0 {
				fmt.Fprintln(w, ui.Dim("  No completed tasks"))
				return nil
			}
			for _, mc := range d.Trend {
				fmt.Fprintf(w, "  %-8s %s %d\n", mc.Month, ui.Green(strings.Repeat("█", mc.Completed)), mc.Completed)
			}
			return nil
		},
	}
}
