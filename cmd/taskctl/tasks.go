package main

import (
	"fmt"
	"strings"

	"github.com/rpggio/taskpad/internal/app"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, browse and change tasks",
	}

	cmd.AddCommand(c.taskAddCmd())
	cmd.AddCommand(c.taskListCmd())
	cmd.AddCommand(c.taskShowCmd())
	cmd.AddCommand(c.taskUpdateCmd())
	cmd.AddCommand(c.taskDeleteCmd())
	cmd.AddCommand(c.taskSearchCmd())
	cmd.AddCommand(c.taskSuggestCmd())

	return cmd
}

func (c *cli) taskAddCmd() *cobra.Command {
	var (
		in          task.CreateInput
		flagSuggest bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in.Priority = task.Priority(strings.ToLower(string(in.Priority)))
			in.Status = task.Status(strings.ToLower(string(in.Status)))

			if flagSuggest {
				s, err := c.app.Suggest(ctx, in.Title, in.Description)
				if err != nil {
					return err
				}
				applySuggestions(&in, s, cmd)
			}

			created, err := c.app.CreateTask(ctx, in)
			if err != nil {
				return err
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), created)
			}
			ui.Success(cmd.OutOrStdout(), "Created %s", ui.TaskLine(*created, c.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Task description")
	cmd.Flags().StringVar((*string)(&in.Priority), "priority", "", "low, medium or high (default medium)")
	cmd.Flags().StringVar((*string)(&in.Status), "status", "", "todo, in-progress or completed (default todo)")
	cmd.Flags().StringVar(&in.DueDate, "due", "", "Due date, YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&in.Tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringSliceVar(&in.Assignees, "assignee", nil, "Assigned user ID (repeatable)")
	cmd.Flags().StringVar(&in.EstimatedTime, "estimate", "", "Time estimate")
	cmd.Flags().BoolVar(&flagSuggest, "suggest", false, "Fill unset fields from keyword analysis")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// applySuggestions fills fields the user left unset.
func applySuggestions(in *task.CreateInput, s *task.AISuggestions, cmd *cobra.Command) {
	if !cmd.Flags().Changed("priority") {
		in.Priority = s.SuggestedPriority
	}
	if !cmd.Flags().Changed("estimate") {
		in.EstimatedTime = s.EstimatedTime
	}
	if !cmd.Flags().Changed("tag") {
		in.Tags = s.Tags
	}
	if !cmd.Flags().Changed("due") && s.Deadline != nil {
		in.DueDate = *s.Deadline
	}
	in.AISuggestions = s
}

func (c *cli) taskListCmd() *cobra.Command {
	var (
		flagStatus, flagPriority, flagSearch string
		flagStart, flagEnd                   string
		flagTags                             []string
		flagAll                              bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			created, err := task.ParseDateRange(flagStart, flagEnd)
			if err != nil {
				return err
			}
			f := task.Filter{
				Status:   task.Status(flagStatus),
				Priority: task.Priority(flagPriority),
				Search:   flagSearch,
				Tags:     flagTags,
				Created:  created,
			}
			if f.Status != "" && !f.Status.Valid() {
				return fmt.Errorf("unknown status %q", flagStatus)
			}
			if f.Priority != "" && !f.Priority.Valid() {
				return fmt.Errorf("unknown priority %q", flagPriority)
			}

			tasks := c.app.Tasks().List(ctx, f)
			if !flagAll && f.Status == "" && !c.app.Preferences(ctx).ShowCompleted {
				tasks = withoutCompleted(tasks)
			}
			return c.printTasks(cmd, tasks)
		},
	}

	cmd.Flags().StringVar(&flagStatus, "status", "", "Only this status")
	cmd.Flags().StringVar(&flagPriority, "priority", "", "Only this priority")
	cmd.Flags().StringVar(&flagSearch, "search", "", "Text in title, description or tags")
	cmd.Flags().StringSliceVar(&flagTags, "tag", nil, "Required tag (repeatable)")
	cmd.Flags().StringVar(&flagStart, "start", "", "Created on or after, YYYY-MM-DD")
	cmd.Flags().StringVar(&flagEnd, "end", "", "Created on or before, YYYY-MM-DD")
	cmd.Flags().BoolVar(&flagAll, "all", false, "Include completed tasks regardless of preferences")

	return cmd
}

func withoutCompleted(tasks []task.Task) []task.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.Status != task.StatusCompleted {
			out = append(out, t)
		}
	}
	return out
}

func (c *cli) printTasks(cmd *cobra.Command, tasks []task.Task) error {
	if c.flagJSON {
		if tasks == nil {
			tasks = []task.Task{}
		}
		return c.outputJSON(cmd.OutOrStdout(), tasks)
	}
	w := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(w, ui.Dim("No tasks"))
		return nil
	}
	now := c.now()
	if c.app.Preferences(cmd.Context()).DefaultView == app.ViewKanban {
		printBoard(w, tasks, now)
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintln(w, ui.TaskLine(t, now))
	}
	return nil
}

// resolveTask finds a task by full ID or unique ID prefix.
func (c *cli) resolveTask(cmd *cobra.Command, ref string) (*task.Task, error) {
	ctx := cmd.Context()
	if t, ok := c.app.Tasks().GetByID(ctx, ref); ok {
		return t, nil
	}
	var match *task.Task
	for _, t := range c.app.Tasks().GetAll(ctx) {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("task id %q is ambiguous", ref)
		}
		match = &t
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, ref)
	}
	return match, nil
}

func (c *cli) taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.resolveTask(cmd, args[0])
			if err != nil {
				return err
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), t)
			}
			ui.TaskDetail(cmd.OutOrStdout(), *t, c.now())
			return nil
		},
	}
}

func (c *cli) taskUpdateCmd() *cobra.Command {
	var (
		flagTitle, flagDescription, flagPriority, flagStatus string
		flagDue, flagEstimate                                string
		flagTags, flagAssignees                              []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.resolveTask(cmd, args[0])
			if err != nil {
				return err
			}

			var p task.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &flagTitle
			}
			if flags.Changed("description") {
				p.Description = &flagDescription
			}
			if flags.Changed("priority") {
				priority := task.Priority(strings.ToLower(flagPriority))
				p.Priority = &priority
			}
			if flags.Changed("status") {
				status := task.Status(strings.ToLower(flagStatus))
				p.Status = &status
			}
			if flags.Changed("due") {
				p.DueDate = &flagDue
			}
			if flags.Changed("estimate") {
				p.EstimatedTime = &flagEstimate
			}
			if flags.Changed("tag") {
				p.Tags = flagTags
				if p.Tags == nil {
					p.Tags = []string{}
				}
			}
			if flags.Changed("assignee") {
				p.Assignees = flagAssignees
				if p.Assignees == nil {
					p.Assignees = []string{}
				}
			}
			if p.Empty() {
				return fmt.Errorf("nothing to update")
			}

			updated, err := c.app.UpdateTask(cmd.Context(), t.ID, p)
			if err != nil {
				return err
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), updated)
			}
			ui.Success(cmd.OutOrStdout(), "Updated %s", ui.TaskLine(*updated, c.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagTitle, "title", "", "Task title")
	cmd.Flags().StringVar(&flagDescription, "description", "", "Task description")
	cmd.Flags().StringVar(&flagPriority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&flagStatus, "status", "", "todo, in-progress or completed")
	cmd.Flags().StringVar(&flagDue, "due", "", "Due date, YYYY-MM-DD (empty clears)")
	cmd.Flags().StringVar(&flagEstimate, "estimate", "", "Time estimate")
	cmd.Flags().StringSliceVar(&flagTags, "tag", nil, "Replace tags (repeatable)")
	cmd.Flags().StringSliceVar(&flagAssignees, "assignee", nil, "Replace assignees (repeatable)")

	return cmd
}

func (c *cli) taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.resolveTask(cmd, args[0])
			if err != nil {
				return err
			}
			if err := c.app.DeleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "Deleted %s", ui.Bold(t.Title))
			return nil
		},
	}
}

func (c *cli) taskSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find tasks by text in title, description or tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printTasks(cmd, c.app.Tasks().Search(cmd.Context(), strings.Join(args, " ")))
		},
	}
}

func (c *cli) taskSuggestCmd() *cobra.Command {
	var flagTitle, flagDescription string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Analyze a draft task without saving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.app.Suggest(cmd.Context(), flagTitle, flagDescription)
			if err != nil {
				return err
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), s)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Priority:  %s\n", ui.PriorityBadge(s.SuggestedPriority))
			fmt.Fprintf(w, "Estimate:  %s\n", s.EstimatedTime)
			if len(s.Tags) > 0 {
				fmt.Fprintf(w, "Tags:      %s\n", strings.Join(s.Tags, ", "))
			}
			if s.Deadline != nil {
				fmt.Fprintf(w, "Deadline:  %s\n", *s.Deadline)
			}
			fmt.Fprintf(w, "%s\n", ui.Dim(s.Reasoning))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagTitle, "title", "", "Draft title")
	cmd.Flags().StringVar(&flagDescription, "description", "", "Draft description")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}
