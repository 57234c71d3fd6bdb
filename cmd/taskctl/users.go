package main

import (
	"fmt"

	"github.com/rpggio/taskpad/internal/domain/user"
	"github.com/rpggio/taskpad/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the team directory",
	}

	cmd.AddCommand(c.usersListCmd())
	cmd.AddCommand(c.usersAddCmd())
	cmd.AddCommand(c.usersRemoveCmd())
	cmd.AddCommand(c.usersStatsCmd())

	return cmd
}

func (c *cli) usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members := c.app.Users().List(cmd.Context())
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), members)
			}
			w := cmd.OutOrStdout()
			if len(members) == 0 {
				fmt.Fprintln(w, ui.Dim("No team members"))
				return nil
			}
			for _, m := range members {
				fmt.Fprintf(w, "%s  %s %s  %s\n", ui.Dim(m.ID), ui.Bold(m.Name), ui.Dim("<"+m.Email+">"), ui.Cyan(m.Role))
			}
			return nil
		},
	}
}

func (c *cli) usersAddCmd() *cobra.Command {
	var in user.CreateInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team member",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.app.Users().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), m)
			}
			ui.Success(cmd.OutOrStdout(), "Added %s %s", ui.Bold(m.Name), ui.Dim(m.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Role, "role", "", "Role on the team")
	cmd.Flags().StringVar(&in.Avatar, "avatar", "", "Avatar URL")

	return cmd
}

func (c *cli) usersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.app.Users().Delete(cmd.Context(), args[0]) {
				return fmt.Errorf("%w: %s", user.ErrUserNotFound, args[0])
			}
			ui.Success(cmd.OutOrStdout(), "Removed %s", args[0])
			return nil
		},
	}
}

func (c *cli) usersStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show assigned and completed tasks per member",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := c.app.TeamStats(cmd.Context())
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), st)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %d members, %d tasks, %d completed, %d per member\n",
				ui.BoldCyan("Team"), st.TotalUsers, st.TotalTasks, st.TotalCompleted, st.AvgTasksPerUser)
			for _, load := range st.Members {
				fmt.Fprintf(w, "  %-24s %d assigned  %d completed\n", load.Member.Name, load.Assigned, load.Completed)
			}
			return nil
		},
	}
}
