package main

import (
	"fmt"

	"github.com/rpggio/taskpad/internal/app"
	"github.com/rpggio/taskpad/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) prefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.app.Preferences(cmd.Context())
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), p)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "view:           %s\n", p.DefaultView)
			fmt.Fprintf(w, "show-completed: %t\n", p.ShowCompleted)
			fmt.Fprintf(w, "color:          %t\n", p.Color)
			return nil
		},
	}

	cmd.AddCommand(c.prefsSetCmd())
	return cmd
}

func (c *cli) prefsSetCmd() *cobra.Command {
	var (
		flagView          string
		flagShowCompleted bool
		flagColor         bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change display preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := c.app.Preferences(ctx)
			flags := cmd.Flags()
			if flags.Changed("view") {
				if flagView != app.ViewList && flagView != app.ViewKanban {
					return fmt.Errorf("unknown view %q", flagView)
				}
				p.DefaultView = flagView
			}
			if flags.Changed("show-completed") {
				p.ShowCompleted = flagShowCompleted
			}
			if flags.Changed("color") {
				p.Color = flagColor
			}
			if !c.app.SavePreferences(ctx, p) {
				return fmt.Errorf("preferences not saved")
			}
			ui.Success(cmd.OutOrStdout(), "Preferences saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&flagView, "view", "", "list or kanban")
	cmd.Flags().BoolVar(&flagShowCompleted, "show-completed", true, "Include completed tasks in lists")
	cmd.Flags().BoolVar(&flagColor, "color", true, "Colored output")

	return cmd
}
