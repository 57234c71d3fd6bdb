package main

import (
	"fmt"

	"github.com/rpggio/taskpad/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var flagEmail, flagPassword string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store a session for seven days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := c.app.Auth().Login(ctx, flagEmail, flagPassword)
			if err != nil {
				return err
			}
			if _, err := c.app.Users().SeedDemo(ctx); err != nil {
				c.logger.Warn("demo user not seeded", "error", err)
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), sess)
			}
			ui.Success(cmd.OutOrStdout(), "Logged in as %s %s", ui.Bold(sess.User.Name), ui.Dim("<"+sess.User.Email+">"))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	cmd.Flags().StringVar(&flagPassword, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return public(cmd)
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.app.Auth().Logout(cmd.Context()) {
				return fmt.Errorf("session not removed")
			}
			ui.Success(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.app.Session(cmd.Context())
			if err != nil {
				return err
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), sess.User)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", ui.BoldWhite(sess.User.Name), ui.Dim("<"+sess.User.Email+">"))
			fmt.Fprintf(w, "Session expires %s\n", sess.ExpiresAt.Local().Format("Mon Jan 2 15:04"))
			return nil
		},
	}
}
