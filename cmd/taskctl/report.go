package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/taskpad/internal/app"
	"github.com/rpggio/taskpad/internal/domain/task"
	"github.com/rpggio/taskpad/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) reportCmd() *cobra.Command {
	var flagStart, flagEnd, flagPDF string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the insights report",
		Long: `Generate the markdown insights report for tasks created between --start
and --end (both inclusive, YYYY-MM-DD). With --pdf the report is written as
an A4 PDF instead; a directory argument gets the default file name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := task.ParseDateRange(flagStart, flagEnd)
			if err != nil {
				return err
			}

			if flagPDF == "" {
				text := c.app.GenerateReport(ctx, r)
				if c.flagJSON {
					return c.outputJSON(cmd.OutOrStdout(), map[string]string{"report": text})
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			path := flagPDF
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, app.ReportFilename(c.now()))
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create pdf: %w", err)
			}
			if err := c.app.ExportPDF(ctx, r, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			ui.Success(cmd.OutOrStdout(), "Report saved to %s", ui.Bold(path))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagStart, "start", "", "First creation date included, YYYY-MM-DD")
	cmd.Flags().StringVar(&flagEnd, "end", "", "Last creation date included, YYYY-MM-DD")
	cmd.Flags().StringVar(&flagPDF, "pdf", "", "Write a PDF to this file or directory")

	return public(cmd)
}

func (c *cli) formatCmd() *cobra.Command {
	return public(&cobra.Command{
		Use:   "format <description>",
		Short: "Restructure a free-form description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.FormatDescription(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if c.flagJSON {
				return c.outputJSON(cmd.OutOrStdout(), map[string]string{"formattedDescription": out})
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})
}
