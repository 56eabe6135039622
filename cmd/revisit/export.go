package main

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/revisit/internal/client"
	"github.com/at-ishikawa/revisit/internal/export"
	"github.com/at-ishikawa/revisit/internal/report"
)

func newExportCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export learning items and review history to YAML files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				p := newPrinter(cmd.OutOrStdout())
				p.plain("Exporting to %s", outputDir)

				result, err := export.NewExporter(c, cmd.OutOrStdout()).Export(cmd.Context(), outputDir)
				if err != nil {
					return fmt.Errorf("exporter.Export() > %w", err)
				}
				p.success("Exported %d items and %d reviews", result.Items, result.Reviews)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "export", "output directory")
	return cmd
}

func newReportCommand() *cobra.Command {
	var subject, date, outputPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the items due for review to a PDF or Markdown sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if targetDate.IsZero() {
				loc, err := cfg.Schedule.Location()
				if err != nil {
					return err
				}
				targetDate = civil.DateOf(time.Now().In(loc))
			}

			c := client.NewClient(cfg.Client)
			defer func() {
				_ = c.Close()
			}()

			due, err := c.Due(cmd.Context(), subject, targetDate)
			if err != nil {
				return fmt.Errorf("c.Due() > %w", err)
			}

			path, err := report.DueSheet{Date: targetDate, Items: due.Items}.Write(outputPath)
			if err != nil {
				return fmt.Errorf("sheet.Write(%s) > %w", outputPath, err)
			}
			newPrinter(cmd.OutOrStdout()).success("Wrote %d items to %s", len(due.Items), path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&subject, "subject", "s", "", "only include items of this subject")
	flags.StringVar(&date, "date", "", "include items due on or before this date (YYYY-MM-DD), default today")
	flags.StringVarP(&outputPath, "output", "o", "due.pdf", "output file, .pdf or .md")
	return cmd
}
