package main

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/revisit/internal/client"
	"github.com/at-ishikawa/revisit/internal/learning"
)

func newDueCommand() *cobra.Command {
	var subject, date string

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List the items due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			return runWithClient(func(c *client.Client) error {
				due, err := c.Due(cmd.Context(), subject, targetDate)
				if err != nil {
					return fmt.Errorf("c.Due() > %w", err)
				}

				p := newPrinter(cmd.OutOrStdout())
				if due.TotalDue == 0 {
					p.success("Nothing is due.")
				}
				for _, item := range due.Items {
					p.itemLine(item)
				}
				if len(due.BySubject) > 0 {
					p.plain("\nDue by subject:")
					counts(p, due.BySubject, "%s")
				}
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&subject, "subject", "s", "", "only list items of this subject")
	flags.StringVar(&date, "date", "", "list items due on or before this date (YYYY-MM-DD), default today")
	return cmd
}

func newReviewCommand() *cobra.Command {
	var manual bool

	cmd := &cobra.Command{
		Use:   "review ID",
		Short: "Record a review of an item and schedule the next one",
		Long: "Record a review of an item and schedule the next one.\n" +
			"With --manual the review is recorded without changing the schedule.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				p := newPrinter(cmd.OutOrStdout())
				if manual {
					review, err := c.ManualReview(cmd.Context(), args[0])
					if err != nil {
						return fmt.Errorf("c.ManualReview(%s) > %w", args[0], err)
					}
					p.success("Recorded manual review #%d. Next review is still %s.", review.ReviewNumber, review.NextReviewDate)
					return nil
				}

				review, err := c.MarkReviewed(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("c.MarkReviewed(%s) > %w", args[0], err)
				}
				p.success("Recorded review #%d. Next review on %s (in %d days).", review.ReviewNumber, review.NextReviewDate, review.IntervalDays)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&manual, "manual", false, "record an extra review without changing the schedule")
	return cmd
}

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history ID",
		Short: "Show the review history of an item, latest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				reviews, err := c.History(cmd.Context(), args[0], limit)
				if err != nil {
					return fmt.Errorf("c.History(%s) > %w", args[0], err)
				}
				p := newPrinter(cmd.OutOrStdout())
				if len(reviews) == 0 {
					p.notice("No reviews yet.")
				}
				for _, review := range reviews {
					p.review(review)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", learning.DefaultHistoryLimit, fmt.Sprintf("maximum number of reviews, up to %d", learning.MaxHistoryLimit))
	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show review statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(func(c *client.Client) error {
				stats, err := c.Stats(cmd.Context())
				if err != nil {
					return fmt.Errorf("c.Stats() > %w", err)
				}

				p := newPrinter(cmd.OutOrStdout())
				p.plain("Items:              %d", stats.TotalItems)
				p.plain("Reviews:            %d", stats.TotalReviews)
				p.plain("Due today:          %d", stats.ItemsDueToday)
				p.plain("Due within 7 days:  %d", stats.ItemsDueThisWeek)
				if len(stats.ReviewsByInterval) > 0 {
					p.plain("Reviews by interval:")
					counts(p, stats.ReviewsByInterval, "%d days")
				}
				return nil
			})
		},
	}
}

func parseDateFlag(value string) (civil.Date, error) {
	if value == "" {
		return civil.Date{}, nil
	}
	date, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return date, nil
}
