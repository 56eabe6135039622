// Package digest logs a periodic summary of the items due for review.
package digest

//go:generate mockgen -source=digest.go -destination=../mocks/digest/mock_due_counter.go -package=mock_digest

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/robfig/cron/v3"
)

// DueCounter reports how many items are due per subject.
type DueCounter interface {
	Today() civil.Date
	DueCountBySubject(ctx context.Context, date civil.Date) (map[string]int, error)
}

// Summary is the result of one digest run.
type Summary struct {
	Date      civil.Date
	Total     int
	BySubject map[string]int
}

// String formats the per-subject counts as "Go=2, SQL=1", sorted by subject.
func (s Summary) String() string {
	subjects := slices.Sorted(maps.Keys(s.BySubject))
	parts := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		parts = append(parts, fmt.Sprintf("%s=%d", subject, s.BySubject[subject]))
	}
	return strings.Join(parts, ", ")
}

type Job struct {
	counter DueCounter
	logger  *slog.Logger
}

func NewJob(counter DueCounter, logger *slog.Logger) *Job {
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{counter: counter, logger: logger}
}

// Run counts today's due items and logs the summary.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	today := j.counter.Today()
	bySubject, err := j.counter.DueCountBySubject(ctx, today)
	if err != nil {
		return Summary{}, fmt.Errorf("DueCountBySubject(%s) > %w", today, err)
	}

	summary := Summary{Date: today, BySubject: bySubject}
	for _, count := range bySubject {
		summary.Total += count
	}

	j.logger.InfoContext(ctx, "due review summary",
		"date", summary.Date.String(),
		"total", summary.Total,
		"subjects", summary.String())
	return summary, nil
}

// Start runs the job on the cron schedule spec until ctx is canceled.
// A failed run is logged and does not stop later runs.
func (j *Job) Start(ctx context.Context, spec string, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, func() {
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "digest run failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("cron.AddFunc(%s) > %w", spec, err)
	}

	c.Start()
	j.logger.Info("digest job started", "schedule", spec, "tz", loc.String())

	<-ctx.Done()
	<-c.Stop().Done()
	j.logger.Info("digest job stopped")
	return nil
}
