package learning

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/revisit/internal/database"
	"github.com/at-ishikawa/revisit/internal/schedule"
)

// Service runs the item lifecycle: creating items, applying scheduled and manual
// reviews, and answering due and statistics queries. Every write happens in one
// transaction.
type Service struct {
	db      *sqlx.DB
	loc     *time.Location
	now     func() time.Time
	items   func(sqlx.ExtContext) ItemRepository
	reviews func(sqlx.ExtContext) ReviewRepository
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service. loc decides which calendar day "today" is.
func NewService(db *sqlx.DB, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.Local
	}
	s := &Service{
		db:  db,
		loc: loc,
		now: time.Now,
		items: func(db sqlx.ExtContext) ItemRepository {
			return NewDBItemRepository(db)
		},
		reviews: func(db sqlx.ExtContext) ReviewRepository {
			return NewDBReviewRepository(db)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date in the service's location.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.now().In(s.loc))
}

// timestamp returns the current time as stored: UTC with microsecond precision.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Create validates and stores a new item, due today.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Item, error) {
	input = input.trimmed()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.timestamp()
	item := &Item{
		ID:                  uuid.NewString(),
		Subject:             input.Subject,
		Title:               input.Title,
		Content:             input.Content,
		CreatedAt:           now,
		UpdatedAt:           now,
		ReviewCount:         0,
		NextReviewDate:      civil.DateOf(now.In(s.loc)),
		CurrentIntervalDays: schedule.IntervalFor(0),
	}
	if err := s.items(s.db).Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create learning item: %w", err)
	}
	return item, nil
}

// Get returns an active item.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	return s.items(s.db).FindByID(ctx, id)
}

// List returns a page of active items, newest first, with the total number of
// items matching the subject filter.
func (s *Service) List(ctx context.Context, query ListQuery) ([]Item, int, error) {
	if query.Limit <= 0 {
		query.Limit = DefaultListLimit
	}
	if query.Skip < 0 {
		query.Skip = 0
	}

	repo := s.items(s.db)
	items, err := repo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := repo.Count(ctx, query.Subject)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Subjects returns the subjects of active items.
func (s *Service) Subjects(ctx context.Context) ([]string, error) {
	return s.items(s.db).Subjects(ctx)
}

// Update applies a partial update to an active item and returns the result.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Item, error) {
	input = input.trimmed()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var item *Item
	if err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		repo := s.items(tx)
		if !input.IsEmpty() {
			if err := repo.UpdateFields(ctx, id, input, s.timestamp()); err != nil {
				return err
			}
		}
		var err error
		item, err = repo.FindByID(ctx, id)
		return err
	}); err != nil {
		return nil, fmt.Errorf("update learning item: %w", err)
	}
	return item, nil
}

// Delete soft-deletes an active item. Its history is kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.items(s.db).SoftDelete(ctx, id, s.timestamp()); err != nil {
		return fmt.Errorf("delete learning item: %w", err)
	}
	return nil
}

// MarkReviewed records a scheduled review: the review count goes up by one and
// the next review date moves according to the schedule.
func (s *Service) MarkReviewed(ctx context.Context, id string) (*Item, *Review, error) {
	var (
		item   *Item
		review *Review
	)
	if err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		items := s.items(tx)
		current, err := items.FindByID(ctx, id)
		if err != nil {
			return err
		}

		reviewedAt := s.timestamp()
		reviewCount := current.ReviewCount + 1
		nextReviewDate, interval := schedule.CalculateNextReview(reviewCount, reviewedAt.In(s.loc))

		updated := *current
		updated.ReviewCount = reviewCount
		updated.NextReviewDate = nextReviewDate
		updated.CurrentIntervalDays = interval
		updated.UpdatedAt = reviewedAt
		if err := items.UpdateSchedule(ctx, &updated, current.ReviewCount); err != nil {
			return err
		}

		r := &Review{
			ID:             uuid.NewString(),
			LearningItemID: id,
			ReviewedAt:     reviewedAt,
			IntervalDays:   interval,
			NextReviewDate: nextReviewDate,
			ReviewNumber:   reviewCount,
			IsManual:       false,
		}
		if err := s.reviews(tx).Create(ctx, r); err != nil {
			return err
		}

		item, review = &updated, r
		return nil
	}); err != nil {
		return nil, nil, fmt.Errorf("mark learning item reviewed: %w", err)
	}
	return item, review, nil
}

// ManualReview records an extra review that leaves the schedule untouched.
// The history entry repeats the item's current interval and next review date.
func (s *Service) ManualReview(ctx context.Context, id string) (*Item, *Review, error) {
	var (
		item   *Item
		review *Review
	)
	if err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		items := s.items(tx)
		current, err := items.FindByID(ctx, id)
		if err != nil {
			return err
		}

		reviewedAt := s.timestamp()
		updated := *current
		updated.ManualReviewCount = current.ManualReviewCount + 1
		updated.UpdatedAt = reviewedAt
		if err := items.UpdateManualReviewCount(ctx, &updated, current.ManualReviewCount); err != nil {
			return err
		}

		r := &Review{
			ID:             uuid.NewString(),
			LearningItemID: id,
			ReviewedAt:     reviewedAt,
			IntervalDays:   current.CurrentIntervalDays,
			NextReviewDate: current.NextReviewDate,
			ReviewNumber:   updated.ManualReviewCount,
			IsManual:       true,
		}
		if err := s.reviews(tx).Create(ctx, r); err != nil {
			return err
		}

		item, review = &updated, r
		return nil
	}); err != nil {
		return nil, nil, fmt.Errorf("manually review learning item: %w", err)
	}
	return item, review, nil
}

// Due returns the active items due on or before query.Date (today when zero).
func (s *Service) Due(ctx context.Context, query DueQuery) ([]Item, error) {
	date := query.Date
	if date.IsZero() {
		date = s.Today()
	}
	return s.items(s.db).FindDue(ctx, date, query.Subject)
}

// DueCountBySubject counts the items due on or before date per subject.
func (s *Service) DueCountBySubject(ctx context.Context, date civil.Date) (map[string]int, error) {
	items, err := s.Due(ctx, DueQuery{Date: date})
	if err != nil {
		return nil, err
	}
	return countBySubject(items), nil
}

// Stats summarises active items and the history of their reviews.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		items := s.items(tx)
		reviews := s.reviews(tx)
		today := s.Today()

		var err error
		if stats.TotalItems, err = items.Count(ctx, ""); err != nil {
			return err
		}
		if stats.TotalReviews, err = reviews.Count(ctx); err != nil {
			return err
		}
		dueToday, err := items.FindDue(ctx, today, "")
		if err != nil {
			return err
		}
		stats.ItemsDueToday = len(dueToday)
		dueThisWeek, err := items.FindDue(ctx, today.AddDays(7), "")
		if err != nil {
			return err
		}
		stats.ItemsDueThisWeek = len(dueThisWeek)
		stats.ReviewsByInterval, err = reviews.CountByInterval(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("compute review stats: %w", err)
	}
	return &stats, nil
}

// History returns up to limit reviews of an active item, latest first.
func (s *Service) History(ctx context.Context, id string, limit int) ([]Review, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if _, err := s.items(s.db).FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reviews(s.db).FindByItem(ctx, id, limit)
}

func countBySubject(items []Item) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Subject]++
	}
	return counts
}
