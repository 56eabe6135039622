package learning

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const reviewColumns = "id, learning_item_id, reviewed_at, interval_days, next_review_date, review_number, is_manual"

// ReviewRepository defines operations for the append-only review history.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByItem(ctx context.Context, itemID string, limit int) ([]Review, error)
	Count(ctx context.Context) (int, error)
	CountByInterval(ctx context.Context) (map[int]int, error)
}

// DBReviewRepository implements ReviewRepository with SQL.
type DBReviewRepository struct {
	db sqlx.ExtContext
}

// NewDBReviewRepository creates a new DBReviewRepository on a database or a transaction.
func NewDBReviewRepository(db sqlx.ExtContext) *DBReviewRepository {
	return &DBReviewRepository{db: db}
}

// Create appends a review to the history.
func (r *DBReviewRepository) Create(ctx context.Context, review *Review) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO review_history (`+reviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.LearningItemID, review.ReviewedAt, review.IntervalDays,
		review.NextReviewDate, review.ReviewNumber, review.IsManual); err != nil {
		return fmt.Errorf("db.ExecContext(insert review_history) > %w", err)
	}
	return nil
}

// FindByItem returns up to limit reviews of an item, latest first.
// Reviews of deleted items are still returned.
func (r *DBReviewRepository) FindByItem(ctx context.Context, itemID string, limit int) ([]Review, error) {
	reviews := []Review{}
	if err := sqlx.SelectContext(ctx, r.db, &reviews,
		"SELECT "+reviewColumns+" FROM review_history WHERE learning_item_id = ? ORDER BY reviewed_at DESC LIMIT ?",
		itemID, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_history by item) > %w", err)
	}
	for i := range reviews {
		reviews[i].ReviewedAt = reviews[i].ReviewedAt.UTC()
	}
	return reviews, nil
}

// Count returns the number of reviews of active items.
func (r *DBReviewRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db, &count,
		`SELECT COUNT(*) FROM review_history rh
		INNER JOIN active_learning_items ali ON ali.id = rh.learning_item_id`); err != nil {
		return 0, fmt.Errorf("db.GetContext(count review_history) > %w", err)
	}
	return count, nil
}

// CountByInterval returns the number of reviews of active items per applied interval.
func (r *DBReviewRepository) CountByInterval(ctx context.Context) (map[int]int, error) {
	var rows []struct {
		IntervalDays int `db:"interval_days"`
		Total        int `db:"total"`
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows,
		`SELECT rh.interval_days, COUNT(*) AS total FROM review_history rh
		INNER JOIN active_learning_items ali ON ali.id = rh.learning_item_id
		GROUP BY rh.interval_days
		ORDER BY rh.interval_days`); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_history by interval) > %w", err)
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.IntervalDays] = row.Total
	}
	return counts, nil
}
