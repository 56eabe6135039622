// Package learning provides the learning item domain: models, repositories and the
// review lifecycle that drives the spaced repetition schedule.
package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jmoiron/sqlx"
)

const itemColumns = "id, subject, title, content, created_at, updated_at, review_count, next_review_date, current_interval_days, manual_review_count, is_deleted"

// ItemRepository defines operations for managing learning items.
// Reads never return soft-deleted items.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id string) (*Item, error)
	FindAll(ctx context.Context, query ListQuery) ([]Item, error)
	Count(ctx context.Context, subject string) (int, error)
	FindDue(ctx context.Context, date civil.Date, subject string) ([]Item, error)
	Subjects(ctx context.Context) ([]string, error)
	UpdateFields(ctx context.Context, id string, input UpdateInput, updatedAt time.Time) error
	UpdateSchedule(ctx context.Context, item *Item, previousReviewCount int) error
	UpdateManualReviewCount(ctx context.Context, item *Item, previousManualReviewCount int) error
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
}

// DBItemRepository implements ItemRepository with SQL. Reads go through the
// active_learning_items view, writes through the learning_items table.
type DBItemRepository struct {
	db sqlx.ExtContext
}

// NewDBItemRepository creates a new DBItemRepository on a database or a transaction.
func NewDBItemRepository(db sqlx.ExtContext) *DBItemRepository {
	return &DBItemRepository{db: db}
}

// Create inserts a new learning item.
func (r *DBItemRepository) Create(ctx context.Context, item *Item) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO learning_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Subject, item.Title, item.Content, item.CreatedAt, item.UpdatedAt,
		item.ReviewCount, item.NextReviewDate, item.CurrentIntervalDays, item.ManualReviewCount,
		item.IsDeleted); err != nil {
		return fmt.Errorf("db.ExecContext(insert learning_item) > %w", err)
	}
	return nil
}

// FindByID returns an active item, or ErrNotFound.
func (r *DBItemRepository) FindByID(ctx context.Context, id string) (*Item, error) {
	var item Item
	err := sqlx.GetContext(ctx, r.db, &item,
		"SELECT "+itemColumns+" FROM active_learning_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("learning item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(learning_item) > %w", err)
	}
	item.normalizeTimes()
	return &item, nil
}

// FindAll returns a page of active items, newest first.
func (r *DBItemRepository) FindAll(ctx context.Context, query ListQuery) ([]Item, error) {
	where, args := subjectFilter(query.Subject)
	args = append(args, query.Limit, query.Skip)

	var items []Item
	if err := sqlx.SelectContext(ctx, r.db, &items,
		"SELECT "+itemColumns+" FROM active_learning_items"+where+" ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(learning_items) > %w", err)
	}
	normalizeItemTimes(items)
	return items, nil
}

// Count returns the number of active items, optionally within one subject.
func (r *DBItemRepository) Count(ctx context.Context, subject string) (int, error) {
	where, args := subjectFilter(subject)

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count,
		"SELECT COUNT(*) FROM active_learning_items"+where, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext(count learning_items) > %w", err)
	}
	return count, nil
}

// FindDue returns the active items whose next review date is on or before date,
// the most overdue first and older items first within a day.
func (r *DBItemRepository) FindDue(ctx context.Context, date civil.Date, subject string) ([]Item, error) {
	query := "SELECT " + itemColumns + " FROM active_learning_items WHERE next_review_date <= ?"
	args := []any{date}
	if subject != "" {
		query += " AND subject = ?"
		args = append(args, subject)
	}
	query += " ORDER BY next_review_date, created_at"

	var items []Item
	if err := sqlx.SelectContext(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due learning_items) > %w", err)
	}
	normalizeItemTimes(items)
	return items, nil
}

// Subjects returns the distinct subjects of active items in alphabetical order.
func (r *DBItemRepository) Subjects(ctx context.Context) ([]string, error) {
	subjects := []string{}
	if err := sqlx.SelectContext(ctx, r.db, &subjects,
		"SELECT DISTINCT subject FROM active_learning_items ORDER BY subject"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(subjects) > %w", err)
	}
	return subjects, nil
}

// UpdateFields applies the non-nil fields of input to an active item.
func (r *DBItemRepository) UpdateFields(ctx context.Context, id string, input UpdateInput, updatedAt time.Time) error {
	var (
		sets []string
		args []any
	)
	for _, field := range []struct {
		column string
		value  *string
	}{
		{"subject", input.Subject},
		{"title", input.Title},
		{"content", input.Content},
	} {
		if field.value == nil {
			continue
		}
		sets = append(sets, field.column+" = ?")
		args = append(args, *field.value)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, updatedAt, id)

	result, err := r.db.ExecContext(ctx,
		"UPDATE learning_items SET "+strings.Join(sets, ", ")+" WHERE id = ? AND is_deleted = FALSE",
		args...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update learning_item) > %w", err)
	}
	return expectOneRow(result, fmt.Errorf("learning item %s: %w", id, ErrNotFound))
}

// UpdateSchedule stores the scheduling state of item, provided its review count
// is still previousReviewCount. Otherwise it returns ErrConflict.
func (r *DBItemRepository) UpdateSchedule(ctx context.Context, item *Item, previousReviewCount int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE learning_items
		SET review_count = ?, next_review_date = ?, current_interval_days = ?, updated_at = ?
		WHERE id = ? AND review_count = ? AND is_deleted = FALSE`,
		item.ReviewCount, item.NextReviewDate, item.CurrentIntervalDays, item.UpdatedAt,
		item.ID, previousReviewCount)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update learning_item schedule) > %w", err)
	}
	return expectOneRow(result, fmt.Errorf("learning item %s: %w", item.ID, ErrConflict))
}

// UpdateManualReviewCount stores the manual review count of item, provided it is
// still previousManualReviewCount. Otherwise it returns ErrConflict.
func (r *DBItemRepository) UpdateManualReviewCount(ctx context.Context, item *Item, previousManualReviewCount int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE learning_items
		SET manual_review_count = ?, updated_at = ?
		WHERE id = ? AND manual_review_count = ? AND is_deleted = FALSE`,
		item.ManualReviewCount, item.UpdatedAt, item.ID, previousManualReviewCount)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update manual_review_count) > %w", err)
	}
	return expectOneRow(result, fmt.Errorf("learning item %s: %w", item.ID, ErrConflict))
}

// SoftDelete flags an active item as deleted.
func (r *DBItemRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE learning_items SET is_deleted = TRUE, updated_at = ? WHERE id = ? AND is_deleted = FALSE",
		deletedAt, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(soft delete learning_item) > %w", err)
	}
	return expectOneRow(result, fmt.Errorf("learning item %s: %w", id, ErrNotFound))
}

func subjectFilter(subject string) (string, []any) {
	if subject == "" {
		return "", nil
	}
	return " WHERE subject = ?", []any{subject}
}

func expectOneRow(result sql.Result, errNoRows error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return errNoRows
	}
	return nil
}

// normalizeTimes drops the location drivers attach to scanned timestamps.
// All timestamps are stored in UTC.
func (i *Item) normalizeTimes() {
	i.CreatedAt = i.CreatedAt.UTC()
	i.UpdatedAt = i.UpdatedAt.UTC()
}

func normalizeItemTimes(items []Item) {
	for i := range items {
		items[i].normalizeTimes()
	}
}
