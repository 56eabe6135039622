package learning

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Item is a piece of learning material scheduled for spaced review.
type Item struct {
	ID                  string     `db:"id" json:"id" yaml:"id"`
	Subject             string     `db:"subject" json:"subject" yaml:"subject"`
	Title               string     `db:"title" json:"title" yaml:"title"`
	Content             string     `db:"content" json:"content" yaml:"content"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at" yaml:"updated_at"`
	ReviewCount         int        `db:"review_count" json:"review_count" yaml:"review_count"`
	NextReviewDate      civil.Date `db:"next_review_date" json:"next_review_date" yaml:"next_review_date"`
	CurrentIntervalDays int        `db:"current_interval_days" json:"current_interval_days" yaml:"current_interval_days"`
	ManualReviewCount   int        `db:"manual_review_count" json:"manual_review_count" yaml:"manual_review_count"`
	IsDeleted           bool       `db:"is_deleted" json:"is_deleted" yaml:"is_deleted"`
}

// IsDue reports whether the item should be reviewed on or before date.
func (i Item) IsDue(date civil.Date) bool {
	return !i.NextReviewDate.After(date)
}

// Review is one entry of an item's review history. Manual reviews copy the
// item's schedule instead of advancing it.
type Review struct {
	ID             string     `db:"id" json:"id" yaml:"id"`
	LearningItemID string     `db:"learning_item_id" json:"learning_item_id" yaml:"learning_item_id"`
	ReviewedAt     time.Time  `db:"reviewed_at" json:"reviewed_at" yaml:"reviewed_at"`
	IntervalDays   int        `db:"interval_days" json:"interval_days" yaml:"interval_days"`
	NextReviewDate civil.Date `db:"next_review_date" json:"next_review_date" yaml:"next_review_date"`
	ReviewNumber   int        `db:"review_number" json:"review_number" yaml:"review_number"`
	IsManual       bool       `db:"is_manual" json:"is_manual" yaml:"is_manual"`
}

// Stats summarises the active items and their review history.
type Stats struct {
	TotalItems        int         `json:"total_items" yaml:"total_items"`
	TotalReviews      int         `json:"total_reviews" yaml:"total_reviews"`
	ItemsDueToday     int         `json:"items_due_today" yaml:"items_due_today"`
	ItemsDueThisWeek  int         `json:"items_due_this_week" yaml:"items_due_this_week"`
	ReviewsByInterval map[int]int `json:"reviews_by_interval" yaml:"reviews_by_interval"`
}

// CreateInput holds the fields of a new item.
type CreateInput struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Title   string `json:"title" validate:"required,max=500"`
	Content string `json:"content" validate:"required"`
}

func (in CreateInput) trimmed() CreateInput {
	return CreateInput{
		Subject: strings.TrimSpace(in.Subject),
		Title:   strings.TrimSpace(in.Title),
		Content: strings.TrimSpace(in.Content),
	}
}

// UpdateInput holds a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Subject *string `json:"subject,omitempty" validate:"omitnil,min=1,max=255"`
	Title   *string `json:"title,omitempty" validate:"omitnil,min=1,max=500"`
	Content *string `json:"content,omitempty" validate:"omitnil,min=1"`
}

func (in UpdateInput) trimmed() UpdateInput {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	return UpdateInput{
		Subject: trim(in.Subject),
		Title:   trim(in.Title),
		Content: trim(in.Content),
	}
}

// IsEmpty reports whether the update carries no fields.
func (in UpdateInput) IsEmpty() bool {
	return in.Subject == nil && in.Title == nil && in.Content == nil
}

const (
	DefaultListLimit    = 100
	MaxListLimit        = 500
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// ListQuery selects a page of active items, newest first.
type ListQuery struct {
	Subject string
	Skip    int
	Limit   int
}

// DueQuery selects the items due on or before Date. A zero Date means today.
type DueQuery struct {
	Subject string
	Date    civil.Date
}
