package schedule

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestCalculateNextReview(t *testing.T) {
	reviewedAt := time.Date(2025, 1, 30, 21, 15, 0, 0, time.UTC)

	tests := []struct {
		name         string
		reviewCount  int
		wantInterval int
		wantDate     civil.Date
	}{
		{
			name:         "first review",
			reviewCount:  1,
			wantInterval: 1,
			wantDate:     civil.Date{Year: 2025, Month: time.January, Day: 31},
		},
		{
			name:         "second review",
			reviewCount:  2,
			wantInterval: 3,
			wantDate:     civil.Date{Year: 2025, Month: time.February, Day: 2},
		},
		{
			name:         "third review",
			reviewCount:  3,
			wantInterval: 7,
			wantDate:     civil.Date{Year: 2025, Month: time.February, Day: 6},
		},
		{
			name:         "fourth review",
			reviewCount:  4,
			wantInterval: 30,
			wantDate:     civil.Date{Year: 2025, Month: time.March, Day: 1},
		},
		{
			name:         "fifth review cycles back to a week",
			reviewCount:  5,
			wantInterval: 7,
			wantDate:     civil.Date{Year: 2025, Month: time.February, Day: 6},
		},
		{
			name:         "long after the ramp",
			reviewCount:  42,
			wantInterval: 7,
			wantDate:     civil.Date{Year: 2025, Month: time.February, Day: 6},
		},
		{
			name:         "zero count stays on the same day",
			reviewCount:  0,
			wantInterval: 0,
			wantDate:     civil.Date{Year: 2025, Month: time.January, Day: 30},
		},
		{
			name:         "negative count stays on the same day",
			reviewCount:  -3,
			wantInterval: 0,
			wantDate:     civil.Date{Year: 2025, Month: time.January, Day: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotInterval := CalculateNextReview(tt.reviewCount, reviewedAt)
			assert.Equal(t, tt.wantInterval, gotInterval)
			assert.Equal(t, tt.wantDate, gotDate)
		})
	}
}

func TestCalculateNextReview_UsesLocationOfReviewTime(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2025-01-30 21:15 UTC is already 2025-01-31 in Tokyo.
	reviewedAt := time.Date(2025, 1, 30, 21, 15, 0, 0, time.UTC).In(tokyo)

	gotDate, gotInterval := CalculateNextReview(1, reviewedAt)
	assert.Equal(t, 1, gotInterval)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.February, Day: 1}, gotDate)
}

func TestCalculateNextReview_Deterministic(t *testing.T) {
	reviewedAt := time.Date(2024, 2, 28, 8, 0, 0, 0, time.UTC)
	for n := 1; n <= 10; n++ {
		d1, i1 := CalculateNextReview(n, reviewedAt)
		d2, i2 := CalculateNextReview(n, reviewedAt)
		assert.Equal(t, d1, d2)
		assert.Equal(t, i1, i2)
		assert.Equal(t, civil.DateOf(reviewedAt).AddDays(i1), d1)
	}
}
