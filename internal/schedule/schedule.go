// Package schedule computes when a learning item is due next.
package schedule

import (
	"time"

	"cloud.google.com/go/civil"
)

// Intervals is the review ramp in days, indexed by the review count after a review.
// Index 0 is the same-day interval a new item starts with.
var Intervals = [...]int{0, 1, 3, 7, 30}

// CycleBackIndex is the Intervals entry reused once the ramp is exhausted.
const CycleBackIndex = 3

// IntervalFor returns the interval in days applied by the reviewCount-th scheduled review.
func IntervalFor(reviewCount int) int {
	switch {
	case reviewCount < 1:
		return Intervals[0]
	case reviewCount < len(Intervals):
		return Intervals[reviewCount]
	default:
		return Intervals[CycleBackIndex]
	}
}

// CalculateNextReview returns the next due date and the interval applied for a review that
// brings an item's review count to reviewCount. The date is taken in the location of reviewedAt.
func CalculateNextReview(reviewCount int, reviewedAt time.Time) (civil.Date, int) {
	interval := IntervalFor(reviewCount)
	return civil.DateOf(reviewedAt).AddDays(interval), interval
}
