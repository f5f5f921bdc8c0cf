package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyDedup_FirstVisitIsUnique(t *testing.T) {
	d := NewDailyDedup()
	day := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	assert.True(t, d.IsNewVisitor("visitor-a", day))
}

func TestDailyDedup_RepeatVisitsAreNotUnique(t *testing.T) {
	d := NewDailyDedup()
	day := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	assert.True(t, d.IsNewVisitor("visitor-a", day))

	// Idempotent no matter how often the visitor comes back the same day
	for i := 0; i < 5; i++ {
		assert.False(t, d.IsNewVisitor("visitor-a", day.Add(time.Duration(i)*time.Hour)))
	}
}

func TestDailyDedup_DistinctVisitorsSameDay(t *testing.T) {
	d := NewDailyDedup()
	day := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	assert.True(t, d.IsNewVisitor("visitor-a", day))
	assert.True(t, d.IsNewVisitor("visitor-b", day))
	assert.False(t, d.IsNewVisitor("visitor-a", day))
	assert.False(t, d.IsNewVisitor("visitor-b", day))
}

func TestDailyDedup_RolloverResetsUniqueness(t *testing.T) {
	d := NewDailyDedup()
	day1 := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	assert.True(t, d.IsNewVisitor("visitor-a", day1))
	assert.False(t, d.IsNewVisitor("visitor-a", day1))

	// Uniqueness is per calendar day, not all-time
	assert.True(t, d.IsNewVisitor("visitor-a", day2))
	assert.False(t, d.IsNewVisitor("visitor-a", day2))
}

func TestDailyDedup_RolloverDiscardsWholeSet(t *testing.T) {
	d := NewDailyDedup()
	day1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	assert.True(t, d.IsNewVisitor("visitor-a", day1))
	assert.True(t, d.IsNewVisitor("visitor-b", day1))

	// First event of day2 replaces the set; day1 visitors are gone entirely
	assert.True(t, d.IsNewVisitor("visitor-c", day2))
	assert.Equal(t, 1, len(d.seen))
	assert.True(t, d.IsNewVisitor("visitor-a", day2))
}
