package repository

import (
	"context"
	"time"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
)

// RollupRepository defines the interface for daily traffic rollup storage.
// The aggregation pipeline is the only writer; the read aggregator only reads.
type RollupRepository interface {
	// GetByDay retrieves the rollup for a calendar day, or nil if none exists yet
	GetByDay(ctx context.Context, day time.Time) (*domain.DailyTrafficRollup, error)

	// UpsertView persists one merged view: the view counter always advances by
	// one and the unique counter by uniqueDelta atomically at the store, while
	// the histogram fields and top country are written from the merged rollup
	UpsertView(ctx context.Context, rollup *domain.DailyTrafficRollup, uniqueDelta int64) error

	// ListSince retrieves all rollups with day >= since, ascending by day
	ListSince(ctx context.Context, since time.Time) ([]*domain.DailyTrafficRollup, error)
}
