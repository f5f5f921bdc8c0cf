package service

import (
	"context"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
)

// AnalyticsService defines the interface for the traffic analytics collector
type AnalyticsService interface {
	// Start launches the background aggregation worker
	Start(ctx context.Context) error

	// Stop drains the aggregation queue and shuts the worker down
	Stop(ctx context.Context) error

	// RecordView ingests one page view. The in-memory trackers are updated
	// synchronously; the rollup write happens after the caller has moved on
	// and can never fail the originating request.
	RecordView(ctx context.Context, visitorID string, device domain.DeviceCategory, country string)

	// ActiveVisitors returns how many visitors were seen within the presence window
	ActiveVisitors() int

	// Summarize folds the persisted rollups of the trailing days into a
	// dashboard summary
	Summarize(ctx context.Context, days int) (*domain.AnalyticsSummary, error)
}
