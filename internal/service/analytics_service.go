package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/repository"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/tracker"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/logger"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/redis"
)

const (
	// GeoTopN caps the country breakdown returned to the dashboard
	GeoTopN = 10

	// eventQueueSize bounds the fire-and-forget queue; events beyond it are
	// dropped rather than ever blocking a page view
	eventQueueSize = 1024

	// upsertTimeout bounds each rollup write, which runs detached from any request
	upsertTimeout = 10 * time.Second
)

// viewUpsert is one dedup-resolved view waiting for its rollup write.
type viewUpsert struct {
	day     time.Time
	device  domain.DeviceCategory
	country string
	unique  bool
}

// analyticsService is the traffic collector: presence and dedup trackers
// updated in the request path, plus a single worker goroutine that serializes
// all rollup upserts so concurrent events for the same day never interleave
// at the histogram merge.
type analyticsService struct {
	rollupRepo  repository.RollupRepository
	redisClient *redis.Client
	presence    *tracker.PresenceTracker
	dedup       *tracker.DailyDedup
	logger      *logger.Logger
	rateLimit   int64

	events     chan viewUpsert
	stopWorker chan struct{}
	workerDone chan struct{}
	mu         sync.Mutex
	isRunning  bool
	now        func() time.Time
}

// NewAnalyticsService creates a new analytics service. The Redis client is
// optional; without it the summary cache and per-IP limit are skipped.
func NewAnalyticsService(rollupRepo repository.RollupRepository, redisClient *redis.Client, presence *tracker.PresenceTracker, dedup *tracker.DailyDedup, logger *logger.Logger, rateLimit int64) AnalyticsService {
	return &analyticsService{
		rollupRepo:  rollupRepo,
		redisClient: redisClient,
		presence:    presence,
		dedup:       dedup,
		logger:      logger,
		rateLimit:   rateLimit,
		events:      make(chan viewUpsert, eventQueueSize),
		stopWorker:  make(chan struct{}),
		workerDone:  make(chan struct{}),
		now:         time.Now,
	}
}

// Start launches the aggregation worker
func (s *analyticsService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	go s.aggregationWorker()
	s.isRunning = true
	s.logger.Info("Analytics service started")
	return nil
}

// Stop signals the worker, then waits for it to drain the queue
func (s *analyticsService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	close(s.stopWorker)

	select {
	case <-s.workerDone:
	case <-ctx.Done():
		s.logger.Warn("Analytics worker did not drain before shutdown deadline")
	}

	s.isRunning = false
	s.logger.Info("Analytics service stopped")
	return nil
}

// RecordView ingests one page view. Presence and dedup are updated before
// returning; the storage write is queued for the worker, so the caller never
// waits on the database and never sees its errors.
func (s *analyticsService) RecordView(ctx context.Context, visitorID string, device domain.DeviceCategory, country string) {
	if allowed := s.withinRateLimit(ctx, visitorID); !allowed {
		s.logger.WithField("visitor_hash", hashVisitor(visitorID)[:8]).Debug("View dropped by rate limit")
		return
	}

	now := s.now()
	s.presence.Touch(visitorID)
	unique := s.dedup.IsNewVisitor(visitorID, now)

	event := viewUpsert{
		day:     domain.Midnight(now),
		device:  device,
		country: country,
		unique:  unique,
	}

	select {
	case s.events <- event:
	default:
		// Queue full: analytics is best effort, the view is simply lost
		s.logger.Warn("Analytics event queue full, dropping view")
	}
}

// ActiveVisitors returns the pruned presence count
func (s *analyticsService) ActiveVisitors() int {
	return s.presence.CountActive()
}

// aggregationWorker serializes every rollup write for the process. On stop it
// drains whatever is already queued before exiting.
func (s *analyticsService) aggregationWorker() {
	defer close(s.workerDone)

	for {
		select {
		case event := <-s.events:
			s.upsertRollup(event)
		case <-s.stopWorker:
			for {
				select {
				case event := <-s.events:
					s.upsertRollup(event)
				default:
					return
				}
			}
		}
	}
}

// upsertRollup merges one view into its day's rollup and persists it.
// Failures are logged and discarded: the originating request has already
// been answered, so there is nothing to surface them to.
func (s *analyticsService) upsertRollup(event viewUpsert) {
	ctx, cancel := context.WithTimeout(context.Background(), upsertTimeout)
	defer cancel()

	rollup, err := s.rollupRepo.GetByDay(ctx, event.day)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load rollup for aggregation")
		return
	}
	if rollup == nil {
		rollup = domain.NewDailyTrafficRollup(event.day)
	}

	rollup.ApplyView(event.device, event.country, event.unique)

	var uniqueDelta int64
	if event.unique {
		uniqueDelta = 1
	}

	if err := s.rollupRepo.UpsertView(ctx, rollup, uniqueDelta); err != nil {
		s.logger.WithError(err).Error("Failed to upsert traffic rollup")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"day":    event.day.Format("2006-01-02"),
		"device": event.device,
		"unique": event.unique,
	}).Debug("View aggregated")
}

// Summarize folds the rollups of the trailing days into a dashboard summary
func (s *analyticsService) Summarize(ctx context.Context, days int) (*domain.AnalyticsSummary, error) {
	if cached := s.cachedSummary(ctx, days); cached != nil {
		return cached, nil
	}

	since := domain.Midnight(s.now()).AddDate(0, 0, -(days - 1))
	rollups, err := s.rollupRepo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load rollups since %s: %w", since.Format("2006-01-02"), err)
	}

	summary := &domain.AnalyticsSummary{
		Traffic:     rollups,
		ActiveUsers: s.presence.CountActive(),
	}

	deviceTotals := make(map[string]int64)
	countryTotals := make(map[string]int64)
	for _, rollup := range rollups {
		summary.TotalViews += rollup.Views
		summary.TotalUnique += rollup.UniqueVisitors
		for device, count := range rollup.DeviceHistogram {
			deviceTotals[device] += count
		}
		for country, count := range rollup.CountryHistogram {
			countryTotals[country] += count
		}
	}

	summary.DeviceData = make([]domain.BreakdownEntry, 0, len(domain.DeviceCategories))
	for _, device := range domain.DeviceCategories {
		if total := deviceTotals[string(device)]; total > 0 {
			summary.DeviceData = append(summary.DeviceData, domain.BreakdownEntry{Name: string(device), Value: total})
		}
	}

	summary.GeoData = topCountries(countryTotals, GeoTopN)

	s.cacheSummary(ctx, days, summary)
	return summary, nil
}

// topCountries sorts country totals descending by count (name ascending on
// ties, so the output is stable) and keeps the first n.
func topCountries(totals map[string]int64, n int) []domain.BreakdownEntry {
	entries := make([]domain.BreakdownEntry, 0, len(totals))
	for country, count := range totals {
		entries = append(entries, domain.BreakdownEntry{Name: country, Value: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// cachedSummary returns a recent summary for the same range, refreshing only
// the live presence count. A cache failure just means a store read.
func (s *analyticsService) cachedSummary(ctx context.Context, days int) *domain.AnalyticsSummary {
	if s.redisClient == nil {
		return nil
	}

	raw, err := s.redisClient.Get(ctx, s.redisClient.KeyBuilder.KeyAnalyticsSummary(days))
	if err != nil {
		if !redis.IsNil(err) {
			s.logger.WithError(err).Warn("Summary cache read failed")
		}
		return nil
	}

	summary := &domain.AnalyticsSummary{}
	if err := json.Unmarshal([]byte(raw), summary); err != nil {
		s.logger.WithError(err).Warn("Summary cache entry corrupt, ignoring")
		return nil
	}

	summary.ActiveUsers = s.presence.CountActive()
	return summary
}

// cacheSummary stores the summary with a short TTL
func (s *analyticsService) cacheSummary(ctx context.Context, days int, summary *domain.AnalyticsSummary) {
	if s.redisClient == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode summary for cache")
		return
	}

	if err := s.redisClient.Set(ctx, s.redisClient.KeyBuilder.KeyAnalyticsSummary(days), payload, redis.TTLSummary); err != nil {
		s.logger.WithError(err).Warn("Summary cache write failed")
	}
}

// withinRateLimit counts tracked views per hashed IP in Redis. Limit errors
// fail open: a Redis hiccup must not stop collection.
func (s *analyticsService) withinRateLimit(ctx context.Context, visitorID string) bool {
	if s.redisClient == nil || s.rateLimit <= 0 {
		return true
	}

	key := s.redisClient.KeyBuilder.KeyTrackRateLimit(hashVisitor(visitorID)[:16])
	count, err := s.redisClient.Incr(ctx, key)
	if err != nil {
		s.logger.WithError(err).Warn("Rate limit check failed, allowing view")
		return true
	}

	if count == 1 {
		if err := s.redisClient.Expire(ctx, key, redis.TTLTrackRateLimit); err != nil {
			s.logger.WithError(err).Warn("Failed to set rate limit key expiry")
		}
	}

	return count <= s.rateLimit
}

// hashVisitor hashes a visitor id before it is used in Redis keys or logs
func hashVisitor(visitorID string) string {
	hash := sha256.Sum256([]byte(visitorID))
	return fmt.Sprintf("%x", hash)
}
