package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/pkg/database"
)

// rollupRepository persists daily traffic rollups in PostgreSQL
type rollupRepository struct {
	db *database.PostgresDB
}

// NewRollupRepository creates a new rollup repository
func NewRollupRepository(db *database.PostgresDB) RollupRepository {
	return &rollupRepository{db: db}
}

// GetByDay retrieves the rollup for a calendar day
func (r *rollupRepository) GetByDay(ctx context.Context, day time.Time) (*domain.DailyTrafficRollup, error) {
	query := `
		SELECT day, views, unique_visitors, device_histogram, country_histogram, top_country, created_at, updated_at
		FROM daily_traffic_rollups
		WHERE day = $1
	`

	rollup, err := scanRollup(r.db.Pool.QueryRow(ctx, query, day.Format("2006-01-02")))
	if err != nil {
		if err == pgx.ErrNoRows {
			// First view of the day has not arrived yet
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rollup by day: %w", err)
	}

	return rollup, nil
}

// UpsertView persists one merged view event. The counter fields use
// store-native increments under ON CONFLICT so two writers can never lose a
// view or unique increment; the histogram columns carry the merged value.
func (r *rollupRepository) UpsertView(ctx context.Context, rollup *domain.DailyTrafficRollup, uniqueDelta int64) error {
	deviceJSON, err := json.Marshal(rollup.DeviceHistogram)
	if err != nil {
		return fmt.Errorf("failed to encode device histogram: %w", err)
	}
	countryJSON, err := json.Marshal(rollup.CountryHistogram)
	if err != nil {
		return fmt.Errorf("failed to encode country histogram: %w", err)
	}

	query := `
		INSERT INTO daily_traffic_rollups (day, views, unique_visitors, device_histogram, country_histogram, top_country, created_at, updated_at)
		VALUES ($1, 1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (day) DO UPDATE SET
			views = daily_traffic_rollups.views + 1,
			unique_visitors = daily_traffic_rollups.unique_visitors + $2,
			device_histogram = EXCLUDED.device_histogram,
			country_histogram = EXCLUDED.country_histogram,
			top_country = EXCLUDED.top_country,
			updated_at = now()
	`

	_, err = r.db.Pool.Exec(ctx, query,
		rollup.Day.Format("2006-01-02"),
		uniqueDelta,
		deviceJSON,
		countryJSON,
		rollup.TopCountry,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rollup: %w", err)
	}

	return nil
}

// ListSince retrieves all rollups with day >= since, ascending by day
func (r *rollupRepository) ListSince(ctx context.Context, since time.Time) ([]*domain.DailyTrafficRollup, error) {
	query := `
		SELECT day, views, unique_visitors, device_histogram, country_histogram, top_country, created_at, updated_at
		FROM daily_traffic_rollups
		WHERE day >= $1
		ORDER BY day ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, since.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query rollups: %w", err)
	}
	defer rows.Close()

	var rollups []*domain.DailyTrafficRollup
	for rows.Next() {
		rollup, err := scanRollup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rollup row: %w", err)
		}
		rollups = append(rollups, rollup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rollup rows: %w", err)
	}

	return rollups, nil
}

// scanRollup scans one rollup row, decoding the jsonb histogram columns
func scanRollup(row pgx.Row) (*domain.DailyTrafficRollup, error) {
	rollup := &domain.DailyTrafficRollup{}
	var deviceJSON, countryJSON []byte

	err := row.Scan(
		&rollup.Day,
		&rollup.Views,
		&rollup.UniqueVisitors,
		&deviceJSON,
		&countryJSON,
		&rollup.TopCountry,
		&rollup.CreatedAt,
		&rollup.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(deviceJSON, &rollup.DeviceHistogram); err != nil {
		return nil, fmt.Errorf("failed to decode device histogram: %w", err)
	}
	if err := json.Unmarshal(countryJSON, &rollup.CountryHistogram); err != nil {
		return nil, fmt.Errorf("failed to decode country histogram: %w", err)
	}

	return rollup, nil
}
