package domain

import (
	"time"
)

// DeviceCategory is the coarse device class derived from a user agent.
type DeviceCategory string

const (
	DeviceMobile  DeviceCategory = "Mobile"
	DeviceDesktop DeviceCategory = "Desktop"
	DeviceTablet  DeviceCategory = "Tablet"
)

// DeviceCategories lists all categories in the order the dashboard renders them.
var DeviceCategories = []DeviceCategory{DeviceMobile, DeviceDesktop, DeviceTablet}

// DailyTrafficRollup is the one persisted record per calendar day.
type DailyTrafficRollup struct {
	Day              time.Time        `json:"date" db:"day"`
	Views            int64            `json:"views" db:"views"`
	UniqueVisitors   int64            `json:"unique_visitors" db:"unique_visitors"`
	DeviceHistogram  map[string]int64 `json:"device_histogram" db:"device_histogram"`
	CountryHistogram map[string]int64 `json:"country_histogram" db:"country_histogram"`
	TopCountry       *string          `json:"top_country" db:"top_country"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// NewDailyTrafficRollup creates an empty rollup for the given day
// (truncated to midnight by the caller).
func NewDailyTrafficRollup(day time.Time) *DailyTrafficRollup {
	return &DailyTrafficRollup{
		Day:              day,
		DeviceHistogram:  make(map[string]int64),
		CountryHistogram: make(map[string]int64),
	}
}

// ApplyView folds a single view into the rollup: bumps the view counter,
// the unique counter when the dedup window said so, and the device/country
// histograms. An empty country leaves the country histogram and top country
// untouched.
func (r *DailyTrafficRollup) ApplyView(device DeviceCategory, country string, unique bool) {
	r.Views++
	if unique {
		r.UniqueVisitors++
	}

	if r.DeviceHistogram == nil {
		r.DeviceHistogram = make(map[string]int64)
	}
	r.DeviceHistogram[string(device)]++

	if country == "" {
		return
	}
	if r.CountryHistogram == nil {
		r.CountryHistogram = make(map[string]int64)
	}
	r.CountryHistogram[country]++
	r.recomputeTopCountry()
}

// recomputeTopCountry picks the country with the highest histogram count.
// The incumbent only loses on a strictly greater count, so ties never flap.
func (r *DailyTrafficRollup) recomputeTopCountry() {
	var best string
	var bestCount int64
	if r.TopCountry != nil {
		best = *r.TopCountry
		bestCount = r.CountryHistogram[best]
	}
	for country, count := range r.CountryHistogram {
		if count > bestCount {
			best = country
			bestCount = count
		}
	}
	if best == "" {
		r.TopCountry = nil
		return
	}
	r.TopCountry = &best
}

// BreakdownEntry is one {name,value} pair in a dashboard breakdown.
type BreakdownEntry struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// AnalyticsSummary is the read-side fold over a range of daily rollups.
type AnalyticsSummary struct {
	Traffic     []*DailyTrafficRollup `json:"traffic"`
	DeviceData  []BreakdownEntry      `json:"deviceData"`
	GeoData     []BreakdownEntry      `json:"geoData"`
	ActiveUsers int                   `json:"activeUsers"`
	TotalViews  int64                 `json:"totalViews"`
	TotalUnique int64                 `json:"totalUnique"`
}

// Midnight truncates t to the local midnight that keys its rollup row.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
