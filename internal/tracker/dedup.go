package tracker

import (
	"sync"
	"time"
)

// DailyDedup decides whether a visitor should be counted as unique for the
// current calendar day. It holds exactly one day's set of visitor ids; when
// the day rolls over the whole set is replaced, so a visitor who returns the
// next day is unique again.
type DailyDedup struct {
	mu     sync.Mutex
	dayKey string
	seen   map[string]struct{}
}

// NewDailyDedup creates an empty dedup window. The first event to arrive
// lazily starts the set for its day.
func NewDailyDedup() *DailyDedup {
	return &DailyDedup{seen: make(map[string]struct{})}
}

// IsNewVisitor reports whether visitorID has not yet been seen on the
// calendar day of at, inserting it as a side effect. The first call for a
// given id and day returns true, every later call false.
func (d *DailyDedup) IsNewVisitor(visitorID string, at time.Time) bool {
	key := at.Format("2006-01-02")

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dayKey != key {
		// Day rolled over: drop yesterday's set wholesale, never merge.
		d.dayKey = key
		d.seen = make(map[string]struct{})
	}

	if _, ok := d.seen[visitorID]; ok {
		return false
	}
	d.seen[visitorID] = struct{}{}
	return true
}
