package tracker

import (
	"sync"
	"time"
)

// PresenceWindow is how long a visitor counts as "currently active"
// after their last page view.
const PresenceWindow = 15 * time.Minute

// PresenceTracker keeps the last-seen time of every visitor inside the
// presence window. Stale entries are evicted lazily on each read instead of
// by a background timer; the dashboard polls often enough to keep the map
// small.
type PresenceTracker struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	window   time.Duration
	now      func() time.Time
}

// NewPresenceTracker creates an empty tracker with the default window.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		lastSeen: make(map[string]time.Time),
		window:   PresenceWindow,
		now:      time.Now,
	}
}

// Touch records "now" as the last activity for the visitor, overwriting any
// earlier timestamp. It never fails.
func (p *PresenceTracker) Touch(visitorID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSeen[visitorID] = p.now()
}

// CountActive evicts every entry older than the presence window, then
// returns how many visitors remain.
func (p *PresenceTracker) CountActive() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-p.window)
	for id, seen := range p.lastSeen {
		if seen.Before(cutoff) {
			delete(p.lastSeen, id)
		}
	}
	return len(p.lastSeen)
}
