package state

import (
	"sync"
	"time"
)

// SpamTracker keeps a sliding window of message timestamps per
// (guild, actor). Every observation re-evaluates against a window ending at
// now; the window is not cleared when the limit trips, so it keeps sliding.
type SpamTracker struct {
	mu       sync.Mutex
	limit    int
	interval time.Duration
	windows  map[string][]time.Time
}

func NewSpamTracker(limit int, interval time.Duration) *SpamTracker {
	return &SpamTracker{
		limit:    limit,
		interval: interval,
		windows:  make(map[string][]time.Time),
	}
}

func spamKey(guildID, userID string) string {
	return guildID + ":" + userID
}

// Observe records a message at now and reports whether the window is full.
func (t *SpamTracker) Observe(guildID, userID string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := spamKey(guildID, userID)
	window := append(t.windows[key], now)

	// Prune everything older than the interval, measured from now.
	cutoff := now.Add(-t.interval)
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	t.windows[key] = kept

	return t.limit > 0 && len(kept) >= t.limit
}

// WindowLen returns the current window size for (guild, actor).
func (t *SpamTracker) WindowLen(guildID, userID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.windows[spamKey(guildID, userID)])
}
