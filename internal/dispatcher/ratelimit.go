package dispatcher

import (
	"strconv"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

type rateLimitBucket struct {
	remaining int
	resetAt   time.Time
}

// RateLimitMonitor tracks Discord rate-limit headers per (route, guild) so
// workers can skip calls that would be rejected anyway.
type RateLimitMonitor struct {
	mu      sync.RWMutex
	buckets map[string]*rateLimitBucket
}

func NewRateLimitMonitor() *RateLimitMonitor {
	return &RateLimitMonitor{
		buckets: make(map[string]*rateLimitBucket),
	}
}

func (rlm *RateLimitMonitor) CanExecute(route, guildID string) bool {
	rlm.mu.RLock()
	bucket, exists := rlm.buckets[route+":"+guildID]
	rlm.mu.RUnlock()

	if !exists {
		return true
	}
	if time.Now().After(bucket.resetAt) {
		return true
	}
	return bucket.remaining > 0
}

func (rlm *RateLimitMonitor) UpdateFromResponse(resp *fasthttp.Response, route, guildID string) {
	bucket := &rateLimitBucket{}

	if remaining := string(resp.Header.Peek("X-RateLimit-Remaining")); remaining != "" {
		bucket.remaining, _ = strconv.Atoi(remaining)
	}
	if reset := string(resp.Header.Peek("X-RateLimit-Reset")); reset != "" {
		if resetUnix, err := strconv.ParseFloat(reset, 64); err == nil {
			bucket.resetAt = time.Unix(int64(resetUnix), 0)
		}
	}

	rlm.mu.Lock()
	rlm.buckets[route+":"+guildID] = bucket
	rlm.mu.Unlock()
}
