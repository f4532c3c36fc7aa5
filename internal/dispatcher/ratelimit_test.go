package dispatcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
)

func TestRateLimitMonitor(t *testing.T) {
	rlm := NewRateLimitMonitor()

	// Unknown buckets are assumed executable.
	if !rlm.CanExecute("ban", "g1") {
		t.Fatal("unknown bucket should be executable")
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	resp.Header.Set("X-RateLimit-Remaining", "0")
	resp.Header.Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Minute).Unix()))
	rlm.UpdateFromResponse(resp, "ban", "g1")

	if rlm.CanExecute("ban", "g1") {
		t.Fatal("exhausted bucket before reset should not be executable")
	}
	// Buckets are scoped per route and guild.
	if !rlm.CanExecute("kick", "g1") {
		t.Fatal("other routes must not be throttled")
	}
	if !rlm.CanExecute("ban", "g2") {
		t.Fatal("other guilds must not be throttled")
	}

	resp.Header.Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(-time.Minute).Unix()))
	rlm.UpdateFromResponse(resp, "ban", "g1")
	if !rlm.CanExecute("ban", "g1") {
		t.Fatal("bucket past its reset should be executable")
	}

	resp.Header.Set("X-RateLimit-Remaining", "3")
	resp.Header.Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Minute).Unix()))
	rlm.UpdateFromResponse(resp, "ban", "g1")
	if !rlm.CanExecute("ban", "g1") {
		t.Fatal("bucket with remaining budget should be executable")
	}
}
