package guards

import (
	"testing"
	"time"
)

func TestAuditCacheStoreGet(t *testing.T) {
	c := newAuditLogCache()

	c.Store("g1", 12, "actor1", "chan1")

	actor, ok := c.Get("g1", 12, "chan1")
	if !ok || actor != "actor1" {
		t.Fatalf("Get = %q, %v, want actor1", actor, ok)
	}

	// Without a target the entry still matches.
	actor, ok = c.Get("g1", 12, "")
	if !ok || actor != "actor1" {
		t.Fatalf("Get without target = %q, %v, want actor1", actor, ok)
	}

	if _, ok := c.Get("g1", 32, "chan1"); ok {
		t.Fatal("entries must be keyed per action type")
	}
	if _, ok := c.Get("g2", 12, "chan1"); ok {
		t.Fatal("entries must be keyed per guild")
	}
}

func TestAuditCacheTargetMismatch(t *testing.T) {
	c := newAuditLogCache()
	c.Store("g1", 12, "actor1", "chan1")

	if _, ok := c.Get("g1", 12, "chan2"); ok {
		t.Fatal("a cached entry for another target must not match")
	}
}

func TestAuditCacheExpiry(t *testing.T) {
	c := newAuditLogCache()
	c.Store("g1", 12, "actor1", "chan1")

	// Backdate the entry past the TTL.
	c.mu.Lock()
	c.entries["g1:12"].timestamp = time.Now().Add(-auditCacheTTL - time.Second)
	c.mu.Unlock()

	if _, ok := c.Get("g1", 12, "chan1"); ok {
		t.Fatal("expired entry must not match")
	}

	// The next Store sweeps it out.
	c.Store("g1", 32, "actor2", "role1")
	c.mu.Lock()
	_, stale := c.entries["g1:12"]
	c.mu.Unlock()
	if stale {
		t.Fatal("Store should evict expired entries")
	}
}
