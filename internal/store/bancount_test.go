package store

import "testing"

func TestBanCountsLadder(t *testing.T) {
	b := OpenBanCounts(t.TempDir())

	if got := b.Increment("g1", "u1"); got != 1 {
		t.Fatalf("first Increment = %d, want 1", got)
	}
	if got := b.Increment("g1", "u1"); got != 2 {
		t.Fatalf("second Increment = %d, want 2", got)
	}
	if got := b.Increment("g1", "u2"); got != 1 {
		t.Fatalf("counts must be per actor, got %d", got)
	}
	if got := b.Increment("g2", "u1"); got != 1 {
		t.Fatalf("counts must be per guild, got %d", got)
	}

	b.Reset("g1", "u1")
	if got := b.Get("g1", "u1"); got != 0 {
		t.Fatalf("Get after Reset = %d, want 0", got)
	}
	if got := b.Increment("g1", "u1"); got != 1 {
		t.Fatalf("Increment after Reset = %d, want 1", got)
	}

	// Resetting a missing key is a no-op.
	b.Reset("g9", "nobody")
}

func TestBanCountsPersistence(t *testing.T) {
	dir := t.TempDir()

	b := OpenBanCounts(dir)
	b.Increment("g1", "u1")
	b.Increment("g1", "u1")

	reopened := OpenBanCounts(dir)
	if got := reopened.Get("g1", "u1"); got != 2 {
		t.Fatalf("count should survive a reopen, got %d", got)
	}
}
