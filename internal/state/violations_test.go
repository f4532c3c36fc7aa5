package state

import "testing"

func TestViolationCountersThreshold(t *testing.T) {
	v := NewViolationCounters()

	if v.Record("u1", CategoryChannelDelete, 3) {
		t.Fatal("count 1 of 3 should not trip")
	}
	if v.Record("u1", CategoryChannelDelete, 3) {
		t.Fatal("count 2 of 3 should not trip")
	}
	if !v.Record("u1", CategoryChannelDelete, 3) {
		t.Fatal("count 3 of 3 should trip")
	}
	// Saturating: the counter is never reset by tripping, so every call
	// past the limit still reports exceeded.
	for n := 0; n < 5; n++ {
		if !v.Record("u1", CategoryChannelDelete, 3) {
			t.Fatalf("call %d past the limit should still trip", n+1)
		}
	}
	if got := v.Count("u1", CategoryChannelDelete); got != 8 {
		t.Fatalf("Count = %d, want 8", got)
	}
}

func TestViolationCountersIsolation(t *testing.T) {
	v := NewViolationCounters()

	v.Record("u1", CategoryChannelDelete, 3)
	v.Record("u1", CategoryChannelDelete, 3)

	if got := v.Count("u1", CategoryRoleDelete); got != 0 {
		t.Fatalf("categories must be independent, got %d", got)
	}
	if got := v.Count("u2", CategoryChannelDelete); got != 0 {
		t.Fatalf("actors must be independent, got %d", got)
	}
}

func TestViolationCountersZeroLimit(t *testing.T) {
	v := NewViolationCounters()

	for n := 0; n < 10; n++ {
		if v.Record("u1", CategoryRoleDelete, 0) {
			t.Fatal("limit 0 must never trip")
		}
	}
	if v.Record("u1", CategoryRoleDelete, -1) {
		t.Fatal("negative limit must never trip")
	}
}

func TestViolationCountersClear(t *testing.T) {
	v := NewViolationCounters()

	v.Record("u1", CategoryForbiddenGrant, 5)
	v.Record("u1", CategoryChannelDelete, 5)
	v.Clear("u1")

	if got := v.Count("u1", CategoryForbiddenGrant); got != 0 {
		t.Fatalf("Count after Clear = %d, want 0", got)
	}
	if v.Record("u1", CategoryChannelDelete, 2) {
		t.Fatal("first record after Clear should not trip a limit of 2")
	}
}
