package mute

import (
	"testing"
	"time"

	"go-guardian/internal/store"
)

// The sweep snapshots expired keys outside the manager lock, so a record can
// be re-armed or removed before the sweep gets to it. RemoveIfExpired must
// re-check the record and leave anything no longer expired alone.
func TestRemoveIfExpiredSkipsReArmedMute(t *testing.T) {
	mutes := store.OpenMutes(t.TempDir())
	m := NewManager(nil, mutes)

	now := time.Now()
	past := now.Add(-time.Minute).UnixMilli()
	mutes.Set("g1", "u1", store.MuteRecord{Reason: "first", EndTime: &past})

	expired := mutes.Expired(now)
	if len(expired) != 1 {
		t.Fatalf("want one expired key, got %d", len(expired))
	}

	// Re-arm between the snapshot and the removal.
	future := now.Add(time.Hour).UnixMilli()
	mutes.Set("g1", "u1", store.MuteRecord{Reason: "second", EndTime: &future})

	if err := m.RemoveIfExpired(expired[0].GuildID, expired[0].UserID, now); err != nil {
		t.Fatalf("RemoveIfExpired: %v", err)
	}

	rec, ok := mutes.Get("g1", "u1")
	if !ok {
		t.Fatal("re-armed mute with a future end time must survive the sweep")
	}
	if rec.Reason != "second" || rec.EndTime == nil || *rec.EndTime != future {
		t.Fatalf("re-armed record was altered: %+v", rec)
	}
}

func TestRemoveIfExpiredSkipsIndefiniteMute(t *testing.T) {
	mutes := store.OpenMutes(t.TempDir())
	m := NewManager(nil, mutes)

	now := time.Now()
	past := now.Add(-time.Minute).UnixMilli()
	mutes.Set("g1", "u1", store.MuteRecord{Reason: "timed", EndTime: &past})
	expired := mutes.Expired(now)

	// Replaced with an indefinite mute before the sweep reaches the key.
	mutes.Set("g1", "u1", store.MuteRecord{Reason: "manual"})

	if err := m.RemoveIfExpired(expired[0].GuildID, expired[0].UserID, now); err != nil {
		t.Fatalf("RemoveIfExpired: %v", err)
	}
	if _, ok := mutes.Get("g1", "u1"); !ok {
		t.Fatal("indefinite mute must survive the sweep")
	}
}

func TestRemoveIfExpiredMissingRecord(t *testing.T) {
	mutes := store.OpenMutes(t.TempDir())
	m := NewManager(nil, mutes)

	if err := m.RemoveIfExpired("g1", "nobody", time.Now()); err != nil {
		t.Fatalf("RemoveIfExpired on a missing record should be a no-op, got %v", err)
	}
}
