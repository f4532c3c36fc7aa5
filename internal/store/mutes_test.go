package store

import (
	"testing"
	"time"
)

func TestMutesSetGetDelete(t *testing.T) {
	m := OpenMutes(t.TempDir())

	end := time.Now().Add(time.Hour).UnixMilli()
	m.Set("g1", "u1", MuteRecord{Reason: "spam", EndTime: &end})
	m.Set("g1", "u2", MuteRecord{Reason: "manual"})

	rec, ok := m.Get("g1", "u1")
	if !ok || rec.Reason != "spam" || rec.EndTime == nil || *rec.EndTime != end {
		t.Fatalf("Get(g1,u1) = %+v, %v", rec, ok)
	}

	rec, ok = m.Get("g1", "u2")
	if !ok || rec.EndTime != nil {
		t.Fatalf("indefinite mute should have nil EndTime, got %+v", rec)
	}

	if _, ok := m.Get("g1", "nobody"); ok {
		t.Fatal("Get of missing record should report false")
	}

	if !m.Delete("g1", "u1") {
		t.Fatal("Delete of existing record should report true")
	}
	if m.Delete("g1", "u1") {
		t.Fatal("second Delete should report false")
	}
}

func TestMutesSetReplaces(t *testing.T) {
	m := OpenMutes(t.TempDir())

	m.Set("g1", "u1", MuteRecord{Reason: "first"})
	end := time.Now().Add(time.Minute).UnixMilli()
	m.Set("g1", "u1", MuteRecord{Reason: "second", EndTime: &end})

	snap := m.GuildSnapshot("g1")
	if len(snap) != 1 {
		t.Fatalf("want one record per (guild,user), got %d", len(snap))
	}
	if snap["u1"].Reason != "second" {
		t.Fatalf("Set should replace the record, got %+v", snap["u1"])
	}
}

func TestMutesExpired(t *testing.T) {
	m := OpenMutes(t.TempDir())
	now := time.Now()

	past := now.Add(-time.Minute).UnixMilli()
	exact := now.UnixMilli()
	future := now.Add(time.Hour).UnixMilli()

	m.Set("g1", "past", MuteRecord{EndTime: &past})
	m.Set("g1", "exact", MuteRecord{EndTime: &exact})
	m.Set("g1", "future", MuteRecord{EndTime: &future})
	m.Set("g2", "forever", MuteRecord{})

	expired := m.Expired(now)
	got := make(map[string]bool, len(expired))
	for _, key := range expired {
		got[key.UserID] = true
	}

	if !got["past"] {
		t.Fatal("elapsed mute should be expired")
	}
	if !got["exact"] {
		t.Fatal("mute ending exactly at now should be expired")
	}
	if got["future"] {
		t.Fatal("future mute must not be expired")
	}
	if got["forever"] {
		t.Fatal("indefinite mute must never expire")
	}
}

func TestMutesPersistence(t *testing.T) {
	dir := t.TempDir()

	m := OpenMutes(dir)
	end := time.Now().Add(time.Hour).UnixMilli()
	m.Set("g1", "u1", MuteRecord{Reason: "spam", EndTime: &end})
	m.Set("g1", "u2", MuteRecord{Reason: "manual"})

	reopened := OpenMutes(dir)
	rec, ok := reopened.Get("g1", "u1")
	if !ok || rec.EndTime == nil || *rec.EndTime != end {
		t.Fatalf("timed mute should round-trip, got %+v, %v", rec, ok)
	}
	rec, ok = reopened.Get("g1", "u2")
	if !ok || rec.EndTime != nil {
		t.Fatalf("indefinite mute should round-trip with nil EndTime, got %+v", rec)
	}
}
