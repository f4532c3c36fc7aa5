package database

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	if err := Initialize(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() {
		Close()
		globalDB = nil
	})
	return GetDB()
}

func TestIncidentLog(t *testing.T) {
	db := openTestDB(t)

	for _, inc := range []*Incident{
		{GuildID: "g1", Guard: "channel", ActorID: "u1", ActionTaken: "sanction", Reason: "too many deletions"},
		{GuildID: "g1", Guard: "webhook", ActorID: "u2", ActionTaken: "purge"},
		{GuildID: "g2", Guard: "ban", ActorID: "u3", ActionTaken: "sanction"},
	} {
		if err := db.RecordIncident(inc); err != nil {
			t.Fatalf("RecordIncident failed: %v", err)
		}
	}

	incidents, err := db.RecentIncidents("g1", 10)
	if err != nil {
		t.Fatalf("RecentIncidents failed: %v", err)
	}
	if len(incidents) != 2 {
		t.Fatalf("RecentIncidents(g1) returned %d, want 2", len(incidents))
	}
	for _, inc := range incidents {
		if inc.GuildID != "g1" {
			t.Fatalf("incident from wrong guild: %+v", inc)
		}
		if inc.Timestamp == 0 {
			t.Fatal("timestamp should be set on insert")
		}
	}

	limited, err := db.RecentIncidents("g1", 1)
	if err != nil {
		t.Fatalf("RecentIncidents failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit not applied, got %d", len(limited))
	}
}

func TestPunishedLedger(t *testing.T) {
	db := openTestDB(t)

	if db.IsPunishedUser("g1", "u1") {
		t.Fatal("empty ledger should report false")
	}

	if err := db.AddPunishedUser("g1", "u1", "nuke attempt", "guardian", false); err != nil {
		t.Fatalf("AddPunishedUser failed: %v", err)
	}
	if !db.IsPunishedUser("g1", "u1") {
		t.Fatal("added user should be in the ledger")
	}
	if db.IsPunishedUser("g2", "u1") {
		t.Fatal("ledger must be scoped per guild")
	}

	// Re-adding the same user replaces rather than duplicates.
	if err := db.AddPunishedUser("g1", "u1", "second offense", "guardian", false); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if err := db.RemovePunishedUser("g1", "u1"); err != nil {
		t.Fatalf("RemovePunishedUser failed: %v", err)
	}
	if db.IsPunishedUser("g1", "u1") {
		t.Fatal("removed user should be gone")
	}
}
