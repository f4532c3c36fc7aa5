package store

import "testing"

func TestWhitelistAddRemove(t *testing.T) {
	w := OpenWhitelist(t.TempDir())

	if !w.Add("g1", "u1") {
		t.Fatal("first Add should report true")
	}
	if w.Add("g1", "u1") {
		t.Fatal("duplicate Add should report false")
	}
	if !w.Contains("g1", "u1") {
		t.Fatal("u1 should be whitelisted in g1")
	}
	if w.Contains("g2", "u1") {
		t.Fatal("whitelist must be scoped per guild")
	}

	if !w.Remove("g1", "u1") {
		t.Fatal("Remove of existing entry should report true")
	}
	if w.Remove("g1", "u1") {
		t.Fatal("Remove of missing entry should report false")
	}
	if w.Contains("g1", "u1") {
		t.Fatal("u1 should be gone after Remove")
	}
}

func TestWhitelistPersistence(t *testing.T) {
	dir := t.TempDir()

	w := OpenWhitelist(dir)
	w.Add("g1", "u1")
	w.Add("g1", "u2")
	w.Add("g2", "u3")
	w.Remove("g1", "u2")

	reopened := OpenWhitelist(dir)
	if !reopened.Contains("g1", "u1") {
		t.Fatal("u1 should survive a reopen")
	}
	if reopened.Contains("g1", "u2") {
		t.Fatal("removed u2 should not survive a reopen")
	}
	if got := reopened.List("g2"); len(got) != 1 || got[0] != "u3" {
		t.Fatalf("List(g2) = %v, want [u3]", got)
	}
}
