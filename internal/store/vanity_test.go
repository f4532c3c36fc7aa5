package store

import "testing"

func TestVanitySnapshot(t *testing.T) {
	dir := t.TempDir()

	v := OpenVanity(dir)
	if _, ok := v.Get("g1"); ok {
		t.Fatal("Get before Set should report false")
	}

	v.Set("g1", "coolserver")
	code, ok := v.Get("g1")
	if !ok || code != "coolserver" {
		t.Fatalf("Get(g1) = %q, %v", code, ok)
	}

	// An empty snapshot reads as absent.
	v.Set("g2", "")
	if _, ok := v.Get("g2"); ok {
		t.Fatal("empty code should read as absent")
	}

	reopened := OpenVanity(dir)
	code, ok = reopened.Get("g1")
	if !ok || code != "coolserver" {
		t.Fatalf("snapshot should survive a reopen, got %q, %v", code, ok)
	}
}
