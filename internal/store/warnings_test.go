package store

import (
	"errors"
	"testing"
)

func TestWarningsAdd(t *testing.T) {
	w := OpenWarnings(t.TempDir())

	if got := w.Add("g1", "u1", Warning{Reason: "one"}); got != 1 {
		t.Fatalf("first Add total = %d, want 1", got)
	}
	if got := w.Add("g1", "u1", Warning{Reason: "two"}); got != 2 {
		t.Fatalf("second Add total = %d, want 2", got)
	}
	if got := w.Add("g2", "u1", Warning{Reason: "other"}); got != 1 {
		t.Fatalf("warnings must be scoped per guild, total = %d, want 1", got)
	}
}

func TestWarningsRemoveAt(t *testing.T) {
	w := OpenWarnings(t.TempDir())
	w.Add("g1", "u1", Warning{Reason: "one"})
	w.Add("g1", "u1", Warning{Reason: "two"})
	w.Add("g1", "u1", Warning{Reason: "three"})

	removed, err := w.RemoveAt("g1", "u1", 2)
	if err != nil {
		t.Fatalf("RemoveAt(2) unexpected error: %v", err)
	}
	if removed.Reason != "two" {
		t.Fatalf("RemoveAt(2) removed %q, want %q", removed.Reason, "two")
	}

	// Subsequent entries shift down.
	rest := w.List("g1", "u1")
	if len(rest) != 2 || rest[0].Reason != "one" || rest[1].Reason != "three" {
		t.Fatalf("List after removal = %+v", rest)
	}

	for _, index := range []int{0, -1, 3} {
		if _, err := w.RemoveAt("g1", "u1", index); !errors.Is(err, ErrWarningNotFound) {
			t.Fatalf("RemoveAt(%d) error = %v, want ErrWarningNotFound", index, err)
		}
	}

	if _, err := w.RemoveAt("g1", "nobody", 1); !errors.Is(err, ErrWarningNotFound) {
		t.Fatalf("RemoveAt for unknown user error = %v, want ErrWarningNotFound", err)
	}
}

func TestWarningsRemoveLastDeletesUser(t *testing.T) {
	dir := t.TempDir()

	w := OpenWarnings(dir)
	w.Add("g1", "u1", Warning{Reason: "only"})
	if _, err := w.RemoveAt("g1", "u1", 1); err != nil {
		t.Fatalf("RemoveAt unexpected error: %v", err)
	}

	if got := w.List("g1", "u1"); len(got) != 0 {
		t.Fatalf("List after removing only warning = %+v, want empty", got)
	}

	reopened := OpenWarnings(dir)
	if got := reopened.List("g1", "u1"); len(got) != 0 {
		t.Fatalf("empty user list should not survive a reopen, got %+v", got)
	}
}
