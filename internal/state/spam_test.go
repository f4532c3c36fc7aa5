package state

import (
	"testing"
	"time"
)

func TestSpamTrackerTripsAtLimit(t *testing.T) {
	tr := NewSpamTracker(5, 5*time.Second)
	base := time.Now()

	// Five messages one second apart all land inside the window.
	for n := 0; n < 4; n++ {
		if tr.Observe("g1", "u1", base.Add(time.Duration(n)*time.Second)) {
			t.Fatalf("message %d of 5 should not trip", n+1)
		}
	}
	if !tr.Observe("g1", "u1", base.Add(4*time.Second)) {
		t.Fatal("fifth message inside the window should trip")
	}
}

func TestSpamTrackerWindowSlides(t *testing.T) {
	tr := NewSpamTracker(5, 5*time.Second)
	base := time.Now()

	for n := 0; n < 4; n++ {
		tr.Observe("g1", "u1", base.Add(time.Duration(n)*time.Second))
	}

	// The fifth message arrives after the first two fell out of the window.
	if tr.Observe("g1", "u1", base.Add(7*time.Second)) {
		t.Fatal("fifth message outside the window should not trip")
	}
	if got := tr.WindowLen("g1", "u1"); got != 2 {
		t.Fatalf("WindowLen after pruning = %d, want 2", got)
	}
}

func TestSpamTrackerKeepsSlidingAfterTrip(t *testing.T) {
	tr := NewSpamTracker(3, 5*time.Second)
	base := time.Now()

	tr.Observe("g1", "u1", base)
	tr.Observe("g1", "u1", base.Add(time.Second))
	if !tr.Observe("g1", "u1", base.Add(2*time.Second)) {
		t.Fatal("third message should trip")
	}

	// The window is not cleared on a trip, so the next message trips again.
	if !tr.Observe("g1", "u1", base.Add(3*time.Second)) {
		t.Fatal("fourth message in the same window should still trip")
	}

	// Far enough in the future the window is empty again.
	if tr.Observe("g1", "u1", base.Add(time.Minute)) {
		t.Fatal("message after a quiet period should not trip")
	}
}

func TestSpamTrackerScopedPerGuildAndUser(t *testing.T) {
	tr := NewSpamTracker(3, 5*time.Second)
	base := time.Now()

	tr.Observe("g1", "u1", base)
	tr.Observe("g1", "u1", base.Add(time.Second))

	if tr.Observe("g2", "u1", base.Add(2*time.Second)) {
		t.Fatal("windows must be scoped per guild")
	}
	if tr.Observe("g1", "u2", base.Add(2*time.Second)) {
		t.Fatal("windows must be scoped per user")
	}
}

func TestSpamTrackerZeroLimit(t *testing.T) {
	tr := NewSpamTracker(0, 5*time.Second)
	base := time.Now()

	for n := 0; n < 10; n++ {
		if tr.Observe("g1", "u1", base.Add(time.Duration(n)*time.Millisecond)) {
			t.Fatal("limit 0 must never trip")
		}
	}
}
