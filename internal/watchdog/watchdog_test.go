package watchdog

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchdogHealthyByDefault(t *testing.T) {
	w := New(time.Second)
	w.Register("sweep", time.Minute)

	if !w.IsHealthy("sweep") {
		t.Fatal("registered component should start healthy")
	}
	if w.IsHealthy("unknown") {
		t.Fatal("unknown component must not report healthy")
	}
}

func TestWatchdogUnhealthyTransition(t *testing.T) {
	w := New(time.Second)
	w.Register("sweep", time.Minute)

	// Never-heartbeated components are left alone.
	w.checkAll()
	if !w.IsHealthy("sweep") {
		t.Fatal("component without a first heartbeat should stay healthy")
	}

	w.Heartbeat("sweep")
	w.checkAll()
	if !w.IsHealthy("sweep") {
		t.Fatal("fresh heartbeat should keep the component healthy")
	}

	// Backdate the heartbeat past the threshold.
	comp := w.components["sweep"]
	atomic.StoreInt64(&comp.lastHeartbeat, time.Now().Add(-2*time.Minute).UnixNano())
	w.checkAll()
	if w.IsHealthy("sweep") {
		t.Fatal("stale heartbeat should mark the component unhealthy")
	}

	// A new heartbeat recovers it.
	w.Heartbeat("sweep")
	if !w.IsHealthy("sweep") {
		t.Fatal("heartbeat should recover an unhealthy component")
	}
}

func TestWatchdogStatus(t *testing.T) {
	w := New(time.Second)
	w.Register("a", time.Minute)
	w.Register("b", time.Minute)

	status := w.Status()
	if len(status) != 2 || !status["a"] || !status["b"] {
		t.Fatalf("Status = %v", status)
	}
}

func TestGlobalBeat(t *testing.T) {
	// Beat without a global watchdog is a no-op.
	SetGlobal(nil)
	Beat("sweep")

	w := New(time.Second)
	w.Register("sweep", time.Minute)
	SetGlobal(w)
	t.Cleanup(func() { SetGlobal(nil) })

	Beat("sweep")
	if atomic.LoadInt64(&w.components["sweep"].lastHeartbeat) == 0 {
		t.Fatal("Beat should heartbeat the global watchdog")
	}
}
