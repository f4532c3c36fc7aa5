// Package watchdog tracks liveness of the long-running components: the mute
// sweep, the REST workers and the gateway connection. A component that stops
// heartbeating gets reported once per transition, not once per check.
package watchdog

import (
	"sync/atomic"
	"time"

	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
)

type Watchdog struct {
	components    map[string]*componentHealth
	checkInterval time.Duration
	running       uint32
}

type componentHealth struct {
	name          string
	lastHeartbeat int64
	healthy       uint32
	threshold     time.Duration
}

func New(checkInterval time.Duration) *Watchdog {
	return &Watchdog{
		components:    make(map[string]*componentHealth),
		checkInterval: checkInterval,
	}
}

// Register adds a component. Must be called before Start; the component map
// is read without locks afterwards.
func (w *Watchdog) Register(name string, threshold time.Duration) {
	w.components[name] = &componentHealth{
		name:      name,
		healthy:   1,
		threshold: threshold,
	}
}

func (w *Watchdog) Heartbeat(name string) {
	if comp, exists := w.components[name]; exists {
		atomic.StoreInt64(&comp.lastHeartbeat, time.Now().UnixNano())
		if atomic.SwapUint32(&comp.healthy, 1) == 0 {
			logging.Info("Watchdog: %s recovered", name)
		}
	}
}

func (w *Watchdog) Start() {
	atomic.StoreUint32(&w.running, 1)
	go w.monitorLoop()
	logging.Info("Watchdog started (%d components, interval=%v)", len(w.components), w.checkInterval)
}

func (w *Watchdog) Stop() {
	atomic.StoreUint32(&w.running, 0)
}

func (w *Watchdog) monitorLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for atomic.LoadUint32(&w.running) == 1 {
		<-ticker.C
		w.checkAll()
	}
}

func (w *Watchdog) checkAll() {
	now := time.Now().UnixNano()

	for name, comp := range w.components {
		lastBeat := atomic.LoadInt64(&comp.lastHeartbeat)
		if lastBeat == 0 {
			continue
		}

		elapsed := time.Duration(now - lastBeat)
		if elapsed > comp.threshold {
			if atomic.SwapUint32(&comp.healthy, 0) == 1 {
				logging.Error("Watchdog: %s unhealthy (no heartbeat for %v)", name, elapsed)
				notifier.SendGuardEmbed("🚨 Component Unhealthy", notifier.ColorRed, "",
					notifier.Field("Component", name, true),
					notifier.Field("Silent for", elapsed.Round(time.Second).String(), true),
				)
			}
		}
	}
}

func (w *Watchdog) IsHealthy(name string) bool {
	if comp, exists := w.components[name]; exists {
		return atomic.LoadUint32(&comp.healthy) == 1
	}
	return false
}

// Status returns the health of every component.
func (w *Watchdog) Status() map[string]bool {
	status := make(map[string]bool, len(w.components))
	for name, comp := range w.components {
		status[name] = atomic.LoadUint32(&comp.healthy) == 1
	}
	return status
}

var global *Watchdog

// SetGlobal installs the process watchdog so components can heartbeat
// without holding a reference.
func SetGlobal(w *Watchdog) {
	global = w
}

// Beat heartbeats the named component on the global watchdog, if any.
func Beat(name string) {
	if global != nil {
		global.Heartbeat(name)
	}
}
