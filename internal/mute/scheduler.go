package mute

import (
	"sync"
	"time"

	"go-guardian/internal/config"
	"go-guardian/internal/logging"
	"go-guardian/internal/watchdog"
)

// Scheduler periodically expires timed mutes. Each expiry re-checks the
// record under the manager lock, so a concurrent handler re-arming a mute
// wins over the sweep's stale snapshot.
type Scheduler struct {
	manager  *Manager
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewScheduler(manager *Manager) *Scheduler {
	interval := time.Duration(config.Get().Limits.MuteSweepSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		manager:  manager,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		logging.Info("Mute sweep started (interval=%v)", s.interval)
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
	logging.Info("Mute sweep stopped")
}

func (s *Scheduler) sweep() {
	watchdog.Beat("mute-sweep")

	now := time.Now()
	expired := s.manager.mutes.Expired(now)
	for _, key := range expired {
		if err := s.manager.RemoveIfExpired(key.GuildID, key.UserID, now); err != nil {
			logging.Warn("mute: sweep failed to unmute %s in guild %s: %v", key.UserID, key.GuildID, err)
		}
	}
}
