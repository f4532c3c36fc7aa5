package store

import (
	"sync"

	"go-guardian/internal/logging"
)

// BanCounts tracks, per guild, how many non-exempt bans each actor has
// issued. The count resets to zero after an escalation fires, making the
// limit a resettable ladder rather than a lifetime cap.
type BanCounts struct {
	mu     sync.Mutex
	path   string
	Guilds map[string]map[string]int `json:"guilds"`
}

func OpenBanCounts(dir string) *BanCounts {
	b := &BanCounts{
		path:   storePath(dir, "bancount.json"),
		Guilds: make(map[string]map[string]int),
	}
	loadJSON(b.path, b)
	if b.Guilds == nil {
		b.Guilds = make(map[string]map[string]int)
	}
	return b
}

// Increment bumps the actor's count and returns the new value.
func (b *BanCounts) Increment(guildID, userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts, ok := b.Guilds[guildID]
	if !ok {
		counts = make(map[string]int)
		b.Guilds[guildID] = counts
	}
	counts[userID]++
	b.persist()
	return counts[userID]
}

// Reset zeroes the actor's count after an escalation fires.
func (b *BanCounts) Reset(guildID, userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts, ok := b.Guilds[guildID]
	if !ok {
		return
	}
	delete(counts, userID)
	b.persist()
}

func (b *BanCounts) Get(guildID, userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts, ok := b.Guilds[guildID]
	if !ok {
		return 0
	}
	return counts[userID]
}

func (b *BanCounts) persist() {
	if err := saveJSON(b.path, b); err != nil {
		logging.Error("store: failed to persist ban counts: %v", err)
	}
}
