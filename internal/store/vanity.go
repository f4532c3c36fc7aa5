package store

import (
	"sync"

	"go-guardian/internal/logging"
)

// Vanity keeps the last known-good vanity invite code per guild, used as the
// rollback target when an unauthorized change is detected.
type Vanity struct {
	mu     sync.Mutex
	path   string
	Guilds map[string]string `json:"guilds"`
}

func OpenVanity(dir string) *Vanity {
	v := &Vanity{
		path:   storePath(dir, "vanity.json"),
		Guilds: make(map[string]string),
	}
	loadJSON(v.path, v)
	if v.Guilds == nil {
		v.Guilds = make(map[string]string)
	}
	return v
}

func (v *Vanity) Get(guildID string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	code, ok := v.Guilds[guildID]
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

func (v *Vanity) Set(guildID, code string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.Guilds[guildID] = code
	v.persist()
}

func (v *Vanity) persist() {
	if err := saveJSON(v.path, v); err != nil {
		logging.Error("store: failed to persist vanity snapshots: %v", err)
	}
}
