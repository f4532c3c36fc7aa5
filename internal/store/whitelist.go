package store

import (
	"sync"

	"go-guardian/internal/logging"
)

// WhitelistRecord is the per-guild set of exempt actor IDs.
type WhitelistRecord struct {
	Users []string `json:"users"`
}

type Whitelist struct {
	mu     sync.Mutex
	path   string
	Guilds map[string]*WhitelistRecord `json:"guilds"`
}

func OpenWhitelist(dir string) *Whitelist {
	w := &Whitelist{
		path:   storePath(dir, "whitelist.json"),
		Guilds: make(map[string]*WhitelistRecord),
	}
	loadJSON(w.path, w)
	if w.Guilds == nil {
		w.Guilds = make(map[string]*WhitelistRecord)
	}
	return w
}

func (w *Whitelist) record(guildID string) *WhitelistRecord {
	rec, ok := w.Guilds[guildID]
	if !ok {
		rec = &WhitelistRecord{Users: []string{}}
		w.Guilds[guildID] = rec
	}
	return rec
}

// Add returns false if the user was already whitelisted.
func (w *Whitelist) Add(guildID, userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec := w.record(guildID)
	for _, id := range rec.Users {
		if id == userID {
			return false
		}
	}
	rec.Users = append(rec.Users, userID)
	w.persist()
	return true
}

// Remove returns false if the user was not whitelisted.
func (w *Whitelist) Remove(guildID, userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec := w.record(guildID)
	for i, id := range rec.Users {
		if id == userID {
			rec.Users = append(rec.Users[:i], rec.Users[i+1:]...)
			w.persist()
			return true
		}
	}
	return false
}

func (w *Whitelist) Contains(guildID, userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.Guilds[guildID]
	if !ok {
		return false
	}
	for _, id := range rec.Users {
		if id == userID {
			return true
		}
	}
	return false
}

func (w *Whitelist) List(guildID string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.Guilds[guildID]
	if !ok {
		return nil
	}
	out := make([]string, len(rec.Users))
	copy(out, rec.Users)
	return out
}

func (w *Whitelist) persist() {
	if err := saveJSON(w.path, w); err != nil {
		logging.Error("store: failed to persist whitelist: %v", err)
	}
}
