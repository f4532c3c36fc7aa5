package store

import (
	"sync"
	"time"

	"go-guardian/internal/logging"
)

// MuteRecord describes one active mute. EndTime is unix milliseconds; nil
// means indefinite. The record's existence is the source of truth for a mute
// being active, independent of whether the platform-side role is currently
// attached.
type MuteRecord struct {
	Reason  string `json:"reason"`
	EndTime *int64 `json:"endTime"`
}

// MuteKey identifies a mute across all guilds.
type MuteKey struct {
	GuildID string
	UserID  string
}

type Mutes struct {
	mu     sync.Mutex
	path   string
	Guilds map[string]map[string]*MuteRecord `json:"guilds"`
}

func OpenMutes(dir string) *Mutes {
	m := &Mutes{
		path:   storePath(dir, "mutes.json"),
		Guilds: make(map[string]map[string]*MuteRecord),
	}
	loadJSON(m.path, m)
	if m.Guilds == nil {
		m.Guilds = make(map[string]map[string]*MuteRecord)
	}
	return m
}

func (m *Mutes) records(guildID string) map[string]*MuteRecord {
	recs, ok := m.Guilds[guildID]
	if !ok {
		recs = make(map[string]*MuteRecord)
		m.Guilds[guildID] = recs
	}
	return recs
}

// Set writes or replaces the mute record for (guild, user). An actor has at
// most one active record per guild.
func (m *Mutes) Set(guildID, userID string, rec MuteRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records(guildID)[userID] = &rec
	m.persist()
}

func (m *Mutes) Get(guildID, userID string) (MuteRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs, ok := m.Guilds[guildID]
	if !ok {
		return MuteRecord{}, false
	}
	rec, ok := recs[userID]
	if !ok {
		return MuteRecord{}, false
	}
	return *rec, true
}

// Delete removes the record and reports whether it existed.
func (m *Mutes) Delete(guildID, userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs, ok := m.Guilds[guildID]
	if !ok {
		return false
	}
	if _, ok := recs[userID]; !ok {
		return false
	}
	delete(recs, userID)
	m.persist()
	return true
}

// Expired returns every timed mute whose end time has elapsed at now.
func (m *Mutes) Expired(now time.Time) []MuteKey {
	m.mu.Lock()
	defer m.mu.Unlock()

	nowMS := now.UnixMilli()
	var expired []MuteKey
	for guildID, recs := range m.Guilds {
		for userID, rec := range recs {
			if rec.EndTime != nil && nowMS >= *rec.EndTime {
				expired = append(expired, MuteKey{GuildID: guildID, UserID: userID})
			}
		}
	}
	return expired
}

// Snapshot returns a copy of every guild's records for iteration without
// holding the store lock.
func (m *Mutes) Snapshot() map[string]map[string]MuteRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]map[string]MuteRecord, len(m.Guilds))
	for guildID, recs := range m.Guilds {
		gc := make(map[string]MuteRecord, len(recs))
		for userID, rec := range recs {
			gc[userID] = *rec
		}
		out[guildID] = gc
	}
	return out
}

// GuildSnapshot returns a copy of one guild's records.
func (m *Mutes) GuildSnapshot(guildID string) map[string]MuteRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs, ok := m.Guilds[guildID]
	if !ok {
		return nil
	}
	gc := make(map[string]MuteRecord, len(recs))
	for userID, rec := range recs {
		gc[userID] = *rec
	}
	return gc
}

func (m *Mutes) persist() {
	if err := saveJSON(m.path, m); err != nil {
		logging.Error("store: failed to persist mutes: %v", err)
	}
}
