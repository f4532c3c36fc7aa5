package store

import (
	"errors"
	"sync"

	"go-guardian/internal/logging"
)

// ErrWarningNotFound is returned when a removal index does not resolve to an
// existing warning.
var ErrWarningNotFound = errors.New("warning not found")

// Warning is one appended warning entry. Time is unix milliseconds.
type Warning struct {
	Reason      string `json:"reason"`
	ModeratorID string `json:"moderatorId"`
	Time        int64  `json:"time"`
}

type Warnings struct {
	mu     sync.Mutex
	path   string
	Guilds map[string]map[string][]Warning `json:"guilds"`
}

func OpenWarnings(dir string) *Warnings {
	w := &Warnings{
		path:   storePath(dir, "warnings.json"),
		Guilds: make(map[string]map[string][]Warning),
	}
	loadJSON(w.path, w)
	if w.Guilds == nil {
		w.Guilds = make(map[string]map[string][]Warning)
	}
	return w
}

// Add appends a warning and returns the user's new total.
func (w *Warnings) Add(guildID, userID string, warn Warning) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	recs, ok := w.Guilds[guildID]
	if !ok {
		recs = make(map[string][]Warning)
		w.Guilds[guildID] = recs
	}
	recs[userID] = append(recs[userID], warn)
	w.persist()
	return len(recs[userID])
}

// RemoveAt removes the warning at the 1-based index, shifting subsequent
// indices down, and returns the removed entry. Callers must re-query before
// repeat removals.
func (w *Warnings) RemoveAt(guildID, userID string, index int) (Warning, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	recs, ok := w.Guilds[guildID]
	if !ok {
		return Warning{}, ErrWarningNotFound
	}
	list := recs[userID]
	if index < 1 || index > len(list) {
		return Warning{}, ErrWarningNotFound
	}

	removed := list[index-1]
	recs[userID] = append(list[:index-1], list[index:]...)
	if len(recs[userID]) == 0 {
		delete(recs, userID)
	}
	w.persist()
	return removed, nil
}

func (w *Warnings) List(guildID, userID string) []Warning {
	w.mu.Lock()
	defer w.mu.Unlock()

	recs, ok := w.Guilds[guildID]
	if !ok {
		return nil
	}
	out := make([]Warning, len(recs[userID]))
	copy(out, recs[userID])
	return out
}

func (w *Warnings) persist() {
	if err := saveJSON(w.path, w); err != nil {
		logging.Error("store: failed to persist warnings: %v", err)
	}
}
