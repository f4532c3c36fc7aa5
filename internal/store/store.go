// Package store holds the durable per-guild state documents: whitelist
// membership, active mutes, warnings, ban-escalation counters and vanity
// snapshots. Each store is a single JSON document rewritten after every
// mutation; the store mutex is held across the read-modify-write-persist
// cycle so concurrent mutations to different guilds cannot clobber each
// other's writes.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-guardian/internal/logging"
)

// loadJSON reads path into v. A missing file leaves v untouched; a malformed
// document is logged and discarded so the caller starts from empty defaults.
func loadJSON(path string, v interface{}) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("store: failed to read %s: %v", path, err)
		}
		return
	}

	if err := json.Unmarshal(data, v); err != nil {
		logging.Warn("store: malformed document %s, starting empty: %v", path, err)
	}
}

// saveJSON writes v to path atomically (temp file + rename).
func saveJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// EnsureDataDir creates the data directory used by all stores.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func storePath(dir, name string) string {
	return filepath.Join(dir, name)
}
