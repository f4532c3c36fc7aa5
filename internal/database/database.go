package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

var globalDB *Database

// Initialize opens the SQLite database and creates the schema.
func Initialize(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	globalDB = &Database{db: db}

	if err := globalDB.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// GetDB returns the global database instance, nil when unavailable.
func GetDB() *Database {
	return globalDB
}

// Close closes the database connection.
func Close() error {
	if globalDB != nil && globalDB.db != nil {
		return globalDB.db.Close()
	}
	return nil
}

func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS incidents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		guard TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		target_id TEXT DEFAULT '',
		action_taken TEXT NOT NULL,
		reason TEXT DEFAULT '',
		timestamp INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_incidents_guild ON incidents(guild_id);
	CREATE INDEX IF NOT EXISTS idx_incidents_timestamp ON incidents(timestamp);

	CREATE TABLE IF NOT EXISTS punished_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		punished_at INTEGER NOT NULL,
		punished_by TEXT NOT NULL,
		is_bot INTEGER DEFAULT 0,
		UNIQUE(guild_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_punished_users_guild ON punished_users(guild_id);
	`

	_, err := d.db.Exec(schema)
	return err
}

// RecordIncident appends a guard action to the incident log.
func (d *Database) RecordIncident(inc *Incident) error {
	inc.Timestamp = time.Now().Unix()

	_, err := d.db.Exec(
		`INSERT INTO incidents (guild_id, guard, actor_id, target_id, action_taken, reason, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inc.GuildID, inc.Guard, inc.ActorID, inc.TargetID, inc.ActionTaken, inc.Reason, inc.Timestamp,
	)
	return err
}

// RecentIncidents retrieves the most recent incidents for a guild.
func (d *Database) RecentIncidents(guildID string, limit int) ([]*Incident, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, guard, actor_id, target_id, action_taken, reason, timestamp
		 FROM incidents WHERE guild_id = ? ORDER BY timestamp DESC LIMIT ?`,
		guildID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []*Incident
	for rows.Next() {
		var inc Incident
		if err := rows.Scan(&inc.ID, &inc.GuildID, &inc.Guard, &inc.ActorID, &inc.TargetID, &inc.ActionTaken, &inc.Reason, &inc.Timestamp); err != nil {
			return nil, err
		}
		incidents = append(incidents, &inc)
	}

	return incidents, rows.Err()
}

// AddPunishedUser records a user punished by the guardian.
func (d *Database) AddPunishedUser(guildID, userID, reason, punishedBy string, isBot bool) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO punished_users (guild_id, user_id, reason, punished_at, punished_by, is_bot)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		guildID, userID, reason, time.Now().Unix(), punishedBy, isBot,
	)
	return err
}

// IsPunishedUser checks whether a user is in the punished ledger.
func (d *Database) IsPunishedUser(guildID, userID string) bool {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM punished_users WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&count)
	return err == nil && count > 0
}

// RemovePunishedUser clears a user's punished record.
func (d *Database) RemovePunishedUser(guildID, userID string) error {
	_, err := d.db.Exec(
		`DELETE FROM punished_users WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	)
	return err
}
