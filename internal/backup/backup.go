// Package backup snapshots a guild's role and channel structure to JSON and
// restores whatever a raid deleted. Restore is additive only: it recreates
// missing entries by name and never touches ones that still exist.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/logging"
)

type RoleBackup struct {
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Hoist       bool   `json:"hoist"`
	Permissions int64  `json:"permissions"`
	Mentionable bool   `json:"mentionable"`
}

type ChannelBackup struct {
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Topic    string `json:"topic,omitempty"`
	NSFW     bool   `json:"nsfw,omitempty"`
	Position int    `json:"position"`
}

type GuildBackup struct {
	GuildID   string          `json:"guild_id"`
	GuildName string          `json:"guild_name"`
	CreatedAt int64           `json:"created_at"`
	Roles     []RoleBackup    `json:"roles"`
	Channels  []ChannelBackup `json:"channels"`
}

// Create writes a timestamped snapshot and returns its path.
func Create(s *discordgo.Session, guildID string) (string, error) {
	guild, err := s.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch roles: %w", err)
	}
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch channels: %w", err)
	}

	b := GuildBackup{
		GuildID:   guildID,
		GuildName: guild.Name,
		CreatedAt: time.Now().UnixMilli(),
	}

	for _, role := range roles {
		if role.Managed || role.ID == guildID {
			continue
		}
		b.Roles = append(b.Roles, RoleBackup{
			Name:        role.Name,
			Color:       role.Color,
			Hoist:       role.Hoist,
			Permissions: role.Permissions,
			Mentionable: role.Mentionable,
		})
	}

	for _, ch := range channels {
		b.Channels = append(b.Channels, ChannelBackup{
			Name:     ch.Name,
			Type:     int(ch.Type),
			Topic:    ch.Topic,
			NSFW:     ch.NSFW,
			Position: ch.Position,
		})
	}

	dir := config.Get().Bot.BackupDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", guildID, time.Now().Format("20060102-150405")))
	data, err := json.MarshalIndent(&b, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	logging.Info("[BACKUP] Guild %s: %d roles, %d channels -> %s", guildID, len(b.Roles), len(b.Channels), path)
	return path, nil
}

// Latest returns the newest backup for the guild.
func Latest(guildID string) (*GuildBackup, error) {
	dir := config.Get().Bot.BackupDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup dir: %w", err)
	}

	var names []string
	prefix := guildID + "-"
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no backups found for guild %s", guildID)
	}

	// Timestamped filenames sort chronologically.
	sort.Strings(names)
	data, err := os.ReadFile(filepath.Join(dir, names[len(names)-1]))
	if err != nil {
		return nil, err
	}

	var b GuildBackup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	return &b, nil
}

// Restore recreates roles and channels from the newest backup that no
// longer exist, matched by name. Returns how many of each were recreated.
func Restore(s *discordgo.Session, guildID string) (int, int, error) {
	b, err := Latest(guildID)
	if err != nil {
		return 0, 0, err
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch roles: %w", err)
	}
	haveRole := make(map[string]bool, len(roles))
	for _, role := range roles {
		haveRole[role.Name] = true
	}

	restoredRoles := 0
	for _, rb := range b.Roles {
		if haveRole[rb.Name] {
			continue
		}
		perms := rb.Permissions
		color := rb.Color
		hoist := rb.Hoist
		mentionable := rb.Mentionable
		_, err := s.GuildRoleCreate(guildID, &discordgo.RoleParams{
			Name:        rb.Name,
			Color:       &color,
			Hoist:       &hoist,
			Permissions: &perms,
			Mentionable: &mentionable,
		})
		if err != nil {
			logging.Warn("[RESTORE] Failed to recreate role %q: %v", rb.Name, err)
			continue
		}
		restoredRoles++
	}

	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return restoredRoles, 0, fmt.Errorf("failed to fetch channels: %w", err)
	}
	haveChannel := make(map[string]bool, len(channels))
	for _, ch := range channels {
		haveChannel[ch.Name] = true
	}

	restoredChannels := 0
	for _, cb := range b.Channels {
		if haveChannel[cb.Name] {
			continue
		}
		_, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:     cb.Name,
			Type:     discordgo.ChannelType(cb.Type),
			Topic:    cb.Topic,
			NSFW:     cb.NSFW,
			Position: cb.Position,
		})
		if err != nil {
			logging.Warn("[RESTORE] Failed to recreate channel %q: %v", cb.Name, err)
			continue
		}
		restoredChannels++
	}

	logging.Info("[RESTORE] Guild %s: recreated %d roles, %d channels", guildID, restoredRoles, restoredChannels)
	return restoredRoles, restoredChannels, nil
}
