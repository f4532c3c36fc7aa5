// Package mute implements the temporary-restriction subsystem: a per-guild
// marker role with deny overwrites on every channel, a persisted record per
// muted actor and a periodic sweep that expires timed mutes.
package mute

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
	"go-guardian/internal/store"
	"go-guardian/pkg/util"
)

const (
	textDeny = discordgo.PermissionSendMessages |
		discordgo.PermissionAddReactions |
		discordgo.PermissionSendMessagesInThreads |
		discordgo.PermissionCreatePublicThreads |
		discordgo.PermissionCreatePrivateThreads
	voiceDeny = discordgo.PermissionVoiceSpeak |
		discordgo.PermissionVoiceConnect
)

// Manager owns all mute state transitions. Its mutex makes handler-triggered
// mutes and the expiry sweep mutually exclusive, so a sweep can never expire
// a mute a handler just re-armed.
type Manager struct {
	mu      sync.Mutex
	session *discordgo.Session
	mutes   *store.Mutes
	roleIDs map[string]string
}

func NewManager(session *discordgo.Session, mutes *store.Mutes) *Manager {
	return &Manager{
		session: session,
		mutes:   mutes,
		roleIDs: make(map[string]string),
	}
}

// Apply mutes the target. A zero duration means indefinite. The marker role
// is created on first use per guild and attached only if missing.
func (m *Manager) Apply(guildID, moderatorID, targetID string, duration time.Duration, reason string) error {
	if !config.Get().Protection.MuteEnabled {
		return fmt.Errorf("mute subsystem is disabled")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	roleID, err := m.ensureRoleLocked(guildID)
	if err != nil {
		return fmt.Errorf("failed to ensure mute role: %w", err)
	}

	member, err := m.session.GuildMember(guildID, targetID)
	if err != nil {
		return fmt.Errorf("failed to fetch member %s: %w", targetID, err)
	}

	if !hasRole(member, roleID) {
		if err := m.session.GuildMemberRoleAdd(guildID, targetID, roleID); err != nil {
			logging.Warn("mute: failed to attach marker to %s in guild %s: %v", targetID, guildID, err)
		}
	}

	rec := store.MuteRecord{Reason: reason}
	if duration > 0 {
		end := time.Now().Add(duration).UnixMilli()
		rec.EndTime = &end
	}
	m.mutes.Set(guildID, targetID, rec)

	logging.Info("[MUTE] %s muted in guild %s (duration=%v): %s", targetID, guildID, duration, reason)

	durationText := "indefinite"
	if duration > 0 {
		durationText = util.FormatRemaining(duration)
	}
	fields := []*discordgo.MessageEmbedField{
		notifier.UserField("User", targetID, true),
		notifier.Field("Duration", durationText, true),
		notifier.Field("Reason", reason, false),
	}
	if moderatorID != "" {
		fields = append(fields, notifier.UserField("Moderator", moderatorID, true))
	}
	notifier.SendGuardEmbed("🔇 Muted", notifier.ColorBlue, "", fields...)

	return nil
}

// Remove unmutes the target. Calling it on an already-unmuted actor is a
// no-op: no error, no duplicate log.
func (m *Manager) Remove(guildID, moderatorID, targetID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.removeLocked(guildID, moderatorID, targetID, reason)
}

// RemoveIfExpired unmutes the target only if its record still reads as
// expired at now. The sweep snapshots expired keys outside the lock, so a
// handler may have re-armed or removed the mute in the meantime; those
// records are left alone.
func (m *Manager) RemoveIfExpired(guildID, targetID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.mutes.Get(guildID, targetID)
	if !ok {
		return nil
	}
	if rec.EndTime == nil || now.UnixMilli() < *rec.EndTime {
		return nil
	}
	return m.removeLocked(guildID, "", targetID, "Mute expired")
}

func (m *Manager) removeLocked(guildID, moderatorID, targetID, reason string) error {
	detached := false
	if roleID := m.findRoleLocked(guildID); roleID != "" {
		if member, err := m.session.GuildMember(guildID, targetID); err == nil && hasRole(member, roleID) {
			if err := m.session.GuildMemberRoleRemove(guildID, targetID, roleID); err != nil {
				logging.Warn("mute: failed to detach marker from %s in guild %s: %v", targetID, guildID, err)
			} else {
				detached = true
			}
		}
	}

	deleted := m.mutes.Delete(guildID, targetID)
	if !deleted && !detached {
		return nil
	}

	logging.Info("[UNMUTE] %s unmuted in guild %s: %s", targetID, guildID, reason)

	fields := []*discordgo.MessageEmbedField{
		notifier.UserField("User", targetID, true),
		notifier.Field("Reason", reason, true),
	}
	if moderatorID != "" {
		fields = append(fields, notifier.UserField("Moderator", moderatorID, true))
	}
	notifier.SendGuardEmbed("🔊 Unmuted", notifier.ColorTeal, "", fields...)

	return nil
}

// IsMuted reports whether the actor has an active mute record.
func (m *Manager) IsMuted(guildID, targetID string) bool {
	_, ok := m.mutes.Get(guildID, targetID)
	return ok
}

// ActiveMutes returns a copy of one guild's records for listing.
func (m *Manager) ActiveMutes(guildID string) map[string]store.MuteRecord {
	return m.mutes.GuildSnapshot(guildID)
}

// EnsureRole creates (or finds) the guild's marker role and applies the deny
// overwrites to every existing channel. Idempotent.
func (m *Manager) EnsureRole(guildID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureRoleLocked(guildID)
}

func (m *Manager) ensureRoleLocked(guildID string) (string, error) {
	roleID := m.findRoleLocked(guildID)
	if roleID == "" {
		perms := int64(0)
		role, err := m.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
			Name:        config.Get().Protection.MuteRoleName,
			Permissions: &perms,
		})
		if err != nil {
			return "", err
		}
		roleID = role.ID
		m.roleIDs[guildID] = roleID
	}

	channels, err := m.session.GuildChannels(guildID)
	if err != nil {
		logging.Warn("mute: failed to list channels for guild %s: %v", guildID, err)
		return roleID, nil
	}
	for _, ch := range channels {
		m.applyOverwriteLocked(ch, roleID)
	}

	return roleID, nil
}

// findRoleLocked resolves the marker role by name, refreshing the cache when
// the cached role no longer exists (deleted and recreated).
func (m *Manager) findRoleLocked(guildID string) string {
	roleName := config.Get().Protection.MuteRoleName

	guild, err := m.session.State.Guild(guildID)
	if err != nil {
		guildRoles, err := m.session.GuildRoles(guildID)
		if err != nil {
			return m.roleIDs[guildID]
		}
		for _, role := range guildRoles {
			if role.Name == roleName {
				m.roleIDs[guildID] = role.ID
				return role.ID
			}
		}
		delete(m.roleIDs, guildID)
		return ""
	}

	for _, role := range guild.Roles {
		if role.Name == roleName {
			m.roleIDs[guildID] = role.ID
			return role.ID
		}
	}
	delete(m.roleIDs, guildID)
	return ""
}

// PropagateToChannel applies the deny overwrites to a newly created channel
// so an active mute cannot be bypassed by posting to a fresh channel.
func (m *Manager) PropagateToChannel(ch *discordgo.Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()

	roleID := m.findRoleLocked(ch.GuildID)
	if roleID == "" {
		return
	}
	m.applyOverwriteLocked(ch, roleID)
}

func (m *Manager) applyOverwriteLocked(ch *discordgo.Channel, roleID string) {
	var deny int64
	switch ch.Type {
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		deny = voiceDeny
	case discordgo.ChannelTypeGuildCategory:
		return
	default:
		deny = textDeny
	}

	if err := m.session.ChannelPermissionSet(ch.ID, roleID, discordgo.PermissionOverwriteTypeRole, 0, deny); err != nil {
		logging.Warn("mute: failed to set overwrite on channel %s: %v", ch.ID, err)
	}
}

// ReconcileGuild converges persisted mute records and platform state after a
// restart: expired records are removed, surviving records get the marker
// re-attached if it went missing.
func (m *Manager) ReconcileGuild(guildID string) {
	if !config.Get().Protection.MuteEnabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.mutes.GuildSnapshot(guildID)
	if len(records) == 0 {
		if _, err := m.ensureRoleLocked(guildID); err != nil {
			logging.Warn("mute: failed to ensure role in guild %s: %v", guildID, err)
		}
		return
	}

	roleID, err := m.ensureRoleLocked(guildID)
	if err != nil {
		logging.Warn("mute: failed to ensure role in guild %s: %v", guildID, err)
		return
	}

	nowMS := time.Now().UnixMilli()
	for userID, rec := range records {
		if rec.EndTime != nil && nowMS >= *rec.EndTime {
			if err := m.removeLocked(guildID, "", userID, "Mute expired (startup reconciliation)"); err != nil {
				logging.Warn("mute: startup expiry for %s failed: %v", userID, err)
			}
			continue
		}

		member, err := m.session.GuildMember(guildID, userID)
		if err != nil {
			continue
		}
		if !hasRole(member, roleID) {
			if err := m.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
				logging.Warn("mute: failed to re-attach marker to %s in guild %s: %v", userID, guildID, err)
			} else {
				logging.Info("[MUTE] Re-attached marker to %s in guild %s after restart", userID, guildID)
			}
		}
	}
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
