package guards

import (
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/logging"
)

// auditLogCache stores recent audit log entries pushed over the gateway so
// direct event handlers can attribute an action without a REST round trip.
type auditLogCache struct {
	mu      sync.RWMutex
	entries map[string]*auditCacheEntry
}

type auditCacheEntry struct {
	actorID   string
	targetID  string
	timestamp time.Time
}

const auditCacheTTL = 5 * time.Second

func newAuditLogCache() *auditLogCache {
	return &auditLogCache{entries: make(map[string]*auditCacheEntry)}
}

func (c *auditLogCache) Store(guildID string, action int, actorID, targetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := guildID + ":" + strconv.Itoa(action)
	c.entries[key] = &auditCacheEntry{
		actorID:   actorID,
		targetID:  targetID,
		timestamp: time.Now(),
	}

	// Cleanup old entries
	for k, v := range c.entries {
		if time.Since(v.timestamp) > auditCacheTTL {
			delete(c.entries, k)
		}
	}
}

// Get returns the cached actor for (guild, action). When both the cached
// entry and the caller name a target, they must agree.
func (c *auditLogCache) Get(guildID string, action int, targetID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := guildID + ":" + strconv.Itoa(action)
	entry, exists := c.entries[key]
	if !exists || time.Since(entry.timestamp) >= auditCacheTTL {
		return "", false
	}
	if targetID != "" && entry.targetID != "" && entry.targetID != targetID {
		return "", false
	}
	return entry.actorID, true
}

var auditCache = newAuditLogCache()

// onAuditLogEntry captures WHO did an action the moment Discord reports it.
func (g *Guards) onAuditLogEntry(_ *discordgo.Session, audit *discordgo.GuildAuditLogEntryCreate) {
	if audit.GuildID == "" {
		return
	}

	actionType := 0
	if audit.ActionType != nil {
		actionType = int(*audit.ActionType)
	}

	auditCache.Store(audit.GuildID, actionType, audit.UserID, audit.TargetID)
	logging.Debug("[AUDIT] Action %d by user %s in guild %s", actionType, audit.UserID, audit.GuildID)
}

// resolveActor attributes an event to a user ID. It checks the gateway-fed
// cache first, then fetches the audit log. Bot actors resolve to "" so other
// moderation bots never trip the guards.
func (g *Guards) resolveActor(guildID string, action discordgo.AuditLogAction, targetID string) string {
	actionType := int(action)

	if actorID, found := auditCache.Get(guildID, actionType, targetID); found {
		if g.session.State.User != nil && actorID == g.session.State.User.ID {
			return ""
		}
		return actorID
	}

	// With a known target we scan a few entries so an unrelated action of the
	// same type cannot be misattributed; otherwise most-recent wins.
	limit := 1
	if targetID != "" {
		limit = 5
	}

	audit, err := g.session.GuildAuditLog(guildID, "", "", actionType, limit)
	if err != nil {
		logging.Warn("Failed to fetch audit log for guild %s action %d: %v", guildID, actionType, err)
		return ""
	}

	var entry *discordgo.AuditLogEntry
	for _, e := range audit.AuditLogEntries {
		if targetID == "" || e.TargetID == targetID {
			entry = e
			break
		}
	}
	if entry == nil {
		return ""
	}

	// Skip actions performed by bots entirely.
	for _, user := range audit.Users {
		if user.ID == entry.UserID && user.Bot {
			logging.Debug("[AUDIT] Skipping action %d by bot user %s", actionType, user.Username)
			return ""
		}
	}

	auditCache.Store(guildID, actionType, entry.UserID, targetID)
	return entry.UserID
}
