// Package guards wires Discord gateway events to the protection rules:
// structure-deletion counters, forbidden-permission reverts, the ban ladder,
// bot-add control, vanity and webhook protection, and message filtering.
package guards

import (
	"sync"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/dispatcher"
	"go-guardian/internal/logging"
	"go-guardian/internal/mute"
	"go-guardian/internal/state"
	"go-guardian/internal/store"
)

// Guards holds every dependency the event handlers share.
type Guards struct {
	session    *discordgo.Session
	whitelist  *store.Whitelist
	banCounts  *store.BanCounts
	vanity     *store.Vanity
	violations *state.ViolationCounters
	spam       *state.SpamTracker
	mutes      *mute.Manager
	jobs       *dispatcher.JobQueue

	// rolePerms snapshots role permission bitsets per guild so role updates
	// can be diffed against the pre-update value. The gateway state cache is
	// useless for this: discordgo applies the update before user handlers run.
	rolePermsMu sync.Mutex
	rolePerms   map[string]map[string]int64
}

func New(session *discordgo.Session, whitelist *store.Whitelist, banCounts *store.BanCounts,
	vanity *store.Vanity, violations *state.ViolationCounters, spam *state.SpamTracker,
	mutes *mute.Manager, jobs *dispatcher.JobQueue) *Guards {
	return &Guards{
		session:    session,
		whitelist:  whitelist,
		banCounts:  banCounts,
		vanity:     vanity,
		violations: violations,
		spam:       spam,
		mutes:      mutes,
		jobs:       jobs,
		rolePerms:  make(map[string]map[string]int64),
	}
}

// Register attaches all gateway handlers.
func (g *Guards) Register() {
	logging.Info("Registering guard event handlers...")

	g.session.AddHandler(g.onGuildCreate)
	g.session.AddHandler(g.onAuditLogEntry)
	g.session.AddHandler(g.onChannelCreate)
	g.session.AddHandler(g.onChannelDelete)
	g.session.AddHandler(g.onRoleCreate)
	g.session.AddHandler(g.onRoleUpdate)
	g.session.AddHandler(g.onRoleDelete)
	g.session.AddHandler(g.onBanAdd)
	g.session.AddHandler(g.onBanRemove)
	g.session.AddHandler(g.onMemberAdd)
	g.session.AddHandler(g.onGuildUpdate)
	g.session.AddHandler(g.onWebhooksUpdate)
	g.session.AddHandler(g.onMessageCreate)

	logging.Info("Guard event handlers registered")
}

// isExempt reports whether the actor is outside guard enforcement: the bot
// itself, the guild owner, the configured operator, or a whitelisted user.
func (g *Guards) isExempt(guildID, userID string) bool {
	if userID == "" {
		return true
	}
	if g.session.State.User != nil && userID == g.session.State.User.ID {
		return true
	}
	if userID == config.Get().Bot.OwnerID {
		return true
	}
	if guild, err := g.session.State.Guild(guildID); err == nil && userID == guild.OwnerID {
		return true
	}
	return g.whitelist.Contains(guildID, userID)
}
