package guards

import (
	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/database"
	"go-guardian/internal/dispatcher"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
	"go-guardian/internal/punish"
)

// onBanAdd enforces the ban ladder for non-whitelisted moderators and the
// booster shield. Bans by exempt users pass untouched but are still logged.
func (g *Guards) onBanAdd(sess *discordgo.Session, b *discordgo.GuildBanAdd) {
	if b.GuildID == "" {
		return
	}

	actorID := g.resolveActor(b.GuildID, discordgo.AuditLogActionMemberBanAdd, b.User.ID)
	if actorID == "" {
		return
	}
	if g.isExempt(b.GuildID, actorID) {
		logging.Info("[BAN] %s banned %s in guild %s (exempt moderator)", actorID, b.User.ID, b.GuildID)
		notifier.SendGuardEmbed("🔨 Member Banned", notifier.ColorOrange, "",
			notifier.UserField("User", b.User.ID, true),
			notifier.UserField("By", actorID, true),
		)
		return
	}

	cfg := config.Get()

	// The state cache may still hold the member at this point; if it does and
	// they were boosting, undo the ban before it reaches the ladder. The ban
	// never counts against the actor, they only get warned.
	if cfg.Protection.BoosterProtection && g.wasBooster(b.GuildID, b.User.ID) {
		logging.Warn("[BAN] Booster %s banned by %s in guild %s, reverting", b.User.ID, actorID, b.GuildID)

		if !g.jobs.Enqueue(dispatcher.Job{
			Type:     dispatcher.JobTypeUnban,
			GuildID:  b.GuildID,
			TargetID: b.User.ID,
			Reason:   "Server booster auto-unban",
		}) {
			logging.Error("Job queue full, dropping unban for %s", b.User.ID)
		}

		notifier.SendText("💎 <@%s>, server boosters cannot be banned. The ban on <@%s> has been reverted.", actorID, b.User.ID)
		notifier.SendGuardEmbed("💎 Booster Ban Reverted", notifier.ColorRed, "",
			notifier.UserField("Booster", b.User.ID, true),
			notifier.UserField("Banned by", actorID, true),
		)
		return
	}

	limit := cfg.Limits.NonWhitelistBanLimit
	if limit <= 0 {
		return
	}

	count := g.banCounts.Increment(b.GuildID, actorID)
	logging.Info("[BAN] %s banned %s in guild %s (count=%d/%d)", actorID, b.User.ID, b.GuildID, count, limit)

	switch ladderFor(count, limit) {
	case ladderSanction:
		punish.Sanction(sess, b.GuildID, actorID, "Exceeded the ban limit")
		g.banCounts.Reset(b.GuildID, actorID)
	case ladderWarn:
		notifier.SendText("⚠️ <@%s>, you are banning members without whitelist clearance. Further bans will cost you your roles.", actorID)
	}
}

type ladderStep int

const (
	ladderNone ladderStep = iota
	ladderWarn
	ladderSanction
)

// ladderFor maps a moderator's running ban count to the escalation step: a
// warning on the first ban, a sanction at the limit, nothing in between.
func ladderFor(count, limit int) ladderStep {
	switch {
	case limit <= 0:
		return ladderNone
	case count >= limit:
		return ladderSanction
	case count == 1:
		return ladderWarn
	}
	return ladderNone
}

// onBanRemove gives the unbanned user a clean slate.
func (g *Guards) onBanRemove(_ *discordgo.Session, b *discordgo.GuildBanRemove) {
	if b.GuildID == "" {
		return
	}

	g.violations.Clear(b.User.ID)
	g.banCounts.Reset(b.GuildID, b.User.ID)
	if db := database.GetDB(); db != nil {
		if err := db.RemovePunishedUser(b.GuildID, b.User.ID); err != nil {
			logging.Warn("Failed to clear punished record for %s: %v", b.User.ID, err)
		}
	}
	logging.Info("[STATE] Cleared state for unbanned user %s in guild %s", b.User.ID, b.GuildID)
}

// wasBooster checks the state cache for a premium subscription. The cache
// can already have evicted the member by the time the ban event arrives, in
// which case the shield does not fire.
func (g *Guards) wasBooster(guildID, userID string) bool {
	member, err := g.session.State.Member(guildID, userID)
	if err != nil || member == nil {
		return false
	}
	return member.PremiumSince != nil
}
