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

// onMemberAdd handles two cases: an unauthorized bot invitation, and a human
// rejoining after punishment (who gets a fresh start).
func (g *Guards) onMemberAdd(sess *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.GuildID == "" {
		return
	}

	if m.User.Bot {
		g.handleBotAdd(sess, m)
		return
	}

	// Returning humans start clean: stale counters from a previous stay must
	// not feed into new escalation decisions.
	g.violations.Clear(m.User.ID)
	if db := database.GetDB(); db != nil {
		if db.IsPunishedUser(m.GuildID, m.User.ID) {
			logging.Info("[REJOIN] Previously punished user %s rejoined guild %s, granting fresh start", m.User.ID, m.GuildID)
			if err := db.RemovePunishedUser(m.GuildID, m.User.ID); err != nil {
				logging.Warn("Failed to clear punished record for %s: %v", m.User.ID, err)
			}
		}
	}
}

func (g *Guards) handleBotAdd(sess *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if !config.Get().Protection.BotAddProtection {
		return
	}

	adderID := g.resolveActor(m.GuildID, discordgo.AuditLogActionBotAdd, m.User.ID)
	if adderID != "" && g.isExempt(m.GuildID, adderID) {
		logging.Info("[BOT ADD] Bot %s added by exempt user %s in guild %s, allowed", m.User.ID, adderID, m.GuildID)
		return
	}

	logging.Warn("[BOT ADD] Unauthorized bot %s added to guild %s by %s", m.User.ID, m.GuildID, adderID)

	if !g.jobs.Enqueue(dispatcher.Job{
		Type:     dispatcher.JobTypeKick,
		GuildID:  m.GuildID,
		TargetID: m.User.ID,
		Reason:   "Unauthorized bot invitation",
	}) {
		logging.Error("Job queue full, dropping kick for bot %s", m.User.ID)
	}

	if adderID != "" {
		punish.Sanction(sess, m.GuildID, adderID, "Added an unauthorized bot")
	}

	if db := database.GetDB(); db != nil {
		db.RecordIncident(&database.Incident{
			GuildID:     m.GuildID,
			Guard:       "bot-add",
			ActorID:     adderID,
			TargetID:    m.User.ID,
			ActionTaken: "kick",
			Reason:      "Unauthorized bot invitation",
		})
	}

	addedBy := notifier.Field("Added by", "unknown", true)
	if adderID != "" {
		addedBy = notifier.UserField("Added by", adderID, true)
	}
	notifier.SendGuardEmbed("🤖 Unauthorized Bot Removed", notifier.ColorRed, "",
		notifier.UserField("Bot", m.User.ID, true),
		addedBy,
	)
}
