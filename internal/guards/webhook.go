package guards

import (
	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/database"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
	"go-guardian/internal/punish"
)

// onWebhooksUpdate deletes every webhook in the channel when a webhook was
// created by a non-exempt user, then sanctions the creator. Webhooks are a
// favorite raid vector: one token posts without any member in the guild.
func (g *Guards) onWebhooksUpdate(sess *discordgo.Session, w *discordgo.WebhooksUpdate) {
	if !config.Get().Protection.WebhookProtection {
		return
	}
	if w.GuildID == "" || w.ChannelID == "" {
		return
	}

	actorID := g.resolveActor(w.GuildID, discordgo.AuditLogActionWebhookCreate, "")
	if actorID == "" {
		return
	}
	if g.isExempt(w.GuildID, actorID) {
		return
	}

	webhooks, err := sess.ChannelWebhooks(w.ChannelID)
	if err != nil {
		logging.Error("Failed to list webhooks for channel %s: %v", w.ChannelID, err)
		return
	}
	if len(webhooks) == 0 {
		return
	}

	logging.Warn("[WEBHOOK] Unauthorized webhook activity in channel %s by %s, purging %d webhooks", w.ChannelID, actorID, len(webhooks))

	for _, hook := range webhooks {
		if err := sess.WebhookDelete(hook.ID); err != nil {
			logging.Error("Failed to delete webhook %s: %v", hook.ID, err)
		}
	}

	punish.Sanction(sess, w.GuildID, actorID, "Created an unauthorized webhook")

	if db := database.GetDB(); db != nil {
		db.RecordIncident(&database.Incident{
			GuildID:     w.GuildID,
			Guard:       "webhook",
			ActorID:     actorID,
			ActionTaken: "purge",
			Reason:      "Unauthorized webhook creation",
		})
	}

	notifier.SendGuardEmbed("🪝 Webhooks Purged", notifier.ColorRed, "",
		notifier.Field("Channel", "<#"+w.ChannelID+">", true),
		notifier.UserField("By", actorID, true),
	)
}
