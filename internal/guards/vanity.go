package guards

import (
	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/dispatcher"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
)

// onGuildUpdate watches the vanity URL code. A change by an exempt user
// updates the snapshot; anyone else gets banned and the old code queued for
// restoration.
func (g *Guards) onGuildUpdate(_ *discordgo.Session, gu *discordgo.GuildUpdate) {
	if !config.Get().Protection.VanityProtection {
		return
	}

	saved, ok := g.vanity.Get(gu.ID)
	if !ok {
		if gu.VanityURLCode != "" {
			g.vanity.Set(gu.ID, gu.VanityURLCode)
		}
		return
	}
	if gu.VanityURLCode == saved {
		return
	}

	actorID := g.resolveActor(gu.ID, discordgo.AuditLogActionGuildUpdate, "")
	if actorID != "" && g.isExempt(gu.ID, actorID) {
		logging.Info("[VANITY] Code for guild %s changed to %q by exempt user %s", gu.ID, gu.VanityURLCode, actorID)
		g.vanity.Set(gu.ID, gu.VanityURLCode)
		return
	}

	logging.Warn("[VANITY] Unauthorized vanity change in guild %s: %q -> %q by %s", gu.ID, saved, gu.VanityURLCode, actorID)

	if !g.jobs.Enqueue(dispatcher.Job{
		Type:    dispatcher.JobTypeVanityRestore,
		GuildID: gu.ID,
		Code:    saved,
		Reason:  "Restoring vanity URL after unauthorized change",
	}) {
		logging.Error("Job queue full, dropping vanity restore for guild %s", gu.ID)
	}

	if actorID != "" {
		if !g.jobs.Enqueue(dispatcher.Job{
			Type:     dispatcher.JobTypeBan,
			GuildID:  gu.ID,
			TargetID: actorID,
			Reason:   "Changed the vanity URL without authorization",
		}) {
			logging.Error("Job queue full, dropping ban for %s", actorID)
		}
	}

	notifier.SendGuardEmbed("🔗 Vanity URL Protected", notifier.ColorRed, "",
		notifier.Field("Restored code", saved, true),
		notifier.Field("Attempted code", gu.VanityURLCode, true),
		notifier.UserField("By", actorID, true),
	)
}
