package guards

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
	"go-guardian/internal/punish"
	"go-guardian/internal/state"
)

// onChannelCreate extends active mutes to the fresh channel.
func (g *Guards) onChannelCreate(_ *discordgo.Session, c *discordgo.ChannelCreate) {
	if c.GuildID == "" {
		return
	}
	g.mutes.PropagateToChannel(c.Channel)
}

func (g *Guards) onChannelDelete(sess *discordgo.Session, c *discordgo.ChannelDelete) {
	if c.GuildID == "" {
		return
	}

	limit := config.Get().Limits.ChannelDeleteLimit
	if limit <= 0 {
		return
	}

	actorID := g.resolveActor(c.GuildID, discordgo.AuditLogActionChannelDelete, c.ID)
	if actorID == "" {
		logging.Warn("[EVENT] Channel delete but no actor: %s", c.ID)
		return
	}
	if g.isExempt(c.GuildID, actorID) {
		return
	}

	logging.Info("[EVENT] Channel delete: %s (#%s) by actor %s", c.ID, c.Name, actorID)

	if g.violations.Record(actorID, state.CategoryChannelDelete, limit) {
		punish.Sanction(sess, c.GuildID, actorID, "Deleted too many channels")
		return
	}

	notifier.SendGuardEmbed("🗑️ Channel Deleted", notifier.ColorOrange, "",
		notifier.Field("Channel", "#"+c.Name, true),
		notifier.UserField("By", actorID, true),
		notifier.Field("Strikes", fmt.Sprintf("%d/%d", g.violations.Count(actorID, state.CategoryChannelDelete), limit), true),
	)
}
