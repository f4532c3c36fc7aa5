package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/notifier"
)

func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	cfg := config.Get()
	p := cfg.Protection
	l := cfg.Limits

	onOff := func(b bool) string {
		if b {
			return "🟢 on"
		}
		return "🔴 off"
	}

	embed := &discordgo.MessageEmbed{
		Title: "Guardian Status",
		Color: notifier.ColorGreen,
		Fields: []*discordgo.MessageEmbedField{
			notifier.Field("Mutes", onOff(p.MuteEnabled), true),
			notifier.Field("Warnings", onOff(p.WarningsEnabled), true),
			notifier.Field("Booster shield", onOff(p.BoosterProtection), true),
			notifier.Field("Vanity", onOff(p.VanityProtection), true),
			notifier.Field("Webhooks", onOff(p.WebhookProtection), true),
			notifier.Field("Spam", onOff(p.SpamProtection), true),
			notifier.Field("Bot adds", onOff(p.BotAddProtection), true),
			notifier.Field("Role guard", onOff(p.DangerousRoleGuard), true),
			notifier.Field("Backups", onOff(p.BackupEnabled), true),
			notifier.Field("Channel deletes", fmt.Sprintf("%d", l.ChannelDeleteLimit), true),
			notifier.Field("Role deletes", fmt.Sprintf("%d", l.RoleDeleteLimit), true),
			notifier.Field("Ban limit", fmt.Sprintf("%d", l.NonWhitelistBanLimit), true),
			notifier.Field("Spam window", fmt.Sprintf("%d msgs / %d ms", l.SpamLimit, l.SpamIntervalMS), true),
			notifier.Field("Whitelisted here", fmt.Sprintf("%d", len(h.whitelist.List(i.GuildID))), true),
			notifier.Field("Guilds", fmt.Sprintf("%d", len(s.State.Guilds)), true),
		},
	}

	return respondEmbed(s, i, embed)
}
