package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/notifier"
)

func (h *Handler) handleUserInfo(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	embed := &discordgo.MessageEmbed{
		Title: user.Username,
		Color: notifier.ColorBlue,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: user.AvatarURL("256"),
		},
		Fields: []*discordgo.MessageEmbedField{
			notifier.Field("ID", fmt.Sprintf("`%s`", user.ID), true),
			notifier.Field("Bot", fmt.Sprintf("%v", user.Bot), true),
		},
	}

	if member, err := s.GuildMember(i.GuildID, user.ID); err == nil {
		if !member.JoinedAt.IsZero() {
			embed.Fields = append(embed.Fields,
				notifier.Field("Joined", member.JoinedAt.Format("2006-01-02 15:04"), true))
		}
		if member.PremiumSince != nil {
			embed.Fields = append(embed.Fields,
				notifier.Field("Boosting since", member.PremiumSince.Format("2006-01-02"), true))
		}
		embed.Fields = append(embed.Fields,
			notifier.Field("Roles", fmt.Sprintf("%d", len(member.Roles)), true))

		if h.mutes.IsMuted(i.GuildID, user.ID) {
			embed.Fields = append(embed.Fields, notifier.Field("Muted", "yes", true))
		}
		if warns := h.warnings.List(i.GuildID, user.ID); len(warns) > 0 {
			embed.Fields = append(embed.Fields,
				notifier.Field("Warnings", fmt.Sprintf("%d", len(warns)), true))
		}
		if h.whitelist.Contains(i.GuildID, user.ID) {
			embed.Fields = append(embed.Fields, notifier.Field("Whitelisted", "yes", true))
		}
	}

	return respondEmbed(s, i, embed)
}

func (h *Handler) handleAvatar(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's avatar", user.Username),
		Color: notifier.ColorBlue,
		Image: &discordgo.MessageEmbedImage{
			URL: user.AvatarURL("1024"),
		},
	})
}
