package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
)

func (h *Handler) handleWhitelistAdd(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options[0].Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if !h.whitelist.Add(i.GuildID, user.ID) {
		return respond(s, i, "ℹ️ <@%s> is already whitelisted.", user.ID)
	}

	logging.Info("[WHITELIST] %s added to guild %s by %s", user.ID, i.GuildID, i.Member.User.ID)
	notifier.SendGuardEmbed("✅ Whitelist Updated", notifier.ColorGreen, "",
		notifier.UserField("Added", user.ID, true),
		notifier.UserField("By", i.Member.User.ID, true),
	)
	return respond(s, i, "✅ <@%s> is now exempt from the guards.", user.ID)
}

func (h *Handler) handleWhitelistRemove(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options[0].Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if !h.whitelist.Remove(i.GuildID, user.ID) {
		return respond(s, i, "ℹ️ <@%s> was not whitelisted.", user.ID)
	}

	logging.Info("[WHITELIST] %s removed from guild %s by %s", user.ID, i.GuildID, i.Member.User.ID)
	notifier.SendGuardEmbed("✅ Whitelist Updated", notifier.ColorGreen, "",
		notifier.UserField("Removed", user.ID, true),
		notifier.UserField("By", i.Member.User.ID, true),
	)
	return respond(s, i, "✅ <@%s> is no longer exempt.", user.ID)
}

func (h *Handler) handleWhitelistView(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	users := h.whitelist.List(i.GuildID)
	if len(users) == 0 {
		return respond(s, i, "The whitelist is empty.")
	}

	var sb strings.Builder
	for n, id := range users {
		fmt.Fprintf(&sb, "%d. <@%s> (`%s`)\n", n+1, id, id)
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Whitelisted Users (%d)", len(users)),
		Color:       notifier.ColorGreen,
		Description: sb.String(),
	})
}
