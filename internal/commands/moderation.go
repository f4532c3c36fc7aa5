package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/notifier"
	"go-guardian/internal/store"
	"go-guardian/pkg/util"
)

func (h *Handler) handleMute(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	var duration time.Duration
	if opt, ok := opts["duration"]; ok {
		var err error
		duration, err = util.ParseShortDuration(opt.StringValue())
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
	}

	reason := "No reason given"
	if opt, ok := opts["reason"]; ok && opt.StringValue() != "" {
		reason = opt.StringValue()
	}

	if err := h.mutes.Apply(i.GuildID, i.Member.User.ID, user.ID, duration, reason); err != nil {
		return err
	}

	if duration > 0 {
		return respond(s, i, "🔇 <@%s> muted for %s: %s", user.ID, util.FormatRemaining(duration), reason)
	}
	return respond(s, i, "🔇 <@%s> muted indefinitely: %s", user.ID, reason)
}

func (h *Handler) handleUnmute(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if !h.mutes.IsMuted(i.GuildID, user.ID) {
		return respond(s, i, "ℹ️ <@%s> is not muted.", user.ID)
	}
	if err := h.mutes.Remove(i.GuildID, i.Member.User.ID, user.ID, "Unmuted by moderator"); err != nil {
		return err
	}
	return respond(s, i, "🔊 <@%s> has been unmuted.", user.ID)
}

func (h *Handler) handleMuteList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	active := h.mutes.ActiveMutes(i.GuildID)
	if len(active) == 0 {
		return respond(s, i, "No active mutes.")
	}

	now := time.Now().UnixMilli()
	var sb strings.Builder
	for userID, rec := range active {
		remaining := "indefinite"
		if rec.EndTime != nil {
			remaining = util.FormatRemaining(time.Duration(*rec.EndTime-now) * time.Millisecond)
		}
		fmt.Fprintf(&sb, "<@%s> - %s (%s)\n", userID, rec.Reason, remaining)
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Active Mutes (%d)", len(active)),
		Color:       notifier.ColorBlue,
		Description: sb.String(),
	})
}

func (h *Handler) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !config.Get().Protection.WarningsEnabled {
		return fmt.Errorf("warnings are disabled")
	}

	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}
	reason := opts["reason"].StringValue()

	total := h.warnings.Add(i.GuildID, user.ID, store.Warning{
		Reason:      reason,
		ModeratorID: i.Member.User.ID,
		Time:        time.Now().UnixMilli(),
	})

	notifier.SendGuardEmbed("⚠️ Warning Issued", notifier.ColorOrange, "",
		notifier.UserField("User", user.ID, true),
		notifier.UserField("Moderator", i.Member.User.ID, true),
		notifier.Field("Reason", reason, false),
		notifier.Field("Total", fmt.Sprintf("%d", total), true),
	)
	return respond(s, i, "⚠️ <@%s> warned (%d total): %s", user.ID, total, reason)
}

func (h *Handler) handleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	warns := h.warnings.List(i.GuildID, user.ID)
	if len(warns) == 0 {
		return respond(s, i, "<@%s> has no warnings.", user.ID)
	}

	var sb strings.Builder
	for n, w := range warns {
		t := time.UnixMilli(w.Time).Format("2006-01-02 15:04")
		fmt.Fprintf(&sb, "%d. %s - by <@%s> at %s\n", n+1, w.Reason, w.ModeratorID, t)
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Warnings for %s (%d)", user.Username, len(warns)),
		Color:       notifier.ColorOrange,
		Description: sb.String(),
	})
}

func (h *Handler) handleRemoveWarn(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}
	index := int(opts["index"].IntValue())

	removed, err := h.warnings.RemoveAt(i.GuildID, user.ID, index)
	if err != nil {
		return err
	}
	return respond(s, i, "✅ Removed warning %d from <@%s>: %s", index, user.ID, removed.Reason)
}
