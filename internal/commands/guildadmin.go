package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/dispatcher"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
)

func (h *Handler) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	reason := "No reason given"
	if opt, ok := opts["reason"]; ok && opt.StringValue() != "" {
		reason = opt.StringValue()
	}

	if !h.jobs.Enqueue(dispatcher.Job{
		Type:     dispatcher.JobTypeBan,
		GuildID:  i.GuildID,
		TargetID: user.ID,
		Reason:   reason,
	}) {
		return fmt.Errorf("queue full, try again")
	}

	logging.Info("[COMMAND] %s queued ban of %s in guild %s: %s", i.Member.User.ID, user.ID, i.GuildID, reason)
	notifier.SendGuardEmbed("🔨 Ban Issued", notifier.ColorRed, "",
		notifier.UserField("User", user.ID, true),
		notifier.UserField("Moderator", i.Member.User.ID, true),
		notifier.Field("Reason", reason, false),
	)
	return respond(s, i, "🔨 <@%s> will be banned: %s", user.ID, reason)
}

func (h *Handler) handleUnban(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	userID := opts["user_id"].StringValue()

	if !h.jobs.Enqueue(dispatcher.Job{
		Type:     dispatcher.JobTypeUnban,
		GuildID:  i.GuildID,
		TargetID: userID,
		Reason:   "Unbanned by moderator",
	}) {
		return fmt.Errorf("queue full, try again")
	}

	logging.Info("[COMMAND] %s queued unban of %s in guild %s", i.Member.User.ID, userID, i.GuildID)
	return respond(s, i, "✅ <@%s> will be unbanned.", userID)
}

func (h *Handler) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	if user == nil {
		return fmt.Errorf("user not found")
	}

	reason := "No reason given"
	if opt, ok := opts["reason"]; ok && opt.StringValue() != "" {
		reason = opt.StringValue()
	}

	if !h.jobs.Enqueue(dispatcher.Job{
		Type:     dispatcher.JobTypeKick,
		GuildID:  i.GuildID,
		TargetID: user.ID,
		Reason:   reason,
	}) {
		return fmt.Errorf("queue full, try again")
	}

	logging.Info("[COMMAND] %s queued kick of %s in guild %s: %s", i.Member.User.ID, user.ID, i.GuildID, reason)
	return respond(s, i, "👢 <@%s> will be kicked: %s", user.ID, reason)
}

func (h *Handler) handlePurge(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	count := int(opts["count"].IntValue())
	if count < 1 || count > 100 {
		return fmt.Errorf("count must be between 1 and 100")
	}

	messages, err := s.ChannelMessages(i.ChannelID, count, "", "", "")
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}
	if len(ids) > 0 {
		if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
	}

	logging.Info("[COMMAND] %s purged %d messages in channel %s", i.Member.User.ID, len(ids), i.ChannelID)
	return respond(s, i, "🧹 Deleted %d messages.", len(ids))
}

func (h *Handler) handleSlowmode(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	seconds := int(opts["seconds"].IntValue())
	if seconds < 0 || seconds > 21600 {
		return fmt.Errorf("seconds must be between 0 and 21600")
	}

	if _, err := s.ChannelEdit(i.ChannelID, &discordgo.ChannelEdit{
		RateLimitPerUser: &seconds,
	}); err != nil {
		return fmt.Errorf("failed to set slowmode: %w", err)
	}

	if seconds == 0 {
		return respond(s, i, "🐇 Slowmode disabled.")
	}
	return respond(s, i, "🐢 Slowmode set to %d seconds.", seconds)
}

func (h *Handler) handleLock(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	// The @everyone role shares its ID with the guild.
	if err := s.ChannelPermissionSet(i.ChannelID, i.GuildID, discordgo.PermissionOverwriteTypeRole,
		0, discordgo.PermissionSendMessages); err != nil {
		return fmt.Errorf("failed to lock channel: %w", err)
	}

	logging.Info("[COMMAND] %s locked channel %s", i.Member.User.ID, i.ChannelID)
	return respond(s, i, "🔒 Channel locked.")
}

func (h *Handler) handleUnlock(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := s.ChannelPermissionSet(i.ChannelID, i.GuildID, discordgo.PermissionOverwriteTypeRole,
		discordgo.PermissionSendMessages, 0); err != nil {
		return fmt.Errorf("failed to unlock channel: %w", err)
	}

	logging.Info("[COMMAND] %s unlocked channel %s", i.Member.User.ID, i.ChannelID)
	return respond(s, i, "🔓 Channel unlocked.")
}

func (h *Handler) handleRoleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options[0].Options)
	name := opts["name"].StringValue()

	role, err := s.GuildRoleCreate(i.GuildID, &discordgo.RoleParams{Name: name})
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	logging.Info("[COMMAND] %s created role %s (%s) in guild %s", i.Member.User.ID, name, role.ID, i.GuildID)
	return respond(s, i, "✅ Created role %s.", name)
}

func (h *Handler) handleRoleDelete(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options[0].Options)
	role := opts["role"].RoleValue(s, i.GuildID)
	if role == nil {
		return fmt.Errorf("role not found")
	}
	if role.Managed || role.ID == i.GuildID {
		return fmt.Errorf("that role cannot be deleted")
	}

	if err := s.GuildRoleDelete(i.GuildID, role.ID); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	logging.Info("[COMMAND] %s deleted role %s (%s) in guild %s", i.Member.User.ID, role.Name, role.ID, i.GuildID)
	return respond(s, i, "🗑️ Deleted role %s.", role.Name)
}

func (h *Handler) handleChannelCreate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options[0].Options)
	name := opts["name"].StringValue()

	ch, err := s.GuildChannelCreate(i.GuildID, name, discordgo.ChannelTypeGuildText)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	logging.Info("[COMMAND] %s created channel %s (%s) in guild %s", i.Member.User.ID, name, ch.ID, i.GuildID)
	return respond(s, i, "✅ Created <#%s>.", ch.ID)
}

func (h *Handler) handleChannelDelete(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options[0].Options)
	ch := opts["target"].ChannelValue(s)
	if ch == nil {
		return fmt.Errorf("channel not found")
	}

	if _, err := s.ChannelDelete(ch.ID); err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	logging.Info("[COMMAND] %s deleted channel %s (%s) in guild %s", i.Member.User.ID, ch.Name, ch.ID, i.GuildID)
	return respond(s, i, "🗑️ Deleted channel %s.", ch.Name)
}

func (h *Handler) handleGiveRole(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	role := opts["role"].RoleValue(s, i.GuildID)
	if user == nil || role == nil {
		return fmt.Errorf("user or role not found")
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, user.ID, role.ID); err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}
	return respond(s, i, "✅ Gave %s to <@%s>.", role.Name, user.ID)
}

func (h *Handler) handleTakeRole(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionsByName(i.ApplicationCommandData().Options)
	user := opts["user"].UserValue(s)
	role := opts["role"].RoleValue(s, i.GuildID)
	if user == nil || role == nil {
		return fmt.Errorf("user or role not found")
	}

	if err := s.GuildMemberRoleRemove(i.GuildID, user.ID, role.ID); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}
	return respond(s, i, "✅ Took %s from <@%s>.", role.Name, user.ID)
}
