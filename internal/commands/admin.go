package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/backup"
	"go-guardian/internal/config"
	"go-guardian/internal/database"
	"go-guardian/internal/notifier"
)

func (h *Handler) handleBackupCreate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !config.Get().Protection.BackupEnabled {
		return fmt.Errorf("backups are disabled")
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	path, err := backup.Create(s, i.GuildID)
	if err != nil {
		return editResponse(s, i, "❌ Backup failed: %v", err)
	}
	return editResponse(s, i, "✅ Backup created: `%s`", path)
}

func (h *Handler) handleBackupRestore(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !config.Get().Protection.BackupEnabled {
		return fmt.Errorf("backups are disabled")
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	roles, channels, err := backup.Restore(s, i.GuildID)
	if err != nil {
		return editResponse(s, i, "❌ Restore failed: %v", err)
	}
	return editResponse(s, i, "✅ Restored %d roles and %d channels from the latest backup.", roles, channels)
}

func (h *Handler) handleIncidents(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("incident log unavailable")
	}

	incidents, err := db.RecentIncidents(i.GuildID, 10)
	if err != nil {
		return err
	}
	if len(incidents) == 0 {
		return respond(s, i, "No incidents recorded.")
	}

	var sb strings.Builder
	for _, inc := range incidents {
		t := time.Unix(inc.Timestamp, 0).Format("01-02 15:04")
		fmt.Fprintf(&sb, "`%s` **%s** <@%s> → %s (%s)\n", t, inc.Guard, inc.ActorID, inc.ActionTaken, inc.Reason)
	}

	return respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "Recent Incidents",
		Color:       notifier.ColorRed,
		Description: sb.String(),
	})
}

func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, format string, args ...interface{}) error {
	content := fmt.Sprintf(format, args...)
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}
