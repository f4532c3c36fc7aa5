package guards

import (
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
)

var invitePattern = regexp.MustCompile(`(?i)(discord\.gg/|discord(?:app)?\.com/invite/)\S+`)

// onMessageCreate runs the content filters and the spam detector. Exempt
// users skip both.
func (g *Guards) onMessageCreate(sess *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID == "" || m.Author == nil || m.Author.Bot {
		return
	}
	if g.isExempt(m.GuildID, m.Author.ID) {
		return
	}

	cfg := config.Get()

	if cfg.Protection.InviteBlock && invitePattern.MatchString(m.Content) {
		g.deleteFiltered(sess, m, "invite links are not allowed here")
		return
	}

	if cfg.Protection.LinkBlock && containsLink(m.Content) {
		g.deleteFiltered(sess, m, "links are not allowed here")
		return
	}

	if cfg.Protection.ProfanityFilter && containsProfanity(m.Content, cfg.Protection.Profanities) {
		g.deleteFiltered(sess, m, "watch your language")
		return
	}

	if cfg.Protection.SpamProtection && g.spam.Observe(m.GuildID, m.Author.ID, time.Now()) {
		g.punishSpam(sess, m)
	}
}

func (g *Guards) deleteFiltered(sess *discordgo.Session, m *discordgo.MessageCreate, notice string) {
	if err := sess.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		logging.Warn("Failed to delete filtered message %s: %v", m.ID, err)
	}
	notifier.SendChannelText(m.ChannelID, "<@%s>, %s.", m.Author.ID, notice)
	logging.Info("[FILTER] Deleted message from %s in channel %s: %s", m.Author.ID, m.ChannelID, notice)
}

// punishSpam clears the actor's recent messages from the channel and mutes
// them for a few minutes.
func (g *Guards) punishSpam(sess *discordgo.Session, m *discordgo.MessageCreate) {
	cfg := config.Get()

	logging.Warn("[SPAM] %s tripped the spam window in channel %s", m.Author.ID, m.ChannelID)

	recent, err := sess.ChannelMessages(m.ChannelID, cfg.Limits.SpamLookback, "", "", "")
	if err != nil {
		logging.Warn("Failed to fetch recent messages in channel %s: %v", m.ChannelID, err)
	} else {
		var ids []string
		for _, msg := range recent {
			if msg.Author != nil && msg.Author.ID == m.Author.ID {
				ids = append(ids, msg.ID)
			}
		}
		if len(ids) > 0 {
			if err := sess.ChannelMessagesBulkDelete(m.ChannelID, ids); err != nil {
				logging.Warn("Failed to bulk delete spam from %s: %v", m.Author.ID, err)
			}
		}
	}

	duration := time.Duration(cfg.Limits.SpamMuteMinutes) * time.Minute
	if err := g.mutes.Apply(m.GuildID, "", m.Author.ID, duration, "Spamming"); err != nil {
		logging.Error("Failed to mute spammer %s: %v", m.Author.ID, err)
		return
	}

	notifier.SendChannelText(m.ChannelID, "<@%s> has been muted for %d minutes for spamming.", m.Author.ID, cfg.Limits.SpamMuteMinutes)
}

func containsLink(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "http://") || strings.Contains(lower, "https://")
}

func containsProfanity(content string, words []string) bool {
	lower := strings.ToLower(content)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
