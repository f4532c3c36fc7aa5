// Package notifier mirrors guard activity to the configured Discord log
// channel as embeds. Sends are fire-and-forget; a failed send is dropped.
package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
)

const (
	ColorRed    = 0xED4245
	ColorOrange = 0xFFAA00
	ColorGreen  = 0x77DD77
	ColorBlue   = 0x5555FF
	ColorTeal   = 0x55DDAA
)

var discordSession *discordgo.Session

// SetSession sets the Discord session used for log-channel sends.
func SetSession(session *discordgo.Session) {
	discordSession = session
}

// Field builds an embed field.
func Field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

// UserField builds an embed field rendering a user mention plus raw ID.
func UserField(name, userID string, inline bool) *discordgo.MessageEmbedField {
	return Field(name, fmt.Sprintf("<@%s> (`%s`)", userID, userID), inline)
}

// SendGuardEmbed posts a titled embed to the log channel.
func SendGuardEmbed(title string, color int, description string, fields ...*discordgo.MessageEmbedField) {
	cfg := config.Get()
	if discordSession == nil || cfg.Bot.LogChannelID == "" || !cfg.Protection.AutoLogging {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Color:       color,
		Description: description,
		Fields:      fields,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	go discordSession.ChannelMessageSendEmbed(cfg.Bot.LogChannelID, embed)
}

// SendText posts a plain message to the log channel, used for warning
// notices that mention the actor directly.
func SendText(format string, args ...interface{}) {
	cfg := config.Get()
	if discordSession == nil || cfg.Bot.LogChannelID == "" {
		return
	}

	go discordSession.ChannelMessageSend(cfg.Bot.LogChannelID, fmt.Sprintf(format, args...))
}

// SendChannelText posts a plain message to an arbitrary channel, used for
// in-channel notices (filter removals, spam mutes).
func SendChannelText(channelID, format string, args ...interface{}) {
	if discordSession == nil || channelID == "" {
		return
	}

	go discordSession.ChannelMessageSend(channelID, fmt.Sprintf(format, args...))
}
