package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/bot"
	"go-guardian/internal/config"
	"go-guardian/internal/dispatcher"
	"go-guardian/internal/logging"
	"go-guardian/internal/mute"
	"go-guardian/internal/store"
)

// Handler manages all command interactions
type Handler struct {
	session   *bot.Session
	whitelist *store.Whitelist
	warnings  *store.Warnings
	mutes     *mute.Manager
	jobs      *dispatcher.JobQueue
}

var globalHandler *Handler

// Initialize creates the command handler and registers the slash commands.
func Initialize(session *bot.Session, whitelist *store.Whitelist, warnings *store.Warnings, mutes *mute.Manager, jobs *dispatcher.JobQueue) error {
	globalHandler = &Handler{
		session:   session,
		whitelist: whitelist,
		warnings:  warnings,
		mutes:     mutes,
		jobs:      jobs,
	}

	session.AddHandler(globalHandler.handleInteraction)

	commands := GetAllCommands()
	if err := session.RegisterCommands(commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(commands))
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	h.handleCommand(s, i)
}

// handleCommand routes slash commands to their handlers
func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	// Everything except the read-only commands needs operator clearance.
	switch data.Name {
	case "ping", "stats", "status", "warnings", "mutes", "incidents", "userinfo", "avatar":
	default:
		if !h.isOperator(i) {
			respondError(s, i, "you are not allowed to use this command")
			return
		}
	}

	var err error
	switch data.Name {
	case "whitelist":
		if len(data.Options) > 0 {
			switch data.Options[0].Name {
			case "add":
				err = h.handleWhitelistAdd(s, i)
			case "remove":
				err = h.handleWhitelistRemove(s, i)
			case "view":
				err = h.handleWhitelistView(s, i)
			}
		}
	case "ban":
		err = h.handleBan(s, i)
	case "unban":
		err = h.handleUnban(s, i)
	case "kick":
		err = h.handleKick(s, i)
	case "purge":
		err = h.handlePurge(s, i)
	case "slowmode":
		err = h.handleSlowmode(s, i)
	case "lock":
		err = h.handleLock(s, i)
	case "unlock":
		err = h.handleUnlock(s, i)
	case "role":
		if len(data.Options) > 0 {
			switch data.Options[0].Name {
			case "create":
				err = h.handleRoleCreate(s, i)
			case "delete":
				err = h.handleRoleDelete(s, i)
			}
		}
	case "channel":
		if len(data.Options) > 0 {
			switch data.Options[0].Name {
			case "create":
				err = h.handleChannelCreate(s, i)
			case "delete":
				err = h.handleChannelDelete(s, i)
			}
		}
	case "giverole":
		err = h.handleGiveRole(s, i)
	case "takerole":
		err = h.handleTakeRole(s, i)
	case "mute":
		err = h.handleMute(s, i)
	case "unmute":
		err = h.handleUnmute(s, i)
	case "mutes":
		err = h.handleMuteList(s, i)
	case "warn":
		err = h.handleWarn(s, i)
	case "warnings":
		err = h.handleWarnings(s, i)
	case "removewarn":
		err = h.handleRemoveWarn(s, i)
	case "backup":
		if len(data.Options) > 0 {
			switch data.Options[0].Name {
			case "create":
				err = h.handleBackupCreate(s, i)
			case "restore":
				err = h.handleBackupRestore(s, i)
			}
		}
	case "incidents":
		err = h.handleIncidents(s, i)
	case "status":
		err = h.handleStatus(s, i)
	case "ping":
		err = h.handlePing(s, i)
	case "stats":
		err = h.handleStats(s, i)
	case "userinfo":
		err = h.handleUserInfo(s, i)
	case "avatar":
		err = h.handleAvatar(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondError(s, i, err.Error())
	}
}

// isOperator mirrors the guard exemption rules: guild owner, configured
// operator, or whitelisted user.
func (h *Handler) isOperator(i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.User == nil {
		return false
	}
	userID := i.Member.User.ID

	if userID == config.Get().Bot.OwnerID {
		return true
	}
	if guild, err := h.session.GetDiscord().State.Guild(i.GuildID); err == nil && userID == guild.OwnerID {
		return true
	}
	return h.whitelist.Contains(i.GuildID, userID)
}

// respondError sends an ephemeral error message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ Error: %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, format string, args ...interface{}) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf(format, args...),
		},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// optionsByName flattens an option list for lookup.
func optionsByName(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
