package commands

import "github.com/bwmarrin/discordgo"

// GetAllCommands returns all application commands
func GetAllCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "whitelist",
			Description: "Manage guard exemptions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "add",
					Description: "Exempt a user from the guards",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "user",
							Description: "User to whitelist",
							Type:        discordgo.ApplicationCommandOptionUser,
							Required:    true,
						},
					},
				},
				{
					Name:        "remove",
					Description: "Remove a user's exemption",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "user",
							Description: "User to remove",
							Type:        discordgo.ApplicationCommandOptionUser,
							Required:    true,
						},
					},
				},
				{
					Name:        "view",
					Description: "List whitelisted users",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
		{
			Name:        "ban",
			Description: "Ban a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to ban",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "Why the member is banned",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "unban",
			Description: "Unban a user by ID",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user_id",
					Description: "User ID to unban",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "kick",
			Description: "Kick a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to kick",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "Why the member is kicked",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "purge",
			Description: "Bulk delete recent messages in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "count",
					Description: "How many messages to delete (1-100)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "slowmode",
			Description: "Set this channel's slowmode",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "seconds",
					Description: "Delay between messages (0 disables)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "lock",
			Description: "Stop everyone from posting in this channel",
		},
		{
			Name:        "unlock",
			Description: "Let everyone post in this channel again",
		},
		{
			Name:        "role",
			Description: "Create or delete roles",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create",
					Description: "Create a role",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "name",
							Description: "Name for the new role",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
					},
				},
				{
					Name:        "delete",
					Description: "Delete a role",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "role",
							Description: "Role to delete",
							Type:        discordgo.ApplicationCommandOptionRole,
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "channel",
			Description: "Create or delete channels",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create",
					Description: "Create a text channel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "name",
							Description: "Name for the new channel",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
					},
				},
				{
					Name:        "delete",
					Description: "Delete a channel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "target",
							Description: "Channel to delete",
							Type:        discordgo.ApplicationCommandOptionChannel,
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "giverole",
			Description: "Give a role to a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to edit",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "role",
					Description: "Role to give",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
			},
		},
		{
			Name:        "takerole",
			Description: "Take a role from a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to edit",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "role",
					Description: "Role to take",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
			},
		},
		{
			Name:        "mute",
			Description: "Mute a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to mute",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "duration",
					Description: "Duration like 30s, 10m, 2h or 7d (omit for indefinite)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
				{
					Name:        "reason",
					Description: "Why the member is muted",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "unmute",
			Description: "Unmute a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to unmute",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "mutes",
			Description: "List active mutes",
		},
		{
			Name:        "warn",
			Description: "Warn a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to warn",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "Why the member is warned",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "warnings",
			Description: "List a member's warnings",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to inspect",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "removewarn",
			Description: "Remove one warning by its position",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to edit",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "index",
					Description: "Warning number as shown by /warnings",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "backup",
			Description: "Guild structure backups",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create",
					Description: "Snapshot roles and channels",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "restore",
					Description: "Recreate roles and channels missing since the last snapshot",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
		{
			Name:        "incidents",
			Description: "Show recent guard incidents",
		},
		{
			Name:        "status",
			Description: "Show protection status",
		},
		{
			Name:        "ping",
			Description: "Check Discord API latency",
		},
		{
			Name:        "stats",
			Description: "Show host and runtime statistics",
		},
		{
			Name:        "userinfo",
			Description: "Show information about a member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member to inspect",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "avatar",
			Description: "Show a member's avatar",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Member whose avatar to show",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
	}
}
