package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type Config struct {
	Bot        BotConfig        `json:"bot"`
	Protection ProtectionConfig `json:"protection"`
	Limits     LimitsConfig     `json:"limits"`
	Network    NetworkConfig    `json:"network"`
	Runtime    RuntimeConfig    `json:"runtime"`
}

type BotConfig struct {
	Token           string   `json:"token"`
	OwnerID         string   `json:"owner_id"`
	LogChannelID    string   `json:"log_channel_id"`
	DataDir         string   `json:"data_dir"`
	BackupDir       string   `json:"backup_dir"`
	DatabasePath    string   `json:"database_path"`
	LogPath         string   `json:"log_path"`
	AllowedGuildIDs []string `json:"allowed_guild_ids"`
}

type ProtectionConfig struct {
	MuteEnabled        bool   `json:"mute_enabled"`
	WarningsEnabled    bool   `json:"warnings_enabled"`
	BoosterProtection  bool   `json:"booster_protection"`
	VanityProtection   bool   `json:"vanity_protection"`
	WebhookProtection  bool   `json:"webhook_protection"`
	SpamProtection     bool   `json:"spam_protection"`
	BotAddProtection   bool   `json:"bot_add_protection"`
	DangerousRoleGuard bool   `json:"dangerous_role_guard"`
	InviteBlock        bool   `json:"invite_block"`
	LinkBlock          bool   `json:"link_block"`
	ProfanityFilter    bool   `json:"profanity_filter"`
	BackupEnabled      bool   `json:"backup_enabled"`
	AutoLogging        bool   `json:"auto_logging"`
	MuteRoleName       string `json:"mute_role_name"`
	// Bitmask of role permissions that trigger the forbidden-permission guard.
	ForbiddenPermissions int64    `json:"forbidden_permissions"`
	Profanities          []string `json:"profanities"`
}

type LimitsConfig struct {
	ChannelDeleteLimit       int `json:"channel_delete_limit"`
	RoleDeleteLimit          int `json:"role_delete_limit"`
	ForbiddenPermissionLimit int `json:"forbidden_permission_limit"`
	NonWhitelistBanLimit     int `json:"non_whitelist_ban_limit"`
	SpamLimit                int `json:"spam_limit"`
	SpamIntervalMS           int `json:"spam_interval_ms"`
	SpamMuteMinutes          int `json:"spam_mute_minutes"`
	SpamLookback             int `json:"spam_lookback"`
	MuteSweepSeconds         int `json:"mute_sweep_seconds"`
}

type NetworkConfig struct {
	HTTPPoolSize int    `json:"http_pool_size"`
	WorkerCount  int    `json:"worker_count"`
	APIBaseURL   string `json:"api_base_url"`
}

type RuntimeConfig struct {
	CPUIsolation  bool `json:"cpu_isolation"`
	DispatcherCPU int  `json:"dispatcher_cpu"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	GlobalConfig = cfg
	return cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnvOverrides(cfg)
		GlobalConfig = cfg
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if owner := os.Getenv("OWNER_ID"); owner != "" {
		cfg.Bot.OwnerID = owner
	}
	if allowed := os.Getenv("ALLOWED_GUILD_IDS"); allowed != "" {
		var ids []string
		for _, id := range strings.Split(allowed, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		cfg.Bot.AllowedGuildIDs = ids
	}
}

// DefaultForbiddenPermissions covers every permission that lets an actor
// escalate past the guards: administrative control, member removal and the
// manage-* family.
const DefaultForbiddenPermissions = discordgo.PermissionAdministrator |
	discordgo.PermissionBanMembers |
	discordgo.PermissionKickMembers |
	discordgo.PermissionManageServer |
	discordgo.PermissionManageChannels |
	discordgo.PermissionManageRoles |
	discordgo.PermissionModerateMembers |
	discordgo.PermissionManageWebhooks |
	discordgo.PermissionMentionEveryone

func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{
			DataDir:      "data",
			BackupDir:    "backups",
			DatabasePath: "guardian.db",
			LogPath:      "guardian.log",
		},
		Protection: ProtectionConfig{
			MuteEnabled:          true,
			WarningsEnabled:      true,
			BoosterProtection:    true,
			VanityProtection:     true,
			WebhookProtection:    true,
			SpamProtection:       true,
			BotAddProtection:     true,
			DangerousRoleGuard:   true,
			InviteBlock:          true,
			LinkBlock:            true,
			ProfanityFilter:      false,
			BackupEnabled:        true,
			AutoLogging:          true,
			MuteRoleName:         "Muted",
			ForbiddenPermissions: DefaultForbiddenPermissions,
		},
		Limits: LimitsConfig{
			ChannelDeleteLimit:       3,
			RoleDeleteLimit:          3,
			ForbiddenPermissionLimit: 3,
			NonWhitelistBanLimit:     2,
			SpamLimit:                5,
			SpamIntervalMS:           5000,
			SpamMuteMinutes:          5,
			SpamLookback:             10,
			MuteSweepSeconds:         30,
		},
		Network: NetworkConfig{
			HTTPPoolSize: 4,
			WorkerCount:  4,
			APIBaseURL:   "https://discord.com/api/v10",
		},
		Runtime: RuntimeConfig{
			CPUIsolation:  false,
			DispatcherCPU: 0,
		},
	}
}

func Get() *Config {
	if GlobalConfig == nil {
		return DefaultConfig()
	}
	return GlobalConfig
}
