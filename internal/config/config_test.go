package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Limits.ChannelDeleteLimit != 3 {
		t.Fatalf("ChannelDeleteLimit = %d, want 3", cfg.Limits.ChannelDeleteLimit)
	}
	if cfg.Limits.NonWhitelistBanLimit != 2 {
		t.Fatalf("NonWhitelistBanLimit = %d, want 2", cfg.Limits.NonWhitelistBanLimit)
	}
	if cfg.Limits.SpamLimit != 5 || cfg.Limits.SpamIntervalMS != 5000 {
		t.Fatalf("spam window = %d/%dms, want 5/5000ms", cfg.Limits.SpamLimit, cfg.Limits.SpamIntervalMS)
	}
	if cfg.Protection.MuteRoleName != "Muted" {
		t.Fatalf("MuteRoleName = %q, want Muted", cfg.Protection.MuteRoleName)
	}

	forbidden := cfg.Protection.ForbiddenPermissions
	for _, perm := range []int64{
		discordgo.PermissionAdministrator,
		discordgo.PermissionBanMembers,
		discordgo.PermissionManageRoles,
		discordgo.PermissionManageWebhooks,
	} {
		if forbidden&perm == 0 {
			t.Fatalf("forbidden mask missing permission %d", perm)
		}
	}
	if forbidden&discordgo.PermissionSendMessages != 0 {
		t.Fatal("forbidden mask must not cover ordinary permissions")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	doc := `{
		"bot": {"token": "abc", "owner_id": "42"},
		"limits": {"channel_delete_limit": 7}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}
	if cfg.Bot.Token != "abc" || cfg.Bot.OwnerID != "42" {
		t.Fatalf("bot section = %+v", cfg.Bot)
	}
	if cfg.Limits.ChannelDeleteLimit != 7 {
		t.Fatalf("ChannelDeleteLimit = %d, want 7", cfg.Limits.ChannelDeleteLimit)
	}
	// Untouched keys keep their defaults.
	if cfg.Limits.RoleDeleteLimit != 3 {
		t.Fatalf("RoleDeleteLimit = %d, want default 3", cfg.Limits.RoleDeleteLimit)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("ALLOWED_GUILD_IDS", "1, 2 ,3,")

	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	if cfg.Bot.Token != "env-token" {
		t.Fatalf("Token = %q, want env-token", cfg.Bot.Token)
	}
	if len(cfg.Bot.AllowedGuildIDs) != 3 || cfg.Bot.AllowedGuildIDs[1] != "2" {
		t.Fatalf("AllowedGuildIDs = %v", cfg.Bot.AllowedGuildIDs)
	}
}
