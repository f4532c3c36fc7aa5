package guards

import (
	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/logging"
)

// onGuildCreate runs for every guild at startup and whenever the bot is
// added to one: enforce the allow-list, seed the permission and vanity
// snapshots, then converge mute state.
func (g *Guards) onGuildCreate(sess *discordgo.Session, gc *discordgo.GuildCreate) {
	cfg := config.Get()

	if len(cfg.Bot.AllowedGuildIDs) > 0 && !allowedGuild(cfg.Bot.AllowedGuildIDs, gc.ID) {
		logging.Warn("Guild %s (%s) is not on the allow-list, leaving", gc.Name, gc.ID)
		if err := sess.GuildLeave(gc.ID); err != nil {
			logging.Error("Failed to leave guild %s: %v", gc.ID, err)
		}
		return
	}

	logging.Info("Guarding guild: %s (ID: %s, members: %d)", gc.Name, gc.ID, gc.MemberCount)

	g.seedRolePerms(gc.Guild)

	if cfg.Protection.VanityProtection && gc.VanityURLCode != "" {
		if _, ok := g.vanity.Get(gc.ID); !ok {
			g.vanity.Set(gc.ID, gc.VanityURLCode)
			logging.Info("Vanity snapshot for guild %s: %s", gc.ID, gc.VanityURLCode)
		}
	}

	go g.mutes.ReconcileGuild(gc.ID)
}

func allowedGuild(allowed []string, guildID string) bool {
	for _, id := range allowed {
		if id == guildID {
			return true
		}
	}
	return false
}

func (g *Guards) seedRolePerms(guild *discordgo.Guild) {
	g.rolePermsMu.Lock()
	defer g.rolePermsMu.Unlock()

	perms := make(map[string]int64, len(guild.Roles))
	for _, role := range guild.Roles {
		perms[role.ID] = role.Permissions
	}
	g.rolePerms[guild.ID] = perms
}
