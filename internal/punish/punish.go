// Package punish applies the maximal automated sanction: stripping every
// privilege-granting role from an actor while leaving base membership
// intact.
package punish

import (
	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/database"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
)

// Sanction removes all roles from the actor and logs the reason. Failures
// are logged and swallowed; a sanction that cannot be applied must never
// crash the event pipeline. Returns whether the sanction was applied.
func Sanction(s *discordgo.Session, guildID, actorID, reason string) bool {
	if _, err := s.GuildMember(guildID, actorID); err != nil {
		logging.Warn("punish: cannot resolve member %s in guild %s: %v", actorID, guildID, err)
		return false
	}

	empty := []string{}
	if _, err := s.GuildMemberEdit(guildID, actorID, &discordgo.GuildMemberParams{Roles: &empty}); err != nil {
		logging.Error("punish: failed to strip roles from %s in guild %s: %v", actorID, guildID, err)
		return false
	}

	logging.Info("[SANCTION] Stripped all roles from %s in guild %s: %s", actorID, guildID, reason)

	if db := database.GetDB(); db != nil {
		if err := db.RecordIncident(&database.Incident{
			GuildID:     guildID,
			Guard:       "sanction",
			ActorID:     actorID,
			ActionTaken: "roles_stripped",
			Reason:      reason,
		}); err != nil {
			logging.Warn("punish: failed to record incident: %v", err)
		}
	}

	notifier.SendGuardEmbed("🚨 Protection Limit Exceeded", notifier.ColorRed,
		"All roles removed.",
		notifier.UserField("User", actorID, true),
		notifier.Field("Reason", reason, false),
	)

	return true
}
