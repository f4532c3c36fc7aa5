package guards

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-guardian/internal/config"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"
	"go-guardian/internal/punish"
	"go-guardian/internal/state"
)

// onRoleCreate zeroes any forbidden permissions granted at creation time.
// Managed roles (bot and integration roles) are Discord's own and skipped.
func (g *Guards) onRoleCreate(sess *discordgo.Session, r *discordgo.GuildRoleCreate) {
	if r.GuildID == "" || r.Role.Managed {
		return
	}

	g.storeRolePerm(r.GuildID, r.Role.ID, r.Role.Permissions)

	if !config.Get().Protection.DangerousRoleGuard {
		return
	}

	forbidden := r.Role.Permissions & config.Get().Protection.ForbiddenPermissions
	if forbidden == 0 {
		return
	}

	zero := int64(0)
	if _, err := sess.GuildRoleEdit(r.GuildID, r.Role.ID, &discordgo.RoleParams{Permissions: &zero}); err != nil {
		logging.Error("Failed to strip permissions from new role %s: %v", r.Role.ID, err)
	} else {
		g.storeRolePerm(r.GuildID, r.Role.ID, 0)
		logging.Info("[ROLE] Stripped forbidden permissions %d from new role %s in guild %s", forbidden, r.Role.ID, r.GuildID)
	}

	actorID := g.resolveActor(r.GuildID, discordgo.AuditLogActionRoleCreate, r.Role.ID)
	g.recordForbiddenGrant(sess, r.GuildID, actorID, r.Role.Name, forbidden)
}

// onRoleUpdate diffs against the pre-update snapshot and reverts any newly
// granted forbidden permissions.
func (g *Guards) onRoleUpdate(sess *discordgo.Session, r *discordgo.GuildRoleUpdate) {
	if r.GuildID == "" || r.Role.Managed {
		return
	}

	prior, hadPrior := g.loadRolePerm(r.GuildID, r.Role.ID)

	if !config.Get().Protection.DangerousRoleGuard {
		g.storeRolePerm(r.GuildID, r.Role.ID, r.Role.Permissions)
		return
	}

	forbiddenMask := config.Get().Protection.ForbiddenPermissions
	var gained int64
	if hadPrior {
		gained = (r.Role.Permissions &^ prior) & forbiddenMask
	} else {
		// No snapshot; treat every forbidden bit as newly granted.
		gained = r.Role.Permissions & forbiddenMask
	}

	if gained == 0 {
		g.storeRolePerm(r.GuildID, r.Role.ID, r.Role.Permissions)
		return
	}

	restored := r.Role.Permissions &^ forbiddenMask
	if hadPrior {
		restored = prior
	}
	if _, err := sess.GuildRoleEdit(r.GuildID, r.Role.ID, &discordgo.RoleParams{Permissions: &restored}); err != nil {
		logging.Error("Failed to revert permissions on role %s: %v", r.Role.ID, err)
		g.storeRolePerm(r.GuildID, r.Role.ID, r.Role.Permissions)
	} else {
		g.storeRolePerm(r.GuildID, r.Role.ID, restored)
		logging.Info("[ROLE] Reverted forbidden permissions %d on role %s in guild %s", gained, r.Role.ID, r.GuildID)
	}

	actorID := g.resolveActor(r.GuildID, discordgo.AuditLogActionRoleUpdate, r.Role.ID)
	g.recordForbiddenGrant(sess, r.GuildID, actorID, r.Role.Name, gained)
}

func (g *Guards) onRoleDelete(sess *discordgo.Session, r *discordgo.GuildRoleDelete) {
	if r.GuildID == "" {
		return
	}

	g.dropRolePerm(r.GuildID, r.RoleID)

	limit := config.Get().Limits.RoleDeleteLimit
	if limit <= 0 {
		return
	}

	actorID := g.resolveActor(r.GuildID, discordgo.AuditLogActionRoleDelete, r.RoleID)
	if actorID == "" {
		logging.Warn("[EVENT] Role delete but no actor: %s", r.RoleID)
		return
	}
	if g.isExempt(r.GuildID, actorID) {
		return
	}

	logging.Info("[EVENT] Role delete: %s by actor %s", r.RoleID, actorID)

	if g.violations.Record(actorID, state.CategoryRoleDelete, limit) {
		punish.Sanction(sess, r.GuildID, actorID, "Deleted too many roles")
		return
	}

	notifier.SendGuardEmbed("🗑️ Role Deleted", notifier.ColorOrange, "",
		notifier.Field("Role", r.RoleID, true),
		notifier.UserField("By", actorID, true),
		notifier.Field("Strikes", fmt.Sprintf("%d/%d", g.violations.Count(actorID, state.CategoryRoleDelete), limit), true),
	)
}

// recordForbiddenGrant counts the grant against the actor and sanctions at
// the limit. The revert already happened; this is only the escalation side.
func (g *Guards) recordForbiddenGrant(sess *discordgo.Session, guildID, actorID, roleName string, gained int64) {
	if actorID == "" || g.isExempt(guildID, actorID) {
		return
	}

	limit := config.Get().Limits.ForbiddenPermissionLimit
	if g.violations.Record(actorID, state.CategoryForbiddenGrant, limit) {
		punish.Sanction(sess, guildID, actorID, "Repeatedly granted forbidden permissions")
		return
	}

	notifier.SendGuardEmbed("⚠️ Forbidden Permissions Reverted", notifier.ColorOrange, "",
		notifier.Field("Role", roleName, true),
		notifier.UserField("By", actorID, true),
		notifier.Field("Permissions", fmt.Sprintf("`%d`", gained), true),
	)
}

func (g *Guards) storeRolePerm(guildID, roleID string, perms int64) {
	g.rolePermsMu.Lock()
	defer g.rolePermsMu.Unlock()

	guild, ok := g.rolePerms[guildID]
	if !ok {
		guild = make(map[string]int64)
		g.rolePerms[guildID] = guild
	}
	guild[roleID] = perms
}

func (g *Guards) loadRolePerm(guildID, roleID string) (int64, bool) {
	g.rolePermsMu.Lock()
	defer g.rolePermsMu.Unlock()

	perms, ok := g.rolePerms[guildID][roleID]
	return perms, ok
}

func (g *Guards) dropRolePerm(guildID, roleID string) {
	g.rolePermsMu.Lock()
	defer g.rolePermsMu.Unlock()

	delete(g.rolePerms[guildID], roleID)
}
