package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/emberfell/mud/internal/auth"
)

// canonicalName lowercases an account name typed by an actor so registry
// and gateway lookups agree on the spelling.
func canonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// targetRole looks up the target's stored role for a management check.
func (e *Engine) targetRole(target string) (auth.Role, error) {
	if !e.gateway.PlayerExists(target) {
		return auth.RolePlayer, NewUserErrorf("Player '%s' does not exist.", target)
	}
	roleName, ok := e.gateway.Role(target)
	if !ok {
		return auth.RolePlayer, NewUserErrorf("Player '%s' does not exist.", target)
	}
	return auth.RoleOf(roleName), nil
}

// KickPlayer forcibly ends every session the target has. The actor needs
// the kick permission and a strictly higher role than the target.
func (e *Engine) KickPlayer(actor string, actorRole auth.Role, target string) (string, error) {
	target = canonicalName(target)

	if !auth.HasPermission(actorRole, auth.PermissionKickUsers) {
		return "", &ForbiddenError{Permission: auth.PermissionKickUsers}
	}

	role, err := e.targetRole(target)
	if err != nil {
		return "", err
	}
	if !auth.CanManage(actorRole, role) {
		return "", NewUserErrorf("You cannot manage '%s'.", target)
	}

	if !e.sessions.IsOnline(target) {
		return "", NewUserErrorf("Player '%s' is not online.", target)
	}

	kicked, err := expandTemplate(kickedTemplate, eventData{Actor: actor})
	if err != nil {
		return "", fmt.Errorf("rendering kick message: %w", err)
	}
	e.notifyPlayer(target, kicked)

	n := e.sessions.DestroyUser(target)
	slog.Info("player kicked", "actor", actor, "target", target, "sessions", n)

	return fmt.Sprintf("Kicked %s.", target), nil
}

// SetPlayerRole changes the target's stored role. The new role takes effect
// at the target's next login; live sessions keep their snapshot.
func (e *Engine) SetPlayerRole(actor string, actorRole auth.Role, target, roleName string) (string, error) {
	target = canonicalName(target)

	if !auth.HasPermission(actorRole, auth.PermissionChangeRoles) {
		return "", &ForbiddenError{Permission: auth.PermissionChangeRoles}
	}

	newRole, ok := auth.ParseRole(roleName)
	if !ok {
		return "", NewUserErrorf("Unknown role: %s.", roleName)
	}

	role, err := e.targetRole(target)
	if err != nil {
		return "", err
	}
	if !auth.CanManage(actorRole, role) {
		return "", NewUserErrorf("You cannot manage '%s'.", target)
	}
	// Granting a role at or above your own would let an admin mint peers.
	if !auth.CanManage(actorRole, newRole) {
		return "", NewUserErrorf("You cannot grant the %s role.", newRole)
	}

	if err := e.gateway.SetRole(target, newRole.String()); err != nil {
		return "", fmt.Errorf("setting role: %w", err)
	}
	slog.Info("player role changed", "actor", actor, "target", target, "role", newRole.String())

	return fmt.Sprintf("Set %s's role to %s. It takes effect at their next login.", target, newRole), nil
}

// SetPlayerActive bans or reinstates the target account. Banning also ends
// the target's live sessions.
func (e *Engine) SetPlayerActive(actor string, actorRole auth.Role, target string, active bool) (string, error) {
	target = canonicalName(target)

	if !auth.HasPermission(actorRole, auth.PermissionBanUsers) {
		return "", &ForbiddenError{Permission: auth.PermissionBanUsers}
	}

	role, err := e.targetRole(target)
	if err != nil {
		return "", err
	}
	if !auth.CanManage(actorRole, role) {
		return "", NewUserErrorf("You cannot manage '%s'.", target)
	}

	if err := e.gateway.SetActive(target, active); err != nil {
		return "", fmt.Errorf("setting active flag: %w", err)
	}

	if !active {
		e.sessions.DestroyUser(target)
		slog.Info("player banned", "actor", actor, "target", target)
		return fmt.Sprintf("Banned %s.", target), nil
	}

	slog.Info("player unbanned", "actor", actor, "target", target)
	return fmt.Sprintf("Unbanned %s.", target), nil
}
