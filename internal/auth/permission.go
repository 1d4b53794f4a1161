package auth

// Permission is a capability that can be granted to a role.
type Permission string

const (
	PermissionPlayGame Permission = "play_game"
	PermissionChat     Permission = "chat"

	PermissionEditWorld   Permission = "edit_world"
	PermissionCreateRooms Permission = "create_rooms"
	PermissionCreateItems Permission = "create_items"

	PermissionKickUsers Permission = "kick_users"
	PermissionBanUsers  Permission = "ban_users"
	PermissionViewLogs  Permission = "view_logs"

	PermissionManageUsers Permission = "manage_users"
	PermissionChangeRoles Permission = "change_roles"
	PermissionFullAccess  Permission = "full_access"
)

// rolePermissions is the explicit capability set for each role. The
// superuser row is intentionally absent: superusers pass every check.
var rolePermissions = map[Role]map[Permission]bool{
	RolePlayer: {
		PermissionPlayGame: true,
		PermissionChat:     true,
	},
	RoleWorldBuilder: {
		PermissionPlayGame:    true,
		PermissionChat:        true,
		PermissionEditWorld:   true,
		PermissionCreateRooms: true,
		PermissionCreateItems: true,
	},
	RoleAdmin: {
		PermissionPlayGame:  true,
		PermissionChat:      true,
		PermissionEditWorld: true,
		PermissionKickUsers: true,
		PermissionBanUsers:  true,
		PermissionViewLogs:  true,
	},
}

// HasPermission reports whether a role holds a permission. Superuser
// satisfies every permission, including ones added after this table was
// written.
func HasPermission(role Role, perm Permission) bool {
	if role == RoleSuperuser {
		return true
	}
	return rolePermissions[role][perm]
}
