package auth

import "strings"

// Role is the closed set of account roles, totally ordered by privilege.
type Role int

const (
	RolePlayer Role = iota
	RoleWorldBuilder
	RoleAdmin
	RoleSuperuser
)

var roleNames = map[Role]string{
	RolePlayer:       "player",
	RoleWorldBuilder: "worldbuilder",
	RoleAdmin:        "admin",
	RoleSuperuser:    "superuser",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "player"
}

// Level is the role's position in the hierarchy. Higher is more privileged.
func (r Role) Level() int {
	return int(r)
}

// ParseRole parses the external role representation, case-insensitively.
// The second return reports whether the string named a known role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player":
		return RolePlayer, true
	case "worldbuilder":
		return RoleWorldBuilder, true
	case "admin":
		return RoleAdmin, true
	case "superuser":
		return RoleSuperuser, true
	}
	return RolePlayer, false
}

// RoleOf is ParseRole with unknown strings mapped to the lowest role. An
// unparseable role carries hierarchy level 0 and no extra permissions.
func RoleOf(s string) Role {
	r, _ := ParseRole(s)
	return r
}

// CanManage reports whether a manager role may act on a target role. The
// comparison is strict: equal roles can never manage each other, and no role
// manages itself.
func CanManage(manager, target Role) bool {
	return manager.Level() > target.Level()
}
