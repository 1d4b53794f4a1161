package auth

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestParseRole(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    Role
		expKnown bool
	}{
		"player":        {in: "player", exp: RolePlayer, expKnown: true},
		"worldbuilder":  {in: "worldbuilder", exp: RoleWorldBuilder, expKnown: true},
		"admin":         {in: "admin", exp: RoleAdmin, expKnown: true},
		"superuser":     {in: "superuser", exp: RoleSuperuser, expKnown: true},
		"mixed case":    {in: "AdMiN", exp: RoleAdmin, expKnown: true},
		"padded":        {in: " superuser ", exp: RoleSuperuser, expKnown: true},
		"unknown":       {in: "wizard", exp: RolePlayer, expKnown: false},
		"empty":         {in: "", exp: RolePlayer, expKnown: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, known := ParseRole(tt.in)
			testutil.AssertEqual(t, "role", got, tt.exp)
			testutil.AssertEqual(t, "known", known, tt.expKnown)
		})
	}
}

func TestRoleOf_UnknownHasLevelZero(t *testing.T) {
	testutil.AssertEqual(t, "level", RoleOf("not-a-role").Level(), 0)
}

func TestCanManage(t *testing.T) {
	roles := []Role{RolePlayer, RoleWorldBuilder, RoleAdmin, RoleSuperuser}

	for _, manager := range roles {
		for _, target := range roles {
			exp := manager.Level() > target.Level()
			if got := CanManage(manager, target); got != exp {
				t.Errorf("CanManage(%s, %s) = %v, expected %v", manager, target, got, exp)
			}
		}
	}
}

func TestCanManage_NeverSelf(t *testing.T) {
	for _, r := range []Role{RolePlayer, RoleWorldBuilder, RoleAdmin, RoleSuperuser} {
		if CanManage(r, r) {
			t.Errorf("CanManage(%s, %s) should be false", r, r)
		}
	}
}
