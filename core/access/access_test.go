package access

import "testing"

func TestCanAccessBlock(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		block Block
		want  bool
	}{
		{name: "jr-matron block A", role: RoleJrMatron, block: BlockA, want: true},
		{name: "jr-matron block B", role: RoleJrMatron, block: BlockB, want: true},
		{name: "jr-matron block C", role: RoleJrMatron, block: BlockC, want: false},
		{name: "jr-matron block D", role: RoleJrMatron, block: BlockD, want: false},
		{name: "sr-matron block A", role: RoleSrMatron, block: BlockA, want: false},
		{name: "sr-matron block B", role: RoleSrMatron, block: BlockB, want: false},
		{name: "sr-matron block C", role: RoleSrMatron, block: BlockC, want: true},
		{name: "sr-matron block D", role: RoleSrMatron, block: BlockD, want: true},
		{name: "chief-matron block A", role: RoleChiefMatron, block: BlockA, want: true},
		{name: "chief-matron block D", role: RoleChiefMatron, block: BlockD, want: true},
		{name: "super-user block B", role: RoleSuperUser, block: BlockB, want: true},
		{name: "super-user block C", role: RoleSuperUser, block: BlockC, want: true},
		{name: "unknown role", role: Role("cook"), block: BlockA, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessBlock(tt.role, tt.block); got != tt.want {
				t.Errorf("CanAccessBlock(%q, %q) = %v; want %v", tt.role, tt.block, got, tt.want)
			}
		})
	}
}

func TestCanManageStaff(t *testing.T) {
	tests := []struct {
		name          string
		actor, target Role
		want          bool
	}{
		{name: "super-user manages super-user", actor: RoleSuperUser, target: RoleSuperUser, want: true},
		{name: "super-user manages chief-matron", actor: RoleSuperUser, target: RoleChiefMatron, want: true},
		{name: "super-user manages jr-matron", actor: RoleSuperUser, target: RoleJrMatron, want: true},
		{name: "chief-matron manages jr-matron", actor: RoleChiefMatron, target: RoleJrMatron, want: true},
		{name: "chief-matron manages sr-matron", actor: RoleChiefMatron, target: RoleSrMatron, want: true},
		{name: "chief-matron denied chief-matron", actor: RoleChiefMatron, target: RoleChiefMatron, want: false},
		{name: "chief-matron denied super-user", actor: RoleChiefMatron, target: RoleSuperUser, want: false},
		{name: "jr-matron denied", actor: RoleJrMatron, target: RoleJrMatron, want: false},
		{name: "sr-matron denied", actor: RoleSrMatron, target: RoleJrMatron, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageStaff(tt.actor, tt.target); got != tt.want {
				t.Errorf("CanManageStaff(%q, %q) = %v; want %v", tt.actor, tt.target, got, tt.want)
			}
		})
	}
}

func TestDefaultScopes(t *testing.T) {
	for _, role := range []Role{RoleChiefMatron, RoleSuperUser} {
		scopes := DefaultScopes(role)
		for _, s := range []string{ScopeSelf, ScopeAddStaff, ScopeDeleteStaff, ScopeAssignDuties, ScopeMarkAttendance} {
			if !HasScope(s, scopes) {
				t.Errorf("DefaultScopes(%q) missing %q", role, s)
			}
		}
	}
	for _, role := range []Role{RoleJrMatron, RoleSrMatron} {
		scopes := DefaultScopes(role)
		if !HasScope(ScopeMarkAttendance, scopes) {
			t.Errorf("DefaultScopes(%q) missing %q", role, ScopeMarkAttendance)
		}
		for _, s := range []string{ScopeAddStaff, ScopeDeleteStaff, ScopeAssignDuties} {
			if HasScope(s, scopes) {
				t.Errorf("DefaultScopes(%q) must not include %q", role, s)
			}
		}
	}
	if DefaultScopes(Role("cook")) != nil {
		t.Error("DefaultScopes() for unknown role must be nil")
	}
}
