package access

// Scopes granted to staff principals and checked per operation.
const (
	ScopeSelf = "me"

	// staff accounts
	ScopeAddStaff      = "add-u"
	ScopeUpdateStaff   = "update-u"
	ScopeGetStaff      = "get-u"
	ScopeGetStaffImage = "get-u-i"
	ScopeDeleteStaff   = "delete-u"

	// learners
	ScopeAddLearner      = "add-l"
	ScopeGetLearner      = "get-l"
	ScopeGetLearnerImage = "get-l-i"
	ScopeDeleteLearner   = "delete-l"

	// duties
	ScopeAddDuty             = "add-d"
	ScopeGetDuty             = "get-d"
	ScopeUpdateDuty          = "update-d"
	ScopeDeleteDuty          = "delete-d"
	ScopeAssignDuties        = "assign-d"
	ScopeAssignSpecialDuties = "assign-s-d"
	ScopeGetAssignedDuties   = "get-a-d"
	ScopeMarkDuty            = "mark-d"

	// attendance
	ScopeMarkAttendance = "mark-a"
	ScopeGetAttendance  = "get-a"
)

var (
	matronScopes = []string{
		ScopeSelf,
		ScopeGetStaff,
		ScopeAddLearner, ScopeGetLearner, ScopeGetLearnerImage, ScopeDeleteLearner,
		ScopeAddDuty, ScopeGetDuty, ScopeAssignSpecialDuties, ScopeGetAssignedDuties, ScopeMarkDuty,
		ScopeMarkAttendance, ScopeGetAttendance,
	}

	seniorScopes = []string{
		ScopeSelf,
		ScopeAddStaff, ScopeUpdateStaff, ScopeGetStaff, ScopeGetStaffImage, ScopeDeleteStaff,
		ScopeAddLearner, ScopeGetLearner, ScopeGetLearnerImage, ScopeDeleteLearner,
		ScopeAddDuty, ScopeGetDuty, ScopeUpdateDuty, ScopeDeleteDuty,
		ScopeAssignDuties, ScopeAssignSpecialDuties, ScopeGetAssignedDuties, ScopeMarkDuty,
		ScopeMarkAttendance, ScopeGetAttendance,
	}
)

// DefaultScopes returns the scopes granted to a freshly created account of the
// given role.
func DefaultScopes(role Role) []string {
	var src []string
	switch role {
	case RoleChiefMatron, RoleSuperUser:
		src = seniorScopes
	case RoleJrMatron, RoleSrMatron:
		src = matronScopes
	default:
		return nil
	}
	scopes := make([]string, len(src))
	copy(scopes, src)
	return scopes
}

// HasScope reports whether scope is among granted.
func HasScope(scope string, granted []string) bool {
	for _, s := range granted {
		if s == scope {
			return true
		}
	}
	return false
}
