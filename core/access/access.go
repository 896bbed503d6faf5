// Package access centralizes the role-based visibility rules applied to every
// learner, staff, duty and attendance operation. Junior and senior matrons
// each see half of the dormitory blocks; the chief matron and the super user
// see everything, with the chief matron unable to touch super-user accounts.
package access

import "errors"

// ErrForbidden signals an operation outside the caller's visibility partition.
var ErrForbidden = errors.New("permission denied")

type (
	// Role is a staff position.
	Role string

	// Block is one of the four dormitory sub-units.
	Block string
)

// Roles
const (
	RoleJrMatron    Role = "jr-matron"
	RoleSrMatron    Role = "sr-matron"
	RoleChiefMatron Role = "chief-matron"
	RoleSuperUser   Role = "super-user"
)

// Blocks
const (
	BlockA Block = "A"
	BlockB Block = "B"
	BlockC Block = "C"
	BlockD Block = "D"
)

var (
	AllRoles  = []Role{RoleJrMatron, RoleSrMatron, RoleChiefMatron, RoleSuperUser}
	AllBlocks = []Block{BlockA, BlockB, BlockC, BlockD}

	blockPartitions = map[Role][]Block{
		RoleJrMatron:    {BlockA, BlockB},
		RoleSrMatron:    {BlockC, BlockD},
		RoleChiefMatron: {BlockA, BlockB, BlockC, BlockD},
		RoleSuperUser:   {BlockA, BlockB, BlockC, BlockD},
	}
)

// ValidRole reports whether role is a known staff position.
func ValidRole(role Role) bool {
	_, ok := blockPartitions[role]
	return ok
}

// ValidBlock reports whether block is one of the four dormitory sub-units.
func ValidBlock(block Block) bool {
	for _, b := range AllBlocks {
		if b == block {
			return true
		}
	}
	return false
}

// AllowedBlocks returns the dormitory blocks visible to role.
func AllowedBlocks(role Role) []Block {
	return blockPartitions[role]
}

// CanAccessBlock reports whether role may read or write records of learners
// in block.
func CanAccessBlock(role Role, block Block) bool {
	for _, b := range blockPartitions[role] {
		if b == block {
			return true
		}
	}
	return false
}

// CanManageStaff reports whether actor may create, delete or view the image of
// a target staff account. The chief matron may not touch chief-matron or
// super-user accounts; matrons may not manage staff at all.
func CanManageStaff(actor, target Role) bool {
	switch actor {
	case RoleSuperUser:
		return true
	case RoleChiefMatron:
		return target != RoleChiefMatron && target != RoleSuperUser
	default:
		return false
	}
}
