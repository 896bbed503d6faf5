package main

import (
	"context"
	"fmt"
	"time"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/staff"
)

// addStaff creates a staff account directly against the repository, skipping
// the management ceiling so the first super-user can be bootstrapped.
func (cli *commandLine) addStaff(uname, first, last, roleStr, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)

	role := access.Role(core.CleanString(roleStr, true /* lower */))
	if !access.ValidRole(role) {
		return fmt.Errorf("unknown role %q", roleStr)
	}

	now := time.Now().UTC()
	stf := staff.Staff{
		Username:  uname,
		FirstName: core.CleanString(first),
		LastName:  core.CleanString(last),
		Role:      role,
		Active:    true,
		Present:   true,
		Scopes:    access.DefaultScopes(role),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := stf.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.staffRepo.CreateStaff(ctx, stf)
	return err
}
