package main

import (
	"context"
	"time"

	"github.com/stjosephs/hostel/core"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	stf, err := cli.staffRepo.GetStaffByUsername(ctx, core.CleanString(uname, true /* lower */))
	if err != nil {
		return err
	}
	if err := stf.SetPassword(pwd); err != nil {
		return err
	}
	return cli.staffRepo.UpdateStaffPassword(ctx, stf.Username, stf.PasswordHash, time.Now().UTC())
}
