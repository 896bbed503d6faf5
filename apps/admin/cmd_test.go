package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stjosephs/hostel/core/staff"
	inmemdb "github.com/stjosephs/hostel/storage/inmem"
	testutil "github.com/stjosephs/hostel/tests"
)

var staffRepo staff.Repository

func setup(t *testing.T) *commandLine {
	staffRepo = inmemdb.NewStaffRepository(inmemdb.Open())
	return &commandLine{staffRepo: staffRepo}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_addStaff(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addstaff"}, wantErr: errHelp},
		{name: "missing names", args: []string{"addstaff", "-username", "headmatron"}, wantErr: errHelp},
		{
			name:    "no password",
			args:    []string{"addstaff", "-username", "headmatron", "-first", "Grace", "-last", "Phiri"},
			wantErr: errHelp,
		},
		{
			name:  "default role is super-user",
			args:  []string{"addstaff", "-username", "superuser", "-first", "Sam", "-last", "Admin"},
			extra: extra{pwd: "s3cr3t"},
		},
		{
			name:  "explicit role",
			args:  []string{"addstaff", "-username", "headmatron", "-first", "Grace", "-last", "Phiri", "-role", "chief-matron"},
			extra: extra{pwd: "s3cr3t"},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("unknown role", func(t *testing.T) {
		readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cr3t"), nil }
		args := []string{"admin", "addstaff", "-username", "janitor1", "-first", "Jo", "-last", "Moyo", "-role", "janitor"}
		if err := cli.run(args); err == nil {
			t.Error("cli.run() accepted an unknown role")
		}
	})

	t.Run("created accounts can authenticate", func(t *testing.T) {
		stf, err := staffRepo.GetStaffByUsername(context.Background(), "headmatron")
		if err != nil {
			t.Fatalf("GetStaffByUsername() failed: %v", err)
		}
		if err := stf.CheckPassword("s3cr3t"); err != nil {
			t.Errorf("CheckPassword() failed: %v", err)
		}
		if !stf.Active || !stf.Present {
			t.Error("account not created active and present")
		}
		if len(stf.Scopes) == 0 {
			t.Error("no default scopes granted")
		}
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	stf := testutil.CreateStaff(t, staffRepo, "headmatron", "Grace", "Phiri", "old-pwd", "chief-matron", true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "staff not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: staff.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-username", stf.Username}, extra: extra{pwd: "new-pwd"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := staffRepo.GetStaffByUsername(context.Background(), stf.Username)
				if err != nil {
					t.Fatalf("GetStaffByUsername() failed: %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, stf.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
