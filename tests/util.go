package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/duty"
	"github.com/stjosephs/hostel/core/learner"
	"github.com/stjosephs/hostel/core/staff"
)

func CreateStaff(
	t *testing.T,
	repo staff.Repository,
	uname, first, last, pwd string,
	role access.Role,
	active bool,
) staff.Staff {
	now := time.Now().UTC()
	stf := staff.Staff{
		Username:  uname,
		FirstName: first,
		LastName:  last,
		Role:      role,
		Active:    active,
		Present:   true,
		Scopes:    access.DefaultScopes(role),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := stf.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStaff() failed: %v", err)
		}
	}
	stf, err := repo.CreateStaff(context.Background(), stf)
	if err != nil {
		t.Fatalf("CreateStaff() failed: %v", err)
	}
	return stf
}

func CreateLearner(
	t *testing.T,
	repo learner.Repository,
	first, last string,
	block access.Block,
	grade, room int,
) learner.Learner {
	now := time.Now().UTC()
	l := learner.Learner{
		FirstName: first,
		LastName:  last,
		Block:     block,
		Grade:     grade,
		Room:      room,
		Present:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l, err := repo.CreateLearner(context.Background(), l)
	if err != nil {
		t.Fatalf("CreateLearner() failed: %v", err)
	}
	return l
}

func CreateDuty(
	t *testing.T,
	repo duty.Repository,
	name, description string,
	capacity int,
) duty.Duty {
	d := duty.Duty{
		Name:        name,
		Description: description,
		Capacity:    capacity,
	}
	if err := repo.CreateDuty(context.Background(), d); err != nil {
		t.Fatalf("CreateDuty() failed: %v", err)
	}
	return d
}
