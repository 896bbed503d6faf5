package staff

import (
	"context"
	"errors"
	"time"

	"github.com/stjosephs/hostel/core/access"
)

var (
	// errors
	ErrNotFound = errors.New("staff member not found")
	ErrExists   = errors.New("a staff member with this username already exists")
)

type (
	Repository interface {
		CreateStaff(ctx context.Context, stf Staff) (Staff, error)
		GetStaffByUsername(ctx context.Context, username string) (Staff, error)
		QueryAllStaff(ctx context.Context) ([]Staff, error)
		UpdateStaffPassword(ctx context.Context, username string, hash []byte, updatedAt time.Time) error
		SetStaffActive(ctx context.Context, username string, active bool, updatedAt time.Time) error
		DeleteStaff(ctx context.Context, username string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a new staff account with the default scopes for its role.
// The chief matron may not create chief-matron or super-user accounts.
func (svc *Service) Create(ctx context.Context, actor access.Role, ns NewStaff) (Staff, error) {
	role := access.Role(ns.Role)
	if !access.CanManageStaff(actor, role) {
		return Staff{}, access.ErrForbidden
	}

	now := time.Now().UTC()
	stf := Staff{
		Username:  ns.Username,
		FirstName: ns.FirstName,
		LastName:  ns.LastName,
		Role:      role,
		Active:    true,
		Present:   true,
		Scopes:    access.DefaultScopes(role),
		Image:     ns.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := stf.SetPassword(ns.Password); err != nil {
		return Staff{}, err
	}
	return svc.repo.CreateStaff(ctx, stf)
}

// Authenticate checks the presented credential and returns the matching
// active principal.
func (svc *Service) Authenticate(ctx context.Context, username, pwd string) (Staff, error) {
	stf, err := svc.repo.GetStaffByUsername(ctx, username)
	if err != nil {
		return Staff{}, err
	}
	if err = stf.CheckPassword(pwd); err != nil {
		return Staff{}, ErrNotFound
	}
	return stf, nil
}

func (svc *Service) GetByUsername(ctx context.Context, username string) (Staff, error) {
	return svc.repo.GetStaffByUsername(ctx, username)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Staff, error) {
	return svc.repo.QueryAllStaff(ctx)
}

// Image returns the profile picture of a staff account. Accessing another
// account's image is gated by the staff management ceiling; everyone may view
// their own.
func (svc *Service) Image(ctx context.Context, actor Staff, username string) ([]byte, error) {
	stf, err := svc.repo.GetStaffByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if actor.Username != username && !access.CanManageStaff(actor.Role, stf.Role) {
		return nil, access.ErrForbidden
	}
	return stf.Image, nil
}

func (svc *Service) ResetPassword(ctx context.Context, username, pwd string) error {
	stf, err := svc.repo.GetStaffByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err = stf.SetPassword(pwd); err != nil {
		return err
	}
	return svc.repo.UpdateStaffPassword(ctx, stf.Username, stf.PasswordHash, time.Now().UTC())
}

func (svc *Service) SetActive(ctx context.Context, username string, active bool) error {
	return svc.repo.SetStaffActive(ctx, username, active, time.Now().UTC())
}

// Delete removes a staff account, subject to the management ceiling.
func (svc *Service) Delete(ctx context.Context, actor access.Role, username string) error {
	stf, err := svc.repo.GetStaffByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !access.CanManageStaff(actor, stf.Role) {
		return access.ErrForbidden
	}
	return svc.repo.DeleteStaff(ctx, username)
}
