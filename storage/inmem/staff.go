package inmemdb

import (
	"context"
	"time"

	"github.com/stjosephs/hostel/core/staff"
)

type staffRepository struct {
	db *DB
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db *DB) staff.Repository {
	return &staffRepository{db: db}
}

func (repo *staffRepository) CreateStaff(_ context.Context, stf staff.Staff) (staff.Staff, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.staff[stf.Username]; ok {
		return staff.Staff{}, staff.ErrExists
	}
	repo.db.staff[stf.Username] = &stf
	return stf, nil
}

func (repo *staffRepository) GetStaffByUsername(_ context.Context, username string) (staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if stf, ok := repo.db.staff[username]; ok {
		return *stf, nil
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) QueryAllStaff(_ context.Context) ([]staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	all := make([]staff.Staff, 0, len(repo.db.staff))
	for _, stf := range repo.db.staff {
		all = append(all, *stf)
	}
	return all, nil
}

func (repo *staffRepository) UpdateStaffPassword(_ context.Context, username string, hash []byte, updatedAt time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	stf, ok := repo.db.staff[username]
	if !ok {
		return staff.ErrNotFound
	}
	stf.PasswordHash = hash
	stf.UpdatedAt = updatedAt
	return nil
}

func (repo *staffRepository) SetStaffActive(_ context.Context, username string, active bool, updatedAt time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	stf, ok := repo.db.staff[username]
	if !ok {
		return staff.ErrNotFound
	}
	stf.Active = active
	stf.UpdatedAt = updatedAt
	return nil
}

func (repo *staffRepository) DeleteStaff(_ context.Context, username string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.staff[username]; !ok {
		return staff.ErrNotFound
	}
	delete(repo.db.staff, username)
	return nil
}
