package inmemdb

import (
	"context"
	"time"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/learner"
)

type learnerRepository struct {
	db *DB
}

var _ learner.Repository = (*learnerRepository)(nil) // interface compliance check

func NewLearnerRepository(db *DB) learner.Repository {
	return &learnerRepository{db: db}
}

func (repo *learnerRepository) CreateLearner(_ context.Context, l learner.Learner) (learner.Learner, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	l.ID = nextID()
	repo.db.learners[l.ID] = &l
	repo.db.totalLearners++
	return l, nil
}

func (repo *learnerRepository) GetLearnerByID(_ context.Context, id string) (learner.Learner, error) {
	if !validID(id) {
		return learner.Learner{}, core.ErrInvalidID
	}

	repo.db.RLock()
	defer repo.db.RUnlock()

	if l, ok := repo.db.learners[id]; ok {
		return *l, nil
	}
	return learner.Learner{}, learner.ErrNotFound
}

func (repo *learnerRepository) QueryAllLearners(_ context.Context) ([]learner.Learner, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *learnerRepository) FilterLearners(_ context.Context, filter learner.QueryFilter) ([]learner.Learner, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	learners := make([]learner.Learner, 0)
	for _, l := range repo.query() {
		if len(filter.Blocks) > 0 && !containsBlock(filter.Blocks, l.Block) {
			continue
		}
		if filter.Present != nil && l.Present != *filter.Present {
			continue
		}
		learners = append(learners, l)
	}
	return learners, nil
}

func (repo *learnerRepository) SetLearnerPresence(_ context.Context, id string, present bool, updatedAt time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	l, ok := repo.db.learners[id]
	if !ok {
		return learner.ErrNotFound
	}
	l.Present = present
	l.UpdatedAt = updatedAt
	return nil
}

func (repo *learnerRepository) DeleteLearner(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.learners[id]; !ok {
		return learner.ErrNotFound
	}
	delete(repo.db.learners, id)
	repo.db.totalLearners--
	return nil
}

func (repo *learnerRepository) TotalLearners(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.totalLearners, nil
}

func (repo *learnerRepository) query() []learner.Learner {
	learners := make([]learner.Learner, 0, len(repo.db.learners))
	for _, l := range repo.db.learners {
		learners = append(learners, *l)
	}
	return learners
}

func containsBlock(blocks []access.Block, b access.Block) bool {
	for _, blk := range blocks {
		if blk == b {
			return true
		}
	}
	return false
}
