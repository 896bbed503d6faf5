package inmemdb

import (
	"context"

	"github.com/stjosephs/hostel/core/duty"
	"github.com/stjosephs/hostel/core/learner"
)

type dutyRepository struct {
	db *DB
}

var _ duty.Repository = (*dutyRepository)(nil) // interface compliance check

func NewDutyRepository(db *DB) duty.Repository {
	return &dutyRepository{db: db}
}

func (repo *dutyRepository) CreateDuty(_ context.Context, d duty.Duty) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.duties[d.Name]; ok {
		return duty.ErrDutyExists
	}
	repo.db.duties[d.Name] = &d
	repo.db.totalCapacity += d.Capacity
	return nil
}

func (repo *dutyRepository) GetDuty(_ context.Context, name string) (duty.Duty, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if d, ok := repo.db.duties[name]; ok {
		return *d, nil
	}
	return duty.Duty{}, duty.ErrNotFound
}

func (repo *dutyRepository) QueryAllDuties(_ context.Context) ([]duty.Duty, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	duties := make([]duty.Duty, 0, len(repo.db.duties))
	for _, d := range repo.db.duties {
		duties = append(duties, *d)
	}
	return duties, nil
}

func (repo *dutyRepository) UpdateDuty(_ context.Context, d duty.Duty, capacityDelta int) (duty.Duty, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.duties[d.Name]; !ok {
		return duty.Duty{}, duty.ErrNotFound
	}
	repo.db.duties[d.Name] = &d
	repo.db.totalCapacity += capacityDelta
	return d, nil
}

func (repo *dutyRepository) DeleteDuty(_ context.Context, name string) (duty.Duty, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	d, ok := repo.db.duties[name]
	if !ok {
		return duty.Duty{}, duty.ErrNotFound
	}
	delete(repo.db.duties, name)
	repo.db.totalCapacity -= d.Capacity
	return *d, nil
}

func (repo *dutyRepository) TotalCapacity(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.totalCapacity, nil
}

func (repo *dutyRepository) SaveAssignmentRun(_ context.Context, records []duty.AssignedDuty, lastDuties map[string]string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	// all-or-nothing: check every learner before writing anything
	for id := range lastDuties {
		if _, ok := repo.db.learners[id]; !ok {
			return learner.ErrNotFound
		}
	}

	for i := range records {
		rec := records[i]
		rec.ID = nextID()
		repo.db.assigned = append(repo.db.assigned, &rec)
	}
	for id, dutyName := range lastDuties {
		repo.db.learners[id].LastDuty = dutyName
	}
	return nil
}

func (repo *dutyRepository) FilterAssignedDuties(_ context.Context, filter duty.AssignedFilter) ([]duty.AssignedDuty, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]duty.AssignedDuty, 0)
	for _, rec := range repo.db.assigned {
		if filter.Duty != "" && rec.Duty != filter.Duty {
			continue
		}
		if filter.LearnerID != "" && rec.Learner.ID != filter.LearnerID {
			continue
		}
		if filter.Date != nil && !rec.Date.Equal(*filter.Date) {
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (repo *dutyRepository) MarkAssignedCompleted(_ context.Context, learnerID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	// records are appended in run order; the last match is the latest
	for i := len(repo.db.assigned) - 1; i >= 0; i-- {
		if repo.db.assigned[i].Learner.ID == learnerID {
			repo.db.assigned[i].Completed = true
			return nil
		}
	}
	return duty.ErrNotFound
}
