package inmemdb

import (
	"context"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) GetAttendance(_ context.Context, learnerID string, activity attendance.Activity, date core.Date) (attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, att := range repo.db.attendance {
		if att.Learner.ID == learnerID && att.Activity == activity && att.Date.Equal(date) {
			return *att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) CreateAttendance(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	att.ID = nextID()
	repo.db.attendance[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) SetAttendancePresent(_ context.Context, id string, present bool) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	att, ok := repo.db.attendance[id]
	if !ok {
		return attendance.ErrNotFound
	}
	att.Present = present
	return nil
}

func (repo *attendanceRepository) FilterAttendance(_ context.Context, filter attendance.QueryFilter) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Attendance, 0)
	for _, att := range repo.db.attendance {
		if filter.Activity != "" && att.Activity != filter.Activity {
			continue
		}
		if filter.Day != 0 && att.Date.Day != filter.Day {
			continue
		}
		if filter.WeekDay != nil && att.Date.WeekDay != *filter.WeekDay {
			continue
		}
		if filter.Month != 0 && att.Date.Month != filter.Month {
			continue
		}
		if filter.Year != 0 && att.Date.Year != filter.Year {
			continue
		}
		records = append(records, *att)
	}
	return records, nil
}
