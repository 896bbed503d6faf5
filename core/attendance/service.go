package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/learner"
)

// ErrNotFound is returned when no attendance record matches the given key.
var ErrNotFound = errors.New("attendance record not found")

type (
	// QueryFilter narrows attendance listings. Zero-valued fields are
	// ignored.
	QueryFilter struct {
		Activity Activity
		Day      int
		WeekDay  *int
		Month    int
		Year     int
	}

	Repository interface {
		// GetAttendance looks up the record keyed by (learner, activity, day).
		GetAttendance(ctx context.Context, learnerID string, activity Activity, date core.Date) (Attendance, error)
		CreateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		SetAttendancePresent(ctx context.Context, id string, present bool) error
		FilterAttendance(ctx context.Context, filter QueryFilter) ([]Attendance, error)
	}

	Service struct {
		repo        Repository
		learnerRepo learner.Repository
	}
)

func NewService(repo Repository, learnerRepo learner.Repository) *Service {
	return &Service{repo: repo, learnerRepo: learnerRepo}
}

// Reconcile upserts attendance for one activity and day from a present-list
// and an absent-list of learner ids. Unknown learners and learners outside
// the actor's block partition are skipped; for the rest the stored record is
// created, left alone, or flipped so that repeated calls with the same inputs
// settle on the same state. The learner's presence flag is mirrored alongside.
func (svc *Service) Reconcile(ctx context.Context, actor access.Role, activity Activity, now time.Time, presentIDs, absentIDs []string) error {
	date := core.NewDate(now)
	if err := svc.reconcileList(ctx, actor, activity, date, presentIDs, true); err != nil {
		return err
	}
	return svc.reconcileList(ctx, actor, activity, date, absentIDs, false)
}

func (svc *Service) reconcileList(ctx context.Context, actor access.Role, activity Activity, date core.Date, ids []string, present bool) error {
	for _, id := range ids {
		l, err := svc.learnerRepo.GetLearnerByID(ctx, id)
		if err != nil {
			if errors.Is(err, learner.ErrNotFound) {
				continue
			}
			return err
		}
		if !access.CanAccessBlock(actor, l.Block) {
			continue
		}

		if err = svc.upsert(ctx, l, activity, date, present); err != nil {
			return err
		}
		if l.Present != present {
			if err = svc.learnerRepo.SetLearnerPresence(ctx, l.ID, present, time.Now().UTC()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (svc *Service) upsert(ctx context.Context, l learner.Learner, activity Activity, date core.Date, present bool) error {
	existing, err := svc.repo.GetAttendance(ctx, l.ID, activity, date)
	switch {
	case err == nil:
		if existing.Present == present {
			return nil // already correct
		}
		return svc.repo.SetAttendancePresent(ctx, existing.ID, present)
	case errors.Is(err, ErrNotFound):
		_, err = svc.repo.CreateAttendance(ctx, Attendance{
			Activity: activity,
			Learner:  l.Snapshot(),
			Present:  present,
			Date:     date,
		})
		return err
	default:
		return err
	}
}

// Query lists attendance records matching the filter, dropping rows outside
// the actor's block partition.
func (svc *Service) Query(ctx context.Context, actor access.Role, filter QueryFilter) ([]Attendance, error) {
	records, err := svc.repo.FilterAttendance(ctx, filter)
	if err != nil {
		return nil, err
	}
	visible := make([]Attendance, 0, len(records))
	for _, rec := range records {
		if access.CanAccessBlock(actor, rec.Learner.Block) {
			visible = append(visible, rec)
		}
	}
	return visible, nil
}
