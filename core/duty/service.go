package duty

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/learner"
)

var (
	// errors
	ErrNotFound   = errors.New("duty not found")
	ErrDutyExists = errors.New("a duty with this name already exists")

	// ErrCapacityExceeded is returned when creating or growing a duty would
	// push the total capacity past the learner population.
	ErrCapacityExceeded = errors.New("total duty capacity would exceed the learner population")

	// ErrCapacityMismatch is the base error for assignment-run precondition
	// failures; match with errors.Is.
	ErrCapacityMismatch = errors.New("duty capacity does not match the learner count")
	ErrSurplusCapacity  = fmt.Errorf("%w: more duty slots than learners", ErrCapacityMismatch)
	ErrDeficitCapacity  = fmt.Errorf("%w: fewer duty slots than learners", ErrCapacityMismatch)

	// ErrUnsatisfiable is returned when the repeat-avoidance rule cannot be
	// honored for some learner; the run is abandoned with nothing persisted.
	ErrUnsatisfiable = errors.New("cannot assign duties without repeating a learner's previous duty")
)

type (
	// AssignedFilter narrows assigned-duty listings. Zero-valued fields are
	// ignored.
	AssignedFilter struct {
		Duty      string
		LearnerID string
		Date      *core.Date
	}

	Repository interface {
		// CreateDuty inserts the duty and increments the total-capacity
		// counter by its capacity in the same transaction.
		CreateDuty(ctx context.Context, d Duty) error
		GetDuty(ctx context.Context, name string) (Duty, error)
		QueryAllDuties(ctx context.Context) ([]Duty, error)
		// UpdateDuty writes the duty and adjusts the total-capacity counter
		// by capacityDelta in the same transaction.
		UpdateDuty(ctx context.Context, d Duty, capacityDelta int) (Duty, error)
		// DeleteDuty removes the duty and decrements the total-capacity
		// counter by its capacity in the same transaction; it returns the
		// deleted duty.
		DeleteDuty(ctx context.Context, name string) (Duty, error)
		// TotalCapacity reads the total-capacity counter document.
		TotalCapacity(ctx context.Context) (int, error)

		// SaveAssignmentRun persists the batch and rewrites every affected
		// learner's last-duty reference as one transaction; on failure no
		// record is kept and no learner is touched.
		SaveAssignmentRun(ctx context.Context, records []AssignedDuty, lastDuties map[string]string) error
		FilterAssignedDuties(ctx context.Context, filter AssignedFilter) ([]AssignedDuty, error)
		// MarkAssignedCompleted flips the completed flag on the learner's
		// most recent assignment.
		MarkAssignedCompleted(ctx context.Context, learnerID string) error
	}

	Service struct {
		repo        Repository
		learnerRepo learner.Repository
		mailSvc     core.EmailService
		conf        *core.Config
	}
)

func NewService(repo Repository, learnerRepo learner.Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:        repo,
		learnerRepo: learnerRepo,
		mailSvc:     mailSvc,
		conf:        conf,
	}
}

// Capacity ledger

// Create registers a duty. It fails with ErrCapacityExceeded when the new
// capacity would push the duty inventory past the learner population it must
// cover.
func (svc *Service) Create(ctx context.Context, nd NewDuty) (Duty, error) {
	total, err := svc.repo.TotalCapacity(ctx)
	if err != nil {
		return Duty{}, err
	}
	totalLearners, err := svc.learnerRepo.TotalLearners(ctx)
	if err != nil {
		return Duty{}, err
	}
	if total+nd.Capacity > totalLearners {
		return Duty{}, ErrCapacityExceeded
	}

	d := Duty{Name: nd.Name, Description: nd.Description, Capacity: nd.Capacity}
	if err = svc.repo.CreateDuty(ctx, d); err != nil {
		return Duty{}, err
	}
	return d, nil
}

func (svc *Service) Get(ctx context.Context, name string) (Duty, error) {
	return svc.repo.GetDuty(ctx, name)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Duty, error) {
	return svc.repo.QueryAllDuties(ctx)
}

// Update edits a duty's description and/or capacity; a capacity change is
// applied to the total-capacity counter in the same transaction.
func (svc *Service) Update(ctx context.Context, name string, ud UpdateDuty) (Duty, error) {
	d, err := svc.repo.GetDuty(ctx, name)
	if err != nil {
		return Duty{}, err
	}

	var delta int
	if ud.Capacity != nil {
		if *ud.Capacity == 0 {
			return Duty{}, core.NewValidationError(
				errors.New("a duty cannot be updated to zero capacity, delete it instead"),
				core.FieldError{Field: "participants", Error: "delete the duty instead"},
			)
		}
		delta = *ud.Capacity - d.Capacity
		if delta > 0 {
			total, err := svc.repo.TotalCapacity(ctx)
			if err != nil {
				return Duty{}, err
			}
			totalLearners, err := svc.learnerRepo.TotalLearners(ctx)
			if err != nil {
				return Duty{}, err
			}
			if total+delta > totalLearners {
				return Duty{}, ErrCapacityExceeded
			}
		}
		d.Capacity = *ud.Capacity
	}
	if ud.Description != nil {
		d.Description = *ud.Description
	}
	return svc.repo.UpdateDuty(ctx, d, delta)
}

// Delete removes a duty and releases its capacity from the counter.
func (svc *Service) Delete(ctx context.Context, name string) error {
	_, err := svc.repo.DeleteDuty(ctx, name)
	return err
}

func (svc *Service) TotalCapacity(ctx context.Context) (int, error) {
	return svc.repo.TotalCapacity(ctx)
}

// Assignment runs

// Run executes a full assignment over all currently-present learners and all
// registered duties, persisting the batch and the learners' last-duty
// references together. When the present population does not match the
// total-learners counter the run is skipped silently and (nil, nil) returned.
func (svc *Service) Run(ctx context.Context) ([]AssignedDuty, error) {
	totalLearners, err := svc.learnerRepo.TotalLearners(ctx)
	if err != nil {
		return nil, err
	}
	present := true
	learners, err := svc.learnerRepo.FilterLearners(ctx, learner.QueryFilter{Present: &present})
	if err != nil {
		return nil, err
	}
	if len(learners) != totalLearners {
		// not everyone expected is present; wait for the next fire
		return nil, nil
	}

	duties, err := svc.repo.QueryAllDuties(ctx)
	if err != nil {
		return nil, err
	}

	records, lastDuties, err := assign(learners, duties, NowFunc(), newRand())
	if err != nil {
		return nil, err
	}
	if err = svc.repo.SaveAssignmentRun(ctx, records, lastDuties); err != nil {
		return nil, err
	}

	svc.sendRosterReport(records)
	return records, nil
}

// AssignAdHoc produces an assignment for an explicit learner and duty set,
// for days when only part of the hostel is around. The result is returned to
// the caller without being persisted and without touching last-duty
// references.
func (svc *Service) AssignAdHoc(ctx context.Context, learnerIDs []string, duties []NewDuty) ([]AssignedDuty, error) {
	learners := make([]learner.Learner, 0, len(learnerIDs))
	for _, id := range learnerIDs {
		l, err := svc.learnerRepo.GetLearnerByID(ctx, id)
		if err != nil {
			return nil, err
		}
		learners = append(learners, l)
	}

	ds := make([]Duty, 0, len(duties))
	for _, nd := range duties {
		ds = append(ds, Duty{Name: nd.Name, Description: nd.Description, Capacity: nd.Capacity})
	}

	records, _, err := assign(learners, ds, NowFunc(), newRand())
	return records, err
}

// QueryAssigned lists assignment records matching the filter.
func (svc *Service) QueryAssigned(ctx context.Context, filter AssignedFilter) ([]AssignedDuty, error) {
	return svc.repo.FilterAssignedDuties(ctx, filter)
}

// MarkCompleted flips the completed flag on each learner's latest assignment.
// Learners outside the actor's block partition, or without a record, end up
// in the failed list.
func (svc *Service) MarkCompleted(ctx context.Context, actor access.Role, learnerIDs []string) (marked, failed []string, err error) {
	for _, id := range learnerIDs {
		l, err := svc.learnerRepo.GetLearnerByID(ctx, id)
		if err != nil {
			if errors.Is(err, learner.ErrNotFound) {
				failed = append(failed, id)
				continue
			}
			return marked, failed, err
		}
		if !access.CanAccessBlock(actor, l.Block) {
			failed = append(failed, id)
			continue
		}
		if err := svc.repo.MarkAssignedCompleted(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				failed = append(failed, id)
				continue
			}
			return marked, failed, err
		}
		marked = append(marked, id)
	}
	return marked, failed, nil
}

func (svc *Service) sendRosterReport(records []AssignedDuty) {
	if svc.mailSvc == nil || svc.conf == nil || len(svc.conf.Duty.ReportRecipients) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("Duty roster for the week:\n\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "- %s %s (block %s): %s\n",
			rec.Learner.FirstName, rec.Learner.LastName, rec.Learner.Block, rec.Duty)
	}

	msg := &core.EmailMessage{
		Subject: "Weekly duty roster",
		BodyStr: b.String(),
	}
	for _, addr := range svc.conf.Duty.ReportRecipients {
		msg.To = append(msg.To, mail.Address{Address: addr})
	}
	svc.mailSvc.SendMessages(msg)
}
