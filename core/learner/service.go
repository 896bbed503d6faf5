package learner

import (
	"context"
	"errors"
	"time"

	"github.com/stjosephs/hostel/core/access"
)

// ErrNotFound is returned when no learner matches the given identifier.
var ErrNotFound = errors.New("learner not found")

type (
	// QueryFilter narrows learner listings. Zero-valued fields are ignored.
	QueryFilter struct {
		Blocks  []access.Block
		Present *bool
	}

	Repository interface {
		// CreateLearner inserts the learner and increments the
		// total-learners counter in the same transaction.
		CreateLearner(ctx context.Context, l Learner) (Learner, error)
		GetLearnerByID(ctx context.Context, id string) (Learner, error)
		QueryAllLearners(ctx context.Context) ([]Learner, error)
		// FilterLearners applies AND operation on available QueryFilter fields.
		FilterLearners(ctx context.Context, filter QueryFilter) ([]Learner, error)
		SetLearnerPresence(ctx context.Context, id string, present bool, updatedAt time.Time) error
		// DeleteLearner removes the learner and decrements the
		// total-learners counter in the same transaction.
		DeleteLearner(ctx context.Context, id string) error
		// TotalLearners reads the total-learners counter document.
		TotalLearners(ctx context.Context) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a learner in the actor's own partition. Matrons may only
// add learners to the blocks they are in charge of.
func (svc *Service) Create(ctx context.Context, actor access.Role, nl NewLearner) (Learner, error) {
	block := access.Block(nl.Block)
	if !access.CanAccessBlock(actor, block) {
		return Learner{}, access.ErrForbidden
	}

	now := time.Now().UTC()
	l := Learner{
		FirstName: nl.FirstName,
		LastName:  nl.LastName,
		Block:     block,
		Grade:     nl.Grade,
		Room:      nl.Room,
		Present:   true,
		Image:     nl.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateLearner(ctx, l)
}

// Get returns a learner, enforcing the caller's block partition.
func (svc *Service) Get(ctx context.Context, actor access.Role, id string) (Learner, error) {
	l, err := svc.repo.GetLearnerByID(ctx, id)
	if err != nil {
		return Learner{}, err
	}
	if !access.CanAccessBlock(actor, l.Block) {
		return Learner{}, access.ErrForbidden
	}
	return l, nil
}

// QueryAll lists the learners visible to the actor.
func (svc *Service) QueryAll(ctx context.Context, actor access.Role) ([]Learner, error) {
	return svc.repo.FilterLearners(ctx, QueryFilter{Blocks: access.AllowedBlocks(actor)})
}

// Image returns a learner's profile picture, enforcing the block partition.
func (svc *Service) Image(ctx context.Context, actor access.Role, id string) ([]byte, error) {
	l, err := svc.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return l.Image, nil
}

// Delete removes a learner, enforcing the block partition. The total-learners
// counter is decremented with the delete.
func (svc *Service) Delete(ctx context.Context, actor access.Role, id string) error {
	l, err := svc.repo.GetLearnerByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanAccessBlock(actor, l.Block) {
		return access.ErrForbidden
	}
	return svc.repo.DeleteLearner(ctx, l.ID)
}
