package learner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/learner"
	inmemdb "github.com/stjosephs/hostel/storage/inmem"
	testutil "github.com/stjosephs/hostel/tests"
)

func setup(t *testing.T) (*learner.Service, learner.Repository) {
	repo := inmemdb.NewLearnerRepository(inmemdb.Open())
	return learner.NewService(repo), repo
}

func Test_Service_Create_partition(t *testing.T) {
	tests := []struct {
		name    string
		actor   access.Role
		block   string
		grade   int
		wantErr error
	}{
		{name: "jr matron adds to block A", actor: access.RoleJrMatron, block: "A", grade: 8},
		{name: "jr matron adds to block B", actor: access.RoleJrMatron, block: "B", grade: 9},
		{name: "jr matron cannot add to block C", actor: access.RoleJrMatron, block: "C", grade: 10, wantErr: access.ErrForbidden},
		{name: "sr matron adds to block D", actor: access.RoleSrMatron, block: "D", grade: 12},
		{name: "sr matron cannot add to block A", actor: access.RoleSrMatron, block: "A", grade: 8, wantErr: access.ErrForbidden},
		{name: "chief matron adds anywhere", actor: access.RoleChiefMatron, block: "C", grade: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setup(t)
			_, err := svc.Create(context.Background(), tt.actor, learner.NewLearner{
				FirstName: "Thandi",
				LastName:  "Mwale",
				Block:     tt.block,
				Grade:     tt.grade,
				Room:      1,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_Service_Create_countsLearners(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, access.RoleChiefMatron, learner.NewLearner{
			FirstName: "Thandi",
			LastName:  "Mwale",
			Block:     "A",
			Grade:     8,
			Room:      1 + i,
		}); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	if total, _ := repo.TotalLearners(ctx); total != 3 {
		t.Errorf("total learners = %d; want 3", total)
	}
}

func Test_Service_Get_partition(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	blockC := testutil.CreateLearner(t, repo, "Cara", "M", access.BlockC, 10, 2)

	if _, err := svc.Get(ctx, access.RoleJrMatron, blockC.ID); !errors.Is(err, access.ErrForbidden) {
		t.Errorf("Get() error = %v; want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, access.RoleSrMatron, blockC.ID); err != nil {
		t.Errorf("Get() failed: %v", err)
	}
	if _, err := svc.Get(ctx, access.RoleSrMatron, "not-an-id"); !errors.Is(err, core.ErrInvalidID) {
		t.Errorf("Get() error = %v; want ErrInvalidID", err)
	}
}

func Test_Service_QueryAll_partition(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateLearner(t, repo, "Ana", "M", access.BlockA, 8, 1)
	testutil.CreateLearner(t, repo, "Bea", "M", access.BlockB, 9, 1)
	testutil.CreateLearner(t, repo, "Cara", "M", access.BlockC, 10, 2)

	tests := []struct {
		role access.Role
		want int
	}{
		{role: access.RoleJrMatron, want: 2},
		{role: access.RoleSrMatron, want: 1},
		{role: access.RoleChiefMatron, want: 3},
		{role: access.RoleSuperUser, want: 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			learners, err := svc.QueryAll(ctx, tt.role)
			if err != nil {
				t.Fatalf("QueryAll() failed: %v", err)
			}
			if len(learners) != tt.want {
				t.Errorf("got %d learners; want %d", len(learners), tt.want)
			}
		})
	}
}

func Test_Service_Delete(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	l := testutil.CreateLearner(t, repo, "Ana", "M", access.BlockA, 8, 1)

	if err := svc.Delete(ctx, access.RoleSrMatron, l.ID); !errors.Is(err, access.ErrForbidden) {
		t.Errorf("Delete() error = %v; want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, access.RoleJrMatron, l.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if total, _ := repo.TotalLearners(ctx); total != 0 {
		t.Errorf("total learners = %d; want 0", total)
	}
	if err := svc.Delete(ctx, access.RoleJrMatron, l.ID); !errors.Is(err, learner.ErrNotFound) {
		t.Errorf("Delete() error = %v; want ErrNotFound", err)
	}
}

func Test_NewLearner_Validate_gradeBand(t *testing.T) {
	tests := []struct {
		block   string
		grade   int
		wantErr bool
	}{
		{block: "A", grade: 8},
		{block: "A", grade: 9, wantErr: true},
		{block: "B", grade: 9},
		{block: "B", grade: 10, wantErr: true},
		{block: "C", grade: 10},
		{block: "D", grade: 11},
		{block: "D", grade: 12},
		{block: "D", grade: 10, wantErr: true},
	}
	for _, tt := range tests {
		if got := learner.GradeAllowedInBlock(access.Block(tt.block), tt.grade); got == tt.wantErr {
			t.Errorf("GradeAllowedInBlock(%s, %d) = %v; want %v", tt.block, tt.grade, got, !tt.wantErr)
		}
	}
}
