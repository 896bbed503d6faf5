package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/attendance"
	"github.com/stjosephs/hostel/core/learner"
	inmemdb "github.com/stjosephs/hostel/storage/inmem"
	testutil "github.com/stjosephs/hostel/tests"
)

func setup(t *testing.T) (*attendance.Service, attendance.Repository, learner.Repository) {
	db := inmemdb.Open()
	attRepo := inmemdb.NewAttendanceRepository(db)
	learnerRepo := inmemdb.NewLearnerRepository(db)
	return attendance.NewService(attRepo, learnerRepo), attRepo, learnerRepo
}

func queryAll(t *testing.T, svc *attendance.Service) []attendance.Attendance {
	records, err := svc.Query(context.Background(), access.RoleSuperUser, attendance.QueryFilter{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	return records
}

func Test_Service_Reconcile_upsert(t *testing.T) {
	svc, _, learnerRepo := setup(t)
	ctx := context.Background()
	now := time.Date(2021, 5, 10, 7, 0, 0, 0, time.UTC)

	l := testutil.CreateLearner(t, learnerRepo, "Ana", "M", access.BlockA, 8, 1)

	// first call creates the record
	if err := svc.Reconcile(ctx, access.RoleJrMatron, attendance.ActivityBreakfast, now, []string{l.ID}, nil); err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	records := queryAll(t, svc)
	if len(records) != 1 {
		t.Fatalf("got %d records; want 1", len(records))
	}
	if !records[0].Present {
		t.Error("record not marked present")
	}

	// repeating the same call is a no-op
	if err := svc.Reconcile(ctx, access.RoleJrMatron, attendance.ActivityBreakfast, now, []string{l.ID}, nil); err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if records = queryAll(t, svc); len(records) != 1 {
		t.Fatalf("idempotent call produced %d records; want 1", len(records))
	}

	// moving the learner to the absent list flips the same record
	if err := svc.Reconcile(ctx, access.RoleJrMatron, attendance.ActivityBreakfast, now, nil, []string{l.ID}); err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	records = queryAll(t, svc)
	if len(records) != 1 {
		t.Fatalf("flip produced %d records; want 1", len(records))
	}
	if records[0].Present {
		t.Error("record still marked present after flip")
	}

	// the learner's presence flag was mirrored
	refreshed, err := learnerRepo.GetLearnerByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetLearnerByID() failed: %v", err)
	}
	if refreshed.Present {
		t.Error("learner presence flag not mirrored")
	}
}

func Test_Service_Reconcile_separateActivities(t *testing.T) {
	svc, _, learnerRepo := setup(t)
	ctx := context.Background()
	now := time.Date(2021, 5, 10, 7, 0, 0, 0, time.UTC)

	l := testutil.CreateLearner(t, learnerRepo, "Ana", "M", access.BlockA, 8, 1)

	for _, activity := range []attendance.Activity{attendance.ActivityBreakfast, attendance.ActivitySupper} {
		if err := svc.Reconcile(ctx, access.RoleJrMatron, activity, now, []string{l.ID}, nil); err != nil {
			t.Fatalf("Reconcile(%s) failed: %v", activity, err)
		}
	}
	if records := queryAll(t, svc); len(records) != 2 {
		t.Errorf("got %d records; want one per activity", len(records))
	}

	// a new day gets a new record
	if err := svc.Reconcile(ctx, access.RoleJrMatron, attendance.ActivityBreakfast, now.AddDate(0, 0, 1), []string{l.ID}, nil); err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if records := queryAll(t, svc); len(records) != 3 {
		t.Errorf("got %d records; want 3", len(records))
	}
}

func Test_Service_Reconcile_skipsOutsidePartition(t *testing.T) {
	svc, _, learnerRepo := setup(t)
	ctx := context.Background()

	inBlock := testutil.CreateLearner(t, learnerRepo, "Ana", "M", access.BlockA, 8, 1)
	outOfBlock := testutil.CreateLearner(t, learnerRepo, "Cara", "M", access.BlockC, 10, 2)

	err := svc.Reconcile(ctx, access.RoleJrMatron, attendance.ActivityChurch, time.Now(),
		[]string{inBlock.ID, outOfBlock.ID}, nil)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}

	records := queryAll(t, svc)
	if len(records) != 1 {
		t.Fatalf("got %d records; want 1", len(records))
	}
	if records[0].Learner.ID != inBlock.ID {
		t.Errorf("recorded learner = %s; want %s", records[0].Learner.ID, inBlock.ID)
	}
}

func Test_Service_Reconcile_skipsUnknownLearner(t *testing.T) {
	svc, _, learnerRepo := setup(t)
	ctx := context.Background()

	l := testutil.CreateLearner(t, learnerRepo, "Ana", "M", access.BlockA, 8, 1)

	err := svc.Reconcile(ctx, access.RoleChiefMatron, attendance.ActivityEveningStudy, time.Now(),
		[]string{"000000000000000000000bad", l.ID}, nil)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if records := queryAll(t, svc); len(records) != 1 {
		t.Errorf("got %d records; want the unknown id skipped", len(records))
	}
}

func Test_Service_Query_partition(t *testing.T) {
	svc, _, learnerRepo := setup(t)
	ctx := context.Background()

	blockA := testutil.CreateLearner(t, learnerRepo, "Ana", "M", access.BlockA, 8, 1)
	blockC := testutil.CreateLearner(t, learnerRepo, "Cara", "M", access.BlockC, 10, 2)

	if err := svc.Reconcile(ctx, access.RoleSuperUser, attendance.ActivitySupper, time.Now(),
		[]string{blockA.ID, blockC.ID}, nil); err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}

	tests := []struct {
		name string
		role access.Role
		want int
	}{
		{name: "jr matron sees only blocks A-B", role: access.RoleJrMatron, want: 1},
		{name: "sr matron sees only blocks C-D", role: access.RoleSrMatron, want: 1},
		{name: "chief matron sees all", role: access.RoleChiefMatron, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := svc.Query(ctx, tt.role, attendance.QueryFilter{})
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("got %d records; want %d", len(records), tt.want)
			}
		})
	}
}
