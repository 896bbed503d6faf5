package duty

import (
	"math/rand"
	"time"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/learner"
)

// NowFunc returns the timestamp stamped on assignment runs. mockable
var NowFunc = time.Now

// newRand seeds the draw source for one assignment run. mockable
var newRand = func() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// assign distributes the duties across the learners: every learner receives
// exactly one duty and every duty slot is consumed. Learners and duty slots
// are drawn uniformly at random; a learner is never handed the duty they came
// from last run. Returns the produced records and the learner-to-duty mapping
// the caller must write back as each learner's new last duty.
//
// Drawing a duty uniformly from the slots still open, minus the learner's
// previous duty, is distributionally the same as the redraw-until-valid loop
// it replaces, but terminates: when the only remaining slots belong to the
// learner's previous duty the run fails with ErrUnsatisfiable instead of
// spinning.
func assign(learners []learner.Learner, duties []Duty, now time.Time, rng *rand.Rand) ([]AssignedDuty, map[string]string, error) {
	var slots int
	for _, d := range duties {
		slots += d.Capacity
	}
	if slots > len(learners) {
		return nil, nil, ErrSurplusCapacity
	}
	if slots < len(learners) {
		return nil, nil, ErrDeficitCapacity
	}

	pool := make([]learner.Learner, len(learners))
	copy(pool, learners)

	open := make([]Duty, 0, len(duties))
	for _, d := range duties {
		if d.Capacity > 0 {
			open = append(open, d)
		}
	}

	date := core.NewDate(now)
	records := make([]AssignedDuty, 0, len(learners))
	lastDuties := make(map[string]string, len(learners))

	for len(pool) > 0 {
		li := rng.Intn(len(pool))
		l := pool[li]

		di, err := drawDuty(open, l.LastDuty, rng)
		if err != nil {
			return nil, nil, err
		}

		records = append(records, AssignedDuty{
			Learner:   l.Snapshot(),
			Duty:      open[di].Name,
			Date:      date,
			Completed: false,
		})
		lastDuties[l.ID] = open[di].Name

		open[di].Capacity--
		if open[di].Capacity == 0 {
			open = append(open[:di], open[di+1:]...)
		}
		pool = append(pool[:li], pool[li+1:]...)
	}
	return records, lastDuties, nil
}

// drawDuty picks a duty with remaining capacity uniformly at random,
// excluding the learner's previous duty.
func drawDuty(open []Duty, lastDuty string, rng *rand.Rand) (int, error) {
	candidates := make([]int, 0, len(open))
	for i, d := range open {
		if d.Name != lastDuty {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, ErrUnsatisfiable
	}
	return candidates[rng.Intn(len(candidates))], nil
}
