// Package inmemdb provides in-memory repository implementations used by
// tests and local development. Semantics mirror the Mongo repositories,
// counter documents included.
package inmemdb

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/stjosephs/hostel/core/attendance"
	"github.com/stjosephs/hostel/core/duty"
	"github.com/stjosephs/hostel/core/learner"
	"github.com/stjosephs/hostel/core/staff"
)

var pkCount int

type (
	DB struct {
		sync.RWMutex

		staff      map[string]*staff.Staff
		learners   map[string]*learner.Learner
		duties     map[string]*duty.Duty
		assigned   []*duty.AssignedDuty
		attendance map[string]*attendance.Attendance

		// counter documents
		totalLearners int
		totalCapacity int
	}
)

func Open() *DB {
	return &DB{
		staff:      make(map[string]*staff.Staff),
		learners:   make(map[string]*learner.Learner),
		duties:     make(map[string]*duty.Duty),
		attendance: make(map[string]*attendance.Attendance),
	}
}

// nextID mints a 24-char hex id, the same shape Mongo ObjectIDs have.
func nextID() string {
	pkCount++
	return fmt.Sprintf("%024x", pkCount)
}

func validID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
