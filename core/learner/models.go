package learner

import (
	"time"

	"github.com/stjosephs/hostel/core/access"
)

// Learner is a hostel resident.
type Learner struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	FirstName string       `json:"first_name" bson:"first_name"`
	LastName  string       `json:"last_name" bson:"last_name"`
	Block     access.Block `json:"block" bson:"block"`
	Grade     int          `json:"grade" bson:"grade"`
	Room      int          `json:"room" bson:"room"`
	Present   bool         `json:"present" bson:"present"`
	// LastDuty is the duty assigned on the previous run; the assignment
	// engine never hands a learner the same duty twice in a row.
	LastDuty  string    `json:"last_duty" bson:"last_duty"`
	Image     []byte    `json:"-" bson:"image,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// Snapshot is the denormalized learner identity embedded in attendance and
// assigned-duty documents at the time they are written.
type Snapshot struct {
	ID        string       `json:"id" bson:"id"`
	FirstName string       `json:"first_name" bson:"first_name"`
	LastName  string       `json:"last_name" bson:"last_name"`
	Block     access.Block `json:"block" bson:"block"`
	Grade     int          `json:"grade" bson:"grade"`
	Room      int          `json:"room" bson:"room"`
}

func (l *Learner) Snapshot() Snapshot {
	return Snapshot{
		ID:        l.ID,
		FirstName: l.FirstName,
		LastName:  l.LastName,
		Block:     l.Block,
		Grade:     l.Grade,
		Room:      l.Room,
	}
}

// NewLearner contains information needed to register a new Learner.
type NewLearner struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=20"`
	LastName  string `json:"last_name" validate:"required,min=2,max=20"`
	Block     string `json:"block" validate:"required,block"`
	Grade     int    `json:"grade" validate:"required,min=8,max=12"`
	Room      int    `json:"room" validate:"required,min=1,max=6"`
	Image     []byte `json:"-"`
}

// GradeAllowedInBlock reports whether a learner of the given grade may live in
// block. Each block houses a fixed grade band: A=8, B=9, C=10, D=11-12.
func GradeAllowedInBlock(block access.Block, grade int) bool {
	switch block {
	case access.BlockA:
		return grade == 8
	case access.BlockB:
		return grade == 9
	case access.BlockC:
		return grade == 10
	case access.BlockD:
		return grade >= 11 && grade <= 12
	}
	return false
}
