package duty

import (
	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/learner"
)

// Duty is a recurring chore with a fixed learner capacity. The name doubles
// as the document key.
type Duty struct {
	Name        string `json:"id" bson:"_id"`
	Description string `json:"description" bson:"description"`
	// Capacity is the number of learners the duty requires on each run.
	Capacity int `json:"participants" bson:"participants"`
}

// AssignedDuty records one learner-to-duty mapping produced by an assignment
// run. Records are historical and never deleted.
type AssignedDuty struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	Learner   learner.Snapshot `json:"learner_details" bson:"learner_details"`
	Duty      string           `json:"assigned_duty" bson:"assigned_duty"`
	Date      core.Date        `json:"date" bson:"date,inline"`
	Completed bool             `json:"completed" bson:"completed"`
}

// NewDuty contains information needed to register a new Duty.
type NewDuty struct {
	Name        string `json:"id" validate:"required,min=6,max=50"`
	Description string `json:"description" validate:"required,min=6,max=100"`
	Capacity    int    `json:"participants" validate:"min=0"`
}

// UpdateDuty contains the mutable Duty fields; nil fields are left untouched.
type UpdateDuty struct {
	Description *string `json:"description" validate:"omitempty,min=6,max=100"`
	Capacity    *int    `json:"participants" validate:"omitempty,min=0"`
}
