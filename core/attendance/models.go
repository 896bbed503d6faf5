package attendance

import (
	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/learner"
)

// Activity is a daily hostel activity attendance is taken for.
type Activity string

const (
	ActivityBreakfast      Activity = "breakfast"
	ActivitySupper         Activity = "supper"
	ActivityChurch         Activity = "church"
	ActivityAfternoonStudy Activity = "afternoon-study"
	ActivityEveningStudy   Activity = "evening-study"
)

var AllActivities = []Activity{
	ActivityBreakfast,
	ActivitySupper,
	ActivityChurch,
	ActivityAfternoonStudy,
	ActivityEveningStudy,
}

func ValidActivity(a Activity) bool {
	for _, act := range AllActivities {
		if act == a {
			return true
		}
	}
	return false
}

// Attendance marks one learner present or absent for one activity on one day.
// At most one record exists per (learner, activity, day).
type Attendance struct {
	ID       string           `json:"id" bson:"_id,omitempty"`
	Activity Activity         `json:"activity" bson:"activity"`
	Learner  learner.Snapshot `json:"learner_details" bson:"learner_details"`
	Present  bool             `json:"present" bson:"present"`
	Date     core.Date        `json:"date" bson:"date,inline"`
}
