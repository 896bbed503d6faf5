package core

import "time"

// Date is the calendar stamp recorded on attendance and duty-assignment
// documents. WeekDay follows time.Weekday numbering (Sunday = 0).
type Date struct {
	Day     int `json:"day" bson:"day"`
	WeekDay int `json:"week_day" bson:"week_day"`
	Month   int `json:"month" bson:"month"`
	Year    int `json:"year" bson:"year"`
}

func NewDate(t time.Time) Date {
	return Date{
		Day:     t.Day(),
		WeekDay: int(t.Weekday()),
		Month:   int(t.Month()),
		Year:    t.Year(),
	}
}

func (d Date) Equal(other Date) bool {
	return d.Day == other.Day && d.Month == other.Month && d.Year == other.Year
}
