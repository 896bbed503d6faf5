package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/attendance"
	"github.com/stjosephs/hostel/core/learner"
)

// attendanceDoc is the persisted shape of attendance.Attendance.
type attendanceDoc struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty"`
	Activity attendance.Activity `bson:"activity"`
	Learner  learner.Snapshot    `bson:"learner_details"`
	Present  bool                `bson:"present"`
	Date     core.Date           `bson:"date,inline"`
}

func (doc attendanceDoc) toAttendance() attendance.Attendance {
	return attendance.Attendance{
		ID:       doc.ID.Hex(),
		Activity: doc.Activity,
		Learner:  doc.Learner,
		Present:  doc.Present,
		Date:     doc.Date,
	}
}

type attendanceRepository struct {
	db *mongo.Database
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *mongo.Database) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) col() *mongo.Collection {
	return repo.db.Collection(colAttendance)
}

func (repo *attendanceRepository) GetAttendance(ctx context.Context, learnerID string, activity attendance.Activity, date core.Date) (attendance.Attendance, error) {
	var doc attendanceDoc
	err := repo.col().FindOne(ctx, bson.M{
		"learner_details.id": learnerID,
		"activity":           activity,
		"day":                date.Day,
		"month":              date.Month,
		"year":               date.Year,
	}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	if err != nil {
		return attendance.Attendance{}, storeErr(err)
	}
	return doc.toAttendance(), nil
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	doc := attendanceDoc{
		Activity: att.Activity,
		Learner:  att.Learner,
		Present:  att.Present,
		Date:     att.Date,
	}
	res, err := repo.col().InsertOne(ctx, doc)
	if err != nil {
		return attendance.Attendance{}, storeErr(err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toAttendance(), nil
}

func (repo *attendanceRepository) SetAttendancePresent(ctx context.Context, id string, present bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrInvalidID
	}

	res, err := repo.col().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"present": present}})
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		return attendance.ErrNotFound
	}
	return nil
}

func (repo *attendanceRepository) FilterAttendance(ctx context.Context, filter attendance.QueryFilter) ([]attendance.Attendance, error) {
	query := bson.M{}
	if filter.Activity != "" {
		query["activity"] = filter.Activity
	}
	if filter.Day != 0 {
		query["day"] = filter.Day
	}
	if filter.WeekDay != nil {
		query["week_day"] = *filter.WeekDay
	}
	if filter.Month != 0 {
		query["month"] = filter.Month
	}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}

	cur, err := repo.col().Find(ctx, query)
	if err != nil {
		return nil, storeErr(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	recs := make([]attendance.Attendance, 0)
	for cur.Next(ctx) {
		var doc attendanceDoc
		if err = cur.Decode(&doc); err != nil {
			return nil, storeErr(err)
		}
		recs = append(recs, doc.toAttendance())
	}
	if err = cur.Err(); err != nil {
		return nil, storeErr(err)
	}
	return recs, nil
}
