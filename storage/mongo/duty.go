package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/duty"
	"github.com/stjosephs/hostel/core/learner"
)

// assignedDoc is the persisted shape of duty.AssignedDuty.
type assignedDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Learner   learner.Snapshot   `bson:"learner_details"`
	Duty      string             `bson:"assigned_duty"`
	Date      core.Date          `bson:"date,inline"`
	Completed bool               `bson:"completed"`
}

func (doc assignedDoc) toAssigned() duty.AssignedDuty {
	return duty.AssignedDuty{
		ID:        doc.ID.Hex(),
		Learner:   doc.Learner,
		Duty:      doc.Duty,
		Date:      doc.Date,
		Completed: doc.Completed,
	}
}

type dutyRepository struct {
	db *mongo.Database
}

var _ duty.Repository = (*dutyRepository)(nil) // interface compliance check

func NewDutyRepository(db *mongo.Database) duty.Repository {
	return &dutyRepository{db: db}
}

func (repo *dutyRepository) col() *mongo.Collection {
	return repo.db.Collection(colDuties)
}

func (repo *dutyRepository) CreateDuty(ctx context.Context, d duty.Duty) error {
	err := withTx(ctx, repo.db, func(sc mongo.SessionContext) error {
		if _, err := repo.col().InsertOne(sc, d); err != nil {
			return err
		}
		return incCounter(sc, repo.db, counterTotalCapacity, d.Capacity)
	})
	if mongo.IsDuplicateKeyError(err) {
		return duty.ErrDutyExists
	}
	return storeErr(err)
}

func (repo *dutyRepository) GetDuty(ctx context.Context, name string) (duty.Duty, error) {
	var d duty.Duty
	err := repo.col().FindOne(ctx, bson.M{"_id": name}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return duty.Duty{}, duty.ErrNotFound
	}
	if err != nil {
		return duty.Duty{}, storeErr(err)
	}
	return d, nil
}

func (repo *dutyRepository) QueryAllDuties(ctx context.Context) ([]duty.Duty, error) {
	cur, err := repo.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	duties := make([]duty.Duty, 0)
	for cur.Next(ctx) {
		var d duty.Duty
		if err = cur.Decode(&d); err != nil {
			return nil, storeErr(err)
		}
		duties = append(duties, d)
	}
	if err = cur.Err(); err != nil {
		return nil, storeErr(err)
	}
	return duties, nil
}

func (repo *dutyRepository) UpdateDuty(ctx context.Context, d duty.Duty, capacityDelta int) (duty.Duty, error) {
	err := withTx(ctx, repo.db, func(sc mongo.SessionContext) error {
		res, err := repo.col().UpdateOne(sc,
			bson.M{"_id": d.Name},
			bson.M{"$set": bson.M{"description": d.Description, "participants": d.Capacity}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return duty.ErrNotFound
		}
		if capacityDelta == 0 {
			return nil
		}
		return incCounter(sc, repo.db, counterTotalCapacity, capacityDelta)
	})
	if err == duty.ErrNotFound {
		return duty.Duty{}, err
	}
	if err != nil {
		return duty.Duty{}, storeErr(err)
	}
	return d, nil
}

func (repo *dutyRepository) DeleteDuty(ctx context.Context, name string) (duty.Duty, error) {
	var deleted duty.Duty
	err := withTx(ctx, repo.db, func(sc mongo.SessionContext) error {
		err := repo.col().FindOneAndDelete(sc, bson.M{"_id": name}).Decode(&deleted)
		if err == mongo.ErrNoDocuments {
			return duty.ErrNotFound
		}
		if err != nil {
			return err
		}
		return incCounter(sc, repo.db, counterTotalCapacity, -deleted.Capacity)
	})
	if err == duty.ErrNotFound {
		return duty.Duty{}, err
	}
	if err != nil {
		return duty.Duty{}, storeErr(err)
	}
	return deleted, nil
}

func (repo *dutyRepository) TotalCapacity(ctx context.Context) (int, error) {
	return readCounter(ctx, repo.db, counterTotalCapacity)
}

func (repo *dutyRepository) SaveAssignmentRun(ctx context.Context, records []duty.AssignedDuty, lastDuties map[string]string) error {
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, assignedDoc{
			Learner:   rec.Learner,
			Duty:      rec.Duty,
			Date:      rec.Date,
			Completed: rec.Completed,
		})
	}

	err := withTx(ctx, repo.db, func(sc mongo.SessionContext) error {
		if _, err := repo.db.Collection(colAssigned).InsertMany(sc, docs); err != nil {
			return err
		}
		learners := repo.db.Collection(colLearners)
		for id, dutyName := range lastDuties {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				return core.ErrInvalidID
			}
			res, err := learners.UpdateOne(sc,
				bson.M{"_id": oid},
				bson.M{"$set": bson.M{"last_duty": dutyName, "updated_at": time.Now().UTC()}},
			)
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return learner.ErrNotFound
			}
		}
		return nil
	})
	if err == core.ErrInvalidID || err == learner.ErrNotFound {
		return err
	}
	return storeErr(err)
}

func (repo *dutyRepository) FilterAssignedDuties(ctx context.Context, filter duty.AssignedFilter) ([]duty.AssignedDuty, error) {
	query := bson.M{}
	if filter.Duty != "" {
		query["assigned_duty"] = filter.Duty
	}
	if filter.LearnerID != "" {
		query["learner_details.id"] = filter.LearnerID
	}
	if filter.Date != nil {
		query["day"] = filter.Date.Day
		query["month"] = filter.Date.Month
		query["year"] = filter.Date.Year
	}

	cur, err := repo.db.Collection(colAssigned).Find(ctx, query)
	if err != nil {
		return nil, storeErr(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	recs := make([]duty.AssignedDuty, 0)
	for cur.Next(ctx) {
		var doc assignedDoc
		if err = cur.Decode(&doc); err != nil {
			return nil, storeErr(err)
		}
		recs = append(recs, doc.toAssigned())
	}
	if err = cur.Err(); err != nil {
		return nil, storeErr(err)
	}
	return recs, nil
}

func (repo *dutyRepository) MarkAssignedCompleted(ctx context.Context, learnerID string) error {
	opts := options.FindOneAndUpdate().SetSort(bson.D{{Key: "_id", Value: -1}})
	err := repo.db.Collection(colAssigned).FindOneAndUpdate(ctx,
		bson.M{"learner_details.id": learnerID},
		bson.M{"$set": bson.M{"completed": true}},
		opts,
	).Err()
	if err == mongo.ErrNoDocuments {
		return duty.ErrNotFound
	}
	return storeErr(err)
}
